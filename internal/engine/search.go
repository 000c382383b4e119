package engine

import (
	"context"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"chess3d/internal/chess3d"
)

// 搜索配置
type SearchConfig struct {
	MaxDepth  int           // 最大搜索深度（ply）
	TimeLimit time.Duration // 搜索时间上限（0 表示不限制）
}

// 搜索结果
type SearchResult struct {
	BestMove chess3d.Move // 最佳着法
	Found    bool         // 没有可走的棋时为 false
	Score    int          // 评估分（正：白方好，负：黑方好）
	Depth    int          // 实际搜索到的深度
	Nodes    int64        // 节点数
	TimeUsed time.Duration
}

// Search 在 pos 上找一步棋。不过滤送将，和对局规则一致。
// ctx 取消时尽快返回已完成深度的结果。
func (e *Engine) Search(ctx context.Context, pos *chess3d.Position, cfg SearchConfig) SearchResult {
	start := time.Now()
	atomic.StoreInt64(&e.nodes, 0)

	moves := pos.PseudoMoves()
	if len(moves) == 0 {
		return SearchResult{Score: Evaluate(pos), TimeUsed: time.Since(start)}
	}

	// 能直接吃王就吃，不再搜索
	for _, mv := range moves {
		if pos.Board.Cells[mv.To].Kind == chess3d.King {
			return SearchResult{
				BestMove: mv,
				Found:    true,
				Score:    sideSign(pos.SideToMove) * scoreWin,
				Depth:    1,
				Nodes:    1,
				TimeUsed: time.Since(start),
			}
		}
	}

	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 2
	}
	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}

	res := SearchResult{}
	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		if ctx.Err() != nil {
			break
		}
		score, move, complete := e.alphaBetaRoot(ctx, pos, depth)
		if !complete && res.Found {
			// 没搜完的一层不可信，保留上一层
			break
		}
		res.BestMove = move
		res.Score = score
		res.Depth = depth
		res.Found = true
	}
	res.Nodes = atomic.LoadInt64(&e.nodes)
	res.TimeUsed = time.Since(start)
	return res
}

func sideSign(c chess3d.Color) int {
	if c == chess3d.Black {
		return -1
	}
	return 1
}

// 根节点：根据 SideToMove 决定是 max 还是 min，每个子局面并行搜索
func (e *Engine) alphaBetaRoot(ctx context.Context, pos *chess3d.Position, depth int) (int, chess3d.Move, bool) {
	moves := pos.PseudoMoves()
	orderMoves(pos, moves)

	// 根节点用全局 TT 排序是安全的：这里还是单线程
	key := pos.EnsureHash()
	if entry, ok := e.probeTT(key); ok {
		for i := range moves {
			if moves[i].From == entry.Move.From && moves[i].To == entry.Move.To {
				moves[0], moves[i] = moves[i], moves[0]
				break
			}
		}
	}

	// 每个 goroutine 只写自己的下标
	scores := make([]int, len(moves))
	var g errgroup.Group
	if e.Parallelism > 0 {
		g.SetLimit(e.Parallelism)
	}
	for i, mv := range moves {
		child, ok := pos.ApplyMove(mv)
		if !ok {
			scores[i] = worstFor(pos.SideToMove)
			continue
		}
		g.Go(func() error {
			local := e.local()
			score := local.alphaBeta(ctx, child, depth-1, -scoreInf, scoreInf)
			atomic.AddInt64(&e.nodes, local.nodes)
			scores[i] = score
			return nil
		})
	}
	_ = g.Wait()

	best := 0
	for i := 1; i < len(moves); i++ {
		if better(pos.SideToMove, scores[i], scores[best]) {
			best = i
		}
	}

	complete := ctx.Err() == nil
	if complete {
		// 根节点存 TT（全局 tt 只有主 goroutine 访问）
		e.storeTT(key, depth, scores[best], ttExact, moves[best])
	}
	return scores[best], moves[best], complete
}

// 内部递归：标准 alpha-beta，白方极大、黑方极小
func (e *Engine) alphaBeta(ctx context.Context, pos *chess3d.Position, depth int, alpha, beta int) int {
	e.nodes++

	if pos.KingCount(chess3d.White) == 0 || pos.KingCount(chess3d.Black) == 0 {
		return Evaluate(pos)
	}
	if depth <= 0 || ctx.Err() != nil {
		return Evaluate(pos)
	}

	alphaOrig, betaOrig := alpha, beta
	key := pos.EnsureHash()
	if entry, ok := e.probeTT(key); ok && entry.Depth >= depth {
		switch entry.Flag {
		case ttExact:
			return entry.Score
		case ttLower:
			alpha = max(alpha, entry.Score)
		case ttUpper:
			beta = min(beta, entry.Score)
		}
		if alpha >= beta {
			return entry.Score
		}
	}

	moves := pos.PseudoMoves()
	if len(moves) == 0 {
		return Evaluate(pos)
	}
	orderMoves(pos, moves)

	side := pos.SideToMove
	bestScore := worstFor(side)
	for _, mv := range moves {
		child, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		score := e.alphaBeta(ctx, child, depth-1, alpha, beta)
		if side == chess3d.White {
			bestScore = max(bestScore, score)
			alpha = max(alpha, score)
		} else {
			bestScore = min(bestScore, score)
			beta = min(beta, score)
		}
		if alpha >= beta {
			break
		}
	}

	if ctx.Err() == nil {
		flag := ttExact
		switch {
		case bestScore <= alphaOrig:
			flag = ttUpper
		case bestScore >= betaOrig:
			flag = ttLower
		}
		e.storeTT(key, depth, bestScore, flag, chess3d.Move{})
	}
	return bestScore
}

func worstFor(side chess3d.Color) int {
	if side == chess3d.White {
		return math.MinInt
	}
	return math.MaxInt
}

func better(side chess3d.Color, a, b int) bool {
	if side == chess3d.White {
		return a > b
	}
	return a < b
}

// 吃子优先，吃价值高的更优先
func orderMoves(pos *chess3d.Position, moves []chess3d.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return captureValue(pos, moves[i]) > captureValue(pos, moves[j])
	})
}

func captureValue(pos *chess3d.Position, mv chess3d.Move) int {
	if !mv.Capture {
		return 0
	}
	return pieceValue[pos.Board.Cells[mv.To].Kind]
}
