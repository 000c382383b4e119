package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"chess3d/internal/chess3d"
	"chess3d/internal/engine"
)

// player 为当前局面选一步；ok=false 表示无子可动
type player interface {
	choose(ctx context.Context, pos *chess3d.Position) (chess3d.Move, bool)
}

type enginePlayer struct {
	e   *engine.Engine
	cfg engine.SearchConfig
}

func (p *enginePlayer) choose(ctx context.Context, pos *chess3d.Position) (chess3d.Move, bool) {
	res := p.e.Search(ctx, pos, p.cfg)
	return res.BestMove, res.Found
}

// randomPlayer 能吃王就吃，否则随便走
type randomPlayer struct {
	rng *rand.Rand
}

func (p *randomPlayer) choose(_ context.Context, pos *chess3d.Position) (chess3d.Move, bool) {
	moves := pos.PseudoMoves()
	if len(moves) == 0 {
		return chess3d.Move{}, false
	}
	for _, m := range moves {
		if pos.Board.Cells[m.To].Kind == chess3d.King {
			return m, true
		}
	}
	return moves[p.rng.IntN(len(moves))], true
}

// 每局各自一个 Engine，Engine 不能并发 Search
func newPlayer(kind string, depth int, moveTime time.Duration, seed uint64) player {
	if kind == "engine" {
		return &enginePlayer{
			e:   engine.NewEngine(),
			cfg: engine.SearchConfig{MaxDepth: depth, TimeLimit: moveTime},
		}
	}
	return &randomPlayer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type match struct {
	White, Black player
	MaxMoves     int
}

type result struct {
	Winner   chess3d.Color // NoColor 表示和棋（步数用完或无子可动）
	Plies    int
	Reason   string
	Duration time.Duration
}

func (r result) String() string {
	if r.Winner == chess3d.NoColor {
		return "draw (" + r.Reason + ")"
	}
	return r.Reason
}

// play 通过回合控制器下完一局，王登记表出错就报错。
func (m match) play(ctx context.Context) (result, error) {
	start := time.Now()
	g := chess3d.NewGame()
	for ply := 0; ply < m.MaxMoves; ply++ {
		if err := ctx.Err(); err != nil {
			return result{}, err
		}
		p := m.White
		if g.Turn() == chess3d.Black {
			p = m.Black
		}
		pos := g.Position()
		mv, ok := p.choose(ctx, &pos)
		if !ok {
			return result{Winner: chess3d.NoColor, Plies: ply, Reason: g.Turn().String() + " has no moves", Duration: time.Since(start)}, nil
		}
		if err := g.Play(mv.From, mv.To); err != nil {
			return result{}, fmt.Errorf("ply %d %s->%s: %w", ply+1, mv.From, mv.To, err)
		}
		if g.Over() {
			return result{Winner: g.Winner(), Plies: ply + 1, Reason: g.Message(), Duration: time.Since(start)}, nil
		}
	}
	return result{Winner: chess3d.NoColor, Plies: m.MaxMoves, Reason: "move limit", Duration: time.Since(start)}, nil
}
