package chess3d

import (
	"errors"
	"fmt"
)

// Action 表示一次 Select 实际做了什么。
type Action int8

const (
	ActionNone Action = iota
	ActionSelected
	ActionDeselected
	ActionMoved
)

func (a Action) String() string {
	switch a {
	case ActionSelected:
		return "selected"
	case ActionDeselected:
		return "deselected"
	case ActionMoved:
		return "moved"
	default:
		return "none"
	}
}

// CheckStatus 是某个活着的王当前是否被将。
type CheckStatus struct {
	King      PieceID
	Color     Color
	At        Square
	InCheck   bool
	Attackers []Square
}

// Game 是回合控制器：持有唯一的局面、王登记表和当前阶段。
// 不做并发保护，调用方一次只能有一个输入在处理。
type Game struct {
	pos   Position
	kings KingRegistry

	phase        Phase
	selected     Square
	destinations []Move

	checks  []CheckStatus
	winner  Color
	message string
	last    *MoveResult
}

func NewGame() *Game {
	g := &Game{}
	g.Start()
	return g
}

// NewGameFromPosition 从任意局面开一局，用于测试和残局。
func NewGameFromPosition(pos *Position) *Game {
	g := &Game{}
	g.load(*pos)
	return g
}

// Start 重置为开局，任何时候都可以调用，包括终局之后。
func (g *Game) Start() {
	g.load(*NewInitialPosition())
}

func (g *Game) load(pos Position) {
	g.pos = pos
	g.pos.EnsureHash()
	g.kings = NewKingRegistry(&g.pos.Board)
	g.phase = SelectPiece
	g.selected = NoSquare
	g.destinations = nil
	g.winner = NoColor
	g.message = ""
	g.last = nil
	g.refreshChecks()
	g.evaluateWin()
}

// Select 是唯一的外部输入：玩家点了一个格子。
func (g *Game) Select(sq Square) (Action, error) {
	if g.phase == GameOver {
		return ActionNone, ErrGameOver
	}
	if !sq.Valid() {
		return ActionNone, ErrOffBoard
	}

	switch g.phase {
	case SelectPiece:
		pc := g.pos.Board.Cells[sq]
		if pc.Empty() || pc.Color != g.pos.SideToMove {
			return ActionNone, nil
		}
		g.selected = sq
		g.destinations = MovesFor(pc, sq, &g.pos.Board)
		g.phase = SelectDestination
		g.message = ""
		return ActionSelected, nil

	case SelectDestination:
		if sq == g.selected {
			g.clearSelection()
			return ActionDeselected, nil
		}
		for _, mv := range g.destinations {
			if mv.To == sq {
				return ActionMoved, g.apply(mv)
			}
		}
		g.message = ErrInvalidTarget.Error()
		return ActionNone, ErrInvalidTarget
	}
	return ActionNone, nil
}

// Play 相当于连续点起点和终点；失败时回到 select-piece。
func (g *Game) Play(from, to Square) error {
	if g.phase == GameOver {
		return ErrGameOver
	}
	g.clearSelection()
	act, err := g.Select(from)
	if err != nil {
		return err
	}
	if act != ActionSelected {
		g.message = ErrInvalidTarget.Error()
		return fmt.Errorf("%w: no %s piece at %s", ErrInvalidTarget, g.pos.SideToMove, from)
	}
	if act, err = g.Select(to); err != nil || act != ActionMoved {
		g.clearSelection()
		if err == nil {
			err = ErrInvalidTarget
		}
		if errors.Is(err, ErrInvalidTarget) {
			g.message = ErrInvalidTarget.Error()
		}
		return err
	}
	return nil
}

// apply 在同一步里改棋盘和王登记表，然后刷新将军标记和胜负。
func (g *Game) apply(mv Move) error {
	res := g.pos.play(mv)
	if res.Captured.Kind == King {
		g.kings.remove(res.Captured.Color, res.Captured.ID)
	}
	if res.Mover.Kind == King {
		g.kings.relocate(res.Mover.Color, res.Mover.ID, mv.To)
	}
	g.last = &res
	g.clearSelection()
	g.refreshChecks()
	g.evaluateWin()
	return g.kings.Verify(&g.pos.Board)
}

// 终局消息保留，其余提示随选择一起清掉
func (g *Game) clearSelection() {
	g.selected = NoSquare
	g.destinations = nil
	if g.phase != GameOver {
		g.phase = SelectPiece
		g.message = ""
	}
}

func (g *Game) refreshChecks() {
	g.checks = g.checks[:0]
	for _, c := range [2]Color{White, Black} {
		for _, k := range g.kings.Live(c) {
			st := CheckStatus{King: k.ID, Color: c, At: k.At}
			if IsAttacked(k.At, c.Opponent(), &g.pos.Board) {
				st.InCheck = true
				st.Attackers = Attackers(k.At, c.Opponent(), &g.pos.Board)
			}
			g.checks = append(g.checks, st)
		}
	}
}

// 简化的终局：某一方的王全部被吃。
func (g *Game) evaluateWin() {
	if g.phase == GameOver {
		return
	}
	switch {
	case g.kings.Count(White) == 0:
		g.winner = Black
		g.message = "Black Wins! All White Kings captured."
	case g.kings.Count(Black) == 0:
		g.winner = White
		g.message = "White Wins! All Black Kings captured."
	default:
		return
	}
	g.phase = GameOver
	g.selected = NoSquare
	g.destinations = nil
}

func (g *Game) Position() Position { return g.pos }
func (g *Game) Board() Board { return g.pos.Board }
func (g *Game) Turn() Color { return g.pos.SideToMove }
func (g *Game) Phase() Phase { return g.phase }
func (g *Game) Over() bool { return g.phase == GameOver }
func (g *Game) Winner() Color { return g.winner }
func (g *Game) Message() string { return g.message }
func (g *Game) Hash() uint64 { return g.pos.Hash }
func (g *Game) Encode() string { return g.pos.Encode() }
func (g *Game) Piece(sq Square) Piece { return g.pos.Board.Get(sq) }

func (g *Game) Selected() (Square, bool) {
	return g.selected, g.selected != NoSquare
}

// Destinations 是当前选中棋子的候选落点，用于高亮。
func (g *Game) Destinations() []Move {
	return append([]Move(nil), g.destinations...)
}

func (g *Game) Checks() []CheckStatus {
	out := make([]CheckStatus, len(g.checks))
	for i, c := range g.checks {
		c.Attackers = append([]Square(nil), c.Attackers...)
		out[i] = c
	}
	return out
}

func (g *Game) InCheck(c Color) bool {
	for _, st := range g.checks {
		if st.Color == c && st.InCheck {
			return true
		}
	}
	return false
}

func (g *Game) Kings(c Color) []KingEntry { return g.kings.Live(c) }

func (g *Game) LastMove() (MoveResult, bool) {
	if g.last == nil {
		return MoveResult{}, false
	}
	return *g.last, true
}
