package chess3d

// Position = 棋盘 + 轮到谁走
type Position struct {
	Board      Board
	SideToMove Color
	Hash       uint64
}

func NewInitialPosition() *Position {
	pos := &Position{
		Board:      NewInitialBoard(),
		SideToMove: White, // 白先
	}
	pos.Hash = pos.CalculateHash()
	return pos
}

// MoveResult 描述 play 对棋盘做了什么。
type MoveResult struct {
	Move     Move
	Mover    Piece // 走之前的棋子
	Captured Piece
	Promoted bool
}

// play 原地执行走法：搬子、清空起点、标记已动、兵到底升后、换边。
// 合法性由调用方保证。
func (p *Position) play(m Move) MoveResult {
	pc := p.Board.Cells[m.From]
	captured := p.Board.Cells[m.To]

	h := p.EnsureHash() ^ pc.hashKey(m.From) ^ captured.hashKey(m.To)

	moved := pc
	moved.Moved = true
	promoted := false
	if moved.Kind == Pawn && m.To.Level() == promotionLevel(moved.Color) {
		moved.Kind = Queen
		promoted = true
	}
	p.Board.Cells[m.To] = moved
	p.Board.Cells[m.From] = Piece{}

	p.SideToMove = p.SideToMove.Opponent()
	p.Hash = h ^ moved.hashKey(m.To) ^ zobristKeys().black

	return MoveResult{
		Move:     Move{From: m.From, To: m.To, Capture: !captured.Empty()},
		Mover:    pc,
		Captured: captured,
		Promoted: promoted,
	}
}

// ApplyMove 返回走完之后的新局面，原局面不变。
// 只检查起点是不是轮走方的子，其余由上层负责。
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	if !m.From.Valid() || !m.To.Valid() || m.From == m.To {
		return nil, false
	}
	pc := p.Board.Cells[m.From]
	if pc.Empty() || pc.Color != p.SideToMove {
		return nil, false
	}
	dst := p.Board.Cells[m.To]
	if !dst.Empty() && dst.Color == pc.Color {
		return nil, false
	}
	np := *p
	np.play(m)
	return &np, true
}

// PseudoMoves 轮走方的候选走法。
func (p *Position) PseudoMoves() []Move {
	return p.Board.PseudoMoves(p.SideToMove)
}

func (p *Position) KingCount(c Color) int {
	n := 0
	for _, pc := range p.Board.Cells {
		if pc.Kind == King && pc.Color == c {
			n++
		}
	}
	return n
}

// InCheck 任意一个 c 方的王被控制即为被将。
func (p *Position) InCheck(c Color) bool {
	for sq := Square(0); sq < NumCells; sq++ {
		pc := p.Board.Cells[sq]
		if pc.Kind == King && pc.Color == c && IsAttacked(sq, c.Opponent(), &p.Board) {
			return true
		}
	}
	return false
}
