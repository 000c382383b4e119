package chess3d

type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Opponent 返回对手颜色；NoColor 的对手仍是 NoColor。
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

type Kind int8

const (
	KindNone Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

var kindNames = [...]string{"none", "king", "queen", "rook", "bishop", "knight", "pawn"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "none"
	}
	return kindNames[k]
}

// PieceID 是棋子的稳定身份：开局所在格子 + 1，0 表示没有棋子。
type PieceID uint16

func idFor(sq Square) PieceID { return PieceID(sq) + 1 }

func (id PieceID) String() string {
	if id == 0 {
		return "-"
	}
	return Square(id - 1).String()
}

// Piece 按值存放在格子里；Kind == KindNone 即空格。
type Piece struct {
	Kind  Kind
	Color Color
	ID    PieceID
	Moved bool
}

func (p Piece) Empty() bool { return p.Kind == KindNone }

// Tag 返回类似 "K_L0R3F3" 的身份串，升变后类型字母会变，身份部分不变。
func (p Piece) Tag() string {
	if p.Empty() {
		return ""
	}
	return string(kindLetter[p.Kind]) + "_" + p.ID.String()
}

// Move 是一个候选走法；Capture 表示目标格有敌子。
type Move struct {
	From    Square `json:"from"`
	To      Square `json:"to"`
	Capture bool   `json:"capture"`
}

type Phase int8

const (
	SelectPiece Phase = iota
	SelectDestination
	GameOver
)

func (p Phase) String() string {
	switch p {
	case SelectPiece:
		return "select-piece"
	case SelectDestination:
		return "select-destination"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}
