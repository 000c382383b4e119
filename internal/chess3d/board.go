package chess3d

import (
	"fmt"
	"strings"
)

const (
	Levels   = 8
	Ranks    = 8
	Files    = 8
	NumCells = Levels * Ranks * Files
)

// Square 是 (level, rank, file) 的线性下标：level*64 + rank*8 + file。
type Square int16

const NoSquare Square = -1

func SquareOf(level, rank, file int) Square {
	return Square(level*Ranks*Files + rank*Files + file)
}

func (s Square) Level() int { return int(s) / (Ranks * Files) }
func (s Square) Rank() int { return int(s) / Files % Ranks }
func (s Square) File() int { return int(s) % Files }

func (s Square) Valid() bool { return s >= 0 && s < NumCells }

func (s Square) String() string {
	if !s.Valid() {
		return "--"
	}
	return fmt.Sprintf("L%dR%dF%d", s.Level(), s.Rank(), s.File())
}

// InBounds 三个坐标都在 [0,8) 内。
func InBounds(level, rank, file int) bool {
	return level >= 0 && level < Levels && rank >= 0 && rank < Ranks && file >= 0 && file < Files
}

// Lookup 把坐标换成 Square，越界时 ok=false。
func Lookup(level, rank, file int) (Square, bool) {
	if !InBounds(level, rank, file) {
		return NoSquare, false
	}
	return SquareOf(level, rank, file), true
}

type Board struct {
	Cells [NumCells]Piece
}

// Get 越界返回空格子。
func (b *Board) Get(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return b.Cells[sq]
}

func (b *Board) Set(sq Square, pc Piece) {
	if !sq.Valid() {
		return
	}
	b.Cells[sq] = pc
}

// Place 放一个新棋子，身份取自落点。
func (b *Board) Place(sq Square, kind Kind, color Color) Piece {
	pc := Piece{Kind: kind, Color: color, ID: idFor(sq)}
	b.Set(sq, pc)
	return pc
}

func (b *Board) Clear(sq Square) { b.Set(sq, Piece{}) }

// 开局在哪一层
func pawnStartLevel(c Color) int {
	if c == White {
		return 1
	}
	return Levels - 2
}

// 兵沿 level 轴前进：白 +1，黑 -1
func pawnDir(c Color) int {
	if c == White {
		return +1
	}
	if c == Black {
		return -1
	}
	return 0
}

func promotionLevel(c Color) int {
	if c == White {
		return Levels - 1
	}
	return 0
}

// LevelName 用于界面显示每一层在开局时的用途。
func LevelName(level int) string {
	switch {
	case level == 0:
		return "White Pieces"
	case level == 1:
		return "White Pawns"
	case level >= 2 && level <= 5:
		return "Empty"
	case level == 6:
		return "Black Pawns"
	case level == 7:
		return "Black Pieces"
	default:
		return "Unknown"
	}
}

var letterToKind = map[rune]Kind{
	'k': King,
	'q': Queen,
	'r': Rook,
	'b': Bishop,
	'n': Knight,
	'p': Pawn,
}

var kindLetter = [...]rune{'.', 'K', 'Q', 'R', 'B', 'N', 'P'}

func pieceToChar(pc Piece) rune {
	if pc.Empty() {
		return '.'
	}
	ch := kindLetter[pc.Kind]
	if pc.Color == Black {
		return ch + ('a' - 'A')
	}
	return ch
}

// 后排层的布局，从 rank 7 往 rank 0 写；上下对称，白方第 0 层、黑方第 7 层共用。
const backLevelLayout = `RRNBBNRR
RRBNNBRR
NBQQQQBN
BNQKKQNB
BNQKKQNB
NBQQQQBN
RRBNNBRR
RRNBBNRR`

func parseBackLevel() [Ranks][Files]Kind {
	var out [Ranks][Files]Kind
	lines := make([]string, 0, Ranks)
	for _, line := range strings.Split(backLevelLayout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Ranks {
		panic("backLevelLayout must have 8 ranks")
	}
	for i, line := range lines {
		if len(line) != Files {
			panic("backLevelLayout must have 8 files")
		}
		rank := Ranks - 1 - i
		for f, ch := range strings.ToLower(line) {
			k, ok := letterToKind[ch]
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			out[rank][f] = k
		}
	}
	return out
}

// NewInitialBoard 第 0/7 层后排子，第 1/6 层全兵，中间四层空。
func NewInitialBoard() Board {
	var b Board
	back := parseBackLevel()
	for r := 0; r < Ranks; r++ {
		for f := 0; f < Files; f++ {
			b.Place(SquareOf(0, r, f), back[r][f], White)
			b.Place(SquareOf(pawnStartLevel(White), r, f), Pawn, White)
			b.Place(SquareOf(pawnStartLevel(Black), r, f), Pawn, Black)
			b.Place(SquareOf(Levels-1, r, f), back[r][f], Black)
		}
	}
	return b
}
