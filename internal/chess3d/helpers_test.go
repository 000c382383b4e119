package chess3d

import (
	"math/rand"
	"slices"
	"testing"
)

func sq(l, r, f int) Square { return SquareOf(l, r, f) }

func emptyPosition(turn Color) *Position {
	return &Position{SideToMove: turn}
}

// place 放子并重算哈希，返回放下的棋子。
func place(t *testing.T, p *Position, at Square, k Kind, c Color) Piece {
	t.Helper()
	if !at.Valid() {
		t.Fatalf("place: %d off board", at)
	}
	pc := p.Board.Place(at, k, c)
	p.Hash = p.CalculateHash()
	return pc
}

func targets(moves []Move) []Square {
	out := make([]Square, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.To)
	}
	slices.Sort(out)
	return out
}

func captures(moves []Move) []Square {
	var out []Square
	for _, m := range moves {
		if m.Capture {
			out = append(out, m.To)
		}
	}
	slices.Sort(out)
	return out
}

func sortedSquares(in ...Square) []Square {
	out := append([]Square(nil), in...)
	slices.Sort(out)
	return out
}

var allKinds = []Kind{King, Queen, Rook, Bishop, Knight, Pawn}

// randomBoard 按 density 随机摆子，不保证局面合理。
func randomBoard(rng *rand.Rand, density float64) Board {
	var b Board
	for s := Square(0); s < NumCells; s++ {
		if rng.Float64() >= density {
			continue
		}
		c := White
		if rng.Intn(2) == 1 {
			c = Black
		}
		pc := b.Place(s, allKinds[rng.Intn(len(allKinds))], c)
		if rng.Intn(2) == 1 {
			pc.Moved = true
			b.Set(s, pc)
		}
	}
	return b
}
