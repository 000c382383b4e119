package engine

import "chess3d/internal/chess3d"

const (
	// 王被吃光就是输棋，用一个比所有子力加起来都大的分
	scoreWin = 10_000_000
	scoreInf = 1_000_000_000
)

var pieceValue = [...]int{
	chess3d.KindNone: 0,
	chess3d.King:     20_000, // 一方有多个王，单个王不是终局
	chess3d.Queen:    1_200,
	chess3d.Rook:     600,
	chess3d.Bishop:   450,
	chess3d.Knight:   400,
	chess3d.Pawn:     100,
}

// Evaluate 从白方视角：正数白方好，负数黑方好。
func Evaluate(pos *chess3d.Position) int {
	whiteKings, blackKings := 0, 0
	score := 0
	for sq := chess3d.Square(0); sq < chess3d.NumCells; sq++ {
		pc := pos.Board.Cells[sq]
		if pc.Empty() {
			continue
		}
		val := pieceValue[pc.Kind] + positionalBonus(pc, sq)
		if pc.Color == chess3d.White {
			score += val
			if pc.Kind == chess3d.King {
				whiteKings++
			}
		} else {
			score -= val
			if pc.Kind == chess3d.King {
				blackKings++
			}
		}
	}
	switch {
	case whiteKings == 0:
		return -scoreWin
	case blackKings == 0:
		return scoreWin
	}
	return score
}

// 兵越往前越好；其余子靠近立方体中心略加分
func positionalBonus(pc chess3d.Piece, sq chess3d.Square) int {
	if pc.Kind == chess3d.Pawn {
		advance := sq.Level() - 1
		if pc.Color == chess3d.Black {
			advance = chess3d.Levels - 2 - sq.Level()
		}
		return advance * 8
	}
	if pc.Kind == chess3d.King {
		return 0
	}
	dist := centerDist(sq.Level()) + centerDist(sq.Rank()) + centerDist(sq.File())
	return (6 - dist) * 3
}

// 0..3：离 3.5 的距离取整
func centerDist(v int) int {
	if v < 4 {
		return 3 - v
	}
	return v - 4
}
