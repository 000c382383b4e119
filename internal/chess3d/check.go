package chess3d

// IsAttacked 判断 target 是否被 by 一方控制。
// 非兵棋子用走法生成模拟：只要能“走到”target 就算控制（空格也算）。
// 兵只看前进一层的四个正交偏移，不要求 target 上有子。
func IsAttacked(target Square, by Color, b *Board) bool {
	if !target.Valid() || by == NoColor {
		return false
	}
	moves := make([]Move, 0, 64)
	for sq := Square(0); sq < NumCells; sq++ {
		pc := b.Cells[sq]
		if pc.Empty() || pc.Color != by {
			continue
		}
		if pc.Kind == Pawn {
			if pawnCovers(pc.Color, sq, target) {
				return true
			}
			continue
		}
		moves = moves[:0]
		genMoves(pc, sq, b, &moves)
		for _, mv := range moves {
			if mv.To == target {
				return true
			}
		}
	}
	return false
}

// Attackers 列出控制 target 的 by 方棋子所在格，用于界面提示。
func Attackers(target Square, by Color, b *Board) []Square {
	if !target.Valid() || by == NoColor {
		return nil
	}
	var out []Square
	moves := make([]Move, 0, 64)
	for sq := Square(0); sq < NumCells; sq++ {
		pc := b.Cells[sq]
		if pc.Empty() || pc.Color != by {
			continue
		}
		if pc.Kind == Pawn {
			if pawnCovers(pc.Color, sq, target) {
				out = append(out, sq)
			}
			continue
		}
		moves = moves[:0]
		genMoves(pc, sq, b, &moves)
		for _, mv := range moves {
			if mv.To == target {
				out = append(out, sq)
				break
			}
		}
	}
	return out
}
