package chess3d

// 兵吃子（以及控制）的四个 (rank, file) 偏移，都在前进一层上。
// 不含斜向：吃子和攻击判定必须用同一张表。
var pawnCaptureOffsets = [4][2]int{
	{+1, 0},
	{-1, 0},
	{0, +1},
	{0, -1},
}

func genPawnMoves(pc Piece, from Square, b *Board, moves *[]Move) {
	dir := pawnDir(pc.Color)
	if dir == 0 {
		return
	}
	l, r, f := from.Level(), from.Rank(), from.File()

	// 直进：只能走空格；第一步走通才考虑两步
	l1 := l + dir
	if InBounds(l1, r, f) {
		one := SquareOf(l1, r, f)
		if b.Cells[one].Empty() {
			*moves = append(*moves, Move{From: from, To: one})

			if l == pawnStartLevel(pc.Color) && !pc.Moved {
				l2 := l + 2*dir
				if InBounds(l2, r, f) {
					two := SquareOf(l2, r, f)
					if b.Cells[two].Empty() {
						*moves = append(*moves, Move{From: from, To: two})
					}
				}
			}
		}
	}

	// 吃子：前进一层的上下左右四格，必须有敌子
	if l1 < 0 || l1 >= Levels {
		return
	}
	for _, o := range pawnCaptureOffsets {
		to, ok := Lookup(l1, r+o[0], f+o[1])
		if !ok {
			continue
		}
		dst := b.Cells[to]
		if !dst.Empty() && dst.Color != pc.Color {
			*moves = append(*moves, Move{From: from, To: to, Capture: true})
		}
	}
}

// pawnCovers 判断 from 上 color 方的兵是否控制 target；不要求 target 有子。
func pawnCovers(color Color, from, target Square) bool {
	if target.Level() != from.Level()+pawnDir(color) {
		return false
	}
	dr := target.Rank() - from.Rank()
	df := target.File() - from.File()
	for _, o := range pawnCaptureOffsets {
		if o[0] == dr && o[1] == df {
			return true
		}
	}
	return false
}
