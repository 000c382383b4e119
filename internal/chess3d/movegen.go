package chess3d

// MovesFor 返回 pc 从 from 出发的全部候选走法，只看 b 这一个快照。
// 不检查是否送将；越界的 from 没有走法。
func MovesFor(pc Piece, from Square, b *Board) []Move {
	var moves []Move
	genMoves(pc, from, b, &moves)
	return moves
}

func genMoves(pc Piece, from Square, b *Board, moves *[]Move) {
	if pc.Empty() || !from.Valid() {
		return
	}
	switch pc.Kind {
	case Pawn:
		genPawnMoves(pc, from, b, moves)
	case Rook:
		genSlidingMoves(pc, from, b, rookDirs, moves)
	case Bishop:
		genSlidingMoves(pc, from, b, bishopDirs, moves)
	case Queen:
		genSlidingMoves(pc, from, b, queenDirs, moves)
	case King:
		genJumpMoves(pc, from, b, kingTargets[from], moves)
	case Knight:
		genJumpMoves(pc, from, b, knightTargets[from], moves)
	}
}

// 车/象/后：沿方向一直走，遇到己方子停（不含），遇到敌子吃掉后停
func genSlidingMoves(pc Piece, from Square, b *Board, dirs []Dir, moves *[]Move) {
	l0, r0, f0 := from.Level(), from.Rank(), from.File()
	for _, d := range dirs {
		l, r, f := l0+d[0], r0+d[1], f0+d[2]
		for InBounds(l, r, f) {
			to := SquareOf(l, r, f)
			dst := b.Cells[to]
			if dst.Empty() {
				*moves = append(*moves, Move{From: from, To: to})
			} else {
				if dst.Color != pc.Color {
					*moves = append(*moves, Move{From: from, To: to, Capture: true})
				}
				break
			}
			l += d[0]
			r += d[1]
			f += d[2]
		}
	}
}

// 王/马：一步跳到位，不看中间
func genJumpMoves(pc Piece, from Square, b *Board, targets []Square, moves *[]Move) {
	for _, to := range targets {
		dst := b.Cells[to]
		if dst.Empty() {
			*moves = append(*moves, Move{From: from, To: to})
		} else if dst.Color != pc.Color {
			*moves = append(*moves, Move{From: from, To: to, Capture: true})
		}
	}
}

// PseudoMoves 列出 side 一方所有棋子的候选走法（不过滤送将）。
func (b *Board) PseudoMoves(side Color) []Move {
	moves := make([]Move, 0, 256)
	for sq := Square(0); sq < NumCells; sq++ {
		pc := b.Cells[sq]
		if pc.Empty() || pc.Color != side {
			continue
		}
		genMoves(pc, sq, b, &moves)
	}
	return moves
}
