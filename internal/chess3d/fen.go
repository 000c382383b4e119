package chess3d

import (
	"strings"
	"unicode"
)

// Encode 类 FEN：第 0..7 层用 "|" 隔开，每层从 rank 7 到 rank 0 用 "/" 隔开，
// 空位用数字压缩；空格后 w/b 表示轮到谁走。
func (p *Position) Encode() string {
	var sb strings.Builder
	for l := 0; l < Levels; l++ {
		if l > 0 {
			sb.WriteByte('|')
		}
		for i := 0; i < Ranks; i++ {
			if i > 0 {
				sb.WriteByte('/')
			}
			r := Ranks - 1 - i
			empty := 0
			for f := 0; f < Files; f++ {
				pc := p.Board.Cells[SquareOf(l, r, f)]
				if pc.Empty() {
					empty++
					continue
				}
				if empty > 0 {
					sb.WriteByte(byte('0' + empty))
					empty = 0
				}
				sb.WriteRune(pieceToChar(pc))
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
			}
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}

// DecodePosition 解析 Encode 的输出。棋子身份取自所在格；
// 不在起始层的兵视为已经走过。
func DecodePosition(s string) (*Position, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return nil, ErrInvalidEncoding
	}
	levels := strings.Split(parts[0], "|")
	if len(levels) != Levels {
		return nil, ErrInvalidEncoding
	}
	var b Board
	for l, level := range levels {
		ranks := strings.Split(level, "/")
		if len(ranks) != Ranks {
			return nil, ErrInvalidEncoding
		}
		for i, row := range ranks {
			r := Ranks - 1 - i
			f := 0
			for _, ch := range row {
				if f >= Files {
					return nil, ErrInvalidEncoding
				}
				if ch >= '1' && ch <= '8' {
					f += int(ch - '0')
					continue
				}
				k, ok := letterToKind[unicode.ToLower(ch)]
				if !ok {
					return nil, ErrInvalidEncoding
				}
				color := Black
				if unicode.IsUpper(ch) {
					color = White
				}
				pc := b.Place(SquareOf(l, r, f), k, color)
				if k == Pawn && l != pawnStartLevel(color) {
					pc.Moved = true
					b.Set(SquareOf(l, r, f), pc)
				}
				f++
			}
			if f != Files {
				return nil, ErrInvalidEncoding
			}
		}
	}
	var stm Color
	switch parts[1] {
	case "w":
		stm = White
	case "b":
		stm = Black
	default:
		return nil, ErrInvalidEncoding
	}
	pos := &Position{
		Board:      b,
		SideToMove: stm,
	}
	pos.Hash = pos.CalculateHash()
	return pos, nil
}
