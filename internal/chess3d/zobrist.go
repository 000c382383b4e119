package chess3d

import "sync"

// 每个 (格子, 颜色, 类型) 一个随机键，另加一个“轮到黑方”的键。
type zobristTable struct {
	cells [NumCells][2][Pawn + 1]uint64
	black uint64
}

var (
	zobristOnce sync.Once
	zobrist     zobristTable
)

// splitMix64，固定种子，同一局面每次运行哈希一致
type splitMix uint64

func (s *splitMix) next() uint64 {
	*s += 0x9E3779B97F4A7C15
	z := uint64(*s)
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func zobristKeys() *zobristTable {
	zobristOnce.Do(func() {
		rng := splitMix(0x9E3779B97F4A7C15)
		for sq := range zobrist.cells {
			for c := range zobrist.cells[sq] {
				for k := King; k <= Pawn; k++ {
					zobrist.cells[sq][c][k] = rng.next()
				}
			}
		}
		zobrist.black = rng.next()
	})
	return &zobrist
}

// hashKey 是棋子放在 sq 上贡献的键。身份和 Moved 不参与。
func (p Piece) hashKey(sq Square) uint64 {
	if p.Kind <= KindNone || p.Kind > Pawn || !sq.Valid() {
		return 0
	}
	if p.Color != White && p.Color != Black {
		return 0
	}
	return zobristKeys().cells[sq][p.Color][p.Kind]
}

func sideKey(c Color) uint64 {
	if c == Black {
		return zobristKeys().black
	}
	return 0
}

func (b *Board) hash() uint64 {
	var h uint64
	for sq, pc := range b.Cells {
		h ^= pc.hashKey(Square(sq))
	}
	return h
}

// CalculateHash 全量计算 Zobrist 哈希。
func (p *Position) CalculateHash() uint64 {
	return p.Board.hash() ^ sideKey(p.SideToMove)
}

// EnsureHash 在 Hash 还没算过时补上，返回当前哈希。
func (p *Position) EnsureHash() uint64 {
	if p.Hash == 0 {
		p.Hash = p.CalculateHash()
	}
	return p.Hash
}
