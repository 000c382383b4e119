package chess3d

// Dir 是 (level, rank, file) 上的单位位移。
type Dir [3]int

var (
	rookDirs   []Dir // 6 个轴向
	bishopDirs []Dir // 12 个面对角
	spaceDirs  []Dir // 8 个体对角
	queenDirs  []Dir // 以上全部，26 个
	knightDirs []Dir // 24 个 (0, ±1, ±2) 的排列

	// 每个格子上跳跃类棋子的落点，越界的已经去掉
	kingTargets   [NumCells][]Square
	knightTargets [NumCells][]Square
)

func init() {
	initDirections()
	initJumpTables()
}

func initDirections() {
	for dl := -1; dl <= 1; dl++ {
		for dr := -1; dr <= 1; dr++ {
			for df := -1; df <= 1; df++ {
				d := Dir{dl, dr, df}
				switch nonZero(d) {
				case 1:
					rookDirs = append(rookDirs, d)
				case 2:
					bishopDirs = append(bishopDirs, d)
				case 3:
					spaceDirs = append(spaceDirs, d)
				}
			}
		}
	}
	queenDirs = make([]Dir, 0, len(rookDirs)+len(bishopDirs)+len(spaceDirs))
	queenDirs = append(queenDirs, rookDirs...)
	queenDirs = append(queenDirs, bishopDirs...)
	queenDirs = append(queenDirs, spaceDirs...)

	// 恰好一个轴为 0，另外两个轴分别是 ±1 和 ±2
	for dl := -2; dl <= 2; dl++ {
		for dr := -2; dr <= 2; dr++ {
			for df := -2; df <= 2; df++ {
				d := Dir{dl, dr, df}
				if nonZero(d) != 2 {
					continue
				}
				if abs(dl)+abs(dr)+abs(df) == 3 {
					knightDirs = append(knightDirs, d)
				}
			}
		}
	}
}

func initJumpTables() {
	for sq := Square(0); sq < NumCells; sq++ {
		kingTargets[sq] = jumpTargets(sq, queenDirs)
		knightTargets[sq] = jumpTargets(sq, knightDirs)
	}
}

func jumpTargets(from Square, dirs []Dir) []Square {
	out := make([]Square, 0, len(dirs))
	for _, d := range dirs {
		if to, ok := Lookup(from.Level()+d[0], from.Rank()+d[1], from.File()+d[2]); ok {
			out = append(out, to)
		}
	}
	return out
}

func nonZero(d Dir) int {
	n := 0
	for _, v := range d {
		if v != 0 {
			n++
		}
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RookDirs 等返回方向表的副本，供测试和工具使用。
func RookDirs() []Dir { return append([]Dir(nil), rookDirs...) }
func BishopDirs() []Dir { return append([]Dir(nil), bishopDirs...) }
func QueenDirs() []Dir { return append([]Dir(nil), queenDirs...) }
func KnightDirs() []Dir { return append([]Dir(nil), knightDirs...) }
