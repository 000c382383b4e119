package chess3d

import "fmt"

// KingEntry 缓存一个活着的王所在格子。
type KingEntry struct {
	ID PieceID
	At Square
}

// KingRegistry 记录每一方还活着的王。
// 它是棋盘内容的冗余缓存，必须在改动棋盘的同一步里同步更新。
type KingRegistry struct {
	kings [2][]KingEntry
}

// NewKingRegistry 扫描棋盘重建登记表。
func NewKingRegistry(b *Board) KingRegistry {
	var kr KingRegistry
	for sq := Square(0); sq < NumCells; sq++ {
		pc := b.Cells[sq]
		if pc.Kind == King {
			kr.add(pc.Color, KingEntry{ID: pc.ID, At: sq})
		}
	}
	return kr
}

func colorIndex(c Color) (int, bool) {
	switch c {
	case White:
		return 0, true
	case Black:
		return 1, true
	default:
		return 0, false
	}
}

func (kr *KingRegistry) add(c Color, e KingEntry) {
	if i, ok := colorIndex(c); ok {
		kr.kings[i] = append(kr.kings[i], e)
	}
}

// remove 按身份删除，返回是否找到。
func (kr *KingRegistry) remove(c Color, id PieceID) bool {
	i, ok := colorIndex(c)
	if !ok {
		return false
	}
	list := kr.kings[i]
	for j := range list {
		if list[j].ID == id {
			kr.kings[i] = append(list[:j], list[j+1:]...)
			return true
		}
	}
	return false
}

func (kr *KingRegistry) relocate(c Color, id PieceID, to Square) bool {
	i, ok := colorIndex(c)
	if !ok {
		return false
	}
	for j := range kr.kings[i] {
		if kr.kings[i][j].ID == id {
			kr.kings[i][j].At = to
			return true
		}
	}
	return false
}

// Live 返回 c 方王的副本。
func (kr *KingRegistry) Live(c Color) []KingEntry {
	i, ok := colorIndex(c)
	if !ok {
		return nil
	}
	return append([]KingEntry(nil), kr.kings[i]...)
}

func (kr *KingRegistry) Count(c Color) int {
	i, ok := colorIndex(c)
	if !ok {
		return 0
	}
	return len(kr.kings[i])
}

// Verify 检查登记表和棋盘一致：每个登记的王都在它记录的格子上，
// 棋盘上的每个王也都登记了。
func (kr *KingRegistry) Verify(b *Board) error {
	seen := 0
	for _, c := range [2]Color{White, Black} {
		for _, e := range kr.Live(c) {
			pc := b.Get(e.At)
			if pc.Kind != King || pc.Color != c || pc.ID != e.ID {
				return fmt.Errorf("%w: %s king %s not at %s", ErrKingRegistry, c, e.ID, e.At)
			}
			seen++
		}
	}
	onBoard := 0
	for sq := Square(0); sq < NumCells; sq++ {
		if b.Cells[sq].Kind == King {
			onBoard++
		}
	}
	if onBoard != seen {
		return fmt.Errorf("%w: %d kings on board, %d registered", ErrKingRegistry, onBoard, seen)
	}
	return nil
}
