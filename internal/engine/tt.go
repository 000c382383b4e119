package engine

import "chess3d/internal/chess3d"

// Score 是精确值还是界
type ttFlag uint8

const (
	ttExact ttFlag = iota
	ttLower        // 真实值 >= Score（发生了 beta 截断）
	ttUpper        // 真实值 <= Score（没有一步超过 alpha）
)

// 简单 TT 条目
type ttEntry struct {
	Key   uint64
	Depth int
	Score int
	Flag  ttFlag
	Move  chess3d.Move
}

func (e *Engine) probeTT(key uint64) (ttEntry, bool) {
	entry, ok := e.tt[key]
	return entry, ok
}

// 深度更深才覆盖；表满了直接清空
func (e *Engine) storeTT(key uint64, depth int, score int, flag ttFlag, mv chess3d.Move) {
	if len(e.tt) > ttCap {
		e.tt = make(map[uint64]ttEntry, 1<<16)
	}
	old, ok := e.tt[key]
	if !ok || depth >= old.Depth {
		e.tt[key] = ttEntry{
			Key:   key,
			Depth: depth,
			Score: score,
			Flag:  flag,
			Move:  mv,
		}
	}
}
