package engine

import "sync/atomic"

const ttCap = 1_000_000

// Engine 是电脑对手。一个 Engine 同一时间只跑一次 Search。
type Engine struct {
	tt    map[uint64]ttEntry // TT 定义在 tt.go
	nodes int64

	// 根节点并行时最多同时搜几个子局面，<=0 表示不限制
	Parallelism int
}

func NewEngine() *Engine {
	return &Engine{
		tt:          make(map[uint64]ttEntry, 1<<16),
		Parallelism: 4,
	}
}

// Nodes 上一次搜索访问的节点数。
func (e *Engine) Nodes() int64 {
	return atomic.LoadInt64(&e.nodes)
}

// 子 goroutine 用的局部 Engine：独享 TT，避免加锁
func (e *Engine) local() *Engine {
	return &Engine{tt: make(map[uint64]ttEntry, 1<<12)}
}
