package engine

import "xiangqi/internal/xiangqi"

type boundType uint8

const (
	boundExact boundType = iota
	boundLower           // 分数 >= 真值下界（发生 beta 截断）
	boundUpper           // 分数 <= 真值上界（没有着法超过 alpha）
)

// 简单 TT 条目
type ttEntry struct {
	Depth int
	Score int
	Bound boundType
	Move  xiangqi.Move
}

const defaultTableSize = 1 << 18

// transTable 只在单个 goroutine 内使用，不加锁。
type transTable struct {
	limit   int
	entries map[uint64]ttEntry
}

func newTransTable(limit int) *transTable {
	if limit <= 0 {
		limit = defaultTableSize
	}
	return &transTable{
		limit:   limit,
		entries: make(map[uint64]ttEntry, min(limit, 1<<14)),
	}
}

func (t *transTable) get(key uint64) (ttEntry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// 深度优先替换；表满了整表清空
func (t *transTable) store(key uint64, depth, score int, bound boundType, mv xiangqi.Move) {
	if len(t.entries) >= t.limit {
		t.entries = make(map[uint64]ttEntry, min(t.limit, 1<<14))
	}
	old, ok := t.entries[key]
	if ok && depth < old.Depth {
		return
	}
	t.entries[key] = ttEntry{Depth: depth, Score: score, Bound: bound, Move: mv}
}

// 杀棋分与距根的步数有关，存表时换算成“距当前节点”的步数
func scoreToTT(score, ply int) int {
	switch {
	case score >= MateScore-maxPly:
		return score + ply
	case score <= -MateScore+maxPly:
		return score - ply
	}
	return score
}

func scoreFromTT(score, ply int) int {
	switch {
	case score >= MateScore-maxPly:
		return score - ply
	case score <= -MateScore+maxPly:
		return score + ply
	}
	return score
}
