package game

import (
	"sync"
	"time"

	"xiangqi/internal/xiangqi"
)

// PlayedMove 一步已落下的棋
type PlayedMove struct {
	Move     xiangqi.Move
	Side     xiangqi.Side
	Notation string
	Captured xiangqi.Piece
}

// GameState 一盘棋的全部状态，由所属 Manager 的 per-game 锁保护
type GameState struct {
	mu sync.Mutex

	ID        string
	Start     xiangqi.Position
	Pos       *xiangqi.Position
	History   []xiangqi.Position // 每步之前的局面，用于悔棋
	Moves     []PlayedMove
	Status    xiangqi.Status
	Depth     int
	TimeLimit time.Duration
	Recorded  bool // 结果已计入战绩
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot 对外暴露的只读拷贝
type Snapshot struct {
	ID         string
	FEN        string
	Board      xiangqi.Board
	SideToMove xiangqi.Side
	LegalMoves []xiangqi.Move
	Status     xiangqi.Status
	LastMove   *PlayedMove
	MoveCount  int
	Depth      int
	TimeLimit  time.Duration
	UpdatedAt  time.Time
}

func (g *GameState) snapshot() Snapshot {
	s := Snapshot{
		ID:         g.ID,
		FEN:        g.Pos.Encode(),
		Board:      g.Pos.Board,
		SideToMove: g.Pos.SideToMove,
		Status:     g.Status,
		MoveCount:  len(g.Moves),
		Depth:      g.Depth,
		TimeLimit:  g.TimeLimit,
		UpdatedAt:  g.UpdatedAt,
	}
	if g.Status == xiangqi.StatusOngoing {
		s.LegalMoves = g.Pos.GenerateLegalMoves()
	}
	if n := len(g.Moves); n > 0 {
		last := g.Moves[n-1]
		s.LastMove = &last
	}
	return s
}

// 落子并记录；调用方已确认合法
func (g *GameState) commit(next *xiangqi.Position, pm PlayedMove) {
	g.History = append(g.History, *g.Pos)
	g.Moves = append(g.Moves, pm)
	g.Pos = next
	g.Status = next.Board.Status()
	g.UpdatedAt = time.Now()
}
