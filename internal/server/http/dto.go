package httpserver

import (
	"xiangqi/internal/server/game"
	"xiangqi/internal/storage"
	"xiangqi/internal/xiangqi"
)

// 前端用的招法结构
type MoveDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func dtoToMove(m MoveDTO) xiangqi.Move {
	return xiangqi.Move{From: m.From, To: m.To}
}

func moveToDTO(m xiangqi.Move) MoveDTO {
	return MoveDTO{From: m.From, To: m.To}
}

func movesToDTO(ms []xiangqi.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

// NewGame 请求；都可以省略
type NewGameRequest struct {
	FEN        string `json:"fen"`
	Depth      int    `json:"depth"`
	Difficulty string `json:"difficulty"` // easy / medium / hard，优先级低于 depth
	TimeMs     int64  `json:"time_ms"`    // 覆盖偏好里的思考时间
}

// 只带 game_id 的请求：state / ai_move / undo / reset
type GameRequest struct {
	GameID string `json:"game_id"`
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

// GameResponse 所有对局类接口的返回
type GameResponse struct {
	GameID     string    `json:"game_id"`
	Position   string    `json:"position"` // FEN
	ToMove     int       `json:"to_move"`  // 0=红(w),1=黑(b)
	LegalMoves []MoveDTO `json:"legal_moves"`
	Status     string    `json:"status"` // ongoing / red_wins / black_wins
	LastMove   *MoveDTO  `json:"last_move,omitempty"`
	Notation   string    `json:"notation,omitempty"` // 上一步的中文记谱
	MoveCount  int       `json:"move_count"`
	Depth      int       `json:"depth"`
	TimeMs     int64     `json:"time_ms"` // AI 思考时间上限，0 为不限
}

// AnalyzeRequest 不落子，只对给定局面思考
type AnalyzeRequest struct {
	Position string `json:"position"`
	ToMove   int    `json:"to_move"`
	MaxDepth int    `json:"max_depth"`
	TimeMs   int64  `json:"time_ms"`
}

type SearchDTO struct {
	BestMove MoveDTO `json:"best_move"` // 无棋可走时为 {-1,-1}
	Score    int     `json:"score"`
	Depth    int     `json:"depth"`
	Nodes    int64   `json:"nodes"`
	TimeMs   int64   `json:"time_ms"`
	Notation string  `json:"notation,omitempty"`
}

type AiMoveResponse struct {
	GameResponse
	Search SearchDTO `json:"search"`
}

type AnalyzeResponse struct {
	SearchDTO
	Position string `json:"position"`
	ToMove   int    `json:"to_move"`
	Status   string `json:"status"` // ok / no_moves
}

type PreferencesDTO struct {
	Difficulty string `json:"difficulty"`
	HumanSide  int    `json:"human_side"`
	TimeMs     int64  `json:"time_ms"`
}

type StatsDTO struct {
	GamesPlayed int `json:"games_played"`
	RedWins     int `json:"red_wins"`
	BlackWins   int `json:"black_wins"`
}

func sideToInt(s xiangqi.Side) int {
	switch s {
	case xiangqi.Red:
		return 0
	case xiangqi.Black:
		return 1
	default:
		return -1
	}
}

func intToSide(v int) xiangqi.Side {
	if v == 1 {
		return xiangqi.Black
	}
	return xiangqi.Red
}

func snapshotToDTO(s game.Snapshot) GameResponse {
	resp := GameResponse{
		GameID:     s.ID,
		Position:   s.FEN,
		ToMove:     sideToInt(s.SideToMove),
		LegalMoves: movesToDTO(s.LegalMoves),
		Status:     s.Status.String(),
		MoveCount:  s.MoveCount,
		Depth:      s.Depth,
		TimeMs:     s.TimeLimit.Milliseconds(),
	}
	if s.LastMove != nil {
		mv := moveToDTO(s.LastMove.Move)
		resp.LastMove = &mv
		resp.Notation = s.LastMove.Notation
	}
	return resp
}

func prefsToDTO(p *storage.Preferences) PreferencesDTO {
	return PreferencesDTO{
		Difficulty: p.Difficulty.String(),
		HumanSide:  sideToInt(p.HumanSide),
		TimeMs:     p.TimeLimitMs,
	}
}

func dtoToPrefs(d PreferencesDTO) (*storage.Preferences, error) {
	diff, err := storage.ParseDifficulty(d.Difficulty)
	if err != nil {
		return nil, err
	}
	side := xiangqi.NoSide
	switch d.HumanSide {
	case 0:
		side = xiangqi.Red
	case 1:
		side = xiangqi.Black
	}
	return &storage.Preferences{
		Difficulty:  diff,
		HumanSide:   side,
		TimeLimitMs: d.TimeMs,
	}, nil
}
