package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	"xiangqi/internal/storage"
	"xiangqi/internal/xiangqi"
)

const defaultAnalyzeDepth = 3

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games  *game.Manager
	engine *engine.Engine
	store  *storage.Storage // 可以为 nil，此时偏好只用默认值
	logger zerolog.Logger
}

func NewHandler(games *game.Manager, eng *engine.Engine, store *storage.Storage, logger zerolog.Logger) *Handler {
	if eng == nil {
		eng = engine.NewEngine(engine.WithLogger(logger))
	}
	return &Handler{games: games, engine: eng, store: store, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/new_game":
		if allowMethod(w, r, http.MethodPost) {
			h.handleNewGame(w, r)
		}
	case "/api/state":
		if allowMethod(w, r, http.MethodPost) {
			h.handleState(w, r)
		}
	case "/api/play":
		if allowMethod(w, r, http.MethodPost) {
			h.handlePlay(w, r)
		}
	case "/api/ai_move":
		if allowMethod(w, r, http.MethodPost) {
			h.handleAiMove(w, r)
		}
	case "/api/undo":
		if allowMethod(w, r, http.MethodPost) {
			h.handleUndo(w, r)
		}
	case "/api/reset":
		if allowMethod(w, r, http.MethodPost) {
			h.handleReset(w, r)
		}
	case "/api/analyze":
		if allowMethod(w, r, http.MethodPost) {
			h.handleAnalyze(w, r)
		}
	case "/api/preferences":
		switch r.Method {
		case http.MethodGet:
			h.handleGetPreferences(w, r)
		case http.MethodPost:
			h.handleSavePreferences(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	case "/api/stats":
		if allowMethod(w, r, http.MethodGet) {
			h.handleStats(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("write json")
	}
}

// writeError 把领域错误映射成 HTTP 状态码
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		code = http.StatusNotFound
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNothingToUndo):
		code = http.StatusConflict
	case errors.Is(err, game.ErrFacingGenerals),
		errors.Is(err, xiangqi.ErrIllegalMove),
		errors.Is(err, xiangqi.ErrOwnPiece),
		errors.Is(err, xiangqi.ErrEmptySquare),
		errors.Is(err, xiangqi.ErrWrongSide),
		errors.Is(err, xiangqi.ErrOutOfRange),
		errors.Is(err, xiangqi.ErrInvalidFEN),
		errors.Is(err, storage.ErrInvalidPreferences):
		code = http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code = http.StatusServiceUnavailable
	}
	if code == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("request failed")
	}
	http.Error(w, err.Error(), code)
}

func (h *Handler) preferences() (*storage.Preferences, error) {
	if h.store == nil {
		return storage.DefaultPreferences(), nil
	}
	return h.store.LoadPreferences()
}

// 对局结束时记一笔，每盘只记一次
func (h *Handler) recordResult(s game.Snapshot) {
	if h.store == nil || s.Status == xiangqi.StatusOngoing {
		return
	}
	status, ok, err := h.games.ClaimResult(s.ID)
	if err != nil || !ok {
		return
	}
	if err := h.store.RecordResult(status); err != nil {
		h.logger.Error().Err(err).Str("game", s.ID).Msg("record result")
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	prefs, err := h.preferences()
	if err != nil {
		h.writeError(w, err)
		return
	}

	depth := req.Depth
	if depth <= 0 {
		diff := prefs.Difficulty
		if req.Difficulty != "" {
			if diff, err = storage.ParseDifficulty(req.Difficulty); err != nil {
				h.writeError(w, err)
				return
			}
		}
		depth = diff.Depth()
	}
	limit := prefs.TimeLimit()
	if req.TimeMs > 0 {
		limit = time.Duration(req.TimeMs) * time.Millisecond
	}

	s, err := h.games.NewGame(req.FEN, depth, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, snapshotToDTO(s))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.games.Get(req.GameID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, snapshotToDTO(s))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.games.Play(req.GameID, dtoToMove(req.Move))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.recordResult(s)
	h.writeJSON(w, snapshotToDTO(s))
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, res, err := h.games.AIMove(r.Context(), req.GameID)
	if errors.Is(err, game.ErrNoMoves) {
		// 没有走法：不落子，原样返回当前局面
		if s, err = h.games.Get(req.GameID); err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, AiMoveResponse{
			GameResponse: snapshotToDTO(s),
			Search:       searchToDTO(res, ""),
		})
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.recordResult(s)
	resp := AiMoveResponse{GameResponse: snapshotToDTO(s)}
	resp.Search = searchToDTO(res, resp.Notation)
	h.writeJSON(w, resp)
}

func searchToDTO(res engine.SearchResult, notation string) SearchDTO {
	return SearchDTO{
		BestMove: moveToDTO(res.BestMove),
		Score:    res.Score,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		TimeMs:   res.TimeUsed.Milliseconds(),
		Notation: notation,
	}
}

func (h *Handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.games.Undo(req.GameID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, snapshotToDTO(s))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.games.Reset(req.GameID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, snapshotToDTO(s))
}

// handleAnalyze 只思考不落子，局面由前端给出
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Position == "" {
		http.Error(w, "missing position", http.StatusBadRequest)
		return
	}
	pos, err := xiangqi.DecodePosition(req.Position)
	if err != nil {
		h.writeError(w, err)
		return
	}
	// 走子方以请求为准，哈希跟着重算
	side := intToSide(req.ToMove)
	pos.SideToMove = side
	pos.Hash = pos.CalculateHash()

	depth := req.MaxDepth
	if depth <= 0 {
		depth = defaultAnalyzeDepth
	}
	var limit time.Duration
	if req.TimeMs > 0 {
		limit = time.Duration(req.TimeMs) * time.Millisecond
	}

	res, err := h.engine.Search(r.Context(), &pos.Board, side, engine.SearchConfig{
		MaxDepth:  depth,
		TimeLimit: limit,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := AnalyzeResponse{
		Position: pos.Encode(),
		ToMove:   sideToInt(side),
		Status:   "ok",
	}
	notation := ""
	if res.BestMove.IsNone() {
		resp.Status = "no_moves"
	} else if notation, err = pos.Board.MoveNotation(res.BestMove.From, res.BestMove.To); err != nil {
		h.writeError(w, err)
		return
	}
	resp.SearchDTO = searchToDTO(res, notation)
	h.writeJSON(w, resp)
}

func (h *Handler) handleGetPreferences(w http.ResponseWriter, _ *http.Request) {
	prefs, err := h.preferences()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, prefsToDTO(prefs))
}

func (h *Handler) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "preferences storage disabled", http.StatusServiceUnavailable)
		return
	}
	var req PreferencesDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	prefs, err := dtoToPrefs(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.store.SavePreferences(prefs); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, prefsToDTO(prefs))
}

func (h *Handler) handleStats(w http.ResponseWriter, _ *http.Request) {
	if h.store == nil {
		h.writeJSON(w, StatsDTO{})
		return
	}
	stats, err := h.store.LoadStats()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, StatsDTO{
		GamesPlayed: stats.GamesPlayed,
		RedWins:     stats.RedWins,
		BlackWins:   stats.BlackWins,
	})
}
