package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameOver       = errors.New("game is over")
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrFacingGenerals = errors.New("move leaves the generals facing")
	ErrNoMoves        = errors.New("no legal moves")
)

const DefaultDepth = 3

type Option func(m *Manager)

func WithEngine(e *engine.Engine) Option {
	return func(m *Manager) {
		if e != nil {
			m.engine = e
		}
	}
}

// WithDefaultDepth 新对局没有指定深度时使用
func WithDefaultDepth(depth int) Option {
	return func(m *Manager) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithTimeLimit(d time.Duration) Option {
	return func(m *Manager) {
		m.timeLimit = d
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// Manager 管理内存中的所有对局。map 用读写锁，单盘棋用自己的锁，
// 这样一盘棋的 AI 思考不会挡住其它对局。
type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState

	engine    *engine.Engine
	depth     int
	timeLimit time.Duration
	logger    zerolog.Logger
}

func NewManager(options ...Option) *Manager {
	m := &Manager{
		games:  make(map[string]*GameState),
		engine: engine.NewEngine(),
		depth:  DefaultDepth,
		logger: log.Logger,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// NewGame 从 fen 开局（空串为标准开局），depth<=0 用默认深度，
// timeLimit<=0 用 WithTimeLimit 的设置。
func (m *Manager) NewGame(fen string, depth int, timeLimit time.Duration) (Snapshot, error) {
	pos := xiangqi.NewInitialPosition()
	if fen != "" {
		var err error
		if pos, err = xiangqi.DecodePosition(fen); err != nil {
			return Snapshot{}, err
		}
	}
	if depth <= 0 {
		depth = m.depth
	}
	if timeLimit <= 0 {
		timeLimit = m.timeLimit
	}

	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		Start:     *pos,
		Pos:       pos,
		Status:    pos.Board.Status(),
		Depth:     depth,
		TimeLimit: timeLimit,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()

	m.logger.Info().
		Str("game", g.ID).
		Int("depth", depth).
		Dur("time_limit", timeLimit).
		Msg("new game")
	return g.snapshot(), nil
}

func (m *Manager) lookup(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

func (m *Manager) Get(id string) (Snapshot, error) {
	g, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot(), nil
}

// Remove 删掉一盘棋，不存在时返回 ErrGameNotFound
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Play 让当前走子方走 mv。先在拷贝上走，会造成对脸的着法直接拒绝，原局面不变。
func (m *Manager) Play(id string, mv xiangqi.Move) (Snapshot, error) {
	g, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := m.play(g, mv); err != nil {
		return Snapshot{}, err
	}
	return g.snapshot(), nil
}

func (m *Manager) play(g *GameState, mv xiangqi.Move) error {
	if g.Status != xiangqi.StatusOngoing {
		return ErrGameOver
	}
	if err := g.Pos.Board.ValidateMove(mv.From, mv.To); err != nil {
		return fmt.Errorf("play %d->%d: %w", mv.From, mv.To, err)
	}
	notation, err := g.Pos.Board.MoveNotation(mv.From, mv.To)
	if err != nil {
		return fmt.Errorf("play %d->%d: %w", mv.From, mv.To, err)
	}

	next := *g.Pos
	undo, err := next.MakeMove(mv)
	if err != nil {
		return fmt.Errorf("play %d->%d: %w", mv.From, mv.To, err)
	}
	if next.Board.IsFacingKing() {
		return ErrFacingGenerals
	}

	g.commit(&next, PlayedMove{
		Move:     mv,
		Side:     g.Pos.SideToMove,
		Notation: notation,
		Captured: undo.Captured,
	})
	m.logger.Debug().
		Str("game", g.ID).
		Str("move", notation).
		Str("status", g.Status.String()).
		Msg("move played")
	return nil
}

// AIMove 按对局深度搜索并替当前走子方落子
func (m *Manager) AIMove(ctx context.Context, id string) (Snapshot, engine.SearchResult, error) {
	g, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, engine.SearchResult{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != xiangqi.StatusOngoing {
		return Snapshot{}, engine.SearchResult{}, ErrGameOver
	}

	board := g.Pos.Board
	res, err := m.engine.Search(ctx, &board, g.Pos.SideToMove, engine.SearchConfig{
		MaxDepth:  g.Depth,
		TimeLimit: g.TimeLimit,
	})
	if err != nil {
		return Snapshot{}, res, fmt.Errorf("search: %w", err)
	}
	if res.BestMove.IsNone() {
		return Snapshot{}, res, ErrNoMoves
	}
	if err := m.play(g, res.BestMove); err != nil {
		return Snapshot{}, res, err
	}

	m.logger.Info().
		Str("game", g.ID).
		Int("score", res.Score).
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Dur("elapsed", res.TimeUsed).
		Msg("ai move")
	return g.snapshot(), res, nil
}

// Undo 撤销最后一步
func (m *Manager) Undo(id string) (Snapshot, error) {
	g, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(g.History)
	if n == 0 {
		return Snapshot{}, ErrNothingToUndo
	}
	prev := g.History[n-1]
	g.History = g.History[:n-1]
	g.Moves = g.Moves[:n-1]
	g.Pos = &prev
	g.Status = prev.Board.Status()
	g.UpdatedAt = time.Now()
	return g.snapshot(), nil
}

// Reset 回到开局局面，清空历史
func (m *Manager) Reset(id string) (Snapshot, error) {
	g, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	start := g.Start
	g.Pos = &start
	g.History = nil
	g.Moves = nil
	g.Status = start.Board.Status()
	g.Recorded = false
	g.UpdatedAt = time.Now()
	return g.snapshot(), nil
}

// ClaimResult 对已结束的对局只返回一次 true，用来保证战绩只记一笔。
// 悔棋后重新下完不会再记；Reset 之后重新计。
func (m *Manager) ClaimResult(id string) (xiangqi.Status, bool, error) {
	g, err := m.lookup(id)
	if err != nil {
		return xiangqi.StatusOngoing, false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status == xiangqi.StatusOngoing || g.Recorded {
		return g.Status, false, nil
	}
	g.Recorded = true
	return g.Status, true, nil
}

// SetDepth 修改某盘棋的 AI 深度
func (m *Manager) SetDepth(id string, depth int) error {
	if depth <= 0 {
		return fmt.Errorf("invalid depth %d", depth)
	}
	g, err := m.lookup(id)
	if err != nil {
		return err
	}
	g.mu.Lock()
	g.Depth = depth
	g.mu.Unlock()
	return nil
}
