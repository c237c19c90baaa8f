package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"xiangqi/internal/xiangqi"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
)

var ErrInvalidPreferences = errors.New("invalid preferences")

// Difficulty represents AI difficulty level
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

var difficultyNames = [...]string{"easy", "medium", "hard"}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// Depth 难度对应的搜索深度
func (d Difficulty) Depth() int {
	switch d {
	case DifficultyEasy:
		return 2
	case DifficultyHard:
		return 4
	default:
		return 3
	}
}

func (d Difficulty) valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidPreferences, s)
}

// Preferences stores user settings
type Preferences struct {
	Difficulty  Difficulty   `json:"difficulty"`
	HumanSide   xiangqi.Side `json:"human_side"`
	TimeLimitMs int64        `json:"time_limit_ms"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		Difficulty: DifficultyMedium,
		HumanSide:  xiangqi.Red,
	}
}

func (p *Preferences) Validate() error {
	if !p.Difficulty.valid() {
		return fmt.Errorf("%w: difficulty %d", ErrInvalidPreferences, p.Difficulty)
	}
	if p.HumanSide != xiangqi.Red && p.HumanSide != xiangqi.Black {
		return fmt.Errorf("%w: side %d", ErrInvalidPreferences, p.HumanSide)
	}
	if p.TimeLimitMs < 0 {
		return fmt.Errorf("%w: negative time limit", ErrInvalidPreferences)
	}
	return nil
}

func (p *Preferences) TimeLimit() time.Duration {
	return time.Duration(p.TimeLimitMs) * time.Millisecond
}

// Stats 对局结果统计
type Stats struct {
	GamesPlayed int `json:"games_played"`
	RedWins     int `json:"red_wins"`
	BlackWins   int `json:"black_wins"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open 打开 dir 下的数据库；dir 为空时只放在内存里
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", dir, err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get 找不到 key 时不改 v，返回 nil
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	prefs.UpdatedAt = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	if err := s.get(keyPreferences, prefs); err != nil {
		return DefaultPreferences(), err
	}
	return prefs, nil
}

func (s *Storage) LoadStats() (*Stats, error) {
	stats := &Stats{}
	if err := s.get(keyStats, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecordResult 记一盘已结束的棋；未结束的局面忽略
func (s *Storage) RecordResult(status xiangqi.Status) error {
	if status == xiangqi.StatusOngoing {
		return nil
	}
	return s.db.Update(func(txn *badger.Txn) error {
		stats := &Stats{}
		item, err := txn.Get([]byte(keyStats))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, stats)
			}); err != nil {
				return err
			}
		}

		stats.GamesPlayed++
		switch status {
		case xiangqi.StatusRedWins:
			stats.RedWins++
		case xiangqi.StatusBlackWins:
			stats.BlackWins++
		}
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), data)
	})
}
