package engine

import (
	"runtime"

	"github.com/rs/zerolog"
)

type Option func(e *Engine)

// Engine 只保存配置；每次 Search 都用自己的置换表，可被多个 goroutine 同时调用。
type Engine struct {
	workers   int
	tableSize int
	logger    zerolog.Logger
}

// WithWorkers 根节点并行的 goroutine 数，<=1 表示单线程搜索。
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithTableSize 每个搜索 goroutine 的置换表条目上限。
func WithTableSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.tableSize = n
		}
	}
}

// WithLogger 每层迭代打一条 debug 日志；默认不输出。
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

func NewEngine(options ...Option) *Engine {
	e := &Engine{
		workers:   1,
		tableSize: defaultTableSize,
		logger:    zerolog.Nop(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// DefaultWorkers 根节点并行时建议的 goroutine 数。
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}
