package engine

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"xiangqi/internal/xiangqi"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 1_000_000_000

	// MateScore 表示“将已被吃/无棋可走”，离根越近绝对值越大。
	MateScore = 1_000_000

	maxPly = 128

	// 每搜这么多节点检查一次 ctx
	cancelCheckInterval = 1024
)

// 搜索配置
type SearchConfig struct {
	MaxDepth  int           // 最大搜索深度（ply），<=0 只做静态评估
	TimeLimit time.Duration // 搜索时间上限（0 表示不限制）
}

// 搜索结果
type SearchResult struct {
	BestMove xiangqi.Move  // 没有合法着法时为 xiangqi.NoMove
	Score    int           // 走子方视角
	Depth    int           // 实际完成的深度
	Nodes    int64         // 节点数
	TimeUsed time.Duration // 花费时间
}

// BestMove 在 depth 层内为 side 选一步棋；无棋可走返回 xiangqi.NoMove。
func BestMove(b *xiangqi.Board, side xiangqi.Side, depth int) xiangqi.Move {
	res, err := NewEngine().Search(context.Background(), b, side, SearchConfig{MaxDepth: depth})
	if err != nil {
		return xiangqi.NoMove
	}
	return res.BestMove
}

// Search 迭代加深的 negamax + alpha-beta。只读 b，不会修改调用方的棋盘。
//
// 第一层只受 ctx 约束，之后的每一层还受 TimeLimit 约束；被打断的那一层结果丢弃，
// 返回最后一个完整层的结果。一层都没完成时返回 ctx 的错误。
func (e *Engine) Search(ctx context.Context, b *xiangqi.Board, side xiangqi.Side, cfg SearchConfig) (SearchResult, error) {
	start := time.Now()
	res := SearchResult{BestMove: xiangqi.NoMove}

	if cfg.MaxDepth <= 0 {
		res.Score = Evaluate(b, side)
		return res, nil
	}
	if cfg.MaxDepth > maxPly {
		cfg.MaxDepth = maxPly
	}

	deepCtx := ctx
	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		deepCtx, cancel = context.WithDeadline(ctx, start.Add(cfg.TimeLimit))
		defer cancel()
	}

	pos := xiangqi.NewPosition(*b, side)
	tt := newTransTable(e.tableSize)
	var nodes int64

	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		iterCtx := deepCtx
		if depth == 1 {
			iterCtx = ctx
		}
		score, mv, n, err := e.searchRoot(iterCtx, pos, depth, tt)
		nodes += n
		if err != nil {
			if res.Depth == 0 {
				res.Nodes = nodes
				res.TimeUsed = time.Since(start)
				return res, err
			}
			break
		}

		res.BestMove = mv
		res.Score = score
		res.Depth = depth

		e.logger.Debug().
			Int("depth", depth).
			Int("score", score).
			Int("from", mv.From).
			Int("to", mv.To).
			Int64("nodes", nodes).
			Dur("elapsed", time.Since(start)).
			Msg("search iteration")

		if mv.IsNone() || isMateScore(score) {
			break
		}
	}

	res.Nodes = nodes
	res.TimeUsed = time.Since(start)
	return res, nil
}

func isMateScore(score int) bool {
	return score >= MateScore-maxPly || score <= -MateScore+maxPly
}

// 根节点：过滤王对脸的候选，然后顺序或并行地搜每一个
func (e *Engine) searchRoot(ctx context.Context, pos *xiangqi.Position, depth int, tt *transTable) (int, xiangqi.Move, int64, error) {
	side := pos.SideToMove
	if !pos.Board.HasGeneral(side) {
		return -MateScore, xiangqi.NoMove, 1, nil
	}

	ttMove := xiangqi.NoMove
	if entry, ok := tt.get(pos.Hash); ok {
		ttMove = entry.Move
	}
	moves := pos.Board.PseudoMoves(side)
	orderMoves(&pos.Board, moves, ttMove)

	candidates := moves[:0]
	for _, mv := range moves {
		undo, err := pos.MakeMove(mv)
		if err != nil {
			continue
		}
		facing := pos.Board.IsFacingKing()
		pos.UnmakeMove(mv, undo)
		if !facing {
			candidates = append(candidates, mv)
		}
	}
	if len(candidates) == 0 {
		return -MateScore, xiangqi.NoMove, 1, nil
	}

	var (
		scores []int
		nodes  int64
		err    error
	)
	if e.workers > 1 && len(candidates) > 1 {
		scores, nodes, err = e.searchChildrenParallel(ctx, pos, candidates, depth)
	} else {
		scores, nodes, err = searchChildren(ctx, pos, candidates, depth, tt)
	}
	if err != nil {
		return 0, xiangqi.NoMove, nodes, err
	}

	// 同分取排序靠前的，保证结果与并行方式无关
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	tt.store(pos.Hash, depth, scoreToTT(scores[best], 0), boundExact, candidates[best])
	return scores[best], candidates[best], nodes, nil
}

// 单线程：共享同一个置换表，用 alpha 收窄后续窗口。
// 窗口下界用 alpha-1，保证同分的后续着法仍拿到精确分，从而与并行结果一致。
func searchChildren(ctx context.Context, pos *xiangqi.Position, moves []xiangqi.Move, depth int, tt *transTable) ([]int, int64, error) {
	s := &searcher{ctx: ctx, tt: tt}
	scores := make([]int, len(moves))
	alpha := -scoreInf
	for i, mv := range moves {
		undo, err := pos.MakeMove(mv)
		if err != nil {
			scores[i] = -scoreInf
			continue
		}
		score := -s.negamax(pos, depth-1, -scoreInf, -(alpha - 1), 1)
		pos.UnmakeMove(mv, undo)
		if s.stopped {
			return nil, s.nodes, ctx.Err()
		}
		scores[i] = score
		if score > alpha {
			alpha = score
		}
	}
	return scores, s.nodes, nil
}

// 并行：每个 goroutine 拷一份局面、用自己的置换表，避免加锁和 map 竞争
func (e *Engine) searchChildrenParallel(ctx context.Context, pos *xiangqi.Position, moves []xiangqi.Move, depth int) ([]int, int64, error) {
	scores := make([]int, len(moves))
	var nodes int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, mv := range moves {
		g.Go(func() error {
			child := *pos
			if _, err := child.MakeMove(mv); err != nil {
				scores[i] = -scoreInf
				return nil
			}
			s := &searcher{ctx: gctx, tt: newTransTable(e.tableSize)}
			score := -s.negamax(&child, depth-1, -scoreInf, scoreInf, 1)
			atomic.AddInt64(&nodes, s.nodes)
			if s.stopped {
				return gctx.Err()
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, atomic.LoadInt64(&nodes), err
	}
	return scores, atomic.LoadInt64(&nodes), nil
}

// searcher 是一次递归搜索的私有状态
type searcher struct {
	ctx     context.Context
	tt      *transTable
	nodes   int64
	stopped bool
}

func (s *searcher) checkStop() bool {
	if s.stopped {
		return true
	}
	if s.nodes%cancelCheckInterval == 1 && s.ctx.Err() != nil {
		s.stopped = true
	}
	return s.stopped
}

// negamax 返回 pos.SideToMove 视角的分数。pos 原地走子/撤销，返回时恢复原样。
func (s *searcher) negamax(pos *xiangqi.Position, depth, alpha, beta, ply int) int {
	s.nodes++
	if s.checkStop() {
		return 0
	}

	side := pos.SideToMove
	if !pos.Board.HasGeneral(side) {
		// 将已经被吃：输了，越早输越差
		return -MateScore + ply
	}
	if depth <= 0 || ply >= maxPly {
		return Evaluate(&pos.Board, side)
	}

	key := pos.Hash
	ttMove := xiangqi.NoMove
	if entry, ok := s.tt.get(key); ok {
		ttMove = entry.Move
		if entry.Depth >= depth {
			score := scoreFromTT(entry.Score, ply)
			switch entry.Bound {
			case boundExact:
				return score
			case boundLower:
				if score >= beta {
					return score
				}
			case boundUpper:
				if score <= alpha {
					return score
				}
			}
		}
	}

	moves := pos.Board.PseudoMoves(side)
	orderMoves(&pos.Board, moves, ttMove)

	alphaOrig := alpha
	bestScore := -scoreInf
	bestMove := xiangqi.NoMove
	searched := 0
	for _, mv := range moves {
		undo, err := pos.MakeMove(mv)
		if err != nil {
			continue
		}
		if pos.Board.IsFacingKing() {
			pos.UnmakeMove(mv, undo)
			continue
		}
		searched++
		score := -s.negamax(pos, depth-1, -beta, -alpha, ply+1)
		pos.UnmakeMove(mv, undo)
		if s.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = mv
		}
		if bestScore > alpha {
			alpha = bestScore
		}
		if alpha >= beta {
			break
		}
	}

	if searched == 0 {
		// 没有不导致对脸的着法
		return -MateScore + ply
	}

	bound := boundExact
	switch {
	case bestScore <= alphaOrig:
		bound = boundUpper
	case bestScore >= beta:
		bound = boundLower
	}
	s.tt.store(key, depth, scoreToTT(bestScore, ply), bound, bestMove)
	return bestScore
}

// orderMoves 置换表着法最先，其余按被吃子价值从高到低、同价值时用小子吃优先（MVV-LVA）
func orderMoves(b *xiangqi.Board, moves []xiangqi.Move, ttMove xiangqi.Move) {
	key := func(mv xiangqi.Move) int {
		if mv == ttMove {
			return scoreInf
		}
		victim := b.Squares[mv.To]
		if victim == 0 {
			return 0
		}
		attacker := b.Squares[mv.From]
		return PieceValue(victim.Type())*16 - PieceValue(attacker.Type())/64
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return key(moves[i]) > key(moves[j])
	})
}
