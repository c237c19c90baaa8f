package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"xiangqi/internal/xiangqi"
)

const (
	// 红车可以白吃黑马
	freeHorseFEN = "5k3/9/9/9/9/R5n2/9/9/9/3K5 w"
	// 红车吃卒后会被黑车吃回
	poisonedSoldierFEN = "5k3/9/9/9/9/R3p3r/9/9/9/3K5 w"
	// 红车可以直接吃将
	captureGeneralFEN = "4k4/9/9/9/9/4R3r/9/9/9/3K5 w"
	// 两将对脸，红方帅和仕都动不了
	noMovesFEN = "3k5/9/9/9/9/9/9/3KA4/9/9 w"
)

func sq(row, col int) int { return xiangqi.Square(row, col) }

func TestBestMovePrefersCapture(t *testing.T) {
	pos := mustPosition(t, freeHorseFEN)
	want := xiangqi.Move{From: sq(5, 0), To: sq(5, 6)}
	for _, depth := range []int{1, 2, 3} {
		require.Equal(t, want, BestMove(&pos.Board, xiangqi.Red, depth), "depth %d", depth)
	}
}

func TestSearchAvoidsPoisonedCapture(t *testing.T) {
	pos := mustPosition(t, poisonedSoldierFEN)
	capture := xiangqi.Move{From: sq(5, 0), To: sq(5, 4)}

	require.Equal(t, capture, BestMove(&pos.Board, xiangqi.Red, 1))
	require.NotEqual(t, capture, BestMove(&pos.Board, xiangqi.Red, 2))
}

func TestSearchCapturesGeneral(t *testing.T) {
	pos := mustPosition(t, captureGeneralFEN)
	want := xiangqi.Move{From: sq(5, 4), To: sq(0, 4)}

	e := NewEngine()
	for _, depth := range []int{1, 3} {
		res, err := e.Search(context.Background(), &pos.Board, xiangqi.Red, SearchConfig{MaxDepth: depth})
		require.NoError(t, err)
		require.Equal(t, want, res.BestMove, "depth %d", depth)
		require.Greater(t, res.Score, 50_000)
	}
}

func TestBestMoveNoLegalMoves(t *testing.T) {
	pos := mustPosition(t, noMovesFEN)
	require.Empty(t, pos.Board.LegalMoves(xiangqi.Red))
	require.Equal(t, xiangqi.NoMove, BestMove(&pos.Board, xiangqi.Red, 3))

	res, err := NewEngine().Search(context.Background(), &pos.Board, xiangqi.Red, SearchConfig{MaxDepth: 2})
	require.NoError(t, err)
	require.True(t, res.BestMove.IsNone())
	require.Equal(t, -MateScore, res.Score)

	// 黑方还能走将
	require.False(t, BestMove(&pos.Board, xiangqi.Black, 1).IsNone())

	var empty xiangqi.Board
	require.Equal(t, xiangqi.NoMove, BestMove(&empty, xiangqi.Red, 2))
}

func TestSearchDepthZeroIsStaticEval(t *testing.T) {
	pos := mustPosition(t, freeHorseFEN)
	res, err := NewEngine().Search(context.Background(), &pos.Board, xiangqi.Red, SearchConfig{})
	require.NoError(t, err)
	require.Equal(t, xiangqi.NoMove, res.BestMove)
	require.Equal(t, Evaluate(&pos.Board, xiangqi.Red), res.Score)
	require.Zero(t, res.Depth)
	require.Zero(t, res.Nodes)
}

func TestSearchDoesNotMutateBoard(t *testing.T) {
	b := xiangqi.InitialBoard()
	before := b
	mv := BestMove(&b, xiangqi.Red, 2)
	require.Equal(t, before, b)
	require.True(t, b.IsLegalMove(mv.From, mv.To))
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := xiangqi.InitialBoard()
	for _, workers := range []int{1, 4} {
		res, err := NewEngine(WithWorkers(workers)).Search(ctx, &b, xiangqi.Red, SearchConfig{MaxDepth: 4})
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, xiangqi.NoMove, res.BestMove)
	}
}

func TestSearchTimeLimitKeepsCompletedDepth(t *testing.T) {
	b := xiangqi.InitialBoard()
	res, err := NewEngine().Search(context.Background(), &b, xiangqi.Red, SearchConfig{
		MaxDepth:  64,
		TimeLimit: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.Depth, 1)
	require.Less(t, res.Depth, 64)
	require.True(t, b.IsLegalMove(res.BestMove.From, res.BestMove.To))
	require.Less(t, res.TimeUsed, 5*time.Second)
}

func TestSearchLogging(t *testing.T) {
	// 默认引擎不打日志
	require.Equal(t, zerolog.Disabled, NewEngine().logger.GetLevel())

	var buf bytes.Buffer
	e := NewEngine(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	pos := mustPosition(t, freeHorseFEN)
	_, err := e.Search(context.Background(), &pos.Board, pos.SideToMove, SearchConfig{MaxDepth: 2})
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(buf.String(), "search iteration"))
}

func TestParallelMatchesSequential(t *testing.T) {
	for _, fen := range []string{xiangqi.InitialFEN, freeHorseFEN, poisonedSoldierFEN} {
		pos := mustPosition(t, fen)
		cfg := SearchConfig{MaxDepth: 2}

		seq, err := NewEngine().Search(context.Background(), &pos.Board, pos.SideToMove, cfg)
		require.NoError(t, err)
		par, err := NewEngine(WithWorkers(4)).Search(context.Background(), &pos.Board, pos.SideToMove, cfg)
		require.NoError(t, err)

		require.Equal(t, seq.Score, par.Score, fen)
		require.Equal(t, seq.BestMove, par.BestMove, fen)
		require.Equal(t, 2, par.Depth)
	}
}

func TestOrderMovesCapturesFirst(t *testing.T) {
	pos := mustPosition(t, poisonedSoldierFEN)
	moves := pos.Board.PseudoMoves(xiangqi.Red)
	orderMoves(&pos.Board, moves, xiangqi.NoMove)
	require.Equal(t, xiangqi.Move{From: sq(5, 0), To: sq(5, 4)}, moves[0])
	require.Zero(t, pos.Board.Squares[moves[1].To])

	b := xiangqi.InitialBoard()
	moves = b.PseudoMoves(xiangqi.Red)
	orderMoves(&b, moves, xiangqi.NoMove)
	// 开局只有两步吃子：两门炮打马
	require.NotZero(t, b.Squares[moves[0].To])
	require.NotZero(t, b.Squares[moves[1].To])
	require.Zero(t, b.Squares[moves[2].To])

	tt := xiangqi.Move{From: sq(9, 0), To: sq(8, 0)}
	orderMoves(&b, moves, tt)
	require.Equal(t, tt, moves[0])
}
