package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"xiangqi/internal/xiangqi"
)

const (
	// 黑马守着 (3,0) 和 (1,0)
	hangingRookFEN = "5k3/9/2n6/9/9/R8/9/9/9/3K5 w"
	// 同上，但红炮隔兵可以吃回
	protectedRookFEN = "5k3/9/2n6/9/9/R8/P8/9/C8/3K5 w"
)

func TestIsBlunder(t *testing.T) {
	hanging := mustPosition(t, hangingRookFEN)
	protected := mustPosition(t, protectedRookFEN)

	intoHorse := xiangqi.Move{From: sq(5, 0), To: sq(3, 0)}
	sideways := xiangqi.Move{From: sq(5, 0), To: sq(5, 1)}

	require.True(t, IsBlunder(&hanging.Board, xiangqi.Red, intoHorse))
	require.False(t, IsBlunder(&hanging.Board, xiangqi.Red, sideways))
	require.False(t, IsBlunder(&protected.Board, xiangqi.Red, intoHorse))

	// 不是走子方的子、空格、越界都不算
	require.False(t, IsBlunder(&hanging.Board, xiangqi.Black, intoHorse))
	require.False(t, IsBlunder(&hanging.Board, xiangqi.Red, xiangqi.Move{From: sq(4, 4), To: sq(3, 4)}))
	require.False(t, IsBlunder(&hanging.Board, xiangqi.Red, xiangqi.NoMove))
	require.False(t, IsBlunder(&hanging.Board, xiangqi.Red, xiangqi.Move{From: 0, To: 95}))
}

func TestFilterBlunderMoves(t *testing.T) {
	pos := mustPosition(t, hangingRookFEN)
	moves := pos.GenerateLegalMoves()

	safe := FilterBlunderMoves(&pos.Board, xiangqi.Red, moves)
	require.NotContains(t, safe, xiangqi.Move{From: sq(5, 0), To: sq(3, 0)})
	require.NotContains(t, safe, xiangqi.Move{From: sq(5, 0), To: sq(1, 0)})
	require.Contains(t, safe, xiangqi.Move{From: sq(5, 0), To: sq(5, 1)})
	require.Less(t, len(safe), len(moves))

	only := []xiangqi.Move{{From: sq(5, 0), To: sq(3, 0)}}
	require.Equal(t, only, FilterBlunderMoves(&pos.Board, xiangqi.Red, only))

	both := []xiangqi.Move{{From: sq(5, 0), To: sq(3, 0)}, {From: sq(5, 0), To: sq(1, 0)}}
	require.Equal(t, both, FilterBlunderMoves(&pos.Board, xiangqi.Red, both))

	b := xiangqi.InitialBoard()
	initial := b.LegalMoves(xiangqi.Red)
	require.Len(t, FilterBlunderMoves(&b, xiangqi.Red, initial), len(initial)-countBlunders(&b, initial))
}

func countBlunders(b *xiangqi.Board, moves []xiangqi.Move) int {
	n := 0
	for _, mv := range moves {
		if IsBlunder(b, xiangqi.Red, mv) {
			n++
		}
	}
	return n
}
