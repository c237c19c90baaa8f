package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"xiangqi/internal/xiangqi"
)

func mustPosition(t *testing.T, fen string) *xiangqi.Position {
	t.Helper()
	pos, err := xiangqi.DecodePosition(fen)
	require.NoError(t, err)
	return pos
}

func TestEvaluateInitialIsBalanced(t *testing.T) {
	b := xiangqi.InitialBoard()
	require.Equal(t, 0, Evaluate(&b, xiangqi.Red))
	require.Equal(t, 0, Evaluate(&b, xiangqi.Black))
	require.Equal(t, 0, Evaluate(&b, xiangqi.NoSide))
}

func TestEvaluateSymmetry(t *testing.T) {
	pos := xiangqi.NewInitialPosition()
	for ply := 0; ply < 60; ply++ {
		red := Evaluate(&pos.Board, xiangqi.Red)
		black := Evaluate(&pos.Board, xiangqi.Black)
		require.Equal(t, red, -black, "ply %d\n%s", ply, pos.Board.String())

		moves := pos.GenerateLegalMoves()
		if len(moves) == 0 {
			break
		}
		next, ok := pos.ApplyMove(moves[(ply*11+3)%len(moves)])
		require.True(t, ok)
		pos = next
	}
}

func TestEvaluatePieceTerms(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"rook up", "5k3/9/9/9/9/R8/9/9/9/3K5 w", 500},
		{"horse on edge", "5k3/9/9/9/9/N8/9/9/9/3K5 w", 450},
		{"horse in centre", "5k3/9/9/9/9/4N4/9/9/9/3K5 w", 470},
		{"cannon in centre", "5k3/9/9/9/9/9/9/3C5/9/3K5 w", 470},
		{"soldier at home", "5k3/9/9/9/9/9/P8/9/9/3K5 w", 100},
		{"crossed soldier", "5k3/9/9/9/P8/9/9/9/9/3K5 w", 160},
		{"crossed central soldier", "5k3/9/9/9/4P4/9/9/9/9/3K5 w", 170},
		{"black crossed soldier", "5k3/9/9/9/9/p8/9/9/9/3K5 w", -160},
		{"black general missing", "9/9/9/9/9/9/9/9/9/3K5 w", 100_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.fen)
			require.Equal(t, tt.want, Evaluate(&pos.Board, xiangqi.Red))
			require.Equal(t, -tt.want, Evaluate(&pos.Board, xiangqi.Black))
		})
	}
}

func TestPieceValueOrdering(t *testing.T) {
	v := PieceValue
	require.Greater(t, v(xiangqi.PieceGeneral), 10*v(xiangqi.PieceRook))
	require.Greater(t, v(xiangqi.PieceRook), v(xiangqi.PieceCannon))
	require.Equal(t, v(xiangqi.PieceCannon), v(xiangqi.PieceHorse))
	require.Greater(t, v(xiangqi.PieceHorse), v(xiangqi.PieceElephant))
	require.Equal(t, v(xiangqi.PieceElephant), v(xiangqi.PieceAdvisor))
	require.Greater(t, v(xiangqi.PieceAdvisor), v(xiangqi.PieceSoldier))
	require.Zero(t, v(xiangqi.PieceType(42)))
}
