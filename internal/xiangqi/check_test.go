package xiangqi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFacingKingScenario(t *testing.T) {
	b := InitialBoard()
	require.False(t, b.IsFacingKing())

	// 清空第 4 列除两将以外的子
	for r := 1; r < Rows-1; r++ {
		b.Squares[sq(r, 4)] = 0
	}
	require.True(t, b.IsFacingKing())

	b.Squares[sq(5, 4)] = MakePiece(Red, PieceHorse)
	require.False(t, b.IsFacingKing())
}

func TestFacingKingCases(t *testing.T) {
	tests := []struct {
		name   string
		pieces map[int]Piece
		want   bool
	}{
		{
			name: "different columns",
			pieces: map[int]Piece{
				sq(9, 4): MakePiece(Red, PieceGeneral),
				sq(0, 3): MakePiece(Black, PieceGeneral),
			},
			want: false,
		},
		{
			name: "same column adjacent palaces apart",
			pieces: map[int]Piece{
				sq(7, 5): MakePiece(Red, PieceGeneral),
				sq(2, 5): MakePiece(Black, PieceGeneral),
			},
			want: true,
		},
		{
			name: "two blockers",
			pieces: map[int]Piece{
				sq(8, 3): MakePiece(Red, PieceGeneral),
				sq(1, 3): MakePiece(Black, PieceGeneral),
				sq(4, 3): MakePiece(Black, PieceSoldier),
				sq(5, 3): MakePiece(Red, PieceSoldier),
			},
			want: false,
		},
		{
			name: "missing general",
			pieces: map[int]Piece{
				sq(9, 4): MakePiece(Red, PieceGeneral),
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Board
			for s, pc := range tt.pieces {
				b.Squares[s] = pc
			}
			require.Equal(t, tt.want, b.IsFacingKing())
		})
	}
}

func TestLegalMovesDropFacingKings(t *testing.T) {
	var b Board
	b.Squares[sq(9, 4)] = MakePiece(Red, PieceGeneral)
	b.Squares[sq(0, 4)] = MakePiece(Black, PieceGeneral)
	b.Squares[sq(5, 4)] = MakePiece(Red, PieceRook)

	for _, mv := range b.LegalMoves(Red) {
		if mv.From == sq(5, 4) {
			require.Equal(t, 4, colOf(mv.To), "rook is pinned on the file: %+v", mv)
		}
	}
	// 车沿列走仍然挡着
	pseudo := b.PseudoMoves(Red)
	require.Contains(t, pseudo, Move{From: sq(5, 4), To: sq(5, 0)})
	require.Contains(t, b.LegalMoves(Red), Move{From: sq(5, 4), To: sq(1, 4)})
}

func TestStatus(t *testing.T) {
	b := InitialBoard()
	require.Equal(t, StatusOngoing, b.Status())

	b.Squares[sq(0, 4)] = 0
	require.Equal(t, StatusRedWins, b.Status())
	require.Equal(t, "red_wins", b.Status().String())

	b = InitialBoard()
	b.Squares[sq(9, 4)] = 0
	require.Equal(t, StatusBlackWins, b.Status())
	require.False(t, b.HasGeneral(Red))
	require.Equal(t, sq(0, 4), b.FindGeneral(Black))
}
