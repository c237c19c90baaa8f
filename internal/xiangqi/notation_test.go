package xiangqi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoveNotation(t *testing.T) {
	initial := InitialBoard()
	tests := []struct {
		name     string
		board    Board
		from, to int
		want     string
	}{
		{"red cannon to centre", initial, sq(7, 7), sq(7, 4), "炮二平五"},
		{"red horse", initial, sq(9, 7), sq(7, 6), "傌二进三"},
		{"red rook", initial, sq(9, 0), sq(8, 0), "俥九进一"},
		{"red soldier", initial, sq(6, 4), sq(5, 4), "兵五进一"},
		{"red elephant", initial, sq(9, 2), sq(7, 4), "相七进五"},
		{"red advisor", initial, sq(9, 5), sq(8, 4), "仕四进五"},
		{"red general", initial, sq(9, 4), sq(8, 4), "帥五进一"},
		{"black horse", initial, sq(0, 1), sq(2, 2), "馬２进３"},
		{"black cannon", initial, sq(2, 7), sq(2, 4), "砲８平５"},
		{"black rook", initial, sq(0, 8), sq(1, 8), "車９进１"},
		{"black soldier", initial, sq(3, 0), sq(4, 0), "卒１进１"},
		{"black elephant", initial, sq(0, 6), sq(2, 4), "象７进５"},
		{"black general", initial, sq(0, 4), sq(1, 4), "將５进１"},
		{
			"red rook retreat",
			boardWith(map[int]Piece{sq(5, 0): MakePiece(Red, PieceRook)}),
			sq(5, 0), sq(8, 0), "俥九退三",
		},
		{
			"black horse retreat",
			boardWith(map[int]Piece{sq(4, 4): MakePiece(Black, PieceHorse)}),
			sq(4, 4), sq(2, 3), "馬５退４",
		},
		{
			"black cannon retreat",
			boardWith(map[int]Piece{sq(6, 2): MakePiece(Black, PieceCannon)}),
			sq(6, 2), sq(1, 2), "砲３退５",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.board.MoveNotation(tt.from, tt.to)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMoveNotationErrors(t *testing.T) {
	b := InitialBoard()
	_, err := b.MoveNotation(-1, 3)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.MoveNotation(3, 90)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.MoveNotation(sq(4, 4), sq(3, 4))
	require.ErrorIs(t, err, ErrEmptySquare)
}

func TestMoveNotationDoesNotMutate(t *testing.T) {
	b := InitialBoard()
	before := b
	_, err := b.MoveNotation(sq(7, 7), sq(7, 4))
	require.NoError(t, err)
	require.Equal(t, before, b)
}
