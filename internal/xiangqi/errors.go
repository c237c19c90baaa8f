package xiangqi

import "errors"

var (
	ErrInvalidFEN  = errors.New("invalid FEN")
	ErrOutOfRange  = errors.New("square out of range")
	ErrEmptySquare = errors.New("no piece on source square")
	ErrOwnPiece    = errors.New("destination holds own piece")
	ErrIllegalMove = errors.New("illegal move")
	ErrWrongSide   = errors.New("piece does not belong to side to move")
)
