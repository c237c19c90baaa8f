package engine

import "xiangqi/internal/xiangqi"

// FilterBlunderMoves 过滤“纯送子”弱智步；全部都是送子时原样返回
func FilterBlunderMoves(b *xiangqi.Board, side xiangqi.Side, moves []xiangqi.Move) []xiangqi.Move {
	if len(moves) <= 1 {
		return moves
	}

	safeMoves := make([]xiangqi.Move, 0, len(moves))
	for _, mv := range moves {
		if IsBlunder(b, side, mv) {
			continue
		}
		safeMoves = append(safeMoves, mv)
	}

	if len(safeMoves) == 0 {
		return moves
	}
	return safeMoves
}

// IsBlunder 不吃子的大子/兵走到对方能吃的格子，且对方吃掉后我方吃不回来
func IsBlunder(b *xiangqi.Board, side xiangqi.Side, mv xiangqi.Move) bool {
	if mv.IsNone() || mv.From >= xiangqi.NumSquares || mv.To >= xiangqi.NumSquares {
		return false
	}
	moving := b.Squares[mv.From]
	if moving == 0 || moving.Side() != side {
		return false
	}
	if !isBlunderFilterPiece(moving.Type()) {
		return false
	}
	if b.Squares[mv.To] != 0 {
		return false
	}

	next, ok := xiangqi.NewPosition(*b, side).ApplyMove(mv)
	if !ok {
		return false
	}
	for _, reply := range next.GenerateLegalMoves() {
		if reply.To != mv.To {
			continue
		}
		afterCapture, ok := next.ApplyMove(reply)
		if !ok {
			continue
		}
		if !canRecapture(afterCapture, mv.To) {
			return true
		}
	}
	return false
}

func canRecapture(pos *xiangqi.Position, sq int) bool {
	for _, mv := range pos.GenerateLegalMoves() {
		if mv.To == sq {
			return true
		}
	}
	return false
}

func isBlunderFilterPiece(pt xiangqi.PieceType) bool {
	switch pt {
	case xiangqi.PieceRook, xiangqi.PieceCannon, xiangqi.PieceHorse, xiangqi.PieceSoldier:
		return true
	default:
		return false
	}
}
