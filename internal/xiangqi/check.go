package xiangqi

// Status 对局状态：没有和棋，某一方的将被吃掉即结束。
type Status int8

const (
	StatusOngoing Status = iota
	StatusRedWins
	StatusBlackWins
)

func (s Status) String() string {
	switch s {
	case StatusRedWins:
		return "red_wins"
	case StatusBlackWins:
		return "black_wins"
	default:
		return "ongoing"
	}
}

// FindGeneral 返回 side 的将所在格，没有返回 -1。
func (b *Board) FindGeneral(side Side) int {
	want := MakePiece(side, PieceGeneral)
	if want == 0 {
		return -1
	}
	for sq, pc := range b.Squares {
		if pc == want {
			return sq
		}
	}
	return -1
}

func (b *Board) HasGeneral(side Side) bool {
	return b.FindGeneral(side) != -1
}

// IsFacingKing 两将同列且中间无子时返回 true（非法局面）。
func (b *Board) IsFacingKing() bool {
	redKing := b.FindGeneral(Red)
	blackKing := b.FindGeneral(Black)
	if redKing == -1 || blackKing == -1 {
		// 有一方将已经没了：对局终结，但不存在“对脸”问题
		return false
	}
	if colOf(redKing) != colOf(blackKing) {
		return false
	}
	n, ok := b.countBetween(rowOf(redKing), colOf(redKing), rowOf(blackKing), colOf(blackKing))
	return ok && n == 0
}

// Status 根据双方将是否还在判断胜负。
func (b *Board) Status() Status {
	red, black := b.HasGeneral(Red), b.HasGeneral(Black)
	switch {
	case red && !black:
		return StatusRedWins
	case black && !red:
		return StatusBlackWins
	default:
		return StatusOngoing
	}
}
