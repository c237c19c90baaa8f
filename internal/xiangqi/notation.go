package xiangqi

import "strings"

var (
	redNames   = [numPieceTypes]string{"", "帥", "仕", "相", "傌", "俥", "炮", "兵"}
	blackNames = [numPieceTypes]string{"", "將", "士", "象", "馬", "車", "砲", "卒"}

	redNumerals   = [10]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}
	blackNumerals = [10]string{"", "１", "２", "３", "４", "５", "６", "７", "８", "９"}
)

const (
	actionTraverse = "平"
	actionAdvance  = "进"
	actionRetreat  = "退"
)

// 红方从右往左数 9..1，黑方从左往右数 1..9
func columnNumber(side Side, col int) int {
	if side == Red {
		return Cols - col
	}
	return col + 1
}

func numeral(side Side, n int) string {
	if n < 1 || n > 9 {
		return "?"
	}
	if side == Red {
		return redNumerals[n]
	}
	return blackNumerals[n]
}

// 马、相、士的落点用列号表示，其余（走直线的）进退时用步数表示。
func movesDiagonally(pt PieceType) bool {
	return pt == PieceHorse || pt == PieceElephant || pt == PieceAdvisor
}

// MoveNotation 生成“炮二平五”式的记谱。只看 from 上的子，不检查走法是否合法。
func (b *Board) MoveNotation(from, to int) (string, error) {
	if !validSquare(from) || !validSquare(to) {
		return "", ErrOutOfRange
	}
	pc := b.Squares[from]
	if pc == 0 {
		return "", ErrEmptySquare
	}
	side, pt := pc.Side(), pc.Type()
	if pt <= PieceNone || pt >= numPieceTypes {
		return "", ErrIllegalMove
	}
	fr, fc := rowOf(from), colOf(from)
	tr, tc := rowOf(to), colOf(to)

	var sb strings.Builder
	if side == Red {
		sb.WriteString(redNames[pt])
	} else {
		sb.WriteString(blackNames[pt])
	}
	sb.WriteString(numeral(side, columnNumber(side, fc)))

	if tr == fr {
		sb.WriteString(actionTraverse)
		sb.WriteString(numeral(side, columnNumber(side, tc)))
		return sb.String(), nil
	}

	forward := (tr-fr)*soldierDir(side) > 0
	if forward {
		sb.WriteString(actionAdvance)
	} else {
		sb.WriteString(actionRetreat)
	}
	if movesDiagonally(pt) {
		sb.WriteString(numeral(side, columnNumber(side, tc)))
	} else {
		sb.WriteString(numeral(side, abs(tr-fr)))
	}
	return sb.String(), nil
}
