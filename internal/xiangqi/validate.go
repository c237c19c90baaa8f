package xiangqi

// moveRule 判断形状与阻挡是否合法；起点有子、终点不是己方子由调用方先检查。
type moveRule func(b *Board, side Side, fr, fc, tr, tc int) bool

var moveRules = [numPieceTypes]moveRule{
	PieceGeneral:  generalRule,
	PieceAdvisor:  advisorRule,
	PieceElephant: elephantRule,
	PieceHorse:    horseRule,
	PieceRook:     rookRule,
	PieceCannon:   cannonRule,
	PieceSoldier:  soldierRule,
}

// IsLegalMove 判断 from->to 是否符合该子的走法（不考虑王对脸）。
func (b *Board) IsLegalMove(from, to int) bool {
	return b.ValidateMove(from, to) == nil
}

// ValidateMove 与 IsLegalMove 相同，但给出不合法的原因。
func (b *Board) ValidateMove(from, to int) error {
	if !validSquare(from) || !validSquare(to) {
		return ErrOutOfRange
	}
	pc := b.Squares[from]
	if pc == 0 {
		return ErrEmptySquare
	}
	side := pc.Side()
	if dst := b.Squares[to]; dst != 0 && dst.Side() == side {
		return ErrOwnPiece
	}
	pt := pc.Type()
	if pt <= PieceNone || pt >= numPieceTypes {
		return ErrIllegalMove
	}
	if !moveRules[pt](b, side, rowOf(from), colOf(from), rowOf(to), colOf(to)) {
		return ErrIllegalMove
	}
	return nil
}

// 将：九宫内上下左右一格
func generalRule(_ *Board, side Side, fr, fc, tr, tc int) bool {
	if !inPalace(side, tr, tc) {
		return false
	}
	return abs(tr-fr)+abs(tc-fc) == 1
}

// 士：九宫内斜走一格
func advisorRule(_ *Board, side Side, fr, fc, tr, tc int) bool {
	if !inPalace(side, tr, tc) {
		return false
	}
	return abs(tr-fr) == 1 && abs(tc-fc) == 1
}

// 相：田字，不过河，塞象眼
func elephantRule(b *Board, side Side, fr, fc, tr, tc int) bool {
	if abs(tr-fr) != 2 || abs(tc-fc) != 2 {
		return false
	}
	if !ownHalf(side, tr) {
		return false
	}
	return b.Squares[indexOf((fr+tr)/2, (fc+tc)/2)] == 0
}

// 马：日字，憋马腿（腿在长边方向上紧挨起点）
func horseRule(b *Board, _ Side, fr, fc, tr, tc int) bool {
	dr, dc := tr-fr, tc-fc
	var lr, lc int
	switch {
	case abs(dr) == 2 && abs(dc) == 1:
		lr, lc = fr+dr/2, fc
	case abs(dr) == 1 && abs(dc) == 2:
		lr, lc = fr, fc+dc/2
	default:
		return false
	}
	return b.Squares[indexOf(lr, lc)] == 0
}

// 车：同行或同列，中间无子
func rookRule(b *Board, _ Side, fr, fc, tr, tc int) bool {
	n, ok := b.countBetween(fr, fc, tr, tc)
	return ok && n == 0
}

// 炮：不吃子时中间无子；吃子时中间恰好一个炮架
func cannonRule(b *Board, _ Side, fr, fc, tr, tc int) bool {
	n, ok := b.countBetween(fr, fc, tr, tc)
	if !ok {
		return false
	}
	if b.Squares[indexOf(tr, tc)] != 0 {
		return n == 1
	}
	return n == 0
}

// 兵：过河前只能直进一格；过河后上下左右各一格都可以走
func soldierRule(_ *Board, side Side, fr, fc, tr, tc int) bool {
	if abs(tr-fr)+abs(tc-fc) != 1 {
		return false
	}
	if CrossedRiver(side, fr) {
		return true
	}
	return tc == fc && tr == fr+soldierDir(side)
}

// countBetween 统计同一直线上两点之间（不含两端）的棋子数；不在一条线上返回 ok=false。
func (b *Board) countBetween(fr, fc, tr, tc int) (n int, ok bool) {
	if fr == tr && fc == tc {
		return 0, false
	}
	switch {
	case fr == tr:
		lo, hi := fc, tc
		if lo > hi {
			lo, hi = hi, lo
		}
		for c := lo + 1; c < hi; c++ {
			if b.Squares[indexOf(fr, c)] != 0 {
				n++
			}
		}
	case fc == tc:
		lo, hi := fr, tr
		if lo > hi {
			lo, hi = hi, lo
		}
		for r := lo + 1; r < hi; r++ {
			if b.Squares[indexOf(r, fc)] != 0 {
				n++
			}
		}
	default:
		return 0, false
	}
	return n, true
}
