package xiangqi

var (
	rookDirs   = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	bishopDirs = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
)

// 马的 8 种“日”字：终点 + 马腿
var horseLegMoves = [8]struct {
	Dr, Dc int // 终点
	Br, Bc int // 马腿
}{
	{-2, -1, -1, 0},
	{-2, +1, -1, 0},
	{-1, -2, 0, -1},
	{-1, +2, 0, +1},
	{+1, -2, 0, -1},
	{+1, +2, 0, +1},
	{+2, -1, +1, 0},
	{+2, +1, +1, 0},
}

func canLand(b *Board, side Side, to int) bool {
	dst := b.Squares[to]
	return dst == 0 || dst.Side() != side
}

// 车：横竖随便走
func genRookMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			to := indexOf(r, c)
			pc := b.Squares[to]
			if pc == 0 {
				*moves = append(*moves, Move{From: from, To: to})
			} else {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 炮：车走法 + 隔一子吃
func genCannonMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]

		// 走子阶段：直到第一个棋子
		for onBoard(r, c) {
			to := indexOf(r, c)
			if b.Squares[to] == 0 {
				*moves = append(*moves, Move{From: from, To: to})
				r += d[0]
				c += d[1]
				continue
			}
			r += d[0]
			c += d[1]
			break
		}

		// 吃子阶段：越过炮架，遇到第一子可吃
		for onBoard(r, c) {
			to := indexOf(r, c)
			pc := b.Squares[to]
			if pc != 0 {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

func genHorseMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, m := range horseLegMoves {
		r, c := row+m.Dr, col+m.Dc
		if !onBoard(r, c) {
			continue
		}
		if b.Squares[indexOf(row+m.Br, col+m.Bc)] != 0 {
			continue // 憋马腿
		}
		to := indexOf(r, c)
		if canLand(b, side, to) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

func genElephantMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range bishopDirs {
		r, c := row+2*d[0], col+2*d[1]
		if !onBoard(r, c) || !ownHalf(side, r) {
			continue
		}
		if b.Squares[indexOf(row+d[0], col+d[1])] != 0 {
			continue // 塞象眼
		}
		to := indexOf(r, c)
		if canLand(b, side, to) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

func genAdvisorMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range bishopDirs {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) || !inPalace(side, r, c) {
			continue
		}
		to := indexOf(r, c)
		if canLand(b, side, to) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

func genGeneralMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) || !inPalace(side, r, c) {
			continue
		}
		to := indexOf(r, c)
		if canLand(b, side, to) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

func genSoldierMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()

	if !CrossedRiver(side, row) {
		// 未过河：只能向前一格（可以吃子）
		if r := row + soldierDir(side); onBoard(r, col) {
			to := indexOf(r, col)
			if canLand(b, side, to) {
				*moves = append(*moves, Move{From: from, To: to})
			}
		}
		return
	}
	// 过河后四个方向各一格
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) {
			continue
		}
		to := indexOf(r, c)
		if canLand(b, side, to) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

var generators = [numPieceTypes]func(*Board, int, *[]Move){
	PieceGeneral:  genGeneralMoves,
	PieceAdvisor:  genAdvisorMoves,
	PieceElephant: genElephantMoves,
	PieceHorse:    genHorseMoves,
	PieceRook:     genRookMoves,
	PieceCannon:   genCannonMoves,
	PieceSoldier:  genSoldierMoves,
}

// PseudoMoves 生成 side 所有满足 IsLegalMove 的走法（不检查王对脸）。
func (b *Board) PseudoMoves(side Side) []Move {
	moves := make([]Move, 0, 64)
	for sq := 0; sq < NumSquares; sq++ {
		pc := b.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		pt := pc.Type()
		if pt <= PieceNone || pt >= numPieceTypes {
			continue
		}
		generators[pt](b, sq, &moves)
	}
	return moves
}

// LegalMoves 在 PseudoMoves 基础上去掉走完后两将对脸的走法。
func (b *Board) LegalMoves(side Side) []Move {
	pseudo := b.PseudoMoves(side)
	out := pseudo[:0]
	for _, mv := range pseudo {
		nb := *b
		nb.Squares[mv.To] = nb.Squares[mv.From]
		nb.Squares[mv.From] = 0
		if nb.IsFacingKing() {
			continue
		}
		out = append(out, mv)
	}
	return out
}

func (p *Position) GenerateLegalMoves() []Move {
	return p.Board.LegalMoves(p.SideToMove)
}

// Undo 记录 MakeMove 之前的信息，用于 UnmakeMove 还原。
type Undo struct {
	Captured Piece
	Hash     uint64
}

// MakeMove 原地走子并切换走子方。只检查起点是否为走子方的子，走法合法性由调用方保证。
func (p *Position) MakeMove(m Move) (Undo, error) {
	if !validSquare(m.From) || !validSquare(m.To) {
		return Undo{}, ErrOutOfRange
	}
	pc := p.Board.Squares[m.From]
	if pc == 0 {
		return Undo{}, ErrEmptySquare
	}
	if pc.Side() != p.SideToMove {
		return Undo{}, ErrWrongSide
	}
	h := p.EnsureHash()
	captured := p.Board.Squares[m.To]
	undo := Undo{Captured: captured, Hash: h}

	p.Board.Squares[m.To] = pc
	p.Board.Squares[m.From] = 0
	p.SideToMove = opposite(p.SideToMove)

	// 增量 Zobrist：移除 from 的子、移除被吃子（若有）、加入 to 的子、切换走子方。
	h ^= pieceHashKey(pc, m.From)
	if captured != 0 {
		h ^= pieceHashKey(captured, m.To)
	}
	h ^= pieceHashKey(pc, m.To)
	h ^= zobristSide
	p.Hash = h
	return undo, nil
}

// UnmakeMove 撤销紧接着的那一次 MakeMove。
func (p *Position) UnmakeMove(m Move, u Undo) {
	pc := p.Board.Squares[m.To]
	p.Board.Squares[m.From] = pc
	p.Board.Squares[m.To] = u.Captured
	p.SideToMove = opposite(p.SideToMove)
	p.Hash = u.Hash
}

// ApplyMove 返回走子后的新局面，原局面不变。
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	np := *p
	if _, err := np.MakeMove(m); err != nil {
		return nil, false
	}
	return &np, true
}
