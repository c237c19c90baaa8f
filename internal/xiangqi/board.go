package xiangqi

import (
	"strings"

	"golang.org/x/exp/constraints"
)

const (
	Rows       = 10
	Cols       = 9
	NumSquares = Rows * Cols

	// 河界：红方在 5..9 行，黑方在 0..4 行
	RiverRow = 5
)

func indexOf(row, col int) int { return row*Cols + col }
func rowOf(sq int) int         { return sq / Cols }
func colOf(sq int) int         { return sq % Cols }

// Square 把 (row, col) 换算成格子编号，越界返回 -1。
func Square(row, col int) int {
	if !onBoard(row, col) {
		return -1
	}
	return indexOf(row, col)
}

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func validSquare(sq int) bool {
	return sq >= 0 && sq < NumSquares
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func opposite(side Side) Side {
	if side == Red {
		return Black
	}
	if side == Black {
		return Red
	}
	return NoSide
}

// 兵的前进方向：红向上(-1)，黑向下(+1)
func soldierDir(side Side) int {
	if side == Red {
		return -1
	}
	if side == Black {
		return +1
	}
	return 0
}

// CrossedRiver 判断 side 的子在 row 行时是否已经过河。
func CrossedRiver(side Side, row int) bool {
	if side == Red {
		return row < RiverRow
	}
	if side == Black {
		return row >= RiverRow
	}
	return false
}

// 相/象只能待在自家半场
func ownHalf(side Side, row int) bool {
	if side == Red {
		return row >= RiverRow
	}
	if side == Black {
		return row < RiverRow
	}
	return false
}

// 是否在九宫
func inPalace(side Side, row, col int) bool {
	if col < 3 || col > 5 {
		return false
	}
	if side == Black {
		return row >= 0 && row <= 2
	}
	if side == Red {
		return row >= 7 && row <= 9
	}
	return false
}

var letterToPieceType = map[rune]PieceType{
	'k': PieceGeneral,
	'a': PieceAdvisor,
	'b': PieceElephant,
	'e': PieceElephant, // 兼容部分软件的写法
	'n': PieceHorse,
	'h': PieceHorse,
	'r': PieceRook,
	'c': PieceCannon,
	'p': PieceSoldier,
}

var pieceTypeToLetter = [numPieceTypes]rune{
	PieceGeneral:  'k',
	PieceAdvisor:  'a',
	PieceElephant: 'b',
	PieceHorse:    'n',
	PieceRook:     'r',
	PieceCannon:   'c',
	PieceSoldier:  'p',
}

func pieceToChar(p Piece) rune {
	if p == 0 {
		return '.'
	}
	pt := p.Type()
	if pt <= PieceNone || pt >= numPieceTypes {
		return '.'
	}
	base := pieceTypeToLetter[pt]
	if p.Side() == Red {
		return base - 'a' + 'A'
	}
	return base
}

// Letter 返回 FEN 字母，红方大写，空位为 '.'
func (p Piece) Letter() rune { return pieceToChar(p) }

const InitialFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"

var initialPosition = mustDecode(InitialFEN)

func mustDecode(fen string) *Position {
	pos, err := DecodePosition(fen)
	if err != nil {
		panic("bad built-in FEN: " + fen)
	}
	return pos
}

// InitialBoard 返回开局摆法的一份副本。
func InitialBoard() Board {
	return initialPosition.Board
}

func NewInitialPosition() *Position {
	pos := &Position{
		Board:      InitialBoard(),
		SideToMove: Red, // 红先
	}
	pos.Hash = pos.CalculateHash()
	return pos
}

// NewPosition 用给定棋盘和走子方构造局面。
func NewPosition(b Board, side Side) *Position {
	pos := &Position{Board: b, SideToMove: side}
	pos.Hash = pos.CalculateHash()
	return pos
}

// At 返回 sq 上的棋子，越界当作空。
func (b *Board) At(sq int) Piece {
	if !validSquare(sq) {
		return 0
	}
	return b.Squares[sq]
}

// Set 把棋子放到 sq 上，越界忽略。
func (b *Board) Set(sq int, pc Piece) {
	if validSquare(sq) {
		b.Squares[sq] = pc
	}
}

// String 输出一个 10 行的文本盘面，行号从黑方底线开始。
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		sb.WriteByte(byte('0' + r))
		sb.WriteByte(' ')
		for c := 0; c < Cols; c++ {
			sb.WriteRune(pieceToChar(b.Squares[indexOf(r, c)]))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefghi")
	return sb.String()
}
