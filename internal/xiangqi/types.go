package xiangqi

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Black  Side = 1
)

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Opponent 返回对方；NoSide 的对方仍是 NoSide。
func (s Side) Opponent() Side {
	return opposite(s)
}

type PieceType int8

const (
	PieceNone     PieceType = iota
	PieceGeneral            // 帥 / 將
	PieceAdvisor            // 仕 / 士
	PieceElephant           // 相 / 象
	PieceHorse              // 傌 / 馬
	PieceRook               // 俥 / 車
	PieceCannon             // 炮 / 砲
	PieceSoldier            // 兵 / 卒

	numPieceTypes = 8
)

type Piece int8 // 0=空；>0 红；<0 黑；abs=PieceType

func MakePiece(side Side, pt PieceType) Piece {
	if pt <= PieceNone || pt >= numPieceTypes || side == NoSide {
		return 0
	}
	if side == Red {
		return Piece(pt)
	}
	return -Piece(pt)
}

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return Red
	}
	return Black
}

// Board 是 90 格的值类型，直接赋值即得到一份独立副本。
type Board struct {
	Squares [NumSquares]Piece
}

type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// NoMove 表示“没有可走的棋”。
var NoMove = Move{From: -1, To: -1}

func (m Move) IsNone() bool {
	return m.From < 0 || m.To < 0
}

// Position = 棋盘 + 轮到谁走
type Position struct {
	Board      Board
	SideToMove Side
	Hash       uint64
}
