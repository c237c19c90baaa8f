package engine

import (
	"xiangqi/internal/xiangqi"
)

// ======= 基础子力估值 =======

var pieceValue = [...]int{
	xiangqi.PieceNone:     0,
	xiangqi.PieceGeneral:  100_000, // 帥/將：被吃即输，远大于其余子力之和
	xiangqi.PieceRook:     500,
	xiangqi.PieceCannon:   450,
	xiangqi.PieceHorse:    450,
	xiangqi.PieceElephant: 200,
	xiangqi.PieceAdvisor:  200,
	xiangqi.PieceSoldier:  100,
}

const (
	crossedSoldierBonus = 60
	centralSoldierBonus = 10
	centralPieceBonus   = 20
)

// PieceValue 返回子力基础分，未知类型为 0。
func PieceValue(pt xiangqi.PieceType) int {
	if pt < 0 || int(pt) >= len(pieceValue) {
		return 0
	}
	return pieceValue[pt]
}

// Evaluate 从 side 视角打分：己方子力+位置分 减去 对方的。
// 与轮到谁走无关，所以 Evaluate(b, Red) == -Evaluate(b, Black)。
func Evaluate(b *xiangqi.Board, side xiangqi.Side) int {
	if side != xiangqi.Red && side != xiangqi.Black {
		return 0
	}
	score := 0
	for sq, pc := range b.Squares {
		if pc == 0 {
			continue
		}
		val := pieceScore(pc.Type(), pc.Side(), sq/xiangqi.Cols, sq%xiangqi.Cols)
		if pc.Side() == side {
			score += val
		} else {
			score -= val
		}
	}
	return score
}

// 某个子在 (row, col) 的分值（从该子自己一方看）
func pieceScore(pt xiangqi.PieceType, side xiangqi.Side, row, col int) int {
	val := PieceValue(pt)
	central := col >= 3 && col <= 5

	switch pt {
	case xiangqi.PieceSoldier:
		// 过河兵大加分，中路再鼓励一些
		if xiangqi.CrossedRiver(side, row) {
			val += crossedSoldierBonus
			if central {
				val += centralSoldierBonus
			}
		}
	case xiangqi.PieceHorse, xiangqi.PieceCannon:
		if central {
			val += centralPieceBonus
		}
	}
	return val
}
