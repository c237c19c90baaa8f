package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/rand"

	"xiangqi/internal/xiangqi"
)

// TestCase 给前端/其它实现对拍用：选子阶段 stage=0，选落点阶段 stage=1
type TestCase struct {
	FEN       string   `json:"fen"`
	ToMove    int      `json:"to_move"`
	Stage     int      `json:"stage"`
	From      int      `json:"from"` // stage=1 时选中的子，stage=0 为 -1
	Mask      []int8   `json:"mask"` // 长度 90，可选格子为 1
	Notations []string `json:"notations,omitempty"`
}

func sideToInt(s xiangqi.Side) int {
	if s == xiangqi.Black {
		return 1
	}
	return 0
}

func main() {
	numGames := flag.Int("games", 10, "number of random games")
	maxPlies := flag.Int("maxmoves", 300, "max plies per game")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	var testCases []TestCase

	for g := 0; g < *numGames; g++ {
		pos := xiangqi.NewInitialPosition()
		for ply := 0; ply < *maxPlies; ply++ {
			if pos.Board.Status() != xiangqi.StatusOngoing {
				break
			}
			legalMoves := pos.GenerateLegalMoves()
			if len(legalMoves) == 0 {
				break
			}
			fen := pos.Encode()
			toMove := sideToInt(pos.SideToMove)

			// --- Stage 0: 可以选的子 ---
			mask0 := make([]int8, xiangqi.NumSquares)
			for _, mv := range legalMoves {
				mask0[mv.From] = 1
			}
			testCases = append(testCases, TestCase{FEN: fen, ToMove: toMove, Stage: 0, From: -1, Mask: mask0})

			// 随机选一步
			chosen := legalMoves[rng.Intn(len(legalMoves))]

			// --- Stage 1: 选中棋子后的落点 ---
			mask1 := make([]int8, xiangqi.NumSquares)
			var notations []string
			for _, mv := range legalMoves {
				if mv.From != chosen.From {
					continue
				}
				mask1[mv.To] = 1
				n, err := pos.Board.MoveNotation(mv.From, mv.To)
				if err != nil {
					fmt.Fprintln(os.Stderr, "notation:", err)
					os.Exit(1)
				}
				notations = append(notations, n)
			}
			testCases = append(testCases, TestCase{
				FEN:       fen,
				ToMove:    toMove,
				Stage:     1,
				From:      chosen.From,
				Mask:      mask1,
				Notations: notations,
			})

			nextPos, ok := pos.ApplyMove(chosen)
			if !ok {
				break
			}
			pos = nextPos
		}
	}

	data, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}
