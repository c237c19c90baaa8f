package main

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

type PlayerConfig struct {
	Name string
	Cfg  engine.SearchConfig
}

type gameResult struct {
	Winner xiangqi.Status
	Plies  int
	Nodes  int64
	Record []string
}

// randomOpening 开局随机走几步（不送子），避免每盘棋都一样
func randomOpening(pos *xiangqi.Position, plies int, rng *rand.Rand) (*xiangqi.Position, []string) {
	var record []string
	for i := 0; i < plies; i++ {
		moves := engine.FilterBlunderMoves(&pos.Board, pos.SideToMove, pos.GenerateLegalMoves())
		if len(moves) == 0 {
			break
		}
		mv := moves[rng.Intn(len(moves))]
		notation, err := pos.Board.MoveNotation(mv.From, mv.To)
		if err != nil {
			break
		}
		next, ok := pos.ApplyMove(mv)
		if !ok {
			break
		}
		pos = next
		record = append(record, notation)
	}
	return pos, record
}

func playGame(ctx context.Context, e *engine.Engine, pos *xiangqi.Position, red, black PlayerConfig, maxPlies int, verbose bool) (gameResult, error) {
	var res gameResult
	for ; res.Plies < maxPlies; res.Plies++ {
		cfg := red.Cfg
		if pos.SideToMove == xiangqi.Black {
			cfg = black.Cfg
		}

		sr, err := e.Search(ctx, &pos.Board, pos.SideToMove, cfg)
		if err != nil {
			return res, err
		}
		res.Nodes += sr.Nodes
		if sr.BestMove.IsNone() {
			// 无子可动，当前方输
			res.Winner = xiangqi.StatusRedWins
			if pos.SideToMove == xiangqi.Red {
				res.Winner = xiangqi.StatusBlackWins
			}
			return res, nil
		}

		notation, err := pos.Board.MoveNotation(sr.BestMove.From, sr.BestMove.To)
		if err != nil {
			return res, err
		}
		if verbose {
			fmt.Printf("%3d. %s  score %d depth %d\n", res.Plies+1, notation, sr.Score, sr.Depth)
		}
		res.Record = append(res.Record, notation)

		next, ok := pos.ApplyMove(sr.BestMove)
		if !ok {
			return res, fmt.Errorf("invalid move %v", sr.BestMove)
		}
		pos = next

		// 检查吃王
		if st := pos.Board.Status(); st != xiangqi.StatusOngoing {
			res.Winner = st
			res.Plies++
			return res, nil
		}
	}
	return res, nil
}
