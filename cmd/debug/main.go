package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

var (
	redPiece   = color.New(color.FgRed, color.Bold)
	blackPiece = color.New(color.FgHiWhite, color.Bold)
	emptyPoint = color.New(color.FgHiBlack)
	river      = color.New(color.FgCyan)
)

func main() {
	fen := flag.String("fen", xiangqi.InitialFEN, "position to inspect")
	depth := flag.Int("depth", 0, "also search this many plies and print the best move")
	noColor := flag.Bool("no-color", false, "disable colour output")
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}

	pos, err := xiangqi.DecodePosition(*fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decode:", err)
		os.Exit(1)
	}

	printBoard(&pos.Board)
	fmt.Println("FEN:", pos.Encode())
	fmt.Println("Side to move:", pos.SideToMove)
	fmt.Println("Status:", pos.Board.Status())
	fmt.Println("Facing generals:", pos.Board.IsFacingKing())
	fmt.Println("Pseudo legal moves:", len(pos.Board.PseudoMoves(pos.SideToMove)))
	legal := pos.GenerateLegalMoves()
	fmt.Println("Legal moves:", len(legal))
	fmt.Println("Blunder moves:", len(legal)-len(engine.FilterBlunderMoves(&pos.Board, pos.SideToMove, legal)))
	fmt.Println("Eval:", engine.Evaluate(&pos.Board, pos.SideToMove))

	if *depth <= 0 {
		return
	}
	res, err := engine.NewEngine().Search(context.Background(), &pos.Board, pos.SideToMove, engine.SearchConfig{MaxDepth: *depth})
	if err != nil {
		fmt.Fprintln(os.Stderr, "search:", err)
		os.Exit(1)
	}
	if res.BestMove.IsNone() {
		fmt.Println("Best move: none")
		return
	}
	notation, err := pos.Board.MoveNotation(res.BestMove.From, res.BestMove.To)
	if err != nil {
		fmt.Fprintln(os.Stderr, "notation:", err)
		os.Exit(1)
	}
	fmt.Printf("Best move: %s (%d->%d) score %d nodes %d\n", notation, res.BestMove.From, res.BestMove.To, res.Score, res.Nodes)
}

// 彩色棋盘，黑方在上
func printBoard(b *xiangqi.Board) {
	fmt.Println("   0 1 2 3 4 5 6 7 8")
	for row := 0; row < xiangqi.Rows; row++ {
		if row == xiangqi.RiverRow {
			river.Println("   ~~~~~~~~~~~~~~~~~")
		}
		fmt.Printf("%d  ", row)
		for col := 0; col < xiangqi.Cols; col++ {
			pc := b.At(xiangqi.Square(row, col))
			switch pc.Side() {
			case xiangqi.Red:
				redPiece.Print(string(pc.Letter()))
			case xiangqi.Black:
				blackPiece.Print(string(pc.Letter()))
			default:
				emptyPoint.Print(".")
			}
			fmt.Print(" ")
		}
		fmt.Println()
	}
}
