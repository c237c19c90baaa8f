package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

func main() {
	deepDepth := flag.Int("depth", 3, "search depth of the stronger player")
	shallowDepth := flag.Int("opponent-depth", 2, "search depth of the weaker player")
	moveTime := flag.Duration("time", 0, "time limit per move, 0 = depth only")
	totalGames := flag.Int("games", 2, "number of games to play")
	maxPlies := flag.Int("maxmoves", 200, "max plies per game before calling a draw")
	openingPlies := flag.Int("random-opening", 2, "random plies before the engines take over")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	workers := flag.Int("workers", 1, "root-parallel search goroutines")
	verbose := flag.Bool("v", false, "print every move")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(zerolog.InfoLevel).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := engine.NewEngine(engine.WithWorkers(*workers), engine.WithLogger(log.Logger))
	rng := rand.New(rand.NewSource(*seed))
	p := message.NewPrinter(language.English)

	deep := PlayerConfig{
		Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *deepDepth),
		Cfg:  engine.SearchConfig{MaxDepth: *deepDepth, TimeLimit: *moveTime},
	}
	shallow := PlayerConfig{
		Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *shallowDepth),
		Cfg:  engine.SearchConfig{MaxDepth: *shallowDepth, TimeLimit: *moveTime},
	}

	deepWins, shallowWins, draws := 0, 0, 0
	var totalNodes int64
	start := time.Now()

	for g := 0; g < *totalGames; g++ {
		// 轮流执红
		red, black := deep, shallow
		if g%2 == 1 {
			red, black = shallow, deep
		}
		log.Info().Msgf("game %d: red [%s] vs black [%s]", g+1, red.Name, black.Name)

		pos, opening := randomOpening(xiangqi.NewInitialPosition(), *openingPlies, rng)
		res, err := playGame(ctx, e, pos, red, black, *maxPlies, *verbose)
		if err != nil {
			log.Error().Err(err).Int("game", g+1).Msg("game aborted")
			break
		}
		totalNodes += res.Nodes

		deepIsRed := g%2 == 0
		result := "draw"
		switch res.Winner {
		case xiangqi.StatusRedWins:
			result = red.Name + " wins"
		case xiangqi.StatusBlackWins:
			result = black.Name + " wins"
		}
		switch {
		case res.Winner == xiangqi.StatusOngoing:
			draws++
		case (res.Winner == xiangqi.StatusRedWins) == deepIsRed:
			deepWins++
		default:
			shallowWins++
		}
		p.Printf("Game %d: %s after %d plies, %d nodes\n", g+1, result, res.Plies, res.Nodes)
		fmt.Println("  " + strings.Join(append(opening, res.Record...), " "))
	}

	elapsed := time.Since(start)
	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", deep.Name, deepWins)
	fmt.Printf("%s: %d\n", shallow.Name, shallowWins)
	fmt.Printf("Draws: %d\n", draws)
	p.Printf("Nodes: %d (%.0f n/s) in %s\n", totalNodes, float64(totalNodes)/(elapsed.Seconds()+1e-9), elapsed.Round(time.Millisecond))
}
