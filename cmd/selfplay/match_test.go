package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

func TestRandomOpeningIsSeeded(t *testing.T) {
	a, recA := randomOpening(xiangqi.NewInitialPosition(), 4, rand.New(rand.NewSource(7)))
	b, recB := randomOpening(xiangqi.NewInitialPosition(), 4, rand.New(rand.NewSource(7)))
	require.Equal(t, a.Encode(), b.Encode())
	require.Equal(t, recA, recB)
	require.Len(t, recA, 4)
	require.Equal(t, xiangqi.Red, a.SideToMove)
}

func TestPlayGameEndsOnCapture(t *testing.T) {
	pos, err := xiangqi.DecodePosition("4k4/9/9/9/9/4R3r/9/9/9/3K5 w")
	require.NoError(t, err)

	e := engine.NewEngine(engine.WithLogger(zerolog.Nop()))
	player := PlayerConfig{Name: "d2", Cfg: engine.SearchConfig{MaxDepth: 2}}
	res, err := playGame(context.Background(), e, pos, player, player, 10, false)
	require.NoError(t, err)
	require.Equal(t, xiangqi.StatusRedWins, res.Winner)
	require.Equal(t, 1, res.Plies)
	require.Equal(t, []string{"俥五进五"}, res.Record)
	require.Positive(t, res.Nodes)
}

func TestPlayGameDrawByLength(t *testing.T) {
	e := engine.NewEngine(engine.WithLogger(zerolog.Nop()))
	player := PlayerConfig{Name: "d1", Cfg: engine.SearchConfig{MaxDepth: 1}}
	res, err := playGame(context.Background(), e, xiangqi.NewInitialPosition(), player, player, 4, false)
	require.NoError(t, err)
	require.Equal(t, xiangqi.StatusOngoing, res.Winner)
	require.Equal(t, 4, res.Plies)
	require.Len(t, res.Record, 4)
}
