package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BStarcheus/open-spiel-coup/internal/config"
)

func newRunContext(out *bytes.Buffer) *runContext {
	l, _ := test.NewNullLogger()
	return &runContext{ctx: context.Background(), cfg: config.Default(), log: l, out: out}
}

func TestParseSimulateFlags(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("coupsim"))
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"--debug", "simulate", "--games", "10", "--policies", "honest,first"})
	require.NoError(t, err)
	assert.Equal(t, "simulate", kctx.Command())
	assert.True(t, cli.Debug)
	assert.Equal(t, 10, cli.Simulate.Games)
	assert.Equal(t, []string{"honest", "first"}, cli.Simulate.Policies)
}

func TestSimulateCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := SimulateCmd{Games: 6, Workers: 2, Seed: 3, Policies: []string{"first", "first"}}
	require.NoError(t, cmd.Run(newRunContext(&out)))

	assert.Contains(t, out.String(), "6 games (seed 3), first vs first")
	assert.Contains(t, out.String(), "P1 first")
}

func TestSimulateCommandRejectsUnknownPolicy(t *testing.T) {
	var out bytes.Buffer
	cmd := SimulateCmd{Games: 1, Policies: []string{"random", "oracle"}}
	assert.Error(t, cmd.Run(newRunContext(&out)))
}

func TestWalkCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := WalkCmd{Depth: 1, Deal: []string{"Duke", "Captain", "Assassin", "Contessa"}}
	require.NoError(t, cmd.Run(newRunContext(&out)))

	// P0 opens with Income, ForeignAid, Tax, Exchange or Steal.
	assert.Contains(t, out.String(), "nodes 6 (chance 0, decision 6, terminal 0)")
}

func TestWalkCommandBadDeal(t *testing.T) {
	var out bytes.Buffer
	cmd := WalkCmd{Depth: 1, Deal: []string{"Jester"}}
	assert.Error(t, cmd.Run(newRunContext(&out)))
}
