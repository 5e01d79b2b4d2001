package sim

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BStarcheus/open-spiel-coup/engine"
	"github.com/BStarcheus/open-spiel-coup/internal/config"
	"github.com/BStarcheus/open-spiel-coup/internal/match"
)

func testConfig(games, workers int, policies ...string) config.Config {
	cfg := config.Default()
	cfg.Games = games
	cfg.Workers = workers
	cfg.Seed = 12345
	cfg.Policies = policies
	return cfg
}

func nullLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

func TestRunnerAggregates(t *testing.T) {
	r := Runner{Config: testConfig(40, 4, "random", "honest"), Logger: nullLogger()}
	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 40, rep.Games)
	assert.Equal(t, 40, rep.Wins[0]+rep.Wins[1]+rep.Unfinished)
	assert.Equal(t, uint64(12345), rep.Seed)
	assert.Equal(t, [engine.NumPlayers]string{"random", "honest"}, rep.Policies)
	assert.InDelta(t, 0, rep.TotalReturns[0]+rep.TotalReturns[1], 1e-9)
	assert.Greater(t, rep.MeanMoves(), rep.MeanTurns())
	assert.Contains(t, rep.String(), "random vs honest")
}

// TestRunnerDeterministic checks that results depend on the seed only, not
// on how games are spread across workers.
func TestRunnerDeterministic(t *testing.T) {
	a := Runner{Config: testConfig(30, 1, "random", "random"), Logger: nullLogger()}
	b := Runner{Config: testConfig(30, 6, "random", "random"), Logger: nullLogger()}

	ra, err := a.Run(context.Background())
	require.NoError(t, err)
	rb, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ra.Wins, rb.Wins)
	assert.Equal(t, ra.TotalMoves, rb.TotalMoves)
	assert.Equal(t, ra.DoubleLoss, rb.DoubleLoss)
}

func TestRunnerIncomeOnly(t *testing.T) {
	r := Runner{Config: testConfig(5, 2, "first", "first"), Logger: nullLogger()}
	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, rep.Wins[1])
	assert.InDelta(t, 33, rep.MeanTurns(), 1e-9)
	assert.InDelta(t, 1.0, rep.WinRate(1), 1e-9)
}

func TestRunnerMoveLimitCountsUnfinished(t *testing.T) {
	cfg := testConfig(3, 1, "first", "first")
	cfg.MaxMoves = 10
	rep, err := (&Runner{Config: cfg, Logger: nullLogger()}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Unfinished)
	assert.Zero(t, rep.WinRate(0))
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Runner{Config: testConfig(100, 2, "random", "random"), Logger: nullLogger()}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunnerRejectsBadConfig(t *testing.T) {
	_, err := (&Runner{Config: testConfig(0, 2, "random", "random")}).Run(context.Background())
	assert.Error(t, err)
}

func TestReportAdd(t *testing.T) {
	var rep Report
	rep.Add(match.Result{Winner: 0, Returns: [2]float64{2, -2}, Turns: 4, Moves: 9, DoubleLoss: true})
	rep.Add(match.Result{Winner: 1, Returns: [2]float64{-1, 1}, Turns: 10, Moves: 20})
	rep.Add(match.Result{Winner: -1, Turns: 6, Moves: 11})

	assert.Equal(t, 3, rep.Games)
	assert.Equal(t, [2]int{1, 1}, rep.Wins)
	assert.Equal(t, 1, rep.Unfinished)
	assert.Equal(t, 1, rep.DoubleLoss)
	assert.InDelta(t, 0.5, rep.WinRate(0), 1e-9)
	assert.InDelta(t, 0.5, rep.MeanReturn(0), 1e-9)
	assert.InDelta(t, 20.0/3, rep.MeanTurns(), 1e-9)
	assert.True(t, strings.Contains(rep.String(), "double losses 1"))
}

func TestWalkOpeningDeal(t *testing.T) {
	stats, err := Walk(engine.NewGame(), 0)
	require.NoError(t, err)
	assert.Equal(t, WalkStats{Chance: 1, Distinct: 1}, stats)

	stats, err = Walk(engine.NewGame(), 2)
	require.NoError(t, err)
	assert.Equal(t, WalkStats{Chance: 1 + 5 + 25, Distinct: 31}, stats, "still dealing at depth 2")

	// Four draws from three copies each: every sequence but the five
	// four-of-a-kind ones.
	stats, err = Walk(engine.NewGame(), 4)
	require.NoError(t, err)
	assert.Equal(t, 1+5+25+125, stats.Chance)
	assert.Equal(t, 625-5, stats.Decision)
	assert.Zero(t, stats.Terminal)
	assert.Less(t, stats.Distinct, stats.Total(), "hand sorting merges deal orders")
}

func TestWalkLeavesInputUntouched(t *testing.T) {
	g := engine.NewGame()
	before := g.StateHash()
	_, err := Walk(g, 6)
	require.NoError(t, err)
	assert.Equal(t, before, g.StateHash())
}
