package sim

import (
	"fmt"
	"strings"

	"github.com/BStarcheus/open-spiel-coup/engine"
	"github.com/BStarcheus/open-spiel-coup/internal/match"
)

// Report aggregates the results of a simulation run.
type Report struct {
	Seed     uint64
	Policies [engine.NumPlayers]string

	Games      int
	Wins       [engine.NumPlayers]int
	Unfinished int
	DoubleLoss int

	TotalTurns   int
	TotalMoves   int
	TotalReturns [engine.NumPlayers]float64
}

// Add folds one match result into the report.
func (r *Report) Add(res match.Result) {
	r.Games++
	r.TotalTurns += res.Turns
	r.TotalMoves += res.Moves
	if res.Winner < 0 {
		r.Unfinished++
		return
	}
	r.Wins[res.Winner]++
	for p, v := range res.Returns {
		r.TotalReturns[p] += v
	}
	if res.DoubleLoss {
		r.DoubleLoss++
	}
}

// WinRate returns the share of finished games won by seat p.
func (r Report) WinRate(p int) float64 {
	finished := r.Games - r.Unfinished
	if finished == 0 {
		return 0
	}
	return float64(r.Wins[p]) / float64(finished)
}

// MeanTurns returns the average number of turns per game.
func (r Report) MeanTurns() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalTurns) / float64(r.Games)
}

// MeanMoves returns the average number of applied actions per game.
func (r Report) MeanMoves() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalMoves) / float64(r.Games)
}

// MeanReturn returns seat p's average payoff over finished games.
func (r Report) MeanReturn(p int) float64 {
	finished := r.Games - r.Unfinished
	if finished == 0 {
		return 0
	}
	return r.TotalReturns[p] / float64(finished)
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d games (seed %d), %s vs %s\n", r.Games, r.Seed, r.Policies[0], r.Policies[1])
	for p := 0; p < engine.NumPlayers; p++ {
		fmt.Fprintf(&b, "  P%d %-8s wins %6d (%5.1f%%)  mean return %+.3f\n",
			p, r.Policies[p], r.Wins[p], 100*r.WinRate(p), r.MeanReturn(p))
	}
	fmt.Fprintf(&b, "  mean turns %.1f, mean moves %.1f\n", r.MeanTurns(), r.MeanMoves())
	fmt.Fprintf(&b, "  double losses %d, unfinished %d\n", r.DoubleLoss, r.Unfinished)
	return b.String()
}
