// Package sim runs batches of self-play matches and explores the game tree.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/BStarcheus/open-spiel-coup/engine"
	"github.com/BStarcheus/open-spiel-coup/internal/config"
	"github.com/BStarcheus/open-spiel-coup/internal/match"
	"github.com/BStarcheus/open-spiel-coup/internal/policy"
)

// Runner plays Config.Games matches across Config.Workers goroutines.
type Runner struct {
	Config config.Config
	Logger logrus.FieldLogger
}

// gameSeeds derives the per-game seeds: one for the match sampler and one
// per seat policy.
func gameSeeds(base uint64, game int) (matchSeed uint64, seats [engine.NumPlayers]uint64) {
	rng := rand.New(rand.NewPCG(base, uint64(game)))
	matchSeed = rng.Uint64()
	for i := range seats {
		seats[i] = rng.Uint64()
	}
	return matchSeed, seats
}

// Run plays every game and returns the aggregated report. The first match
// error cancels the remaining work.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	cfg := r.Config
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	log := r.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.WithFields(logrus.Fields{
		"games":    cfg.Games,
		"workers":  cfg.Workers,
		"seed":     seed,
		"policies": cfg.Policies,
	}).Info("starting simulation")

	jobs := make(chan int)
	results := make(chan match.Result, cfg.Workers)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < cfg.Games; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				res, err := r.playOne(ctx, log, seed, i)
				if errors.Is(err, match.ErrMoveLimit) {
					log.WithField("game", i).WithError(err).Warn("game abandoned")
				} else if err != nil {
					return fmt.Errorf("game %d: %w", i, err)
				}
				select {
				case results <- res:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		g.Wait()
		close(results)
	}()

	report := Report{Seed: seed, Policies: [engine.NumPlayers]string{cfg.Policies[0], cfg.Policies[1]}}
	for res := range results {
		report.Add(res)
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	log.WithFields(logrus.Fields{
		"games":   report.Games,
		"p0_wins": report.Wins[0],
		"p1_wins": report.Wins[1],
	}).Info("simulation finished")
	return report, nil
}

// playOne builds and runs the i-th match.
func (r *Runner) playOne(ctx context.Context, log logrus.FieldLogger, seed uint64, i int) (match.Result, error) {
	matchSeed, seatSeeds := gameSeeds(seed, i)

	var pols [engine.NumPlayers]policy.Policy
	for p := range pols {
		pol, err := policy.ByName(r.Config.Policies[p], seatSeeds[p])
		if err != nil {
			return match.Result{}, err
		}
		pols[p] = pol
	}

	m := match.NewMatch(pols,
		match.WithSeed(matchSeed),
		match.WithLogger(log.WithField("game", i)),
		match.WithMaxMoves(r.Config.MaxMoves),
		match.WithInvariantChecks(),
	)
	return m.Run(ctx)
}
