package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/BStarcheus/open-spiel-coup/engine"
	"github.com/BStarcheus/open-spiel-coup/internal/config"
	"github.com/BStarcheus/open-spiel-coup/internal/sim"
)

type CLI struct {
	Debug  bool   `help:"enable debug logging"`
	Config string `help:"path to a YAML config file" type:"path"`

	Simulate SimulateCmd `cmd:"" help:"play self-play games between two policies and print a report"`
	Walk     WalkCmd     `cmd:"" help:"count game-tree nodes down to a fixed depth"`
}

// runContext carries what every command needs.
type runContext struct {
	ctx context.Context
	cfg config.Config
	log *logrus.Logger
	out io.Writer
}

type SimulateCmd struct {
	Games    int      `help:"number of games (overrides config)"`
	Workers  int      `help:"number of concurrent games (overrides config)"`
	Seed     uint64   `help:"random seed; 0 uses config or time"`
	Policies []string `help:"seat policies, e.g. random,honest" sep:","`
	MaxMoves int      `help:"abandon a game after this many moves (overrides config)"`
}

func (c *SimulateCmd) Run(rc *runContext) error {
	cfg := rc.cfg
	if c.Games > 0 {
		cfg.Games = c.Games
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if len(c.Policies) > 0 {
		cfg.Policies = c.Policies
	}
	if c.MaxMoves > 0 {
		cfg.MaxMoves = c.MaxMoves
	}

	r := sim.Runner{Config: cfg, Logger: rc.log}
	rep, err := r.Run(rc.ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(rc.out, rep.String())
	return err
}

type WalkCmd struct {
	Depth int      `help:"plies to expand, chance draws included" default:"6"`
	Deal  []string `help:"opening deal as card names in P0,P1,P0,P1 order" sep:","`
}

func (c *WalkCmd) Run(rc *runContext) error {
	g := engine.NewGame()
	for _, name := range c.Deal {
		ct, err := engine.ParseCardType(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		if err := g.ApplyAction(engine.CardAction(ct)); err != nil {
			return fmt.Errorf("dealing %s: %w", ct, err)
		}
	}

	rc.log.WithField("depth", c.Depth).Info("walking game tree")
	stats, err := sim.Walk(g, c.Depth)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(rc.out, stats)
	return err
}

func setupLogger(cfg config.Config, debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(cfg.Level())
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("coupsim"),
		kong.Description("Two-player Coup self-play simulator"),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}
	log := setupLogger(cfg, cli.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = kctx.Run(&runContext{ctx: ctx, cfg: cfg, log: log, out: os.Stdout})
	if err != nil {
		log.WithError(err).Fatal(kctx.Command() + " failed")
	}
}
