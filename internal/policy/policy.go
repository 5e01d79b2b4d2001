// Package policy holds the seat strategies used to drive self-play matches.
package policy

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/BStarcheus/open-spiel-coup/engine"
)

// Policy picks one of the legal actions for the player on move. The state it
// receives is a private copy; implementations may read but should not rely on
// hidden opponent cards, which a match resamples before every decision.
type Policy interface {
	Name() string
	Choose(g *engine.GameState, legal []engine.Action) engine.Action
}

// constructors maps registry names to factories.
var constructors = map[string]func(seed uint64) Policy{
	"random": func(seed uint64) Policy { return NewRandom(seed) },
	"first":  func(uint64) Policy { return FirstLegal{} },
	"honest": func(seed uint64) Policy { return NewHonest(seed) },
}

// ByName returns a registered policy seeded with seed.
func ByName(name string, seed uint64) (Policy, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (known: %v)", name, Names())
	}
	return ctor(seed), nil
}

// Names lists the registered policy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x6a09e667f3bcc909))
}

// Random picks uniformly among the legal actions.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random policy with its own generator.
func NewRandom(seed uint64) *Random {
	return &Random{rng: newRNG(seed)}
}

func (*Random) Name() string { return "random" }

func (r *Random) Choose(_ *engine.GameState, legal []engine.Action) engine.Action {
	return legal[r.rng.IntN(len(legal))]
}

// FirstLegal always picks the lowest action id. Useful for reproducible
// smoke tests.
type FirstLegal struct{}

func (FirstLegal) Name() string { return "first" }

func (FirstLegal) Choose(_ *engine.GameState, legal []engine.Action) engine.Action {
	return legal[0]
}
