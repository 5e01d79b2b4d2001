package policy

import (
	"math/rand/v2"

	"github.com/BStarcheus/open-spiel-coup/engine"
)

// Honest never claims a card it does not hold. It challenges only claims it
// can prove false from what it sees, blocks whenever it truthfully can, and
// otherwise lets the opponent's action through. Remaining ties are broken at
// random.
type Honest struct {
	rng *rand.Rand
}

// NewHonest returns an Honest policy with its own generator.
func NewHonest(seed uint64) *Honest {
	return &Honest{rng: newRNG(seed)}
}

func (*Honest) Name() string { return "honest" }

func (h *Honest) Choose(g *engine.GameState, legal []engine.Action) engine.Action {
	me := g.CurrentPlayer()
	opp := int(engine.OpponentOf(uint8(me)))

	var challenges, blocks, rest []engine.Action
	for _, a := range legal {
		switch {
		case isChallenge(a):
			if provablyBluffing(g, me, g.LastAction(opp)) {
				challenges = append(challenges, a)
			}
		case isBlock(a):
			if holdsAny(g, me, engine.ClaimedCards(a)) {
				blocks = append(blocks, a)
			}
		case engine.ClaimedCards(a) != nil:
			if holdsAny(g, me, engine.ClaimedCards(a)) {
				rest = append(rest, a)
			}
		default:
			rest = append(rest, a)
		}
	}

	switch {
	case len(challenges) > 0:
		return challenges[0]
	case len(blocks) > 0:
		return blocks[0]
	case len(rest) > 0:
		return h.pick(rest)
	}
	// No honest option.
	return h.pick(legal)
}

// pick prefers a Coup when one is affordable and otherwise chooses uniformly.
func (h *Honest) pick(actions []engine.Action) engine.Action {
	for _, a := range actions {
		if a == engine.ActionCoup {
			return a
		}
	}
	return actions[h.rng.IntN(len(actions))]
}

func isChallenge(a engine.Action) bool {
	return a >= engine.ActionChallengeForeignAidBlock && a <= engine.ActionChallengeStealBlock
}

func isBlock(a engine.Action) bool {
	return a >= engine.ActionBlockForeignAid && a <= engine.ActionBlockSteal
}

// holdsAny reports whether player p has a face-down card of one of types.
func holdsAny(g *engine.GameState, p int, types []engine.CardType) bool {
	for _, c := range g.Cards(p) {
		if !c.IsFaceDown() {
			continue
		}
		for _, t := range types {
			if c.Type() == t {
				return true
			}
		}
	}
	return false
}

// provablyBluffing reports whether every copy of each card that would justify
// claim is visible to player p, either in p's own hand or face up in front of
// the opponent.
func provablyBluffing(g *engine.GameState, p int, claim engine.Action) bool {
	types := engine.ClaimedCards(claim)
	if types == nil {
		return false
	}
	opp := int(engine.OpponentOf(uint8(p)))
	var seen [engine.NumCardTypes]int
	for _, c := range g.Cards(p) {
		seen[c.Type()]++
	}
	for _, c := range g.Cards(opp) {
		if !c.IsFaceDown() {
			seen[c.Type()]++
		}
	}
	for _, t := range types {
		if seen[t] < engine.CopiesPerType {
			return false
		}
	}
	return true
}
