package engine

import (
	"fmt"
	"math/rand/v2"
)

// isAlive reports whether player p is still in the game. A player holding
// fewer than two cards is mid-deal or awaiting a replacement draw and counts
// as alive.
func (g *GameState) isAlive(p uint8) bool {
	pl := &g.Players[p]
	if pl.HandLen < CardsPerPlayer {
		return true
	}
	for i := uint8(0); i < pl.HandLen; i++ {
		if pl.Hand[i].IsFaceDown() {
			return true
		}
	}
	return false
}

// IsTerminal returns true once fewer than two players hold a face-down card.
func (g *GameState) IsTerminal() bool {
	alive := 0
	for p := uint8(0); p < NumPlayers; p++ {
		if g.isAlive(p) {
			alive++
		}
	}
	return alive <= 1
}

// Winner returns the surviving player of a finished game.
func (g *GameState) Winner() (int, bool) {
	if !g.IsTerminal() {
		return 0, false
	}
	for p := uint8(0); p < NumPlayers; p++ {
		if g.isAlive(p) {
			return int(p), true
		}
	}
	return 0, false
}

// Rewards returns the per-player reward of the most recent decision step:
// -1 per card the player revealed, +1 per card the opponent revealed.
func (g *GameState) Rewards() [NumPlayers]float64 { return g.StepRewards }

// Returns returns each player's cumulative payoff, recomputed from the
// face-up cards rather than accumulated from Rewards.
func (g *GameState) Returns() [NumPlayers]float64 {
	var r [NumPlayers]float64
	for p := uint8(0); p < NumPlayers; p++ {
		r[p] = float64(g.faceUpCount(OpponentOf(p)) - g.faceUpCount(p))
	}
	return r
}

// ---------------------------------------------------------------------------
// StateHash
// ---------------------------------------------------------------------------

// StateHash returns a 64-bit FNV-1a hash of the game state. Equal states
// always hash equally; it is intended for transposition tables and for
// seeding Monte Carlo PRNGs deterministically.
func (g *GameState) StateHash() uint64 {
	h := uint64(14695981039346656037) // FNV-1a offset basis
	const prime = uint64(1099511628211)
	mix := func(v uint64) {
		h ^= v
		h *= prime
	}

	for p := range g.Players {
		pl := &g.Players[p]
		for i := uint8(0); i < pl.HandLen; i++ {
			mix(uint64(pl.Hand[i]))
		}
		mix(uint64(pl.HandLen)<<8 | uint64(pl.Coins)<<16 | uint64(pl.LastAction)<<24)
		if pl.LostChallenge {
			mix(1 << 32)
		}
	}
	for t, n := range g.Deck {
		mix(uint64(t)<<8 | uint64(n))
	}
	for i := uint8(0); i < g.DealLen; i++ {
		mix(uint64(g.DealQueue[i]) << 40)
	}
	mix(uint64(g.DealLen) << 44)
	mix(uint64(g.TurnPlayer)<<48 | uint64(g.MovePlayer)<<52)
	mix(uint64(g.TurnNumber) << 32)
	if g.TurnBegin {
		mix(1 << 56)
	}
	mix(uint64(g.AfterLoss) << 60)
	return h
}

// ---------------------------------------------------------------------------
// Invariants
// ---------------------------------------------------------------------------

// CheckInvariants verifies card conservation and hand shape. It returns the
// first violation found.
func (g *GameState) CheckInvariants() error {
	total := g.DeckSize()
	var perType [NumCardTypes]int
	for t, n := range g.Deck {
		perType[t] += int(n)
	}
	for p := range g.Players {
		pl := &g.Players[p]
		if pl.HandLen > MaxHandSize {
			return fmt.Errorf("player %d holds %d cards", p, pl.HandLen)
		}
		for i := uint8(0); i < pl.HandLen; i++ {
			t := pl.Hand[i].Type()
			if t >= NumCardTypes {
				return fmt.Errorf("player %d slot %d holds invalid card %d", p, i, uint8(pl.Hand[i]))
			}
			perType[t]++
			total++
		}
		if pl.HandLen > CardsPerPlayer && !(g.TurnPlayer == uint8(p) && !g.TurnBegin) {
			return fmt.Errorf("player %d holds %d cards outside an exchange", p, pl.HandLen)
		}
	}
	if total != DeckSize {
		return fmt.Errorf("card conservation: %d cards accounted for, want %d", total, DeckSize)
	}
	for t, n := range perType {
		if n != CopiesPerType {
			return fmt.Errorf("card conservation: %d copies of %s, want %d", n, CardType(t), CopiesPerType)
		}
	}
	if g.DealLen > maxDealQueue {
		return fmt.Errorf("deal queue length %d exceeds %d", g.DealLen, maxDealQueue)
	}
	sum := g.StepRewards[0] + g.StepRewards[1]
	if sum != 0 {
		return fmt.Errorf("step rewards sum to %v", sum)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Information-set resampling
// ---------------------------------------------------------------------------

// ResampleFromInfostate returns a copy of the state in which the cards player
// cannot see (the opponent's face-down cards) are redrawn from the pool of
// unseen cards, i.e. the deck plus those face-down cards. Public information,
// player's own hand, and deck totals are preserved.
func (g *GameState) ResampleFromInfostate(player int, rng *rand.Rand) GameState {
	s := g.Clone()
	opp := OpponentOf(uint8(player))
	op := &s.Players[opp]

	pool := s.Deck
	for i := uint8(0); i < op.HandLen; i++ {
		if op.Hand[i].IsFaceDown() {
			pool[op.Hand[i].Type()]++
		}
	}

	for i := uint8(0); i < op.HandLen; i++ {
		if !op.Hand[i].IsFaceDown() {
			continue
		}
		t := drawWeighted(&pool, rng)
		op.Hand[i] = NewCard(t, FaceDown)
	}
	s.Deck = pool
	s.sortHand(opp)
	return s
}

// drawWeighted removes and returns one card type from pool with probability
// proportional to its count.
func drawWeighted(pool *[NumCardTypes]uint8, rng *rand.Rand) CardType {
	total := 0
	for _, n := range pool {
		total += int(n)
	}
	if total == 0 {
		panic("engine: resampling from an empty pool")
	}
	k := rng.IntN(total)
	for t, n := range pool {
		if k < int(n) {
			pool[t]--
			return CardType(t)
		}
		k -= int(n)
	}
	panic("engine: unreachable")
}
