package engine

import "fmt"

// ChanceOutcome is one possible card draw and its probability.
type ChanceOutcome struct {
	Card CardType
	Prob float64
}

// ChanceOutcomes returns the card types that can be drawn next, each with
// probability remaining/total. It returns nil outside chance nodes.
func (g *GameState) ChanceOutcomes() []ChanceOutcome {
	if !g.IsChanceNode() {
		return nil
	}
	total := g.DeckSize()
	if total == 0 {
		panic("engine: chance node with an empty deck")
	}
	out := make([]ChanceOutcome, 0, NumCardTypes)
	for t := CardType(0); t < NumCardTypes; t++ {
		if n := g.Deck[t]; n > 0 {
			out = append(out, ChanceOutcome{Card: t, Prob: float64(n) / float64(total)})
		}
	}
	return out
}

// dealCard draws a card of type t for the player at the head of the queue.
func (g *GameState) dealCard(t CardType) error {
	if t >= NumCardTypes {
		return fmt.Errorf("%w: chance outcome %d is not a card type", ErrIllegalAction, uint8(t))
	}
	if g.Deck[t] == 0 {
		return fmt.Errorf("%w: no %s left in the deck", ErrIllegalAction, t)
	}
	p := g.DealQueue[0]
	pl := &g.Players[p]
	if pl.HandLen >= MaxHandSize {
		panic(fmt.Sprintf("engine: player %d hand is full while dealing", p))
	}

	g.Deck[t]--
	pl.Hand[pl.HandLen] = NewCard(t, FaceDown)
	pl.HandLen++
	g.sortHand(p)

	copy(g.DealQueue[:], g.DealQueue[1:g.DealLen])
	g.DealLen--
	g.DealQueue[g.DealLen] = 0
	return nil
}

// enqueueDeal schedules a chance draw for player p.
func (g *GameState) enqueueDeal(p uint8) {
	if g.DealLen >= maxDealQueue {
		panic("engine: deal queue overflow")
	}
	g.DealQueue[g.DealLen] = p
	g.DealLen++
}

// returnCard removes the card at slot from player p's hand and puts it back
// into the deck.
func (g *GameState) returnCard(p uint8, slot uint8) {
	pl := &g.Players[p]
	if slot >= pl.HandLen {
		panic(fmt.Sprintf("engine: return of slot %d from a %d-card hand", slot, pl.HandLen))
	}
	g.Deck[pl.Hand[slot].Type()]++
	copy(pl.Hand[slot:], pl.Hand[slot+1:pl.HandLen])
	pl.HandLen--
	pl.Hand[pl.HandLen] = 0
}

// replaceProven shuffles a card shown to win a challenge back into the deck
// and schedules a fresh draw for its owner.
func (g *GameState) replaceProven(p uint8, slot uint8) {
	g.returnCard(p, slot)
	g.enqueueDeal(p)
}
