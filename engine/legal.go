package engine

import (
	"fmt"
	"math/bits"
)

// DecisionContext describes what kind of decision the acting player faces.
type DecisionContext uint8

const (
	CtxTurnStart DecisionContext = iota // 0
	CtxResponse                         // 1: opponent answers a declared action
	CtxBlockResponse                    // 2: actor answers a block
	CtxLoseCard                         // 3: forced card loss after a lost challenge
	CtxExchange                         // 4: actor picks two of four cards to return
	CtxChance                           // 5
	CtxTerminal                         // 6
)

// DecisionCtx returns the current decision context.
func (g *GameState) DecisionCtx() DecisionContext {
	if g.IsTerminal() {
		return CtxTerminal
	}
	if g.DealLen > 0 {
		return CtxChance
	}
	cur := g.MovePlayer
	switch {
	case g.Players[cur].LostChallenge:
		return CtxLoseCard
	case g.TurnBegin:
		return CtxTurnStart
	case cur != g.TurnPlayer:
		return CtxResponse
	case g.Players[cur].LastAction == ActionExchange:
		return CtxExchange
	}
	return CtxBlockResponse
}

func setBit(mask *uint32, a Action) { *mask |= 1 << a }

// LegalMask returns a bitmask of legal action ids: bit i is set if action i
// (or, at chance nodes, CardType i) is legal.
func (g *GameState) LegalMask() uint32 {
	var mask uint32

	switch g.DecisionCtx() {
	case CtxTerminal:
		// No legal actions.

	case CtxChance:
		for t := CardType(0); t < NumCardTypes; t++ {
			if g.Deck[t] > 0 {
				setBit(&mask, CardAction(t))
			}
		}

	case CtxLoseCard:
		g.legalLoseCard(&mask, g.MovePlayer)

	case CtxTurnStart:
		g.legalTurnStart(&mask)

	case CtxResponse:
		g.legalResponse(&mask)

	case CtxExchange:
		g.legalExchange(&mask)

	case CtxBlockResponse:
		g.legalBlockResponse(&mask)
	}

	return mask
}

// LegalActions returns legal actions in ascending id order.
func (g *GameState) LegalActions() []Action {
	mask := g.LegalMask()
	actions := make([]Action, 0, bits.OnesCount32(mask))
	for mask != 0 {
		a := Action(bits.TrailingZeros32(mask))
		actions = append(actions, a)
		mask &= mask - 1
	}
	return actions
}

// IsLegal reports whether a is in the current legal set.
func (g *GameState) IsLegal(a Action) bool {
	return a < NumActions && g.LegalMask()&(1<<a) != 0
}

// legalLoseCard adds a LoseCard action for each of p's face-down slots.
func (g *GameState) legalLoseCard(mask *uint32, p uint8) {
	pl := &g.Players[p]
	if pl.HandLen > 0 && pl.Hand[0].IsFaceDown() {
		setBit(mask, ActionLoseCard1)
	}
	if pl.HandLen > 1 && pl.Hand[1].IsFaceDown() {
		setBit(mask, ActionLoseCard2)
	}
}

// legalTurnStart populates the opening menu of a turn.
func (g *GameState) legalTurnStart(mask *uint32) {
	cp := &g.Players[g.MovePlayer]
	op := &g.Players[OpponentOf(g.MovePlayer)]

	if cp.Coins >= MandatoryCoupCoins {
		setBit(mask, ActionCoup)
		return
	}

	setBit(mask, ActionIncome)
	setBit(mask, ActionForeignAid)
	if cp.Coins >= CoupCost {
		setBit(mask, ActionCoup)
	}
	setBit(mask, ActionTax)
	if cp.Coins >= AssassinateCost {
		setBit(mask, ActionAssassinate)
	}
	setBit(mask, ActionExchange)
	if op.Coins > 0 {
		setBit(mask, ActionSteal)
	}
}

// legalResponse populates the response window keyed by the actor's declaration.
func (g *GameState) legalResponse(mask *uint32) {
	actor := g.TurnPlayer
	switch last := g.Players[actor].LastAction; last {
	case ActionForeignAid:
		setBit(mask, ActionPassForeignAid)
		setBit(mask, ActionBlockForeignAid)
	case ActionTax:
		setBit(mask, ActionPassTax)
		setBit(mask, ActionChallengeTax)
	case ActionExchange:
		setBit(mask, ActionPassExchange)
		setBit(mask, ActionChallengeExchange)
	case ActionSteal:
		setBit(mask, ActionPassSteal)
		setBit(mask, ActionBlockSteal)
		setBit(mask, ActionChallengeSteal)
	case ActionAssassinate:
		g.legalLoseCard(mask, g.MovePlayer)
		setBit(mask, ActionBlockAssassinate)
		setBit(mask, ActionChallengeAssassinate)
	case ActionCoup:
		g.legalLoseCard(mask, g.MovePlayer)
	default:
		panic(fmt.Sprintf("engine: response window after %s", last))
	}
}

// legalExchange populates the return-pair choices. A face-up card cannot be
// returned, which leaves three pairs when one of the four is revealed.
func (g *GameState) legalExchange(mask *uint32) {
	cp := &g.Players[g.MovePlayer]
	if cp.HandLen != MaxHandSize {
		panic(fmt.Sprintf("engine: player %d mid-exchange holds %d cards", g.MovePlayer, cp.HandLen))
	}
	for i, pair := range exchangePairs {
		if cp.Hand[pair[0]].IsFaceDown() && cp.Hand[pair[1]].IsFaceDown() {
			setBit(mask, ActionExchangeReturn12+Action(i))
		}
	}
}

// legalBlockResponse populates the actor's answer to a block.
func (g *GameState) legalBlockResponse(mask *uint32) {
	blocker := OpponentOf(g.MovePlayer)
	switch last := g.Players[blocker].LastAction; last {
	case ActionBlockForeignAid:
		setBit(mask, ActionPassForeignAidBlock)
		setBit(mask, ActionChallengeForeignAidBlock)
	case ActionBlockAssassinate:
		setBit(mask, ActionPassAssassinateBlock)
		setBit(mask, ActionChallengeAssassinateBlock)
	case ActionBlockSteal:
		setBit(mask, ActionPassStealBlock)
		setBit(mask, ActionChallengeStealBlock)
	default:
		panic(fmt.Sprintf("engine: block response after %s", last))
	}
}
