package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is returned for an action outside the legal set,
	// including a chance draw of a depleted card type.
	ErrIllegalAction = errors.New("illegal action")
	// ErrGameOver is returned for any action applied to a terminal state.
	ErrGameOver = errors.New("game is already over")
)

// ApplyAction applies an action by id. At chance nodes a is read as the
// CardType dealt to the next queued player. The state is unchanged when an
// error is returned.
//
// A single call may cascade: a Pass resolves the action it lets through, and
// a failed challenge against Tax or Steal completes the claimed effect.
func (g *GameState) ApplyAction(a Action) error {
	if g.IsTerminal() {
		return ErrGameOver
	}
	if g.DealLen > 0 {
		return g.dealCard(CardType(a))
	}
	if !g.IsLegal(a) {
		return fmt.Errorf("%w: %s by player %d (legal: %v)", ErrIllegalAction, a, g.MovePlayer, g.LegalActions())
	}

	g.StepRewards = [NumPlayers]float64{}
	g.applyDecision(a)
	return nil
}

// applyDecision dispatches a legal decision-node action.
func (g *GameState) applyDecision(a Action) {
	cur := g.MovePlayer
	g.Players[cur].LastAction = a

	switch a {
	case ActionIncome:
		g.Players[cur].Coins++
		g.advanceTurn()

	case ActionCoup:
		g.Players[cur].Coins -= CoupCost
		g.AfterLoss = FollowAdvanceTurn
		g.advanceMove()

	case ActionAssassinate:
		g.Players[cur].Coins -= AssassinateCost
		g.AfterLoss = FollowAdvanceTurn
		g.advanceMove()

	case ActionForeignAid, ActionTax, ActionExchange, ActionSteal:
		g.advanceMove()

	case ActionLoseCard1, ActionLoseCard2:
		slot, _ := ActionIsLoseCard(a)
		g.loseCard(cur, slot)

	case ActionPassForeignAid, ActionPassTax, ActionPassExchange, ActionPassSteal:
		g.passAction(a)

	case ActionPassForeignAidBlock, ActionPassAssassinateBlock, ActionPassStealBlock:
		// The block stands; the declared action is cancelled.
		g.advanceTurn()

	case ActionBlockForeignAid, ActionBlockAssassinate, ActionBlockSteal:
		g.advanceMove()

	case ActionChallengeTax, ActionChallengeExchange, ActionChallengeSteal, ActionChallengeAssassinate:
		g.challengeClaim(a)

	case ActionChallengeForeignAidBlock, ActionChallengeAssassinateBlock, ActionChallengeStealBlock:
		g.challengeBlock(a)

	case ActionExchangeReturn12, ActionExchangeReturn13, ActionExchangeReturn14,
		ActionExchangeReturn23, ActionExchangeReturn24, ActionExchangeReturn34:
		i, j, _ := ActionIsExchangeReturn(a)
		g.exchangeReturn(cur, i, j)

	default:
		panic(fmt.Sprintf("engine: unhandled action %s", a))
	}
}

// passAction lets the turn player's declared action through and resolves it
// in the same step.
func (g *GameState) passAction(a Action) {
	actor := g.TurnPlayer
	switch a {
	case ActionPassForeignAid:
		g.resolveForeignAid(actor)
		g.advanceTurn()
	case ActionPassTax:
		g.resolveTax(actor)
		g.advanceTurn()
	case ActionPassSteal:
		g.resolveSteal(actor)
		g.advanceTurn()
	case ActionPassExchange:
		g.beginExchange(actor)
	default:
		panic(fmt.Sprintf("engine: %s is not a pass", a))
	}
}

// ---------------------------------------------------------------------------
// Effects
// ---------------------------------------------------------------------------

func (g *GameState) resolveForeignAid(actor uint8) {
	g.Players[actor].Coins += ForeignAidCoins
}

func (g *GameState) resolveTax(actor uint8) {
	g.Players[actor].Coins += TaxCoins
}

// resolveSteal moves up to StealCoins from the victim to the actor.
func (g *GameState) resolveSteal(actor uint8) {
	victim := &g.Players[OpponentOf(actor)]
	n := min(victim.Coins, StealCoins)
	victim.Coins -= n
	g.Players[actor].Coins += n
}

// beginExchange queues the two exchange draws and returns the move to the
// actor, who chooses the returns once both cards are in hand.
func (g *GameState) beginExchange(actor uint8) {
	g.enqueueDeal(actor)
	g.enqueueDeal(actor)
	g.MovePlayer = actor
	g.TurnBegin = false
}

// exchangeReturn puts the cards at slots i < j back into the deck and keeps
// the other two.
func (g *GameState) exchangeReturn(p uint8, i, j uint8) {
	pl := &g.Players[p]
	if pl.HandLen != MaxHandSize {
		panic(fmt.Sprintf("engine: exchange return from a %d-card hand", pl.HandLen))
	}
	if !pl.Hand[i].IsFaceDown() || !pl.Hand[j].IsFaceDown() {
		panic("engine: exchange return of a face-up card")
	}
	g.returnCard(p, j)
	g.returnCard(p, i)
	g.sortHand(p)
	g.advanceTurn()
}
