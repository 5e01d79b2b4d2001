package engine

import "fmt"

// challengeClaim resolves a challenge by the responder against the turn
// player's declared action.
func (g *GameState) challengeClaim(a Action) {
	challenger := g.MovePlayer
	actor := g.TurnPlayer
	claimed := g.Players[actor].LastAction

	slot, honest := g.faceDownSlot(actor, claims[claimed])
	if !honest {
		if claimed == ActionAssassinate {
			g.Players[actor].Coins += AssassinateCost
		}
		g.Players[actor].LostChallenge = true
		g.AfterLoss = FollowAdvanceTurn
		g.MovePlayer = actor
		return
	}

	switch claimed {
	case ActionAssassinate:
		// Assassination and the lost challenge land on the same hand at once.
		g.eliminate(challenger)
		return
	case ActionTax:
		g.resolveTax(actor)
		g.AfterLoss = FollowAdvanceTurn
	case ActionSteal:
		g.resolveSteal(actor)
		g.AfterLoss = FollowAdvanceTurn
	case ActionExchange:
		g.AfterLoss = FollowExchange
	default:
		panic(fmt.Sprintf("engine: %s challenged against %s", a, claimed))
	}

	g.replaceProven(actor, slot)
	if claimed == ActionExchange {
		g.enqueueDeal(actor)
		g.enqueueDeal(actor)
	}
	g.Players[challenger].LostChallenge = true
}

// challengeBlock resolves the turn player's challenge against the
// responder's block.
func (g *GameState) challengeBlock(a Action) {
	challenger := g.MovePlayer
	blocker := OpponentOf(challenger)
	block := g.Players[blocker].LastAction

	slot, honest := g.faceDownSlot(blocker, claims[block])
	if honest {
		g.replaceProven(blocker, slot)
		g.Players[challenger].LostChallenge = true
		g.AfterLoss = FollowAdvanceTurn
		return
	}

	switch block {
	case ActionBlockForeignAid:
		g.AfterLoss = FollowForeignAid
	case ActionBlockSteal:
		g.AfterLoss = FollowSteal
	case ActionBlockAssassinate:
		// Lost challenge plus the assassination it failed to stop.
		g.eliminate(blocker)
		return
	default:
		panic(fmt.Sprintf("engine: %s challenged against %s", a, block))
	}
	g.Players[blocker].LostChallenge = true
	g.MovePlayer = blocker
}

// loseCard flips player p's card at slot face up and runs the pending
// follow-up.
func (g *GameState) loseCard(p uint8, slot uint8) {
	pl := &g.Players[p]
	if slot >= pl.HandLen || !pl.Hand[slot].IsFaceDown() {
		panic(fmt.Sprintf("engine: player %d cannot lose slot %d", p, slot))
	}
	pl.Hand[slot] = pl.Hand[slot].revealed()
	pl.LostChallenge = false
	g.StepRewards[p]--
	g.StepRewards[OpponentOf(p)]++

	follow := g.AfterLoss
	g.AfterLoss = FollowAdvanceTurn
	if g.IsTerminal() {
		return
	}

	switch follow {
	case FollowAdvanceTurn:
		g.advanceTurn()
	case FollowForeignAid:
		g.resolveForeignAid(g.TurnPlayer)
		g.advanceTurn()
	case FollowSteal:
		g.resolveSteal(g.TurnPlayer)
		g.advanceTurn()
	case FollowExchange:
		g.MovePlayer = g.TurnPlayer
		g.TurnBegin = false
	default:
		panic(fmt.Sprintf("engine: unknown follow-up %d", follow))
	}
}

// eliminate reveals every face-down card player p holds in one step.
func (g *GameState) eliminate(p uint8) {
	pl := &g.Players[p]
	for i := uint8(0); i < pl.HandLen; i++ {
		if pl.Hand[i].IsFaceDown() {
			pl.Hand[i] = pl.Hand[i].revealed()
			g.StepRewards[p]--
			g.StepRewards[OpponentOf(p)]++
		}
	}
	pl.LostChallenge = false
	g.AfterLoss = FollowAdvanceTurn
}
