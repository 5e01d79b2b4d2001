package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncome(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	apply(t, &g, ActionIncome)

	assert.Equal(t, 2, g.Coins(0))
	assert.Equal(t, 1, g.CurrentPlayer())
	assert.Equal(t, [NumPlayers]float64{0, 0}, g.Rewards())
	assert.Equal(t, ActionIncome, g.LastAction(0))
	assert.Equal(t, uint16(1), g.TurnNumber)
}

// TestPassForeignAidResolvesInSameStep covers the pass cascade: one call
// records the pass and pays the actor.
func TestPassForeignAidResolvesInSameStep(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	apply(t, &g, ActionForeignAid)
	require.Equal(t, 1, g.CurrentPlayer())

	apply(t, &g, ActionPassForeignAid)
	assert.Equal(t, ActionPassForeignAid, g.LastAction(1))
	assert.Equal(t, 3, g.Coins(0))
	assert.Equal(t, 2, g.Coins(1))
	assert.Equal(t, 1, g.CurrentPlayer())
	assert.Equal(t, CtxTurnStart, g.DecisionCtx())
}

func TestForeignAidBlockAccepted(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	apply(t, &g, ActionForeignAid, ActionBlockForeignAid, ActionPassForeignAidBlock)

	assert.Equal(t, 1, g.Coins(0), "blocked foreign aid pays nothing")
	assert.Equal(t, 1, g.CurrentPlayer())
	assert.Equal(t, CtxTurnStart, g.DecisionCtx())
}

func TestTaxPassed(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	apply(t, &g, ActionTax, ActionPassTax)

	assert.Equal(t, 4, g.Coins(0))
	assert.Equal(t, 1, g.CurrentPlayer())
}

func TestStealPassed(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	apply(t, &g, ActionSteal, ActionPassSteal)

	assert.Equal(t, 3, g.Coins(0))
	assert.Equal(t, 0, g.Coins(1))
}

func TestStealTakesOnlyWhatIsThere(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	g.Players[1].Coins = 1
	apply(t, &g, ActionSteal, ActionPassSteal)

	assert.Equal(t, 2, g.Coins(0))
	assert.Equal(t, 0, g.Coins(1))
}

func TestStealBlockAccepted(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	apply(t, &g, ActionSteal, ActionBlockSteal, ActionPassStealBlock)

	assert.Equal(t, 1, g.Coins(0))
	assert.Equal(t, 2, g.Coins(1))
	assert.Equal(t, 1, g.CurrentPlayer())
}

// TestCoup plays incomes until P1 can afford a coup.
func TestCoup(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	for i := 0; i < 11; i++ {
		apply(t, &g, ActionIncome)
	}
	require.Equal(t, 1, g.CurrentPlayer())
	require.Equal(t, 7, g.Coins(0))
	require.Equal(t, 7, g.Coins(1))

	apply(t, &g, ActionCoup)
	assert.Equal(t, 0, g.Coins(1))
	assert.Equal(t, 0, g.CurrentPlayer())
	assert.Equal(t, []Action{ActionLoseCard1, ActionLoseCard2}, g.LegalActions())

	apply(t, &g, ActionLoseCard1)
	assert.Equal(t, []CardState{FaceUp, FaceDown}, g.CardStates(0))
	assert.Equal(t, [NumPlayers]float64{-1, 1}, g.Rewards())
	assert.Equal(t, 0, g.CurrentPlayer(), "turn passes back to P0")
	assert.Equal(t, CtxTurnStart, g.DecisionCtx())
	assert.Equal(t, uint16(12), g.TurnNumber)
}

func TestAssassinateAccepted(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	g.Players[0].Coins = 3
	apply(t, &g, ActionAssassinate)
	assert.Equal(t, 0, g.Coins(0), "cost is paid on declaration")

	apply(t, &g, ActionLoseCard2)
	assert.Equal(t, []CardState{FaceDown, FaceUp}, g.CardStates(1))
	assert.Equal(t, [NumPlayers]float64{1, -1}, g.Rewards())
	assert.Equal(t, 1, g.CurrentPlayer())
}

func TestAssassinateBlockAccepted(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	g.Players[0].Coins = 3
	apply(t, &g, ActionAssassinate, ActionBlockAssassinate, ActionPassAssassinateBlock)

	assert.Equal(t, 0, g.Coins(0), "blocked assassination is not refunded")
	assert.Zero(t, g.FaceUpCount(1))
	assert.Equal(t, 1, g.CurrentPlayer())
}

func TestExchangePassedDealsTwo(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	apply(t, &g, ActionExchange, ActionPassExchange)

	assert.Equal(t, ChancePlayer, g.CurrentPlayer())
	p, ok := g.NextDealRecipient()
	require.True(t, ok)
	assert.Equal(t, 0, p)
	assert.Equal(t, uint8(2), g.DealLen)
}

func TestRewardsResetEachStep(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	g.Players[0].Coins = 7
	apply(t, &g, ActionCoup, ActionLoseCard1)
	require.Equal(t, [NumPlayers]float64{1, -1}, g.Rewards())

	apply(t, &g, ActionIncome)
	assert.Equal(t, [NumPlayers]float64{0, 0}, g.Rewards())
}

func TestApplyAfterGameOver(t *testing.T) {
	g := newDealtGame(t, Ambassador, Contessa, Assassin, Duke)
	g.Players[1].Hand[0] = g.Players[1].Hand[0].revealed()
	g.Players[0].Coins = 7
	apply(t, &g, ActionCoup, ActionLoseCard2)
	require.True(t, g.IsTerminal())

	err := g.ApplyAction(ActionIncome)
	assert.ErrorIs(t, err, ErrGameOver)
}
