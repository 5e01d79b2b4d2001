package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BStarcheus/open-spiel-coup/engine"
)

func dealt(t *testing.T, deal ...engine.CardType) engine.GameState {
	t.Helper()
	g := engine.NewGame()
	for _, ct := range deal {
		require.NoError(t, g.ApplyAction(engine.CardAction(ct)))
	}
	return g
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		p, err := ByName(name, 1)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}

	_, err := ByName("bluffer", 1)
	assert.Error(t, err)
	assert.Equal(t, []string{"first", "honest", "random"}, Names())
}

func TestFirstLegal(t *testing.T) {
	g := dealt(t, engine.Ambassador, engine.Contessa, engine.Assassin, engine.Duke)
	legal := g.LegalActions()
	assert.Equal(t, engine.ActionIncome, FirstLegal{}.Choose(&g, legal))
}

func TestRandomStaysLegalAndIsSeeded(t *testing.T) {
	g := dealt(t, engine.Ambassador, engine.Contessa, engine.Assassin, engine.Duke)
	legal := g.LegalActions()

	a, b := NewRandom(42), NewRandom(42)
	for i := 0; i < 50; i++ {
		x := a.Choose(&g, legal)
		assert.Contains(t, legal, x)
		assert.Equal(t, x, b.Choose(&g, legal), "same seed, same choices")
	}
}

func TestHonestNeverBluffsAtTurnStart(t *testing.T) {
	// P0 holds Assassin and Ambassador: Tax and Steal would be bluffs.
	g := dealt(t, engine.Ambassador, engine.Contessa, engine.Assassin, engine.Duke)
	h := NewHonest(3)
	for i := 0; i < 100; i++ {
		a := h.Choose(&g, g.LegalActions())
		assert.NotEqual(t, engine.ActionTax, a)
		assert.NotEqual(t, engine.ActionSteal, a)
	}
}

func TestHonestCoupsWhenAffordable(t *testing.T) {
	g := dealt(t, engine.Ambassador, engine.Contessa, engine.Assassin, engine.Duke)
	g.Players[0].Coins = 7
	assert.Equal(t, engine.ActionCoup, NewHonest(1).Choose(&g, g.LegalActions()))
}

func TestHonestBlocksTruthfully(t *testing.T) {
	// P1 holds Contessa and Duke.
	g := dealt(t, engine.Ambassador, engine.Contessa, engine.Assassin, engine.Duke)
	require.NoError(t, g.ApplyAction(engine.ActionForeignAid))
	assert.Equal(t, engine.ActionBlockForeignAid, NewHonest(1).Choose(&g, g.LegalActions()))

	g = dealt(t, engine.Ambassador, engine.Contessa, engine.Assassin, engine.Duke)
	require.NoError(t, g.ApplyAction(engine.ActionSteal))
	a := NewHonest(1).Choose(&g, g.LegalActions())
	assert.Equal(t, engine.ActionPassSteal, a, "no Captain or Ambassador to block with")
}

func TestHonestChallengesProvableBluff(t *testing.T) {
	// P1 holds two Dukes; the third is face up in P0's hand, so P0 cannot
	// hold a live Duke.
	g := dealt(t, engine.Duke, engine.Duke, engine.Ambassador, engine.Duke)
	g.Players[0].Hand[1] = engine.NewCard(engine.Duke, engine.FaceUp)
	require.NoError(t, g.ApplyAction(engine.ActionTax))

	assert.Equal(t, engine.ActionChallengeTax, NewHonest(1).Choose(&g, g.LegalActions()))
}

func TestHonestPassesUnprovableClaim(t *testing.T) {
	g := dealt(t, engine.Ambassador, engine.Contessa, engine.Assassin, engine.Duke)
	require.NoError(t, g.ApplyAction(engine.ActionTax))
	assert.Equal(t, engine.ActionPassTax, NewHonest(1).Choose(&g, g.LegalActions()))
}
