package agent

import (
	"fmt"
	"strings"

	"github.com/BStarcheus/open-spiel-coup/engine"
)

// slotIndex returns the one-hot index for card c as seen by its owner or by
// the opponent.
func slotIndex(c engine.Card, own bool) int {
	if own || !c.IsFaceDown() {
		return int(c.Type())
	}
	return UnknownSlot
}

// lastActionIndex maps ActionNone to the trailing "none" slot.
func lastActionIndex(a engine.Action) int {
	if a >= engine.NumActions {
		return NumActions
	}
	return int(a)
}

func encodeHand(g *engine.GameState, p int, own bool, out *[InputDim]float32, offset int) {
	cards := g.Cards(p)
	for i := 0; i < MaxHand; i++ {
		if i >= len(cards) {
			out[offset+EmptySlot] = 1.0
		} else {
			out[offset+slotIndex(cards[i], own)] = 1.0
			if !cards[i].IsFaceDown() {
				out[offset+FaceUpOffset] = 1.0
			}
		}
		offset += SlotDim
	}
}

// Encode writes player's view of g into out. Only information available to
// player is used: the opponent's face-down cards are encoded as unknown and
// deck composition is reduced to its size.
// out is zeroed internally before writing.
func Encode(g *engine.GameState, player int, out *[InputDim]float32) {
	*out = [InputDim]float32{}
	opp := int(engine.OpponentOf(uint8(player)))

	// Observer: 2-dim one-hot.
	out[offObserver+player] = 1.0

	// Hands: 4 slots × 8 each.
	encodeHand(g, player, true, out, offOwnHand)
	encodeHand(g, opp, false, out, offOppHand)

	// Coins, own then opponent (normalized).
	out[offCoins] = min(float32(g.Coins(player))/maxCoins, 1)
	out[offCoins+1] = min(float32(g.Coins(opp))/maxCoins, 1)

	// Deck size (normalized).
	out[offDeckSize] = float32(g.DeckSize()) / engine.DeckSize

	// Decision context: 7-dim one-hot.
	out[offContext+int(g.DecisionCtx())] = 1.0

	// Whose turn it is, from the observer's side.
	if int(g.TurnPlayer) == player {
		out[offTurnPlayer] = 1.0
	}

	// Last declared action per player: 33-dim one-hot each.
	out[offOwnLast+lastActionIndex(g.LastAction(player))] = 1.0
	out[offOppLast+lastActionIndex(g.LastAction(opp))] = 1.0
}

// ActionMask writes the legal action mask into out.
// legal is the bitmask from GameState.LegalMask().
func ActionMask(legal uint32, out *[NumActions]bool) {
	*out = [NumActions]bool{}
	for i := 0; i < NumActions; i++ {
		out[i] = legal&(1<<i) != 0
	}
}

// ObservationString renders player's view in a compact, human-readable form.
func ObservationString(g *engine.GameState, player int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Observer: %d][Turn: %d][Player: %d]", player, g.TurnPlayer, g.CurrentPlayer())
	for p := 0; p < engine.NumPlayers; p++ {
		cards := g.Cards(p)
		names := make([]string, len(cards))
		for i, c := range cards {
			switch {
			case !c.IsFaceDown():
				names[i] = c.Type().String() + "*"
			case p == player:
				names[i] = c.Type().String()
			default:
				names[i] = "?"
			}
		}
		fmt.Fprintf(&b, "[P%d: %s | %d coins | %s]", p, strings.Join(names, " "), g.Coins(p), g.LastAction(p))
	}
	fmt.Fprintf(&b, "[Deck: %d]", g.DeckSize())
	return b.String()
}
