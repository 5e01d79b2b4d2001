// Package engine implements the two-player Coup rules.
//
// GameState is a flat value type (no pointers, no slices) so that game-tree
// algorithms can branch with a plain copy. Chance nodes deal cards from a
// 15-card deck; decision nodes follow the claim / block / challenge protocol.
package engine

import "sort"

const (
	NumPlayers     = 2
	MaxHandSize    = 4 // 2 held + 2 drawn while exchanging
	CardsPerPlayer = 2
	CopiesPerType  = 3
	DeckSize       = NumCardTypes * CopiesPerType

	// maxDealQueue covers the opening deal (4) and the worst mid-game case
	// (replacement + two exchange draws).
	maxDealQueue = 4

	CoupCost           = 7
	MandatoryCoupCoins = 10
	AssassinateCost    = 3
	ForeignAidCoins    = 2
	TaxCoins           = 3
	StealCoins         = 2
)

// Sentinel player ids returned by CurrentPlayer.
const (
	ChancePlayer   = -1
	TerminalPlayer = -4
)

// PlayerState holds one player's hand, coins and protocol flags.
type PlayerState struct {
	Hand          [MaxHandSize]Card
	HandLen       uint8
	Coins         uint8
	LastAction    Action
	LostChallenge bool
}

// FollowUp is what happens once a pending forced card loss is resolved.
type FollowUp uint8

const (
	FollowAdvanceTurn FollowUp = iota // turn ends
	FollowForeignAid                  // bluffed Duke block: turn player collects foreign aid
	FollowSteal                       // bluffed steal block: turn player steals
	FollowExchange                    // honest exchange was challenged: turn player picks returns
)

// GameState holds the complete, self-contained state of a Coup game.
type GameState struct {
	Players [NumPlayers]PlayerState

	// Deck holds the remaining count per CardType.
	Deck [NumCardTypes]uint8

	// DealQueue is a FIFO of player indices awaiting a draw. The state is a
	// chance node while DealLen > 0.
	DealQueue [maxDealQueue]uint8
	DealLen   uint8

	TurnPlayer uint8
	MovePlayer uint8
	TurnNumber uint16
	TurnBegin  bool

	AfterLoss   FollowUp
	StepRewards [NumPlayers]float64
}

// NewGame returns the initial state: no cards dealt, coins 1 and 2, and a
// chance phase dealing P0, P1, P0, P1.
func NewGame() GameState {
	var g GameState
	for t := range g.Deck {
		g.Deck[t] = CopiesPerType
	}
	for p := range g.Players {
		g.Players[p].LastAction = ActionNone
	}
	g.Players[0].Coins = 1
	g.Players[1].Coins = 2
	g.DealQueue = [maxDealQueue]uint8{0, 1, 0, 1}
	g.DealLen = maxDealQueue
	g.TurnBegin = true
	return g
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// CurrentPlayer returns the player who must act, ChancePlayer while cards are
// being dealt, or TerminalPlayer once the game is over.
func (g *GameState) CurrentPlayer() int {
	if g.IsTerminal() {
		return TerminalPlayer
	}
	if g.DealLen > 0 {
		return ChancePlayer
	}
	return int(g.MovePlayer)
}

// IsChanceNode reports whether the next action is a card draw.
func (g *GameState) IsChanceNode() bool {
	return g.DealLen > 0 && !g.IsTerminal()
}

// NextDealRecipient returns the player who receives the next chance draw.
func (g *GameState) NextDealRecipient() (int, bool) {
	if g.DealLen == 0 {
		return 0, false
	}
	return int(g.DealQueue[0]), true
}

// OpponentOf returns the other player's index.
func OpponentOf(p uint8) uint8 { return 1 - p }

// Coins returns player p's coin count.
func (g *GameState) Coins(p int) int { return int(g.Players[p].Coins) }

// LastAction returns the most recent action declared by player p.
func (g *GameState) LastAction(p int) Action { return g.Players[p].LastAction }

// LostChallenge reports whether player p owes a card after a lost challenge.
func (g *GameState) LostChallenge(p int) bool { return g.Players[p].LostChallenge }

// Cards returns a copy of player p's hand.
func (g *GameState) Cards(p int) []Card {
	pl := &g.Players[p]
	out := make([]Card, pl.HandLen)
	copy(out, pl.Hand[:pl.HandLen])
	return out
}

// CardTypes returns the types of player p's cards in hand order.
func (g *GameState) CardTypes(p int) []CardType {
	pl := &g.Players[p]
	out := make([]CardType, pl.HandLen)
	for i := range out {
		out[i] = pl.Hand[i].Type()
	}
	return out
}

// CardStates returns the states of player p's cards in hand order.
func (g *GameState) CardStates(p int) []CardState {
	pl := &g.Players[p]
	out := make([]CardState, pl.HandLen)
	for i := range out {
		out[i] = pl.Hand[i].State()
	}
	return out
}

// DeckCount returns how many cards of type t remain in the deck.
func (g *GameState) DeckCount(t CardType) int { return int(g.Deck[t]) }

// DeckSize returns the number of cards remaining in the deck.
func (g *GameState) DeckSize() int {
	n := 0
	for _, c := range g.Deck {
		n += int(c)
	}
	return n
}

// faceUpCount returns how many of player p's cards are revealed.
func (g *GameState) faceUpCount(p uint8) int {
	n := 0
	pl := &g.Players[p]
	for i := uint8(0); i < pl.HandLen; i++ {
		if !pl.Hand[i].IsFaceDown() {
			n++
		}
	}
	return n
}

// FaceUpCount returns how many of player p's cards are revealed.
func (g *GameState) FaceUpCount(p int) int { return g.faceUpCount(uint8(p)) }

// faceDownSlot returns the first face-down slot of player p holding one of
// the given types.
func (g *GameState) faceDownSlot(p uint8, types cardSet) (uint8, bool) {
	pl := &g.Players[p]
	for i := uint8(0); i < pl.HandLen; i++ {
		c := pl.Hand[i]
		if c.IsFaceDown() && types.has(c.Type()) {
			return i, true
		}
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// Turn helpers
// ---------------------------------------------------------------------------

// advanceTurn hands the turn to the other player.
func (g *GameState) advanceTurn() {
	g.TurnPlayer = OpponentOf(g.TurnPlayer)
	g.MovePlayer = g.TurnPlayer
	g.TurnNumber++
	g.TurnBegin = true
}

// advanceMove gives the other player a response window within the same turn.
func (g *GameState) advanceMove() {
	g.MovePlayer = OpponentOf(g.MovePlayer)
	g.TurnBegin = false
}

// sortHand puts player p's hand in canonical (type, state) order.
func (g *GameState) sortHand(p uint8) {
	pl := &g.Players[p]
	h := pl.Hand[:pl.HandLen]
	sort.Slice(h, func(i, j int) bool { return h[i] < h[j] })
}

// ---------------------------------------------------------------------------
// Clone and snapshot undo
// ---------------------------------------------------------------------------

// Clone returns an independent copy. GameState has no reference fields, so
// the copy shares nothing with the receiver.
func (g *GameState) Clone() GameState { return *g }

// Snapshot is a complete value-copy of GameState for undo support.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }
