// Package agent turns a game state into fixed-size feature vectors for
// learning agents: the observing player's information set as a float tensor
// plus a legal-action mask.
package agent

import "github.com/BStarcheus/open-spiel-coup/engine"

const (
	NumActions = engine.NumActions
	MaxHand    = engine.MaxHandSize // 4

	// Per-slot one-hot: 5 card types, unknown, empty, then a face-up flag.
	SlotDim      = engine.NumCardTypes + 3 // 8
	UnknownSlot  = engine.NumCardTypes     // 5
	EmptySlot    = engine.NumCardTypes + 1 // 6
	FaceUpOffset = engine.NumCardTypes + 2 // 7

	// NumContexts covers engine.CtxTurnStart..engine.CtxTerminal.
	NumContexts = 7

	// lastActionDim is one slot per action plus "none yet".
	lastActionDim = NumActions + 1

	// maxCoins normalises coin counts; 9 coins plus Tax is the highest reachable.
	maxCoins = 12
)

// Layout offsets.
const (
	offObserver   = 0
	offOwnHand    = offObserver + engine.NumPlayers       // 2
	offOppHand    = offOwnHand + MaxHand*SlotDim          // 34
	offCoins      = offOppHand + MaxHand*SlotDim          // 66
	offDeckSize   = offCoins + engine.NumPlayers          // 68
	offContext    = offDeckSize + 1                       // 69
	offTurnPlayer = offContext + NumContexts              // 76
	offOwnLast    = offTurnPlayer + 1                     // 77
	offOppLast    = offOwnLast + lastActionDim            // 110
	InputDim      = offOppLast + lastActionDim            // 143
)
