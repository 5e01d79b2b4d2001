package engine

import "fmt"

// CardType is one of the five character kinds. Values are also the chance
// outcome ids used while dealing.
type CardType uint8

const (
	Assassin   CardType = 0
	Ambassador CardType = 1
	Captain    CardType = 2
	Contessa   CardType = 3
	Duke       CardType = 4

	NumCardTypes = 5

	// CardTypeNone marks the absence of a card type.
	CardTypeNone CardType = 0xFF
)

var cardTypeNames = [NumCardTypes]string{"Assassin", "Ambassador", "Captain", "Contessa", "Duke"}

func (t CardType) String() string {
	if t < NumCardTypes {
		return cardTypeNames[t]
	}
	return fmt.Sprintf("CardType(%d)", uint8(t))
}

// ParseCardType returns the card type with the given name.
func ParseCardType(s string) (CardType, error) {
	for i, name := range cardTypeNames {
		if name == s {
			return CardType(i), nil
		}
	}
	return CardTypeNone, fmt.Errorf("unknown card type %q", s)
}

// CardState tells whether a card is still private (alive) or revealed (dead).
type CardState uint8

const (
	FaceDown CardState = 0
	FaceUp   CardState = 1
)

func (s CardState) String() string {
	switch s {
	case FaceDown:
		return "FaceDown"
	case FaceUp:
		return "FaceUp"
	}
	return fmt.Sprintf("CardState(%d)", uint8(s))
}

// Card is a packed uint8: upper bits = type, lowest bit = state.
// Ordering by raw value equals ordering by (type, state).
type Card uint8

// NewCard constructs a Card from type and state.
func NewCard(t CardType, s CardState) Card {
	return Card(uint8(t)<<1 | uint8(s&1))
}

// Type returns the card type.
func (c Card) Type() CardType { return CardType(uint8(c) >> 1) }

// State returns the card state.
func (c Card) State() CardState { return CardState(uint8(c) & 1) }

// IsFaceDown reports whether the card still counts toward its owner's life.
func (c Card) IsFaceDown() bool { return c.State() == FaceDown }

// revealed returns the same card turned face up.
func (c Card) revealed() Card { return c | 1 }

func (c Card) String() string {
	return c.Type().String() + "/" + c.State().String()
}

// cardSet is a bitmask of card types, used for claim checks.
type cardSet uint8

func setOf(types ...CardType) cardSet {
	var s cardSet
	for _, t := range types {
		s |= 1 << t
	}
	return s
}

func (s cardSet) has(t CardType) bool { return t < NumCardTypes && s&(1<<t) != 0 }

// ---------------------------------------------------------------------------
// Action catalog
// ---------------------------------------------------------------------------

// Action is a decision-node move id. At chance nodes the same id space is
// reused for the dealt CardType (see CardAction).
type Action uint8

const (
	ActionIncome      Action = 0
	ActionForeignAid  Action = 1
	ActionCoup        Action = 2
	ActionTax         Action = 3
	ActionAssassinate Action = 4
	ActionExchange    Action = 5
	ActionSteal       Action = 6

	ActionLoseCard1 Action = 7
	ActionLoseCard2 Action = 8

	ActionPassForeignAid       Action = 9
	ActionPassForeignAidBlock  Action = 10
	ActionPassTax              Action = 11
	ActionPassExchange         Action = 12
	ActionPassAssassinateBlock Action = 13
	ActionPassSteal            Action = 14
	ActionPassStealBlock       Action = 15

	ActionBlockForeignAid  Action = 16
	ActionBlockAssassinate Action = 17
	ActionBlockSteal       Action = 18

	ActionChallengeForeignAidBlock  Action = 19
	ActionChallengeTax              Action = 20
	ActionChallengeExchange         Action = 21
	ActionChallengeAssassinate      Action = 22
	ActionChallengeAssassinateBlock Action = 23
	ActionChallengeSteal            Action = 24
	ActionChallengeStealBlock       Action = 25

	ActionExchangeReturn12 Action = 26
	ActionExchangeReturn13 Action = 27
	ActionExchangeReturn14 Action = 28
	ActionExchangeReturn23 Action = 29
	ActionExchangeReturn24 Action = 30
	ActionExchangeReturn34 Action = 31

	NumActions = 32

	// ActionNone is the LastAction of a player who has not declared anything yet.
	ActionNone Action = 0xFF
)

var actionNames = [NumActions]string{
	"Income",
	"ForeignAid",
	"Coup",
	"Tax",
	"Assassinate",
	"Exchange",
	"Steal",
	"LoseCard1",
	"LoseCard2",
	"PassForeignAid",
	"PassForeignAidBlock",
	"PassTax",
	"PassExchange",
	"PassAssassinateBlock",
	"PassSteal",
	"PassStealBlock",
	"BlockForeignAid",
	"BlockAssassinate",
	"BlockSteal",
	"ChallengeForeignAidBlock",
	"ChallengeTax",
	"ChallengeExchange",
	"ChallengeAssassinate",
	"ChallengeAssassinateBlock",
	"ChallengeSteal",
	"ChallengeStealBlock",
	"ExchangeReturn12",
	"ExchangeReturn13",
	"ExchangeReturn14",
	"ExchangeReturn23",
	"ExchangeReturn24",
	"ExchangeReturn34",
}

func (a Action) String() string {
	if a < NumActions {
		return actionNames[a]
	}
	if a == ActionNone {
		return "None"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction returns the action with the given name.
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", s)
}

// CardAction returns the chance-node action that deals a card of type t.
func CardAction(t CardType) Action { return Action(t) }

// exchangePairs maps ExchangeReturnIJ to the zero-based hand slots returned.
var exchangePairs = [6][2]uint8{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

// ActionIsExchangeReturn returns the two zero-based slots returned by an
// ExchangeReturn action.
func ActionIsExchangeReturn(a Action) (slotA, slotB uint8, ok bool) {
	if a >= ActionExchangeReturn12 && a <= ActionExchangeReturn34 {
		p := exchangePairs[a-ActionExchangeReturn12]
		return p[0], p[1], true
	}
	return 0, 0, false
}

// ActionIsLoseCard returns the zero-based slot flipped by a LoseCard action.
func ActionIsLoseCard(a Action) (slot uint8, ok bool) {
	switch a {
	case ActionLoseCard1:
		return 0, true
	case ActionLoseCard2:
		return 1, true
	}
	return 0, false
}

// claims lists, per action, the card types that justify it. Actions absent
// from the table make no claim.
var claims = map[Action]cardSet{
	ActionTax:              setOf(Duke),
	ActionBlockForeignAid:  setOf(Duke),
	ActionSteal:            setOf(Captain),
	ActionBlockSteal:       setOf(Captain, Ambassador),
	ActionExchange:         setOf(Ambassador),
	ActionAssassinate:      setOf(Assassin),
	ActionBlockAssassinate: setOf(Contessa),
}

// ClaimedCards returns the card types any one of which justifies action a,
// or nil when the action makes no claim.
func ClaimedCards(a Action) []CardType {
	s, ok := claims[a]
	if !ok {
		return nil
	}
	var out []CardType
	for t := CardType(0); t < NumCardTypes; t++ {
		if s.has(t) {
			out = append(out, t)
		}
	}
	return out
}
