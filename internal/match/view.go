package match

import (
	"github.com/google/uuid"

	"github.com/BStarcheus/open-spiel-coup/engine"
)

// ViewCard is a card as seen by one seat. Hidden opponent cards carry no type.
type ViewCard struct {
	Known  bool   `json:"known"`
	Type   string `json:"type,omitempty"`
	FaceUp bool   `json:"faceUp"`
	Idx    int    `json:"idx"`
}

// ViewPlayer is one player's public state, plus the private hand for the
// viewing seat.
type ViewPlayer struct {
	Seat          int        `json:"seat"`
	Coins         int        `json:"coins"`
	HandSize      int        `json:"handSize"`
	LastAction    string     `json:"lastAction,omitempty"`
	IsCurrentMove bool       `json:"isCurrentMove"`
	Cards         []ViewCard `json:"cards"`
}

// View is the game state obfuscated for a single seat.
type View struct {
	MatchID       uuid.UUID    `json:"matchId"`
	Seat          int          `json:"seat"`
	GameOver      bool         `json:"gameOver"`
	CurrentPlayer int          `json:"currentPlayer"`
	TurnPlayer    int          `json:"turnPlayer"`
	Turn          int          `json:"turn"`
	DeckSize      int          `json:"deckSize"`
	Players       []ViewPlayer `json:"players"`
	// LegalActions is filled only when the viewing seat is on move.
	LegalActions []string `json:"legalActions,omitempty"`
}

// ViewFor builds the state as seen by seat.
func (m *Match) ViewFor(seat int) View {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	g := &m.Engine
	v := View{
		MatchID:       m.ID,
		Seat:          seat,
		GameOver:      g.IsTerminal(),
		CurrentPlayer: g.CurrentPlayer(),
		TurnPlayer:    int(g.TurnPlayer),
		Turn:          int(g.TurnNumber),
		DeckSize:      g.DeckSize(),
		Players:       make([]ViewPlayer, engine.NumPlayers),
	}

	for p := 0; p < engine.NumPlayers; p++ {
		cards := g.Cards(p)
		vp := ViewPlayer{
			Seat:          p,
			Coins:         g.Coins(p),
			HandSize:      len(cards),
			IsCurrentMove: g.CurrentPlayer() == p,
			Cards:         make([]ViewCard, len(cards)),
		}
		if last := g.LastAction(p); last != engine.ActionNone {
			vp.LastAction = last.String()
		}
		for i, c := range cards {
			vc := ViewCard{FaceUp: !c.IsFaceDown(), Idx: i}
			// Own cards and revealed cards are public to the viewer.
			if p == seat || vc.FaceUp {
				vc.Known = true
				vc.Type = c.Type().String()
			}
			vp.Cards[i] = vc
		}
		v.Players[p] = vp
	}

	if v.CurrentPlayer == seat {
		for _, a := range g.LegalActions() {
			v.LegalActions = append(v.LegalActions, a.String())
		}
	}
	return v
}
