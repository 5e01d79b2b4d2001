// Package match drives a single Coup game between two policies: it samples
// chance outcomes, asks each seat for its move, validates and applies it, and
// reports what happened through event callbacks.
package match

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BStarcheus/open-spiel-coup/engine"
	"github.com/BStarcheus/open-spiel-coup/internal/policy"
)

var (
	// ErrMoveLimit is returned by Run when a game exceeds its move cap.
	ErrMoveLimit = errors.New("move limit reached")
	// ErrPolicyIllegal is returned when a policy answers with an action
	// outside the legal set.
	ErrPolicyIllegal = errors.New("policy chose an illegal action")
)

// OnGameEndFunc is called once when the game reaches a terminal state.
type OnGameEndFunc func(matchID uuid.UUID, winner int, returns [engine.NumPlayers]float64)

// GameEventType names the kind of a GameEvent.
type GameEventType string

const (
	EventCardDealt GameEventType = "card_dealt" // chance draw; Card is private to Player
	EventAction    GameEventType = "action"     // decision applied by Player
	EventCardLost  GameEventType = "card_lost"  // Player revealed Card
	EventGameEnd   GameEventType = "game_end"   // Payload carries winner and returns
)

// GameEvent is the record broadcast for every state change.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	MatchID uuid.UUID              `json:"matchId"`
	Turn    int                    `json:"turn"`
	Move    int                    `json:"move"`
	Player  int                    `json:"player"`
	Action  string                 `json:"action,omitempty"`
	Card    string                 `json:"card,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Result summarises a finished (or aborted) match.
type Result struct {
	ID      uuid.UUID
	Winner  int // -1 when the game did not finish
	Returns [engine.NumPlayers]float64
	Turns   int
	Moves   int
	// DoubleLoss is set when the final step revealed both of the loser's
	// cards at once.
	DoubleLoss bool
}

// Match is one game between two seats.
type Match struct {
	ID       uuid.UUID
	Engine   engine.GameState
	Policies [engine.NumPlayers]policy.Policy

	MaxMoves        int
	CheckInvariants bool

	Moves   int
	History []engine.Action

	BroadcastFn func(ev GameEvent)
	OnGameEnd   OnGameEndFunc

	Mu sync.Mutex

	rng        *rand.Rand
	log        logrus.FieldLogger
	ended      bool
	doubleLoss bool
}

// Option configures a Match.
type Option func(*Match)

// WithSeed seeds the chance sampler and infostate resampling.
func WithSeed(seed uint64) Option {
	return func(m *Match) { m.rng = rand.New(rand.NewPCG(seed, seed^0xbb67ae8584caa73b)) }
}

// WithLogger sets the logger; entries carry the match id.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Match) { m.log = l }
}

// WithMaxMoves caps the number of applied actions, chance draws included.
func WithMaxMoves(n int) Option {
	return func(m *Match) { m.MaxMoves = n }
}

// WithInvariantChecks verifies engine invariants after every step.
func WithInvariantChecks() Option {
	return func(m *Match) { m.CheckInvariants = true }
}

// WithState starts the match from an existing state instead of a new game.
func WithState(g engine.GameState) Option {
	return func(m *Match) { m.Engine = g }
}

// WithBroadcast registers the event sink.
func WithBroadcast(fn func(ev GameEvent)) Option {
	return func(m *Match) { m.BroadcastFn = fn }
}

// WithOnGameEnd registers the end-of-game callback.
func WithOnGameEnd(fn OnGameEndFunc) Option {
	return func(m *Match) { m.OnGameEnd = fn }
}

// NewMatch creates a match at the start of a fresh game.
func NewMatch(policies [engine.NumPlayers]policy.Policy, opts ...Option) *Match {
	m := &Match{
		ID:       uuid.New(),
		Engine:   engine.NewGame(),
		Policies: policies,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		WithSeed(rand.Uint64())(m)
	}
	if m.log == nil {
		m.log = logrus.StandardLogger()
	}
	m.log = m.log.WithField("game_id", m.ID)
	return m
}

// Step advances the game by one action. It returns engine.ErrGameOver once
// the game is finished.
func (m *Match) Step() error {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	if m.Engine.IsTerminal() {
		return engine.ErrGameOver
	}
	if m.Engine.IsChanceNode() {
		return m.dealOne()
	}
	return m.decideOne()
}

// dealOne samples and applies a chance outcome.
// Assumes lock is held by caller.
func (m *Match) dealOne() error {
	recipient, _ := m.Engine.NextDealRecipient()
	card := m.sampleCard()
	if err := m.apply(engine.CardAction(card)); err != nil {
		return err
	}
	m.fireEvent(GameEvent{Type: EventCardDealt, Player: recipient, Card: card.String()})
	return m.afterStep()
}

// sampleCard draws a card type with probability proportional to its count.
func (m *Match) sampleCard() engine.CardType {
	outcomes := m.Engine.ChanceOutcomes()
	r := m.rng.Float64()
	for _, o := range outcomes {
		if r < o.Prob {
			return o.Card
		}
		r -= o.Prob
	}
	return outcomes[len(outcomes)-1].Card
}

// decideOne asks the seat on move for an action and applies it.
// Assumes lock is held by caller.
func (m *Match) decideOne() error {
	seat := m.Engine.CurrentPlayer()
	legal := m.Engine.LegalActions()

	// Policies see their own information set only.
	view := m.Engine.ResampleFromInfostate(seat, m.rng)
	a := m.Policies[seat].Choose(&view, legal)
	if !slices.Contains(legal, a) {
		return fmt.Errorf("%w: seat %d (%s) chose %s, legal %v",
			ErrPolicyIllegal, seat, m.Policies[seat].Name(), a, legal)
	}

	before := m.Engine.Clone()
	if err := m.apply(a); err != nil {
		return err
	}
	m.log.WithFields(logrus.Fields{
		"turn":   int(before.TurnNumber),
		"player": seat,
		"action": a.String(),
	}).Debug("action applied")
	m.fireEvent(GameEvent{Type: EventAction, Player: seat, Action: a.String()})
	m.emitCardLosses(&before)
	return m.afterStep()
}

// apply forwards to the engine and records the action.
// Assumes lock is held by caller.
func (m *Match) apply(a engine.Action) error {
	if err := m.Engine.ApplyAction(a); err != nil {
		m.log.WithError(err).WithField("action", a.String()).Error("engine rejected action")
		return err
	}
	m.Moves++
	m.History = append(m.History, a)
	return nil
}

// emitCardLosses reports every card revealed since before. Hands can be
// reordered within a step, so face-up cards are compared per type.
// Assumes lock is held by caller.
func (m *Match) emitCardLosses(before *engine.GameState) {
	revealed := 0
	for p := 0; p < engine.NumPlayers; p++ {
		prev := faceUpByType(before, p)
		now := faceUpByType(&m.Engine, p)
		for t := range now {
			for n := prev[t]; n < now[t]; n++ {
				revealed++
				m.fireEvent(GameEvent{Type: EventCardLost, Player: p, Card: engine.CardType(t).String()})
			}
		}
	}
	m.doubleLoss = revealed >= engine.CardsPerPlayer
}

func faceUpByType(g *engine.GameState, p int) [engine.NumCardTypes]int {
	var out [engine.NumCardTypes]int
	for _, c := range g.Cards(p) {
		if !c.IsFaceDown() {
			out[c.Type()]++
		}
	}
	return out
}

// afterStep runs the per-step checks and finishes the game when terminal.
// Assumes lock is held by caller.
func (m *Match) afterStep() error {
	if m.CheckInvariants {
		if err := m.Engine.CheckInvariants(); err != nil {
			return fmt.Errorf("after move %d: %w", m.Moves, err)
		}
	}
	if m.Engine.IsTerminal() && !m.ended {
		m.endGame()
	}
	return nil
}

// endGame broadcasts the result and triggers OnGameEnd.
// Assumes lock is held by caller.
func (m *Match) endGame() {
	m.ended = true
	winner, _ := m.Engine.Winner()
	returns := m.Engine.Returns()

	m.log.WithFields(logrus.Fields{
		"winner": winner,
		"turns":  int(m.Engine.TurnNumber),
		"moves":  m.Moves,
	}).Info("game over")

	m.fireEvent(GameEvent{
		Type:   EventGameEnd,
		Player: winner,
		Payload: map[string]interface{}{
			"winner":  winner,
			"returns": returns,
		},
	})
	if m.OnGameEnd != nil {
		m.OnGameEnd(m.ID, winner, returns)
	}
}

// fireEvent stamps and broadcasts an event via BroadcastFn.
// Assumes lock is held by caller.
func (m *Match) fireEvent(ev GameEvent) {
	if m.BroadcastFn == nil {
		return
	}
	ev.MatchID = m.ID
	ev.Turn = int(m.Engine.TurnNumber)
	ev.Move = m.Moves
	m.BroadcastFn(ev)
}

// Run steps the match until it ends, ctx is cancelled, or MaxMoves is hit.
// The returned Result is valid in every case.
func (m *Match) Run(ctx context.Context) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return m.Result(), err
		}
		if m.Finished() {
			return m.Result(), nil
		}
		if m.MaxMoves > 0 && m.moves() >= m.MaxMoves {
			return m.Result(), fmt.Errorf("%w: %d moves", ErrMoveLimit, m.MaxMoves)
		}
		if err := m.Step(); err != nil {
			return m.Result(), err
		}
	}
}

// Finished reports whether the game has reached a terminal state.
func (m *Match) Finished() bool {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	return m.Engine.IsTerminal()
}

func (m *Match) moves() int {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	return m.Moves
}

// Result returns the current outcome summary.
func (m *Match) Result() Result {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	r := Result{
		ID:      m.ID,
		Winner:  -1,
		Returns: m.Engine.Returns(),
		Turns:   int(m.Engine.TurnNumber),
		Moves:   m.Moves,
	}
	if w, ok := m.Engine.Winner(); ok {
		r.Winner = w
		r.DoubleLoss = m.doubleLoss
	}
	return r
}
