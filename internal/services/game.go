package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"lucky-seven-backend/internal/models"
)

// SessionStore is the persistence boundary for game sessions.
type SessionStore interface {
	CreateSession(session *models.Session) error
	GetSession(sessionID string) (*models.Session, error)
	UpdateSession(session *models.Session) error
	DeleteSession(sessionID string) error
	ListSessions() ([]*models.Session, error)
	DeleteAllSessions() error
}

// DiceRoller draws two independent uniform dice in [1,7].
type DiceRoller func() (int, int)

type GameEngine struct {
	store       SessionStore
	roll        DiceRoller
	broadcaster Broadcaster
}

func NewGameEngine(store SessionStore) *GameEngine {
	return &GameEngine{
		store: store,
		roll:  cryptoDice,
	}
}

// NewGameEngineWithRoller swaps the dice source, used by deterministic tests.
func NewGameEngineWithRoller(store SessionStore, roll DiceRoller) *GameEngine {
	return &GameEngine{
		store: store,
		roll:  roll,
	}
}

// SetBroadcaster attaches an optional live-feed sink for settled rolls and
// cleared sessions.
func (ge *GameEngine) SetBroadcaster(b Broadcaster) {
	ge.broadcaster = b
}

func cryptoDice() (int, int) {
	return cryptoDie(), cryptoDie()
}

func cryptoDie() int {
	n, err := rand.Int(rand.Reader, big.NewInt(7))
	if err != nil {
		// crypto/rand failing means the process has no entropy source left.
		panic(fmt.Sprintf("dice roll: %v", err))
	}
	return int(n.Int64()) + 1
}

// CreateSession stores the given state and history verbatim under a fresh
// opaque session ID.
func (ge *GameEngine) CreateSession(state models.GameState, history []models.GameState) (string, error) {
	session := &models.Session{
		SessionID:   uuid.New().String(),
		GameState:   state,
		GameHistory: history,
	}

	if err := ge.store.CreateSession(session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	return session.SessionID, nil
}

// SettleRoll runs one round: wager guard, stake deduction, dice draw, payout
// and history append, then persists the updated session. The guard rejects
// before any chip mutation, so a refused wager leaves the session untouched.
func (ge *GameEngine) SettleRoll(sessionID string, bet models.BetType, stake int) (*models.RollResult, error) {
	session, err := ge.store.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, errors.Join(ErrSessionFetch, err)
	}

	state := session.GameState
	if state.Chips <= 0 {
		return nil, ErrGameOver
	}
	if stake > state.Chips {
		if state.Chips >= 100 {
			return nil, ErrInvalidWager
		}
		return nil, ErrGameOver
	}

	state.Bet = bet
	state.Stake = stake
	state.Chips -= stake
	state.Delta = -stake

	d1, d2 := ge.roll()
	state.DiceRoll = []int{d1, d2}
	score := d1 + d2

	winRate := models.WinRateLoss
	if (bet == models.BetSevenUp && score > 7) || (bet == models.BetSevenDown && score < 7) {
		winRate = models.WinRateSide
	}
	if bet == models.BetSeven && score == 7 {
		winRate = models.WinRateSeven
	}
	state.WinRate = winRate

	if winRate > 0 {
		state.Delta = winRate * stake
		state.Chips += state.Delta
	}

	session.GameState = state
	session.GameHistory = append(session.GameHistory, state)

	if err := ge.store.UpdateSession(session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	if ge.broadcaster != nil {
		ge.broadcaster.BroadcastRollSettled(sessionID, state)
	}

	return &models.RollResult{
		GameState: session.GameState,
		History:   session.GameHistory,
	}, nil
}

func (ge *GameEngine) FetchSession(sessionID string) (*models.Session, error) {
	return ge.store.GetSession(sessionID)
}

// ClearSession is idempotent; clearing an unknown session is not an error.
func (ge *GameEngine) ClearSession(sessionID string) error {
	if err := ge.store.DeleteSession(sessionID); err != nil {
		return err
	}

	if ge.broadcaster != nil {
		ge.broadcaster.BroadcastSessionCleared(sessionID)
	}
	return nil
}

func (ge *GameEngine) ListSessions() ([]*models.Session, error) {
	return ge.store.ListSessions()
}

func (ge *GameEngine) ClearAllSessions() error {
	return ge.store.DeleteAllSessions()
}
