package models

type BetType string

const (
	BetSevenUp   BetType = "7u"
	BetSeven     BetType = "7"
	BetSevenDown BetType = "7d"
)

// Win rate multipliers applied to the stake on a winning roll.
const (
	WinRateUnset = -1
	WinRateLoss  = 0
	WinRateSide  = 2 // 7u with score > 7, or 7d with score < 7
	WinRateSeven = 5 // exact seven
)

const StartingChips = 5000

// GameState is one round's snapshot. DiceRoll is empty before the first
// roll and holds exactly two dice afterwards.
type GameState struct {
	Chips    int     `json:"chips"`
	Stake    int     `json:"stake"`
	Bet      BetType `json:"bet"`
	DiceRoll []int   `json:"diceRoll"`
	WinRate  int     `json:"winRate"`
	Delta    int     `json:"delta"`
}

// Session is a single game: its current state plus the ordered history of
// past rounds, oldest first.
type Session struct {
	SessionID   string      `json:"sessionId"`
	GameState   GameState   `json:"gameState"`
	GameHistory []GameState `json:"gameHistory"`
}

type StartRequest struct {
	GameState GameState   `json:"gameState" binding:"required"`
	History   []GameState `json:"history" binding:"required,min=1"`
}

type RollRequest struct {
	Bet   BetType `json:"bet" binding:"required,oneof=7u 7 7d"`
	Stake int     `json:"stake" binding:"required,oneof=100 200 500"`
}

type RollResult struct {
	GameState GameState   `json:"gameState"`
	History   []GameState `json:"history"`
}
