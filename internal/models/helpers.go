package models

import "fmt"

// Validate checks the structural invariants of a client-supplied state:
// diceRoll is either empty or exactly two dice in [1,7], and the bet and
// win rate fields hold known values.
func (gs *GameState) Validate() error {
	if n := len(gs.DiceRoll); n != 0 && n != 2 {
		return fmt.Errorf("diceRoll must hold 0 or 2 dice, got %d", n)
	}
	for _, die := range gs.DiceRoll {
		if die < 1 || die > 7 {
			return fmt.Errorf("die out of range [1,7]: %d", die)
		}
	}

	switch gs.Bet {
	case "", BetSevenUp, BetSeven, BetSevenDown:
	default:
		return fmt.Errorf("invalid bet type: %q", gs.Bet)
	}

	switch gs.WinRate {
	case WinRateUnset, WinRateLoss, WinRateSide, WinRateSeven:
	default:
		return fmt.Errorf("invalid win rate: %d", gs.WinRate)
	}

	switch gs.Stake {
	case -1, 0, 100, 200, 500:
	default:
		return fmt.Errorf("invalid stake: %d", gs.Stake)
	}

	return nil
}

func (r *StartRequest) Validate() error {
	if err := r.GameState.Validate(); err != nil {
		return fmt.Errorf("gameState: %w", err)
	}
	for i := range r.History {
		if err := r.History[i].Validate(); err != nil {
			return fmt.Errorf("history[%d]: %w", i, err)
		}
	}
	return nil
}

// NewGameState returns the initial round state handed to a fresh session.
func NewGameState() GameState {
	return GameState{
		Chips:    StartingChips,
		Stake:    -1,
		Bet:      "",
		DiceRoll: []int{},
		WinRate:  WinRateUnset,
		Delta:    -1,
	}
}
