package brackets

import (
	"context"
	"errors"
)

var (
	ErrNotEnoughPlayers = errors.New("at least two players are required for pairings")
	ErrInvalidPlayerID  = errors.New("player ids must be positive")
	ErrDuplicatePlayer  = errors.New("player listed more than once")
)

type GeneratePairingsParams struct {
	PlayerIDs []int
	// Double plays a second cycle with colours reversed.
	Double bool
	// FirstRoundNumber is the number given to the first generated round.
	FirstRoundNumber int
}

// Pairing is one board of a round. WhiteID is stored as player1.
type Pairing struct {
	Board   int `json:"board"`
	WhiteID int `json:"white_id"`
	BlackID int `json:"black_id"`
}

type PairedRound struct {
	Number   int       `json:"number"`
	Pairings []Pairing `json:"pairings"`
}

type PairingGenerator interface {
	GeneratePairings(ctx context.Context, params GeneratePairingsParams) ([]*PairedRound, error)

	GetName() string
}
