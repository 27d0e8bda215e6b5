package models

import "time"

// Допустимые результаты партии. Любое другое значение (в т.ч. пустое, то есть
// партия ещё не сыграна) не приносит очков.
const (
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
)

// IsKnownResult reports whether result is one of the three scored literals.
func IsKnownResult(result string) bool {
	switch result {
	case ResultWhiteWins, ResultBlackWins, ResultDraw:
		return true
	}
	return false
}

type Match struct {
	ID        int     `json:"id" db:"id"`
	RoundID   int     `json:"round_id" db:"round_id"`
	Player1ID int     `json:"player1_id" db:"player1_id"`
	Player2ID int     `json:"player2_id" db:"player2_id"`
	Result    string  `json:"result" db:"result"`
	PGN       *string `json:"pgn,omitempty" db:"pgn"`
	Link      *string `json:"link,omitempty" db:"link"`
}

// MatchListing is a match joined with the tournament it was played in.
type MatchListing struct {
	Match
	TournamentName      string    `json:"tournament_name"`
	TournamentStartDate time.Time `json:"tournament_start_date"`
}
