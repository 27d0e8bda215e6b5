package models

type Round struct {
	ID           int `json:"id" db:"id"`
	TournamentID int `json:"tournament_id" db:"tournament_id"`
	RoundNumber  int `json:"round_number" db:"round_number"`

	Matches []Match `json:"matches,omitempty" db:"-"`
}
