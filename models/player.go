package models

import "time"

type Player struct {
	ID       int     `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Club     *string `json:"club,omitempty" db:"club"`
	Category *string `json:"category,omitempty" db:"category"`
	Rating   int     `json:"rating" db:"rating"`
	Elo      *string `json:"elo,omitempty" db:"elo"`
	FideID   *string `json:"id_fide,omitempty" db:"id_fide"`
}

// PlayerMatch is one line of a player's match history.
type PlayerMatch struct {
	MatchID             int        `json:"match_id"`
	TournamentName      string     `json:"tournament_name"`
	RoundNumber         int        `json:"round_number"`
	Player1ID           int        `json:"player1_id"`
	Player2ID           int        `json:"player2_id"`
	Player1Name         string     `json:"player1_name"`
	Player2Name         string     `json:"player2_name"`
	OpponentName        string     `json:"opponent_name"`
	Result              string     `json:"result"`
	PGN                 *string    `json:"pgn,omitempty"`
	Link                *string    `json:"link,omitempty"`
	TournamentStartDate time.Time  `json:"tournament_start_date"`
	TournamentEndDate   *time.Time `json:"tournament_end_date,omitempty"`
	Victory             bool       `json:"victory"`
	Defeat              bool       `json:"defeat"`
	Draw                bool       `json:"draw"`
}

type PlayerHistory struct {
	PlayerID       int           `json:"player_id"`
	Matches        []PlayerMatch `json:"matches"`
	TotalVictories int           `json:"total_victories"`
	TotalDefeats   int           `json:"total_defeats"`
	TotalDraws     int           `json:"total_draws"`
}
