package models

import "time"

// Tournament представляет турнир федерации.
// Mode хранится как есть (swiss, round-robin, ...), система его не проверяет.
type Tournament struct {
	ID        int        `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Mode      *string    `json:"mode,omitempty" db:"mode"`
	Location  string     `json:"location" db:"location"`
	StartDate time.Time  `json:"start_date" db:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty" db:"end_date"`
}

// TournamentTree is a tournament with its rounds and matches nested inside.
type TournamentTree struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Location  string       `json:"location"`
	Mode      *string      `json:"mode,omitempty"`
	StartDate time.Time    `json:"start_date"`
	EndDate   *time.Time   `json:"end_date,omitempty"`
	Rounds    []*RoundTree `json:"rounds"`
}

type RoundTree struct {
	ID      *int         `json:"id,omitempty"`
	Number  int          `json:"number"`
	Matches []*MatchLeaf `json:"matches"`
}

type MatchLeaf struct {
	ID        *int    `json:"id,omitempty"`
	Player1ID int     `json:"player1_id"`
	Player2ID int     `json:"player2_id"`
	Result    string  `json:"result"`
	PGN       *string `json:"pgn,omitempty"`
	Link      *string `json:"link,omitempty"`
}
