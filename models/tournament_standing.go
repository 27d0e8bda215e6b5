package models

// Standing: строка турнирной таблицы. Очки кратны 0.5.
type Standing struct {
	PlayerID   int     `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Points     float64 `json:"points"`
}
