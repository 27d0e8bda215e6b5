package models

import "time"

// Event: анонс мероприятия. Date и Time хранятся строками в том виде,
// в котором их прислала форма сайта.
type Event struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Location    string    `json:"location" db:"location"`
	Description string    `json:"description" db:"description"`
	Type        *string   `json:"type,omitempty" db:"type"`
	Date        string    `json:"date" db:"date"`
	Time        string    `json:"time" db:"time"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
