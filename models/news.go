package models

import "time"

type NewsPost struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	ImageURL  *string   `json:"image_url,omitempty" db:"image_url"`
	ImageKey  *string   `json:"-" db:"image_key"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
