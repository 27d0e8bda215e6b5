package models

import "time"

type GalleryImage struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Album     string    `json:"album" db:"album"`
	URL       string    `json:"url" db:"url"`
	Key       *string   `json:"-" db:"object_key"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
