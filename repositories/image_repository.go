package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/chess-federation/models"
)

type ImageRepository interface {
	Create(ctx context.Context, image *models.GalleryImage) error
	List(ctx context.Context, album *string) ([]models.GalleryImage, error)
}

type postgresImageRepository struct {
	db *sql.DB
}

func NewPostgresImageRepository(db *sql.DB) ImageRepository {
	return &postgresImageRepository{db: db}
}

func (r *postgresImageRepository) Create(ctx context.Context, img *models.GalleryImage) error {
	query := `
		INSERT INTO images (title, album, url, object_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query, img.Title, img.Album, img.URL, img.Key).Scan(&img.ID, &img.CreatedAt)
}

func (r *postgresImageRepository) List(ctx context.Context, album *string) ([]models.GalleryImage, error) {
	query := `SELECT id, title, album, url, object_key, created_at FROM images`
	args := []interface{}{}
	if album != nil {
		query += ` WHERE album = $1`
		args = append(args, *album)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]models.GalleryImage, 0)
	for rows.Next() {
		var img models.GalleryImage
		if err := rows.Scan(&img.ID, &img.Title, &img.Album, &img.URL, &img.Key, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return images, nil
}
