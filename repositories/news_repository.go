package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/chess-federation/models"
)

var ErrNewsNotFound = errors.New("news post not found")

type NewsRepository interface {
	Create(ctx context.Context, post *models.NewsPost) error
	GetByID(ctx context.Context, id int) (*models.NewsPost, error)
	List(ctx context.Context, limit, offset int) ([]models.NewsPost, error)
	Delete(ctx context.Context, id int) error
}

type postgresNewsRepository struct {
	db *sql.DB
}

func NewPostgresNewsRepository(db *sql.DB) NewsRepository {
	return &postgresNewsRepository{db: db}
}

func (r *postgresNewsRepository) Create(ctx context.Context, p *models.NewsPost) error {
	query := `
		INSERT INTO news (title, content, image_url, image_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query, p.Title, p.Content, p.ImageURL, p.ImageKey).Scan(&p.ID, &p.CreatedAt)
}

func (r *postgresNewsRepository) GetByID(ctx context.Context, id int) (*models.NewsPost, error) {
	query := `SELECT id, title, content, image_url, image_key, created_at FROM news WHERE id = $1`

	var p models.NewsPost
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.ImageKey, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresNewsRepository) List(ctx context.Context, limit, offset int) ([]models.NewsPost, error) {
	query := `
		SELECT id, title, content, image_url, image_key, created_at
		FROM news
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]models.NewsPost, 0)
	for rows.Next() {
		var p models.NewsPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.ImageKey, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postgresNewsRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrNewsNotFound)
}
