package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/chess-federation/models"
)

var (
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchReferenceInvalid = errors.New("match round or player reference is invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	List(ctx context.Context) ([]models.MatchListing, error)
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	query := `
		INSERT INTO matches (round_id, player1_id, player2_id, result, pgn, link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		m.RoundID, m.Player1ID, m.Player2ID, m.Result, m.PGN, m.Link,
	).Scan(&m.ID)
	if pqCode(err) == pgForeignKeyViolation {
		return ErrMatchReferenceInvalid
	}
	return err
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.MatchListing, error) {
	query := `
		SELECT
			m.id, m.round_id, m.player1_id, m.player2_id, m.result, m.pgn, m.link,
			t.name, t.start_date
		FROM matches m
		JOIN rounds r ON m.round_id = r.id
		JOIN tournaments t ON r.tournament_id = t.id
		ORDER BY t.start_date ASC, r.round_number ASC, m.id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.MatchListing, 0)
	for rows.Next() {
		var m models.MatchListing
		if err := rows.Scan(
			&m.ID, &m.RoundID, &m.Player1ID, &m.Player2ID, &m.Result, &m.PGN, &m.Link,
			&m.TournamentName, &m.TournamentStartDate,
		); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
