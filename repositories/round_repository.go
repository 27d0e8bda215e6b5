package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/chess-federation/models"
)

var (
	ErrRoundNotFound          = errors.New("round not found")
	ErrRoundInUse             = errors.New("round is in use (matches exist)")
	ErrRoundTournamentInvalid = errors.New("round tournament reference is invalid")
	ErrRoundNumberInvalid     = errors.New("round number must be positive")
)

type RoundRepository interface {
	Create(ctx context.Context, exec SQLExecutor, round *models.Round) error
	List(ctx context.Context) ([]models.Round, error)
	Delete(ctx context.Context, id int) error
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

func (r *postgresRoundRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRoundRepository) Create(ctx context.Context, exec SQLExecutor, round *models.Round) error {
	query := `INSERT INTO rounds (tournament_id, round_number) VALUES ($1, $2) RETURNING id`

	err := r.getExecutor(exec).QueryRowContext(ctx, query, round.TournamentID, round.RoundNumber).Scan(&round.ID)
	switch pqCode(err) {
	case pgForeignKeyViolation:
		return ErrRoundTournamentInvalid
	case pgCheckViolation:
		return ErrRoundNumberInvalid
	}
	return err
}

func (r *postgresRoundRepository) List(ctx context.Context) ([]models.Round, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, tournament_id, round_number FROM rounds ORDER BY tournament_id ASC, round_number ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]models.Round, 0)
	for rows.Next() {
		var round models.Round
		if err := rows.Scan(&round.ID, &round.TournamentID, &round.RoundNumber); err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

func (r *postgresRoundRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rounds WHERE id = $1`, id)
	if err != nil {
		if pqCode(err) == pgForeignKeyViolation {
			return ErrRoundInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}
