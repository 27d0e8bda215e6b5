package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/chess-federation/brackets"
	"github.com/Dosada05/chess-federation/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentInUse    = errors.New("tournament is in use (rounds exist)")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, limit, offset int) ([]models.Tournament, error)
	Delete(ctx context.Context, id int) error
	// TreeRows returns the tournaments x rounds x matches outer join; tournamentID nil means all.
	TreeRows(ctx context.Context, tournamentID *int) ([]brackets.TreeRow, error)
	MaxRoundNumber(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, mode, location, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query, t.Name, t.Mode, t.Location, t.StartDate, t.EndDate).Scan(&t.ID)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT id, name, mode, location, start_date, end_date FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Mode, &t.Location, &t.StartDate, &t.EndDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, limit, offset int) ([]models.Tournament, error) {
	query := `
		SELECT id, name, mode, location, start_date, end_date
		FROM tournaments
		ORDER BY start_date DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.Mode, &t.Location, &t.StartDate, &t.EndDate); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		// Раунды не удаляются каскадно: FK не даст удалить турнир с раундами.
		if pqCode(err) == pgForeignKeyViolation {
			return ErrTournamentInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) TreeRows(ctx context.Context, tournamentID *int) ([]brackets.TreeRow, error) {
	query := `
		SELECT
			t.id, t.name, t.location, t.mode, t.start_date, t.end_date,
			r.id, r.round_number,
			m.id, m.player1_id, m.player2_id, m.result, m.pgn, m.link
		FROM tournaments t
		LEFT JOIN rounds r ON t.id = r.tournament_id
		LEFT JOIN matches m ON r.id = m.round_id`

	args := []interface{}{}
	if tournamentID != nil {
		query += ` WHERE t.id = $1`
		args = append(args, *tournamentID)
	}
	query += ` ORDER BY t.start_date ASC, t.id ASC, r.round_number ASC, m.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament tree: %w", err)
	}
	defer rows.Close()

	treeRows := make([]brackets.TreeRow, 0)
	for rows.Next() {
		var row brackets.TreeRow
		if err := rows.Scan(
			&row.TournamentID, &row.TournamentName, &row.TournamentLocation, &row.TournamentMode,
			&row.TournamentStart, &row.TournamentEnd,
			&row.RoundID, &row.RoundNumber,
			&row.MatchID, &row.Player1ID, &row.Player2ID, &row.Result, &row.PGN, &row.Link,
		); err != nil {
			return nil, err
		}
		treeRows = append(treeRows, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return treeRows, nil
}

func (r *postgresTournamentRepository) MaxRoundNumber(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	var maxNumber int
	err := r.getExecutor(exec).QueryRowContext(ctx,
		`SELECT COALESCE(MAX(round_number), 0) FROM rounds WHERE tournament_id = $1`, tournamentID,
	).Scan(&maxNumber)
	return maxNumber, err
}
