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
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerInUse    = errors.New("player cannot be deleted as they have recorded matches")
)

// PlayerUpdate содержит только переданные поля; nil означает "не менять".
type PlayerUpdate struct {
	Name     *string
	Club     *string
	Category *string
	Rating   *int
	Elo      *string
	FideID   *string
}

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Update(ctx context.Context, id int, upd PlayerUpdate) (*models.Player, error)
	Delete(ctx context.Context, id int) error
	ListMatchHistory(ctx context.Context, playerID int) ([]brackets.HistoryRow, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, name, club, category, rating, elo, id_fide`

func scanPlayer(row interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.Name, &p.Club, &p.Category, &p.Rating, &p.Elo, &p.FideID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (name, club, category, rating, elo, id_fide)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query, p.Name, p.Club, p.Category, p.Rating, p.Elo, p.FideID).Scan(&p.ID)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, id int, upd PlayerUpdate) (*models.Player, error) {
	var set setClause
	if upd.Name != nil {
		set.add("name", *upd.Name)
	}
	if upd.Club != nil {
		set.add("club", *upd.Club)
	}
	if upd.Category != nil {
		set.add("category", *upd.Category)
	}
	if upd.Rating != nil {
		set.add("rating", *upd.Rating)
	}
	if upd.Elo != nil {
		set.add("elo", *upd.Elo)
	}
	if upd.FideID != nil {
		set.add("id_fide", *upd.FideID)
	}
	if set.empty() {
		return nil, ErrNoFieldsToUpdate
	}

	clause, args := set.build(id)
	query := `UPDATE players ` + clause + ` RETURNING ` + playerColumns

	return scanPlayer(r.db.QueryRowContext(ctx, query, args...))
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		if pqCode(err) == pgForeignKeyViolation {
			return ErrPlayerInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) ListMatchHistory(ctx context.Context, playerID int) ([]brackets.HistoryRow, error) {
	query := `
		SELECT
			m.id, t.name, r.round_number,
			m.player1_id, m.player2_id, p1.name, p2.name,
			m.result, m.pgn, m.link,
			t.start_date, t.end_date
		FROM matches m
		JOIN rounds r ON m.round_id = r.id
		JOIN tournaments t ON r.tournament_id = t.id
		JOIN players p1 ON m.player1_id = p1.id
		JOIN players p2 ON m.player2_id = p2.id
		WHERE m.player1_id = $1 OR m.player2_id = $1
		ORDER BY t.start_date ASC, r.round_number ASC, m.id ASC`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match history for player %d: %w", playerID, err)
	}
	defer rows.Close()

	history := make([]brackets.HistoryRow, 0)
	for rows.Next() {
		var h brackets.HistoryRow
		if err := rows.Scan(
			&h.MatchID, &h.TournamentName, &h.RoundNumber,
			&h.Player1ID, &h.Player2ID, &h.Player1Name, &h.Player2Name,
			&h.Result, &h.PGN, &h.Link,
			&h.TournamentStartDate, &h.TournamentEndDate,
		); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}
