package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/chess-federation/brackets"
)

// StandingRepository loads the inputs of the standings computation.
type StandingRepository interface {
	ListPlayers(ctx context.Context) ([]brackets.StandingPlayer, error)
	ListResults(ctx context.Context, tournamentID int) ([]brackets.StandingMatch, error)
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) ListPlayers(ctx context.Context) ([]brackets.StandingPlayer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM players ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for standings: %w", err)
	}
	defer rows.Close()

	players := make([]brackets.StandingPlayer, 0)
	for rows.Next() {
		var p brackets.StandingPlayer
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresStandingRepository) ListResults(ctx context.Context, tournamentID int) ([]brackets.StandingMatch, error) {
	query := `
		SELECT m.player1_id, m.player2_id, m.result
		FROM matches m
		JOIN rounds r ON r.id = m.round_id
		WHERE r.tournament_id = $1
		ORDER BY r.round_number ASC, m.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results of tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]brackets.StandingMatch, 0)
	for rows.Next() {
		var m brackets.StandingMatch
		if err := rows.Scan(&m.Player1ID, &m.Player2ID, &m.Result); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}
