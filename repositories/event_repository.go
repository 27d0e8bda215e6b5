package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/chess-federation/models"
)

var ErrEventNotFound = errors.New("event not found")

type EventUpdate struct {
	Title       *string
	Location    *string
	Description *string
	Type        *string
	Date        *string
	Time        *string
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	List(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, id int, upd EventUpdate) (*models.Event, error)
	Delete(ctx context.Context, id int) error
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

const eventColumns = `id, title, location, description, type, date, time, created_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Location, &e.Description, &e.Type, &e.Date, &e.Time, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *postgresEventRepository) Create(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events (title, location, description, type, date, time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query, e.Title, e.Location, e.Description, e.Type, e.Date, e.Time).Scan(&e.ID, &e.CreatedAt)
}

func (r *postgresEventRepository) List(ctx context.Context) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *postgresEventRepository) Update(ctx context.Context, id int, upd EventUpdate) (*models.Event, error) {
	var set setClause
	if upd.Title != nil {
		set.add("title", *upd.Title)
	}
	if upd.Location != nil {
		set.add("location", *upd.Location)
	}
	if upd.Description != nil {
		set.add("description", *upd.Description)
	}
	if upd.Type != nil {
		set.add("type", *upd.Type)
	}
	if upd.Date != nil {
		set.add("date", *upd.Date)
	}
	if upd.Time != nil {
		set.add("time", *upd.Time)
	}
	if set.empty() {
		return nil, ErrNoFieldsToUpdate
	}

	clause, args := set.build(id)
	return scanEvent(r.db.QueryRowContext(ctx, `UPDATE events `+clause+` RETURNING `+eventColumns, args...))
}

func (r *postgresEventRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}
