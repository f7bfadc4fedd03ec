package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/repository"
)

const eventColumns = `id, organizer_id, contact_email, title, description, venue, category, start_time, end_time, capacity, confirmed_count, rulebook_id, status, review_notes, version, created_on, updated_on`

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (id, organizer_id, contact_email, title, description, venue, category, start_time, end_time, capacity, confirmed_count, rulebook_id, status, review_notes, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	now := time.Now().UTC()
	e.CreatedOn = now
	e.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.OrganizerID, e.ContactEmail, e.Title, e.Description, e.Venue, e.Category,
		e.StartTime, e.EndTime, e.Capacity, e.ConfirmedCount, e.RulebookID, e.Status,
		e.ReviewNotes, e.Version, e.CreatedOn, e.UpdatedOn)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(&e.ID, &e.OrganizerID, &e.ContactEmail, &e.Title, &e.Description,
		&e.Venue, &e.Category, &e.StartTime, &e.EndTime, &e.Capacity, &e.ConfirmedCount,
		&e.RulebookID, &e.Status, &e.ReviewNotes, &e.Version, &e.CreatedOn, &e.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events SET contact_email=$1, title=$2, description=$3, venue=$4, category=$5, start_time=$6, end_time=$7, capacity=$8, rulebook_id=$9, updated_on=$10 WHERE id=$11`
	res, err := r.db.ExecContext(ctx, query,
		e.ContactEmail, e.Title, e.Description, e.Venue, e.Category,
		e.StartTime, e.EndTime, e.Capacity, e.RulebookID, time.Now().UTC(), e.ID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TransitionStatus performs the conditional update that serializes
// concurrent transition attempts. Two callers racing from the same stale
// read cannot both succeed: the second UPDATE matches zero rows.
func (r *eventRepository) TransitionStatus(ctx context.Context, id string, from, to domain.EventStatus, reviewNotes string) error {
	query := `UPDATE events SET status=$1, review_notes=$2, version=version+1, updated_on=$3 WHERE id=$4 AND status=$5`
	res, err := r.db.ExecContext(ctx, query, to, reviewNotes, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("transition event status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	var current domain.EventStatus
	err = r.db.QueryRowContext(ctx, `SELECT status FROM events WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read event status: %w", err)
	}
	return fmt.Errorf("%w: event is %s, expected %s", domain.ErrInvalidTransition, current, from)
}

func (r *eventRepository) list(ctx context.Context, where string, args []any, page, pageSize int32) ([]domain.Event, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM events ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+eventColumns+` FROM events %s ORDER BY start_time ASC LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, pageSize, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, count, rows.Err()
}

func (r *eventRepository) ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int32) ([]domain.Event, int32, error) {
	return r.list(ctx, `WHERE organizer_id = $1`, []any{organizerID}, page, pageSize)
}

func (r *eventRepository) ListByStatus(ctx context.Context, status domain.EventStatus, page, pageSize int32) ([]domain.Event, int32, error) {
	return r.list(ctx, `WHERE status = $1`, []any{status}, page, pageSize)
}

func (r *eventRepository) ListOpen(ctx context.Context, page, pageSize int32) ([]domain.Event, int32, error) {
	return r.list(ctx, `WHERE status IN ($1, $2)`, []any{domain.EventStatusApproved, domain.EventStatusLive}, page, pageSize)
}

func (r *eventRepository) ActivateDue(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE events SET status=$1, version=version+1, updated_on=$2 WHERE status=$3 AND start_time <= $2`
	res, err := r.db.ExecContext(ctx, query, domain.EventStatusLive, now.UTC(), domain.EventStatusApproved)
	if err != nil {
		return 0, fmt.Errorf("activate due events: %w", err)
	}
	return res.RowsAffected()
}

func (r *eventRepository) CloseEnded(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE events SET status=$1, version=version+1, updated_on=$2 WHERE status=$3 AND end_time <= $2`
	res, err := r.db.ExecContext(ctx, query, domain.EventStatusClosed, now.UTC(), domain.EventStatusLive)
	if err != nil {
		return 0, fmt.Errorf("close ended events: %w", err)
	}
	return res.RowsAffected()
}
