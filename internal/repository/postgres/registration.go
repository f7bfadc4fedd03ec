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

const registrationColumns = `id, event_id, student_id, student_email, status, created_on, updated_on`

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) repository.RegistrationRepository {
	return &registrationRepository{db: db}
}

// Register admits one registration attempt inside a single transaction.
//
// The SELECT ... FOR UPDATE on the event row serializes concurrent attempts
// for the same event: the capacity check, the duplicate check and the count
// increment all happen while the row lock is held, so two racing callers can
// never both observe a free seat. Admission is strictly first-committed-wins.
func (r *registrationRepository) Register(ctx context.Context, reg *domain.Registration) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var status domain.EventStatus
	var capacity, confirmed int32
	err = tx.QueryRowContext(ctx,
		`SELECT status, capacity, confirmed_count FROM events WHERE id = $1 FOR UPDATE`,
		reg.EventID,
	).Scan(&status, &capacity, &confirmed)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock event row: %w", err)
	}

	if !status.IsOpenForRegistration() {
		return fmt.Errorf("%w: event is %s", domain.ErrEventNotOpen, status)
	}

	var dup int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM registrations WHERE event_id = $1 AND student_id = $2 AND status = $3`,
		reg.EventID, reg.StudentID, domain.RegistrationStatusConfirmed,
	).Scan(&dup)
	if err != nil {
		return fmt.Errorf("check duplicate registration: %w", err)
	}
	if dup > 0 {
		return domain.ErrAlreadyRegistered
	}

	if confirmed >= capacity {
		return domain.ErrCapacityExceeded
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE events SET confirmed_count = confirmed_count + 1, updated_on = $1 WHERE id = $2`,
		time.Now().UTC(), reg.EventID)
	if err != nil {
		return fmt.Errorf("increment confirmed count: %w", err)
	}

	now := time.Now().UTC()
	reg.Status = domain.RegistrationStatusConfirmed
	reg.CreatedOn = now
	reg.UpdatedOn = now
	_, err = tx.ExecContext(ctx,
		`INSERT INTO registrations (`+registrationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		reg.ID, reg.EventID, reg.StudentID, reg.StudentEmail, reg.Status, reg.CreatedOn, reg.UpdatedOn)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	reg := &domain.Registration{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id,
	).Scan(&reg.ID, &reg.EventID, &reg.StudentID, &reg.StudentEmail, &reg.Status, &reg.CreatedOn, &reg.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func (r *registrationRepository) GetConfirmed(ctx context.Context, eventID, studentID string) (*domain.Registration, error) {
	reg := &domain.Registration{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id = $1 AND student_id = $2 AND status = $3`,
		eventID, studentID, domain.RegistrationStatusConfirmed,
	).Scan(&reg.ID, &reg.EventID, &reg.StudentID, &reg.StudentEmail, &reg.Status, &reg.CreatedOn, &reg.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get confirmed registration: %w", err)
	}
	return reg, nil
}

// CancelConfirmed flips a CONFIRMED registration to CANCELLED and gives the
// seat back. The conditional UPDATE makes double cancellation a no-op: the
// second caller matches zero rows and the count is decremented exactly once.
func (r *registrationRepository) CancelConfirmed(ctx context.Context, id string) (cancelled bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var eventID string
	err = tx.QueryRowContext(ctx,
		`UPDATE registrations SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4 RETURNING event_id`,
		domain.RegistrationStatusCancelled, time.Now().UTC(), id, domain.RegistrationStatusConfirmed,
	).Scan(&eventID)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		_ = tx.Rollback()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cancel registration: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE events SET confirmed_count = confirmed_count - 1, updated_on = $1 WHERE id = $2`,
		time.Now().UTC(), eventID)
	if err != nil {
		return false, fmt.Errorf("decrement confirmed count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	return true, nil
}

func (r *registrationRepository) CascadeCancel(ctx context.Context, eventID string) (regs []domain.Registration, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx,
		`UPDATE registrations SET status = $1, updated_on = $2 WHERE event_id = $3 AND status = $4 RETURNING `+registrationColumns,
		domain.RegistrationStatusCancelled, time.Now().UTC(), eventID, domain.RegistrationStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("cascade cancel registrations: %w", err)
	}
	for rows.Next() {
		var reg domain.Registration
		if err = rows.Scan(&reg.ID, &reg.EventID, &reg.StudentID, &reg.StudentEmail, &reg.Status, &reg.CreatedOn, &reg.UpdatedOn); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cancelled registration: %w", err)
		}
		regs = append(regs, reg)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE events SET confirmed_count = 0, updated_on = $1 WHERE id = $2`,
		time.Now().UTC(), eventID)
	if err != nil {
		return nil, fmt.Errorf("reset confirmed count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return regs, nil
}

func (r *registrationRepository) ConfirmedCount(ctx context.Context, eventID string) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT confirmed_count FROM events WHERE id = $1`, eventID,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get confirmed count: %w", err)
	}
	return count, nil
}

func (r *registrationRepository) ListByStudent(ctx context.Context, studentID string, page, pageSize int32) ([]domain.Registration, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM registrations WHERE student_id = $1`, studentID,
	).Scan(&count)
	if err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE student_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`,
		studentID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.StudentID, &reg.StudentEmail, &reg.Status, &reg.CreatedOn, &reg.UpdatedOn); err != nil {
			return nil, 0, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, count, rows.Err()
}

func (r *registrationRepository) ListConfirmedByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id = $1 AND status = $2 ORDER BY created_on ASC`,
		eventID, domain.RegistrationStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("list confirmed registrations: %w", err)
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.StudentID, &reg.StudentEmail, &reg.Status, &reg.CreatedOn, &reg.UpdatedOn); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
