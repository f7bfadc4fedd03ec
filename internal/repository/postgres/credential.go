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

type credentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	query := `INSERT INTO credentials (id, registration_id, token, issued_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, cred.ID, cred.RegistrationID, cred.Token, cred.IssuedAt)
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (r *credentialRepository) GetByRegistration(ctx context.Context, registrationID string) (*domain.Credential, error) {
	cred := &domain.Credential{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, registration_id, token, issued_at, consumed_at FROM credentials WHERE registration_id = $1`,
		registrationID,
	).Scan(&cred.ID, &cred.RegistrationID, &cred.Token, &cred.IssuedAt, &cred.ConsumedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return cred, nil
}

// Consume marks the credential as used exactly once. The row lock taken by
// the SELECT ... FOR UPDATE serializes simultaneous scans of the same token:
// the loser re-reads a consumed_at that is already set and fails with
// ErrAlreadyConsumed.
func (r *credentialRepository) Consume(ctx context.Context, token string, now time.Time) (checkIn *domain.CheckIn, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var (
		credID, regID  string
		consumedAt     *time.Time
		regStatus      domain.RegistrationStatus
		eventID, title string
		studentID      string
		studentEmail   string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT c.id, c.registration_id, c.consumed_at, r.status, r.event_id, r.student_id, r.student_email, e.title
		 FROM credentials c
		 JOIN registrations r ON r.id = c.registration_id
		 JOIN events e ON e.id = r.event_id
		 WHERE c.token = $1
		 FOR UPDATE OF c`,
		token,
	).Scan(&credID, &regID, &consumedAt, &regStatus, &eventID, &studentID, &studentEmail, &title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock credential row: %w", err)
	}

	if consumedAt != nil {
		return nil, domain.ErrAlreadyConsumed
	}
	if regStatus == domain.RegistrationStatusCancelled {
		return nil, domain.ErrCredentialVoided
	}

	ts := now.UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE credentials SET consumed_at = $1 WHERE id = $2`, ts, credID)
	if err != nil {
		return nil, fmt.Errorf("consume credential: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &domain.CheckIn{
		CredentialID:   credID,
		RegistrationID: regID,
		EventID:        eventID,
		EventTitle:     title,
		StudentID:      studentID,
		StudentEmail:   studentEmail,
		ConsumedAt:     ts,
	}, nil
}
