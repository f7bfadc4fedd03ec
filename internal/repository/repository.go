package repository

import (
	"context"
	"time"

	"campus-events-backend/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// Update persists organizer-editable fields. Status, confirmed count and
	// version are never touched here.
	Update(ctx context.Context, event *domain.Event) error
	// TransitionStatus atomically moves the event from one status to another
	// with a conditional update. It returns domain.ErrNotFound if the event
	// does not exist and domain.ErrInvalidTransition if the stored status no
	// longer matches from (a concurrent transition won the race).
	TransitionStatus(ctx context.Context, id string, from, to domain.EventStatus, reviewNotes string) error
	ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int32) ([]domain.Event, int32, error)
	ListByStatus(ctx context.Context, status domain.EventStatus, page, pageSize int32) ([]domain.Event, int32, error)
	// ListOpen returns events students may register for (APPROVED or LIVE).
	ListOpen(ctx context.Context, page, pageSize int32) ([]domain.Event, int32, error)
	// ActivateDue transitions every APPROVED event whose start time has
	// arrived to LIVE. Returns the number of events activated.
	ActivateDue(ctx context.Context, now time.Time) (int64, error)
	// CloseEnded transitions every LIVE event whose end time has passed to
	// CLOSED. Returns the number of events closed.
	CloseEnded(ctx context.Context, now time.Time) (int64, error)
}

type RegistrationRepository interface {
	// Register admits a registration attempt as one atomic unit: it locks
	// the event row, verifies the event is open, rejects duplicates and full
	// events, increments the confirmed count and inserts the record. Returns
	// domain.ErrNotFound, domain.ErrEventNotOpen, domain.ErrAlreadyRegistered
	// or domain.ErrCapacityExceeded on rejection.
	Register(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	// GetConfirmed returns the student's CONFIRMED registration for the
	// event, or domain.ErrNotFound.
	GetConfirmed(ctx context.Context, eventID, studentID string) (*domain.Registration, error)
	// CancelConfirmed moves a CONFIRMED registration to CANCELLED and
	// decrements the event's confirmed count. It reports false without error
	// when the registration was not CONFIRMED, making cancellation
	// idempotent at the storage level.
	CancelConfirmed(ctx context.Context, id string) (bool, error)
	// CascadeCancel cancels every CONFIRMED registration of the event and
	// resets its confirmed count. Returns the cancelled registrations so
	// callers can notify the affected students.
	CascadeCancel(ctx context.Context, eventID string) ([]domain.Registration, error)
	ConfirmedCount(ctx context.Context, eventID string) (int32, error)
	ListByStudent(ctx context.Context, studentID string, page, pageSize int32) ([]domain.Registration, int32, error)
	ListConfirmedByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
}

type CredentialRepository interface {
	Create(ctx context.Context, cred *domain.Credential) error
	GetByRegistration(ctx context.Context, registrationID string) (*domain.Credential, error)
	// Consume atomically marks the credential identified by token as used.
	// Exactly one of two simultaneous calls for the same token succeeds; the
	// loser gets domain.ErrAlreadyConsumed. A credential whose registration
	// is CANCELLED yields domain.ErrCredentialVoided.
	Consume(ctx context.Context, token string, now time.Time) (*domain.CheckIn, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}
