package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-events-backend/internal/domain"
)

// EventInput carries the organizer-editable fields of an event.
type EventInput struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Venue        string    `json:"venue"`
	Category     string    `json:"category"`
	ContactEmail string    `json:"contact_email"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Capacity     int32     `json:"capacity"`
	RulebookID   string    `json:"rulebook_id"`
}

type EventService interface {
	CreateEvent(ctx context.Context, organizer domain.Identity, in EventInput) (*domain.Event, error)
	UpdateEvent(ctx context.Context, organizer domain.Identity, eventID string, in EventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, eventID string) (*domain.Event, error)
	ListOpenEvents(ctx context.Context, page, pageSize int32) ([]domain.Event, int32, error)
	ListMyEvents(ctx context.Context, organizerID string, page, pageSize int32) ([]domain.Event, int32, error)
	ListPendingReview(ctx context.Context, admin domain.Identity, page, pageSize int32) ([]domain.Event, int32, error)
	SubmitForReview(ctx context.Context, organizer domain.Identity, eventID string) (*domain.Event, error)
	Approve(ctx context.Context, admin domain.Identity, eventID, note string) (*domain.Event, error)
	RequestChanges(ctx context.Context, admin domain.Identity, eventID, note string) (*domain.Event, error)
	Publish(ctx context.Context, admin domain.Identity, eventID string) (*domain.Event, error)
	Close(ctx context.Context, actor domain.Identity, eventID string) (*domain.Event, error)
	Cancel(ctx context.Context, actor domain.Identity, eventID, reason string) (*domain.Event, error)
}

type RegistrationService interface {
	Register(ctx context.Context, student domain.Identity, eventID string) (*domain.Registration, *domain.Credential, error)
	CancelRegistration(ctx context.Context, actor domain.Identity, registrationID string) (*domain.Registration, error)
	ListMyRegistrations(ctx context.Context, studentID string, page, pageSize int32) ([]domain.Registration, int32, error)
	ListEventRoster(ctx context.Context, actor domain.Identity, eventID string) ([]domain.Registration, error)
	ConfirmedCount(ctx context.Context, eventID string) (int32, error)
	IsFull(ctx context.Context, eventID string) (bool, error)
}

type CredentialService interface {
	Issue(ctx context.Context, reg *domain.Registration) (*domain.Credential, error)
	CheckIn(ctx context.Context, token string) (*domain.CheckIn, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

type EmailService interface {
	SendEventApproved(ctx context.Context, to, eventTitle, note string) error
	SendChangesRequested(ctx context.Context, to, eventTitle, note string) error
	SendEventCancelled(ctx context.Context, to, eventTitle, reason string) error
	SendRegistrationConfirmed(ctx context.Context, to, eventTitle, token string) error
	SendRegistrationCancelled(ctx context.Context, to, eventTitle string) error
}

const defaultQueryTimeout = 5 * time.Second

// boundCtx derives a deadline for a persistence call so no operation can
// hang on a stuck backend.
func boundCtx(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultQueryTimeout
	}
	return context.WithTimeout(ctx, d)
}

// domainErr reports whether err carries one of the caller-visible domain
// sentinels; those pass through storageErr untouched.
func domainErr(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrEventNotOpen,
		domain.ErrAlreadyRegistered,
		domain.ErrCapacityExceeded,
		domain.ErrInvalidTransition,
		domain.ErrAlreadyConsumed,
		domain.ErrCredentialVoided,
		domain.ErrUnauthorized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return domain.IsValidation(err)
}

// storageErr classifies a repository error: domain errors pass through,
// deadline expiry becomes ErrTimeout, everything else ErrUnavailable. Both
// infrastructure kinds are safe for the caller to retry because no
// operation leaves a partial commit.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	if domainErr(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
}
