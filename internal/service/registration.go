package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/logger"
	"campus-events-backend/internal/repository"
)

type registrationService struct {
	regRepo   repository.RegistrationRepository
	eventRepo repository.EventRepository
	credSvc   CredentialService
	noteRepo  repository.NotificationRepository
	emailSvc  EmailService
	timeout   time.Duration
}

func NewRegistrationService(
	regRepo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	credSvc CredentialService,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	timeout time.Duration,
) RegistrationService {
	return &registrationService{
		regRepo:   regRepo,
		eventRepo: eventRepo,
		credSvc:   credSvc,
		noteRepo:  noteRepo,
		emailSvc:  emailSvc,
		timeout:   timeout,
	}
}

// Register admits the student if the event is open and has a free seat, then
// issues the check-in credential. The admission itself is a single atomic
// unit in the ledger; a caller that loses the capacity race gets
// ErrCapacityExceeded and may retry against another event.
func (s *registrationService) Register(ctx context.Context, student domain.Identity, eventID string) (*domain.Registration, *domain.Credential, error) {
	if student.Role != domain.RoleStudent {
		return nil, nil, domain.ErrUnauthorized
	}

	reg := &domain.Registration{
		ID:           uuid.New().String(),
		EventID:      eventID,
		StudentID:    student.UserID,
		StudentEmail: student.Email,
	}

	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()
	if err := s.regRepo.Register(cctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return s.completeExisting(ctx, cctx, eventID, student.UserID)
		}
		return nil, nil, storageErr(err)
	}

	cred, err := s.credSvc.Issue(ctx, reg)
	if err != nil {
		// The registration is committed and keeps its seat; retrying Register
		// finds it and issues the missing credential.
		return reg, nil, err
	}

	event, err := s.eventRepo.GetByID(cctx, eventID)
	if err != nil {
		logger.Warn("post-registration event read failed", "event_id", eventID, "error", err)
		return reg, cred, nil
	}

	note := &domain.Notification{
		ID:      uuid.New().String(),
		UserID:  student.UserID,
		Title:   "Registration Confirmed",
		Message: fmt.Sprintf("You are registered for %q", event.Title),
		Attributes: map[string]string{
			"type":            "REGISTRATION_CONFIRMED",
			"event_id":        event.ID,
			"registration_id": reg.ID,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("registration notification failed", "registration_id", reg.ID, "error", err)
	}
	if err := s.emailSvc.SendRegistrationConfirmed(ctx, student.Email, event.Title, cred.Token); err != nil {
		logger.Warn("registration email failed", "registration_id", reg.ID, "error", err)
	}

	return reg, cred, nil
}

// completeExisting handles a Register call for a student who is already
// confirmed. If the earlier attempt committed the registration but failed
// before the credential was issued, this issues it now; otherwise the call
// is a genuine duplicate.
func (s *registrationService) completeExisting(ctx, cctx context.Context, eventID, studentID string) (*domain.Registration, *domain.Credential, error) {
	existing, err := s.regRepo.GetConfirmed(cctx, eventID, studentID)
	if err != nil {
		return nil, nil, storageErr(err)
	}

	cred, err := s.credSvc.Issue(ctx, existing)
	if errors.Is(err, domain.ErrInvalidTransition) {
		// A credential already exists for the registration.
		return nil, nil, domain.ErrAlreadyRegistered
	}
	if err != nil {
		return existing, nil, err
	}
	return existing, cred, nil
}

// CancelRegistration is idempotent: cancelling an already-cancelled
// registration is a no-op, not an error.
func (s *registrationService) CancelRegistration(ctx context.Context, actor domain.Identity, registrationID string) (*domain.Registration, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	reg, err := s.regRepo.GetByID(cctx, registrationID)
	if err != nil {
		return nil, storageErr(err)
	}
	if actor.Role != domain.RoleAdmin && reg.StudentID != actor.UserID {
		return nil, domain.ErrUnauthorized
	}
	if reg.Status == domain.RegistrationStatusCancelled {
		return reg, nil
	}

	cancelled, err := s.regRepo.CancelConfirmed(cctx, registrationID)
	if err != nil {
		return nil, storageErr(err)
	}
	reg.Status = domain.RegistrationStatusCancelled
	if !cancelled {
		// Lost a race with another cancel; the end state is the same.
		return reg, nil
	}

	if event, err := s.eventRepo.GetByID(cctx, reg.EventID); err == nil {
		if err := s.emailSvc.SendRegistrationCancelled(ctx, reg.StudentEmail, event.Title); err != nil {
			logger.Warn("cancellation email failed", "registration_id", reg.ID, "error", err)
		}
	}
	return reg, nil
}

func (s *registrationService) ListMyRegistrations(ctx context.Context, studentID string, page, pageSize int32) ([]domain.Registration, int32, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()
	regs, count, err := s.regRepo.ListByStudent(cctx, studentID, page, pageSize)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return regs, count, nil
}

func (s *registrationService) ListEventRoster(ctx context.Context, actor domain.Identity, eventID string) ([]domain.Registration, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(cctx, eventID)
	if err != nil {
		return nil, storageErr(err)
	}
	if actor.Role != domain.RoleAdmin && event.OrganizerID != actor.UserID {
		return nil, domain.ErrUnauthorized
	}

	regs, err := s.regRepo.ListConfirmedByEvent(cctx, eventID)
	if err != nil {
		return nil, storageErr(err)
	}
	return regs, nil
}

func (s *registrationService) ConfirmedCount(ctx context.Context, eventID string) (int32, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()
	count, err := s.regRepo.ConfirmedCount(cctx, eventID)
	if err != nil {
		return 0, storageErr(err)
	}
	return count, nil
}

func (s *registrationService) IsFull(ctx context.Context, eventID string) (bool, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()
	event, err := s.eventRepo.GetByID(cctx, eventID)
	if err != nil {
		return false, storageErr(err)
	}
	return event.IsFull(), nil
}
