package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/logger"
	"campus-events-backend/internal/repository"
)

type eventService struct {
	eventRepo repository.EventRepository
	regRepo   repository.RegistrationRepository
	noteRepo  repository.NotificationRepository
	emailSvc  EmailService
	timeout   time.Duration
}

func NewEventService(
	eventRepo repository.EventRepository,
	regRepo repository.RegistrationRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	timeout time.Duration,
) EventService {
	return &eventService{
		eventRepo: eventRepo,
		regRepo:   regRepo,
		noteRepo:  noteRepo,
		emailSvc:  emailSvc,
		timeout:   timeout,
	}
}

func validateEventInput(in EventInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Validation("title", "must not be empty")
	}
	if in.Capacity < 1 {
		return domain.Validation("capacity", "must be at least 1")
	}
	if !in.EndTime.IsZero() && !in.StartTime.IsZero() && !in.EndTime.After(in.StartTime) {
		return domain.Validation("end_time", "must be after start_time")
	}
	return nil
}

// validateForSubmission enforces the fields that must be present before an
// event can enter review.
func validateForSubmission(e *domain.Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return domain.Validation("title", "must not be empty")
	}
	if strings.TrimSpace(e.Venue) == "" {
		return domain.Validation("venue", "must not be empty")
	}
	if e.StartTime.IsZero() {
		return domain.Validation("start_time", "must be set")
	}
	if e.Capacity < 1 {
		return domain.Validation("capacity", "must be at least 1")
	}
	if strings.TrimSpace(e.RulebookID) == "" {
		return domain.Validation("rulebook_id", "rulebook must be uploaded")
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, organizer domain.Identity, in EventInput) (*domain.Event, error) {
	if organizer.Role != domain.RoleOrganizer {
		return nil, domain.ErrUnauthorized
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:           uuid.New().String(),
		OrganizerID:  organizer.UserID,
		ContactEmail: in.ContactEmail,
		Title:        in.Title,
		Description:  in.Description,
		Venue:        in.Venue,
		Category:     in.Category,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Capacity:     in.Capacity,
		RulebookID:   in.RulebookID,
		Status:       domain.EventStatusDraft,
	}
	if event.ContactEmail == "" {
		event.ContactEmail = organizer.Email
	}

	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()
	if err := s.eventRepo.Create(cctx, event); err != nil {
		return nil, storageErr(err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, organizer domain.Identity, eventID string, in EventInput) (*domain.Event, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(cctx, eventID)
	if err != nil {
		return nil, storageErr(err)
	}
	if event.OrganizerID != organizer.UserID {
		return nil, domain.ErrUnauthorized
	}
	if !event.Editable() {
		return nil, fmt.Errorf("%w: event is %s", domain.ErrInvalidTransition, event.Status)
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}
	// Capacity freezes once the event has left draft.
	if event.Status != domain.EventStatusDraft && in.Capacity != event.Capacity {
		return nil, domain.Validation("capacity", "immutable after leaving draft")
	}

	event.Title = in.Title
	event.Description = in.Description
	event.Venue = in.Venue
	event.Category = in.Category
	event.ContactEmail = in.ContactEmail
	event.StartTime = in.StartTime
	event.EndTime = in.EndTime
	event.Capacity = in.Capacity
	event.RulebookID = in.RulebookID

	if err := s.eventRepo.Update(cctx, event); err != nil {
		return nil, storageErr(err)
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()
	event, err := s.eventRepo.GetByID(cctx, eventID)
	if err != nil {
		return nil, storageErr(err)
	}
	return event, nil
}

func (s *eventService) ListOpenEvents(ctx context.Context, page, pageSize int32) ([]domain.Event, int32, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()
	events, count, err := s.eventRepo.ListOpen(cctx, page, pageSize)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return events, count, nil
}

func (s *eventService) ListMyEvents(ctx context.Context, organizerID string, page, pageSize int32) ([]domain.Event, int32, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()
	events, count, err := s.eventRepo.ListByOrganizer(cctx, organizerID, page, pageSize)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return events, count, nil
}

func (s *eventService) ListPendingReview(ctx context.Context, admin domain.Identity, page, pageSize int32) ([]domain.Event, int32, error) {
	if admin.Role != domain.RoleAdmin {
		return nil, 0, domain.ErrUnauthorized
	}
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()
	events, count, err := s.eventRepo.ListByStatus(cctx, domain.EventStatusPending, page, pageSize)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return events, count, nil
}

func (s *eventService) SubmitForReview(ctx context.Context, organizer domain.Identity, eventID string) (*domain.Event, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(cctx, eventID)
	if err != nil {
		return nil, storageErr(err)
	}
	if event.OrganizerID != organizer.UserID {
		return nil, domain.ErrUnauthorized
	}
	if !event.Editable() {
		return nil, fmt.Errorf("%w: cannot submit from %s", domain.ErrInvalidTransition, event.Status)
	}
	if err := validateForSubmission(event); err != nil {
		return nil, err
	}

	// Review notes from a previous round are cleared on entry to PENDING.
	if err := s.eventRepo.TransitionStatus(cctx, eventID, event.Status, domain.EventStatusPending, ""); err != nil {
		return nil, storageErr(err)
	}
	event.Status = domain.EventStatusPending
	event.ReviewNotes = ""
	return event, nil
}

func (s *eventService) Approve(ctx context.Context, admin domain.Identity, eventID, note string) (*domain.Event, error) {
	if admin.Role != domain.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}

	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	// The conditional update is the whole check: only a PENDING event can be
	// approved, and two racing reviewers cannot both win.
	if err := s.eventRepo.TransitionStatus(cctx, eventID, domain.EventStatusPending, domain.EventStatusApproved, note); err != nil {
		return nil, storageErr(err)
	}

	event, err := s.eventRepo.GetByID(cctx, eventID)
	if err != nil {
		return nil, storageErr(err)
	}

	s.notifyOrganizer(ctx, event, "Event Approved",
		fmt.Sprintf("%q was approved and is open for registration", event.Title),
		"EVENT_APPROVED")
	if err := s.emailSvc.SendEventApproved(ctx, event.ContactEmail, event.Title, note); err != nil {
		logger.Warn("approval email failed", "event_id", event.ID, "error", err)
	}
	return event, nil
}

func (s *eventService) RequestChanges(ctx context.Context, admin domain.Identity, eventID, note string) (*domain.Event, error) {
	if admin.Role != domain.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(note) == "" {
		return nil, domain.Validation("note", "must explain the requested changes")
	}

	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	if err := s.eventRepo.TransitionStatus(cctx, eventID, domain.EventStatusPending, domain.EventStatusChangesRequested, note); err != nil {
		return nil, storageErr(err)
	}

	event, err := s.eventRepo.GetByID(cctx, eventID)
	if err != nil {
		return nil, storageErr(err)
	}

	s.notifyOrganizer(ctx, event, "Changes Requested",
		fmt.Sprintf("%q needs changes before approval: %s", event.Title, note),
		"EVENT_CHANGES_REQUESTED")
	if err := s.emailSvc.SendChangesRequested(ctx, event.ContactEmail, event.Title, note); err != nil {
		logger.Warn("changes-requested email failed", "event_id", event.ID, "error", err)
	}
	return event, nil
}

func (s *eventService) Publish(ctx context.Context, admin domain.Identity, eventID string) (*domain.Event, error) {
	if admin.Role != domain.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}

	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	if err := s.eventRepo.TransitionStatus(cctx, eventID, domain.EventStatusApproved, domain.EventStatusLive, ""); err != nil {
		return nil, storageErr(err)
	}
	event, err := s.eventRepo.GetByID(cctx, eventID)
	if err != nil {
		return nil, storageErr(err)
	}
	return event, nil
}

func (s *eventService) Close(ctx context.Context, actor domain.Identity, eventID string) (*domain.Event, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(cctx, eventID)
	if err != nil {
		return nil, storageErr(err)
	}
	if actor.Role != domain.RoleAdmin && event.OrganizerID != actor.UserID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.eventRepo.TransitionStatus(cctx, eventID, domain.EventStatusLive, domain.EventStatusClosed, ""); err != nil {
		return nil, storageErr(err)
	}
	event.Status = domain.EventStatusClosed
	return event, nil
}

func (s *eventService) Cancel(ctx context.Context, actor domain.Identity, eventID, reason string) (*domain.Event, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(cctx, eventID)
	if err != nil {
		return nil, storageErr(err)
	}

	switch actor.Role {
	case domain.RoleAdmin:
		// may cancel any non-terminal event
	case domain.RoleOrganizer:
		if event.OrganizerID != actor.UserID {
			return nil, domain.ErrUnauthorized
		}
		// organizers may only cancel before the event has started
		if event.Status == domain.EventStatusLive {
			return nil, domain.ErrUnauthorized
		}
	default:
		return nil, domain.ErrUnauthorized
	}

	// An already-cancelled event skips the transition but still runs the
	// cascade below. That makes Cancel safe to retry: if the cascade failed
	// after the transition committed, invoking Cancel again completes it.
	if event.Status != domain.EventStatusCancelled {
		if !event.Status.CanTransitionTo(domain.EventStatusCancelled) {
			return nil, fmt.Errorf("%w: cannot cancel from %s", domain.ErrInvalidTransition, event.Status)
		}
		if err := s.eventRepo.TransitionStatus(cctx, eventID, event.Status, domain.EventStatusCancelled, reason); err != nil {
			return nil, storageErr(err)
		}
		event.Status = domain.EventStatusCancelled
		event.ReviewNotes = reason
	}

	// Cascade: every confirmed registration moves to CANCELLED and its
	// credential becomes void. Already-consumed credentials remain
	// historical fact, and already-cancelled registrations are untouched.
	cancelled, err := s.regRepo.CascadeCancel(cctx, eventID)
	if err != nil {
		return nil, storageErr(err)
	}
	event.ConfirmedCount = 0

	for _, reg := range cancelled {
		note := &domain.Notification{
			ID:      uuid.New().String(),
			UserID:  reg.StudentID,
			Title:   "Event Cancelled",
			Message: fmt.Sprintf("%q was cancelled; your registration is void", event.Title),
			Attributes: map[string]string{
				"type":     "EVENT_CANCELLED",
				"event_id": event.ID,
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("cascade notification failed", "registration_id", reg.ID, "error", err)
		}
		if err := s.emailSvc.SendEventCancelled(ctx, reg.StudentEmail, event.Title, reason); err != nil {
			logger.Warn("cancellation email failed", "registration_id", reg.ID, "error", err)
		}
	}

	s.notifyOrganizer(ctx, event, "Event Cancelled",
		fmt.Sprintf("%q was cancelled: %s", event.Title, reason),
		"EVENT_CANCELLED")
	return event, nil
}

// notifyOrganizer writes a best-effort in-app notification for the event's
// organizer. Failures are logged and never surface to the caller.
func (s *eventService) notifyOrganizer(ctx context.Context, event *domain.Event, title, message, kind string) {
	note := &domain.Notification{
		ID:      uuid.New().String(),
		UserID:  event.OrganizerID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":     kind,
			"event_id": event.ID,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("organizer notification failed", "event_id", event.ID, "error", err)
	}
}
