package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/service"
)

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) CreateEvent(ctx context.Context, organizer domain.Identity, in service.EventInput) (*domain.Event, error) {
	args := m.Called(ctx, organizer, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) UpdateEvent(ctx context.Context, organizer domain.Identity, eventID string, in service.EventInput) (*domain.Event, error) {
	args := m.Called(ctx, organizer, eventID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) ListOpenEvents(ctx context.Context, page, pageSize int32) ([]domain.Event, int32, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Event), args.Get(1).(int32), args.Error(2)
}

func (m *MockEventService) ListMyEvents(ctx context.Context, organizerID string, page, pageSize int32) ([]domain.Event, int32, error) {
	args := m.Called(ctx, organizerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Event), args.Get(1).(int32), args.Error(2)
}

func (m *MockEventService) ListPendingReview(ctx context.Context, admin domain.Identity, page, pageSize int32) ([]domain.Event, int32, error) {
	args := m.Called(ctx, admin, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Event), args.Get(1).(int32), args.Error(2)
}

func (m *MockEventService) SubmitForReview(ctx context.Context, organizer domain.Identity, eventID string) (*domain.Event, error) {
	args := m.Called(ctx, organizer, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) Approve(ctx context.Context, admin domain.Identity, eventID, note string) (*domain.Event, error) {
	args := m.Called(ctx, admin, eventID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) RequestChanges(ctx context.Context, admin domain.Identity, eventID, note string) (*domain.Event, error) {
	args := m.Called(ctx, admin, eventID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) Publish(ctx context.Context, admin domain.Identity, eventID string) (*domain.Event, error) {
	args := m.Called(ctx, admin, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) Close(ctx context.Context, actor domain.Identity, eventID string) (*domain.Event, error) {
	args := m.Called(ctx, actor, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) Cancel(ctx context.Context, actor domain.Identity, eventID, reason string) (*domain.Event, error) {
	args := m.Called(ctx, actor, eventID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) Register(ctx context.Context, student domain.Identity, eventID string) (*domain.Registration, *domain.Credential, error) {
	args := m.Called(ctx, student, eventID)
	var reg *domain.Registration
	var cred *domain.Credential
	if args.Get(0) != nil {
		reg = args.Get(0).(*domain.Registration)
	}
	if args.Get(1) != nil {
		cred = args.Get(1).(*domain.Credential)
	}
	return reg, cred, args.Error(2)
}

func (m *MockRegistrationService) CancelRegistration(ctx context.Context, actor domain.Identity, registrationID string) (*domain.Registration, error) {
	args := m.Called(ctx, actor, registrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *MockRegistrationService) ListMyRegistrations(ctx context.Context, studentID string, page, pageSize int32) ([]domain.Registration, int32, error) {
	args := m.Called(ctx, studentID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Registration), args.Get(1).(int32), args.Error(2)
}

func (m *MockRegistrationService) ListEventRoster(ctx context.Context, actor domain.Identity, eventID string) ([]domain.Registration, error) {
	args := m.Called(ctx, actor, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *MockRegistrationService) ConfirmedCount(ctx context.Context, eventID string) (int32, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockRegistrationService) IsFull(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) Issue(ctx context.Context, reg *domain.Registration) (*domain.Credential, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockCredentialService) CheckIn(ctx context.Context, token string) (*domain.CheckIn, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckIn), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}
