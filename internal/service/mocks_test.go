package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"campus-events-backend/internal/domain"
)

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) Update(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) TransitionStatus(ctx context.Context, id string, from, to domain.EventStatus, reviewNotes string) error {
	args := m.Called(ctx, id, from, to, reviewNotes)
	return args.Error(0)
}
func (m *MockEventRepo) ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int32) ([]domain.Event, int32, error) {
	args := m.Called(ctx, organizerID, page, pageSize)
	return args.Get(0).([]domain.Event), args.Get(1).(int32), args.Error(2)
}
func (m *MockEventRepo) ListByStatus(ctx context.Context, status domain.EventStatus, page, pageSize int32) ([]domain.Event, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Event), args.Get(1).(int32), args.Error(2)
}
func (m *MockEventRepo) ListOpen(ctx context.Context, page, pageSize int32) ([]domain.Event, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Event), args.Get(1).(int32), args.Error(2)
}
func (m *MockEventRepo) ActivateDue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockEventRepo) CloseEnded(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockRegistrationRepo
type MockRegistrationRepo struct {
	mock.Mock
}

func (m *MockRegistrationRepo) Register(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}
func (m *MockRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}
func (m *MockRegistrationRepo) GetConfirmed(ctx context.Context, eventID, studentID string) (*domain.Registration, error) {
	args := m.Called(ctx, eventID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}
func (m *MockRegistrationRepo) CancelConfirmed(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockRegistrationRepo) CascadeCancel(ctx context.Context, eventID string) ([]domain.Registration, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Registration), args.Error(1)
}
func (m *MockRegistrationRepo) ConfirmedCount(ctx context.Context, eventID string) (int32, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockRegistrationRepo) ListByStudent(ctx context.Context, studentID string, page, pageSize int32) ([]domain.Registration, int32, error) {
	args := m.Called(ctx, studentID, page, pageSize)
	return args.Get(0).([]domain.Registration), args.Get(1).(int32), args.Error(2)
}
func (m *MockRegistrationRepo) ListConfirmedByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Registration), args.Error(1)
}

// MockCredentialRepo
type MockCredentialRepo struct {
	mock.Mock
}

func (m *MockCredentialRepo) Create(ctx context.Context, cred *domain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}
func (m *MockCredentialRepo) GetByRegistration(ctx context.Context, registrationID string) (*domain.Credential, error) {
	args := m.Called(ctx, registrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}
func (m *MockCredentialRepo) Consume(ctx context.Context, token string, now time.Time) (*domain.CheckIn, error) {
	args := m.Called(ctx, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckIn), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendEventApproved(ctx context.Context, to, eventTitle, note string) error {
	args := m.Called(ctx, to, eventTitle, note)
	return args.Error(0)
}
func (m *MockEmailService) SendChangesRequested(ctx context.Context, to, eventTitle, note string) error {
	args := m.Called(ctx, to, eventTitle, note)
	return args.Error(0)
}
func (m *MockEmailService) SendEventCancelled(ctx context.Context, to, eventTitle, reason string) error {
	args := m.Called(ctx, to, eventTitle, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendRegistrationConfirmed(ctx context.Context, to, eventTitle, token string) error {
	args := m.Called(ctx, to, eventTitle, token)
	return args.Error(0)
}
func (m *MockEmailService) SendRegistrationCancelled(ctx context.Context, to, eventTitle string) error {
	args := m.Called(ctx, to, eventTitle)
	return args.Error(0)
}

// MockCredentialService
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
