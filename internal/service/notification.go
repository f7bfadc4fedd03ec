package service

import (
	"context"
	"time"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
	timeout  time.Duration
}

func NewNotificationService(noteRepo repository.NotificationRepository, timeout time.Duration) NotificationService {
	return &notificationService{noteRepo: noteRepo, timeout: timeout}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()
	notes, count, err := s.noteRepo.List(cctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return notes, count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()
	if err := s.noteRepo.MarkAsRead(cctx, notificationID, userID); err != nil {
		return storageErr(err)
	}
	return nil
}
