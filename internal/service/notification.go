package service

import (
	"context"

	"github.com/vturenko/brokerage-admin/internal/model"
	"github.com/vturenko/brokerage-admin/internal/repository"
)

type NotificationService interface {
	Send(ctx context.Context, userID int64, message string) (*model.Notification, error)
	List(ctx context.Context, userID int64) ([]*model.Notification, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Send(ctx context.Context, userID int64, message string) (*model.Notification, error) {
	if userID == 0 || message == "" {
		return nil, ErrMissingField
	}

	n := &model.Notification{
		UserID:  userID,
		Message: message,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

func (s *notificationService) List(ctx context.Context, userID int64) ([]*model.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID)
}
