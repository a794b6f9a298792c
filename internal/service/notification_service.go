package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/pkg/apperror"
)

// maxInbox bounds the rendered inbox; older notifications stay in the
// table but are not listed.
const maxInbox = 50

type NotificationService interface {
	// Create persists the notification and publishes it for live delivery.
	// No dedup here: callers that need it (the reminder generator) check
	// before calling.
	Create(ctx context.Context, rendezVousID *uint, notifType, message string, userID uint) (*model.Notification, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Notification, error)
	ListUnread(ctx context.Context, userID uint) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	GetByID(ctx context.Context, id uint) (*model.Notification, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	Delete(ctx context.Context, id uint) error
}

type notificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// NotificationChannel is the pub/sub channel carrying a user's live
// notifications.
func NotificationChannel(userID uint) string {
	return fmt.Sprintf("user_notifications:%d", userID)
}

func (s *notificationService) Create(ctx context.Context, rendezVousID *uint, notifType, message string, userID uint) (*model.Notification, error) {
	notification := &model.Notification{
		Type:         notifType,
		Message:      message,
		RendezVousID: rendezVousID,
		UserID:       userID,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(notification); err == nil {
			s.redisClient.Publish(ctx, NotificationChannel(userID), payload)
		}
	}

	return notification, nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, maxInbox)
}

func (s *notificationService) ListUnread(ctx context.Context, userID uint) ([]model.Notification, error) {
	return s.repo.GetUnread(ctx, userID)
}

func (s *notificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificationService) GetByID(ctx context.Context, id uint) (*model.Notification, error) {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return notification, nil
}

// MarkRead is a no-op when the notification does not exist.
func (s *notificationService) MarkRead(ctx context.Context, id uint) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Delete is a no-op when the notification does not exist.
func (s *notificationService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
