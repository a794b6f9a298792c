package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cabinet-service/internal/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	FindByID(ctx context.Context, id uint) (*model.Notification, error)
	GetByUserID(ctx context.Context, userID uint, limit int) ([]model.Notification, error)
	GetUnread(ctx context.Context, userID uint) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkAsRead(ctx context.Context, id uint) error
	MarkAllAsRead(ctx context.Context, userID uint) error
	Delete(ctx context.Context, id uint) error
	ExistsForRendezVous(ctx context.Context, rendezVousID uint, notifType string, from, to time.Time) (bool, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) FindByID(ctx context.Context, id uint) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) GetByUserID(ctx context.Context, userID uint, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_creation desc").
		Limit(limit).
		Preload("RendezVous").
		Preload("RendezVous.Medecin.User").
		Preload("RendezVous.Patient.User").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) GetUnread(ctx context.Context, userID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND est_lue = ?", userID, false).
		Order("date_creation desc").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND est_lue = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Update("est_lue", true).Error
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND est_lue = ?", userID, false).
		Update("est_lue", true).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Notification{}, id).Error
}

// ExistsForRendezVous reports whether a notification of the given type was
// already created for the appointment inside [from, to). The reminder job
// uses it with the current calendar day as bounds.
func (r *notificationRepository) ExistsForRendezVous(ctx context.Context, rendezVousID uint, notifType string, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("rendez_vous_id = ? AND type = ? AND date_creation >= ? AND date_creation < ?",
			rendezVousID, notifType, from, to).
		Count(&count).Error
	return count > 0, err
}
