package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/readit/backend/internal/models"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	notes := []models.Notification{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").Order("id desc").
		Limit(listLimit).
		Find(&notes).Error
	return notes, err
}

// Delete removes one of userID's own notifications.
func (s *NotificationService) Delete(ctx context.Context, userID string, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: notification %d", ErrNotFound, id)
	}
	return nil
}
