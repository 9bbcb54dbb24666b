package events

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/readit/backend/internal/models"
)

// Event types written to the outbox.
const (
	TargetRemoved    = "target.removed"
	TargetApproved   = "target.approved"
	MemberRestricted = "member.restricted"
	ModeratorInvited = "moderator.invited"
	ModeratorAdded   = "moderator.added"
	ModeratorLeft    = "moderator.left"
)

// Enqueue records an event on tx so it commits or rolls back with the change it describes.
func Enqueue(tx *gorm.DB, eventType, aggregateID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", eventType, err)
	}
	ev := models.OutboxEvent{
		Type:        eventType,
		AggregateID: aggregateID,
		Payload:     string(body),
		Status:      models.OutboxPending,
	}
	return tx.Create(&ev).Error
}

// OutboxRepository reads and settles pending outbox rows.
type OutboxRepository struct {
	DB *gorm.DB
}

func (r *OutboxRepository) List(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	var rows []models.OutboxEvent
	err := r.DB.WithContext(ctx).
		Where("status = ?", models.OutboxPending).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).
		Model(&models.OutboxEvent{}).
		Where("id = ?", id).
		Update("status", models.OutboxSent).Error
}

// MarkRetry bumps the retry counter and gives up after maxRetry attempts.
func (r *OutboxRepository) MarkRetry(ctx context.Context, id uint, maxRetry int) error {
	return r.DB.WithContext(ctx).
		Model(&models.OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"retry":  gorm.Expr("retry + 1"),
			"status": gorm.Expr("CASE WHEN retry + 1 >= ? THEN ? ELSE status END", maxRetry, models.OutboxFailed),
		}).Error
}
