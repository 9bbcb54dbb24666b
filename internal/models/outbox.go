package models

import "time"

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// OutboxEvent is written in the same transaction as the change it describes.
type OutboxEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"size:64;not null" json:"type"`
	AggregateID string    `gorm:"size:64;not null" json:"aggregateId"`
	Payload     string    `gorm:"type:text" json:"payload"`
	Status      string    `gorm:"size:16;not null;default:pending;index" json:"status"`
	Retry       int       `gorm:"not null;default:0" json:"retry"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
