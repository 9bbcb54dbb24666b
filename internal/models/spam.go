package models

import "time"

// SpamReport is one user's spam flag on a post or comment.
type SpamReport struct {
	ID         uint       `gorm:"primaryKey" json:"-"`
	TargetID   string     `gorm:"size:64;not null;uniqueIndex:idx_spam_target_user" json:"targetId"`
	TargetKind TargetKind `gorm:"size:16;not null" json:"targetKind"`
	UserID     string     `gorm:"size:64;not null;uniqueIndex:idx_spam_target_user" json:"userID"`
	Category   string     `gorm:"size:64" json:"type"`
	Text       string     `json:"text"`
	CreatedAt  time.Time  `json:"created_at"`
}

type SpamRequest struct {
	LinkID   string `json:"linkID" binding:"required"`
	SpamType string `json:"spamType"`
	SpamText string `json:"spamText"`
}
