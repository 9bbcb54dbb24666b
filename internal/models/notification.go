package models

import "time"

type NotificationType string

const (
	NotifyBan             NotificationType = "ban"
	NotifyMute            NotificationType = "mute"
	NotifyModeratorInvite NotificationType = "moderator_invite"
	NotifyReply           NotificationType = "reply"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    string           `gorm:"size:64;not null;index" json:"userId"`
	Type      NotificationType `gorm:"size:32;not null" json:"type"`
	Message   string           `json:"message"`
	SourceID  string           `gorm:"size:64" json:"sourceId"`
	IsRead    bool             `gorm:"not null;default:false" json:"isRead"`
	CreatedAt time.Time        `json:"created_at"`
}
