package models

import "time"

// Membership is the user-side view of a user's relationship with a community.
type Membership struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	UserID       string    `gorm:"size:64;not null;uniqueIndex:idx_memberships_pair" json:"userId"`
	CommunityID  string    `gorm:"size:64;not null;uniqueIndex:idx_memberships_pair;index" json:"communityId"`
	IsSubscribed bool      `gorm:"not null;default:false" json:"isSubscribed"`
	IsBanned     bool      `gorm:"not null;default:false" json:"isBanned"`
	IsMuted      bool      `gorm:"not null;default:false" json:"isMuted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RestrictionKind string

const (
	RestrictionBanned RestrictionKind = "banned"
	RestrictionMuted  RestrictionKind = "muted"
)

// CommunityRestriction is the community-side list entry for a banned or muted user.
type CommunityRestriction struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	CommunityID string          `gorm:"size:64;not null;uniqueIndex:idx_restrictions_entry" json:"communityId"`
	UserID      string          `gorm:"size:64;not null;uniqueIndex:idx_restrictions_entry" json:"userId"`
	Kind        RestrictionKind `gorm:"size:16;not null;uniqueIndex:idx_restrictions_entry" json:"kind"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Moderator is the single record behind both a community's moderator list
// and a user's moderated-communities list.
type Moderator struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CommunityID string    `gorm:"size:64;not null;uniqueIndex:idx_moderators_pair" json:"communityId"`
	UserID      string    `gorm:"size:64;not null;uniqueIndex:idx_moderators_pair;index" json:"userId"`
	CreatedAt   time.Time `json:"created_at"`
}

type ModeratorInvite struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CommunityID string    `gorm:"size:64;not null;uniqueIndex:idx_invites_pair" json:"communityId"`
	UserID      string    `gorm:"size:64;not null;uniqueIndex:idx_invites_pair" json:"userId"`
	InvitedBy   string    `gorm:"size:64" json:"invitedBy"`
	CreatedAt   time.Time `json:"created_at"`
}
