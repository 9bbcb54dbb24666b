package models

import "time"

const (
	Upvote   = 1
	Downvote = -1
)

// Vote records one user's vote on a post or comment. VoteType is +1 or -1.
type Vote struct {
	ID         uint       `gorm:"primaryKey" json:"-"`
	TargetID   string     `gorm:"size:64;not null;uniqueIndex:idx_votes_target_user" json:"targetId"`
	TargetKind TargetKind `gorm:"size:16;not null" json:"targetKind"`
	UserID     string     `gorm:"size:64;not null;uniqueIndex:idx_votes_target_user;index" json:"userId"`
	VoteType   int        `gorm:"not null" json:"voteType"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type VoteRequest struct {
	ID  string `json:"id"`
	Dir *int   `json:"dir"`
}
