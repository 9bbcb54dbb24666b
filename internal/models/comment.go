package models

import "time"

type Comment struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	AuthorID    string     `gorm:"size:64;index;not null" json:"authorId"`
	PostID      string     `gorm:"size:64;index;not null" json:"postId"`
	ParentID    *string    `gorm:"size:64;index" json:"replyingTo,omitempty"`
	CommunityID string     `gorm:"size:64;index" json:"communityId,omitempty"`
	IsRoot      bool       `gorm:"not null" json:"isRoot"`
	Text        string     `gorm:"not null" json:"text"`
	VotesCount  int        `gorm:"not null;default:0" json:"votesCount"`
	SpamCount   int        `gorm:"not null;default:0" json:"spamCount"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"isDeleted"`
	IsCollapsed bool       `gorm:"not null;default:false" json:"isCollapsed"`
	IsLocked    bool       `gorm:"not null;default:false" json:"isLocked"`
	EditedAt    *time.Time `json:"editedAt,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateCommentRequest struct {
	ParentID string `json:"parentID" binding:"required"`
	Text     string `json:"text" binding:"required"`
}
