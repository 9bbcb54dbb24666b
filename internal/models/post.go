package models

import "time"

type Post struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	AuthorID    string    `gorm:"size:64;index;not null" json:"author_id"`
	CommunityID string    `gorm:"size:64;index" json:"community_id,omitempty"`
	Title       string    `gorm:"not null" json:"title"`
	Text        string    `json:"text"`
	VotesCount  int       `gorm:"not null;default:0" json:"votesCount"`
	SpamCount   int       `gorm:"not null;default:0" json:"spamCount"`
	IsDeleted   bool      `gorm:"not null;default:false" json:"isDeleted"`
	IsPending   bool      `gorm:"not null;default:false" json:"isPending"`
	IsLocked    bool      `gorm:"not null;default:false" json:"isLocked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Title       string `json:"title" binding:"required"`
	Text        string `json:"text"`
	CommunityID string `json:"srName"`
}

type SavedPost struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_saved_pair" json:"userId"`
	PostID    string    `gorm:"size:64;not null;uniqueIndex:idx_saved_pair" json:"postId"`
	CreatedAt time.Time `json:"created_at"`
}
