package models

import "time"

// Follow is a user subscribing to another user.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	FollowerID  string    `gorm:"size:64;not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	FollowingID string    `gorm:"size:64;not null;uniqueIndex:idx_follows_pair;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Friend is stored once per direction.
type Friend struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_friends_pair" json:"user_id"`
	FriendID  string    `gorm:"size:64;not null;uniqueIndex:idx_friends_pair" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Block is one user hiding another. It is one-directional.
type Block struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	BlockerID string    `gorm:"size:64;not null;uniqueIndex:idx_blocks_pair" json:"blocker_id"`
	BlockedID string    `gorm:"size:64;not null;uniqueIndex:idx_blocks_pair;index" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}
