package models

import "time"

// Comment sort orders a community may suggest. Empty means no suggestion.
var CommentSorts = []string{"best", "top", "new", "controversial", "old", "qa"}

func ValidCommentSort(sort string) bool {
	if sort == "" {
		return true
	}
	for _, s := range CommentSorts {
		if s == sort {
			return true
		}
	}
	return false
}

// CommunityOptions is per-community moderation policy.
type CommunityOptions struct {
	IsAutoApproved       bool   `json:"isAutoApproved"`
	SpamsNumBeforeRemove int    `json:"spamsNumBeforeRemove"`
	SuggestedCommentSort string `gorm:"size:16" json:"suggestedCommentSort"`
}

// SpamThresholdReached reports whether count hits an enabled removal threshold.
func (o *CommunityOptions) SpamThresholdReached(count int) bool {
	return o != nil && o.SpamsNumBeforeRemove > 0 && count >= o.SpamsNumBeforeRemove
}

type Community struct {
	ID               string           `gorm:"primaryKey;size:64" json:"id"`
	Name             string           `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Description      string           `json:"description"`
	CreatorID        string           `gorm:"size:64" json:"creator_id"`
	SubscribersCount int              `gorm:"not null;default:0" json:"subscribers_count"`
	Options          CommunityOptions `gorm:"embedded" json:"communityOptions"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
