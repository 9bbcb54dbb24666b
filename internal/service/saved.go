package service

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/readit/backend/internal/models"
)

// SavePost bookmarks a post for userID. Saving twice is a no-op.
func (s *ContentService) SavePost(ctx context.Context, userID, linkID string) error {
	if userID == "" || !models.HasTag(linkID, models.TagPost) {
		return fmt.Errorf("%w: linkID must be a post id", ErrInvalidArgument)
	}
	db := s.db.WithContext(ctx)

	var n int64
	if err := db.Model(&models.Post{}).Where("id = ? AND is_deleted = ?", linkID, false).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, linkID)
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.SavedPost{UserID: userID, PostID: linkID}).Error
}

// UnsavePost removes a bookmark. Unsaving a post that was never saved succeeds.
func (s *ContentService) UnsavePost(ctx context.Context, userID, linkID string) error {
	if userID == "" || !models.HasTag(linkID, models.TagPost) {
		return fmt.Errorf("%w: linkID must be a post id", ErrInvalidArgument)
	}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, linkID).
		Delete(&models.SavedPost{}).Error
}

// SavedPosts lists userID's saved posts, most recently saved first.
func (s *ContentService) SavedPosts(ctx context.Context, userID string) ([]models.Post, error) {
	posts := []models.Post{}
	err := s.db.WithContext(ctx).
		Joins("JOIN saved_posts ON saved_posts.post_id = posts.id").
		Where("saved_posts.user_id = ? AND posts.is_deleted = ?", userID, false).
		Order("saved_posts.created_at desc").
		Limit(listLimit).
		Find(&posts).Error
	return posts, err
}
