package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/readit/backend/internal/models"
)

// isBlocked reports whether either user has blocked the other.
func isBlocked(db *gorm.DB, a, b string) (bool, error) {
	var n int64
	err := db.Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&n).Error
	return n > 0, err
}

// AddFriend stores the friendship in both directions.
func (s *MembershipService) AddFriend(ctx context.Context, userID, friendRef string) error {
	db := s.db.WithContext(ctx)

	friend, err := findUser(db, friendRef)
	if err != nil {
		return err
	}
	if friend.ID == userID {
		return fmt.Errorf("%w: cannot befriend yourself", ErrInvalidArgument)
	}
	blocked, err := isBlocked(db, userID, friend.ID)
	if err != nil {
		return err
	}
	if blocked {
		return fmt.Errorf("%w: %s is blocked", ErrInvalidArgument, friend.Username)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		pairs := []models.Friend{
			{UserID: userID, FriendID: friend.ID},
			{UserID: friend.ID, FriendID: userID},
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&pairs).Error
	})
}

// Block toggles a block of targetRef by userID. Blocking also drops follows
// and friendship between the two users, in both directions.
func (s *MembershipService) Block(ctx context.Context, userID, targetRef, action string) error {
	var block bool
	switch strings.ToLower(action) {
	case "block":
		block = true
	case "unblock":
		block = false
	default:
		return fmt.Errorf("%w: invalid action %q", ErrInvalidArgument, action)
	}
	db := s.db.WithContext(ctx)

	target, err := findUser(db, targetRef)
	if err != nil {
		return err
	}
	if target.ID == userID {
		return fmt.Errorf("%w: cannot block yourself", ErrInvalidArgument)
	}

	if !block {
		return db.Where("blocker_id = ? AND blocked_id = ?", userID, target.ID).Delete(&models.Block{}).Error
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Block{BlockerID: userID, BlockedID: target.ID}).Error; err != nil {
			return err
		}
		if err := tx.Where("(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)",
			userID, target.ID, target.ID, userID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		return tx.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, target.ID, target.ID, userID).Delete(&models.Friend{}).Error
	})
	if err != nil {
		return err
	}
	slog.Info("user blocked", "user", userID, "blocked", target.ID)
	return nil
}

// Followers lists the users following userRef.
func (s *MembershipService) Followers(ctx context.Context, userRef string) ([]models.User, error) {
	return s.relatedUsers(ctx, userRef, "JOIN follows ON follows.follower_id = users.id", "follows.following_id = ?", "follows.created_at")
}

// Following lists the users userRef follows.
func (s *MembershipService) Following(ctx context.Context, userRef string) ([]models.User, error) {
	return s.relatedUsers(ctx, userRef, "JOIN follows ON follows.following_id = users.id", "follows.follower_id = ?", "follows.created_at")
}

func (s *MembershipService) Friends(ctx context.Context, userRef string) ([]models.User, error) {
	return s.relatedUsers(ctx, userRef, "JOIN friends ON friends.friend_id = users.id", "friends.user_id = ?", "friends.created_at")
}

func (s *MembershipService) Blocked(ctx context.Context, userRef string) ([]models.User, error) {
	return s.relatedUsers(ctx, userRef, "JOIN blocks ON blocks.blocked_id = users.id", "blocks.blocker_id = ?", "blocks.created_at")
}

func (s *MembershipService) relatedUsers(ctx context.Context, userRef, join, where, order string) ([]models.User, error) {
	db := s.db.WithContext(ctx)

	user, err := findUser(db, userRef)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	err = db.Joins(join).Where(where, user.ID).Order(order).Find(&users).Error
	return users, err
}
