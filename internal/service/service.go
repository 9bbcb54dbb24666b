package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/readit/backend/internal/auth"
	"github.com/emilythestrangee/readit/backend/internal/cache"
	"github.com/emilythestrangee/readit/backend/internal/models"
)

type Config struct {
	DefaultSpamThreshold int
	Tokens               *auth.Issuer
}

// Services groups the domain services sharing one database handle.
type Services struct {
	Votes         *VoteService
	Moderation    *ModerationService
	Members       *MembershipService
	Options       *OptionsResolver
	Content       *ContentService
	Notifications *NotificationService
	Accounts      *AccountService
}

func New(db *gorm.DB, store cache.Store, cfg Config) *Services {
	options := NewOptionsResolver(db, store)
	return &Services{
		Votes:         NewVoteService(db),
		Moderation:    NewModerationService(db, options),
		Members:       NewMembershipService(db, cfg.DefaultSpamThreshold),
		Options:       options,
		Content:       NewContentService(db, options),
		Notifications: NewNotificationService(db),
		Accounts:      NewAccountService(db, cfg.Tokens),
	}
}

func targetModel(kind models.TargetKind) any {
	if kind == models.TargetComment {
		return &models.Comment{}
	}
	return &models.Post{}
}

// targetCommunity returns the community a post or comment lives in, "" for none.
func targetCommunity(tx *gorm.DB, t models.Target) (string, error) {
	var row struct{ CommunityID string }
	res := tx.Model(targetModel(t.Kind)).Select("community_id").Where("id = ?", t.ID).Limit(1).Scan(&row)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, t.ID)
	}
	return row.CommunityID, nil
}

// findCommunity accepts either a t5_ id or a community name.
func findCommunity(db *gorm.DB, ref string) (*models.Community, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: empty community", ErrInvalidArgument)
	}
	q := db.Where("name = ?", ref)
	if models.HasTag(ref, models.TagCommunity) {
		q = db.Where("id = ?", ref)
	}
	var c models.Community
	if err := q.First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: community %s", ErrNotFound, ref)
		}
		return nil, err
	}
	return &c, nil
}

// findUser accepts either a t2_ id or a username.
func findUser(db *gorm.DB, ref string) (*models.User, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: empty user", ErrInvalidArgument)
	}
	q := db.Where("username = ?", ref)
	if models.HasTag(ref, models.TagUser) {
		q = db.Where("id = ?", ref)
	}
	var u models.User
	if err := q.First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, ref)
		}
		return nil, err
	}
	return &u, nil
}

func membership(db *gorm.DB, userID, communityID string) (models.Membership, error) {
	var m models.Membership
	err := db.Where("user_id = ? AND community_id = ?", userID, communityID).Limit(1).Find(&m).Error
	return m, err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyVoted), errors.Is(err, ErrDuplicateReport):
		return "duplicate"
	case errors.Is(err, ErrUpdateFailed):
		return "conflict"
	}
	return "error"
}
