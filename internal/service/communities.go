package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/emilythestrangee/readit/backend/internal/models"
)

var communityName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_]{2,20}$`)

// CreateCommunity creates a community with default options and makes its
// creator the first moderator and subscriber.
func (s *MembershipService) CreateCommunity(ctx context.Context, name, description, creatorID string) (*models.Community, error) {
	if !communityName.MatchString(name) {
		return nil, fmt.Errorf("%w: community name must be 3-21 letters, digits or underscores", ErrInvalidArgument)
	}
	if creatorID == "" {
		return nil, fmt.Errorf("%w: missing creator", ErrInvalidArgument)
	}

	c := models.Community{
		ID:               models.NewID(models.TagCommunity),
		Name:             name,
		Description:      description,
		CreatorID:        creatorID,
		SubscribersCount: 1,
		Options: models.CommunityOptions{
			IsAutoApproved:       true,
			SpamsNumBeforeRemove: s.defaultSpamThreshold,
		},
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: community %s already exists", ErrInvalidArgument, name)
			}
			return err
		}
		if err := tx.Create(&models.Moderator{CommunityID: c.ID, UserID: creatorID}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Membership{UserID: creatorID, CommunityID: c.ID, IsSubscribed: true}).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MembershipService) Community(ctx context.Context, communityRef string) (*models.Community, error) {
	return findCommunity(s.db.WithContext(ctx), communityRef)
}
