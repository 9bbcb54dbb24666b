package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/emilythestrangee/readit/backend/internal/cache"
	"github.com/emilythestrangee/readit/backend/internal/models"
)

const optionsCacheName = "community-options"

// OptionsResolver serves per-community policy through a read-through cache.
type OptionsResolver struct {
	db    *gorm.DB
	cache cache.Store
}

func NewOptionsResolver(db *gorm.DB, store cache.Store) *OptionsResolver {
	return &OptionsResolver{db: db, cache: store}
}

func (r *OptionsResolver) Get(ctx context.Context, communityID string) (*models.CommunityOptions, error) {
	if r.cache != nil {
		raw, err := r.cache.Get(ctx, optionsCacheName, communityID)
		if err != nil {
			slog.Warn("options cache read failed", "community", communityID, "err", err)
		} else if raw != "" {
			var opts models.CommunityOptions
			if err := json.Unmarshal([]byte(raw), &opts); err == nil {
				return &opts, nil
			}
		}
	}

	var c models.Community
	if err := r.db.WithContext(ctx).Where("id = ?", communityID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: community %s", ErrNotFound, communityID)
		}
		return nil, err
	}

	if r.cache != nil {
		raw, _ := json.Marshal(c.Options)
		if err := r.cache.Set(ctx, optionsCacheName, communityID, string(raw)); err != nil {
			slog.Warn("options cache write failed", "community", communityID, "err", err)
		}
	}
	return &c.Options, nil
}

// ForCommunity returns nil options for content that is not in any community.
func (r *OptionsResolver) ForCommunity(ctx context.Context, communityID string) (*models.CommunityOptions, error) {
	if communityID == "" {
		return nil, nil
	}
	return r.Get(ctx, communityID)
}

// SetSuggestedSort sets the default comment sort. communityID must be a t5_ id.
func (r *OptionsResolver) SetSuggestedSort(ctx context.Context, communityID, sort string) error {
	if !models.HasTag(communityID, models.TagCommunity) {
		return fmt.Errorf("%w: invalid srName", ErrInvalidArgument)
	}
	if !models.ValidCommentSort(sort) {
		return fmt.Errorf("%w: invalid suggestedCommentSort %q", ErrInvalidArgument, sort)
	}
	return r.update(ctx, communityID, map[string]any{"suggested_comment_sort": sort})
}

type OptionsUpdate struct {
	IsAutoApproved       *bool `json:"isAutoApproved"`
	SpamsNumBeforeRemove *int  `json:"spamsNumBeforeRemove"`
}

func (r *OptionsResolver) Update(ctx context.Context, communityID string, u OptionsUpdate) (*models.CommunityOptions, error) {
	fields := map[string]any{}
	if u.IsAutoApproved != nil {
		fields["is_auto_approved"] = *u.IsAutoApproved
	}
	if u.SpamsNumBeforeRemove != nil {
		if *u.SpamsNumBeforeRemove < 0 {
			return nil, fmt.Errorf("%w: spamsNumBeforeRemove must not be negative", ErrInvalidArgument)
		}
		fields["spams_num_before_remove"] = *u.SpamsNumBeforeRemove
	}
	if len(fields) > 0 {
		if err := r.update(ctx, communityID, fields); err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, communityID)
}

func (r *OptionsResolver) update(ctx context.Context, communityID string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Community{}).Where("id = ?", communityID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: community %s", ErrNotFound, communityID)
	}
	if r.cache != nil {
		if err := r.cache.Purge(ctx, optionsCacheName, communityID); err != nil {
			slog.Warn("options cache purge failed", "community", communityID, "err", err)
		}
	}
	return nil
}
