package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/emilythestrangee/readit/backend/internal/events"
	"github.com/emilythestrangee/readit/backend/internal/metrics"
	"github.com/emilythestrangee/readit/backend/internal/models"
)

// ModerationService runs the spam state machine: Active, Flagged once reported,
// Removed at the community threshold, back to Active only through Approve.
type ModerationService struct {
	db      *gorm.DB
	options *OptionsResolver
}

func NewModerationService(db *gorm.DB, options *OptionsResolver) *ModerationService {
	return &ModerationService{db: db, options: options}
}

type SpamResult struct {
	SpamCount int  `json:"spamCount"`
	Removed   bool `json:"removed"`
}

// ReportSpam records one report per reporter, bumps the target's spam count and
// applies the removal threshold in the same transaction.
func (s *ModerationService) ReportSpam(ctx context.Context, target models.Target, reporterID, category, text string) (*SpamResult, error) {
	if !target.Kind.Valid() || target.ID == "" || reporterID == "" {
		return nil, fmt.Errorf("%w: invalid id", ErrInvalidArgument)
	}
	db := s.db.WithContext(ctx)

	communityID, err := targetCommunity(db, target)
	if err != nil {
		metrics.SpamReports.WithLabelValues(string(target.Kind), resultLabel(err)).Inc()
		return nil, err
	}
	opts, err := s.options.ForCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}

	var res SpamResult
	err = db.Transaction(func(tx *gorm.DB) error {
		var dup int64
		if err := tx.Model(&models.SpamReport{}).
			Where("target_id = ? AND user_id = ?", target.ID, reporterID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrDuplicateReport
		}

		report := models.SpamReport{
			TargetID:   target.ID,
			TargetKind: target.Kind,
			UserID:     reporterID,
			Category:   category,
			Text:       text,
		}
		if err := tx.Create(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateReport
			}
			return err
		}

		upd := tx.Model(targetModel(target.Kind)).
			Where("id = ?", target.ID).
			UpdateColumn("spam_count", gorm.Expr("spam_count + 1"))
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, target.ID)
		}

		removed, err := finalizeSpam(tx, target, opts)
		if err != nil {
			return err
		}

		var row struct{ SpamCount int }
		if err := tx.Model(targetModel(target.Kind)).Select("spam_count").Where("id = ?", target.ID).Scan(&row).Error; err != nil {
			return err
		}
		res = SpamResult{SpamCount: row.SpamCount, Removed: removed}

		if removed {
			return events.Enqueue(tx, events.TargetRemoved, target.ID, map[string]any{
				"id":          target.ID,
				"kind":        target.Kind,
				"communityId": communityID,
				"spamCount":   row.SpamCount,
			})
		}
		return nil
	})
	metrics.SpamReports.WithLabelValues(string(target.Kind), resultLabel(err)).Inc()
	if err != nil {
		return nil, err
	}
	if res.Removed {
		metrics.ContentRemoved.WithLabelValues(string(target.Kind)).Inc()
		slog.Info("spam threshold reached", "target", target.ID, "spamCount", res.SpamCount)
	}
	return &res, nil
}

// FinalizeSpam applies the removal threshold in opts to target and reports
// whether it transitioned. Nil options or a threshold of zero disable removal.
func (s *ModerationService) FinalizeSpam(ctx context.Context, target models.Target, opts *models.CommunityOptions) (bool, error) {
	if !target.Kind.Valid() {
		return false, fmt.Errorf("%w: invalid id", ErrInvalidArgument)
	}
	return finalizeSpam(s.db.WithContext(ctx), target, opts)
}

// finalizeSpam is a conditional update so concurrent reports at the boundary
// cannot both miss the transition.
func finalizeSpam(tx *gorm.DB, target models.Target, opts *models.CommunityOptions) (bool, error) {
	var flag string
	switch target.Kind {
	case models.TargetComment:
		flag = "is_collapsed"
	case models.TargetPost:
		flag = "is_deleted"
	default:
		return false, fmt.Errorf("%w: invalid id", ErrInvalidArgument)
	}

	var row struct{ SpamCount int }
	if err := tx.Model(targetModel(target.Kind)).Select("spam_count").Where("id = ?", target.ID).Scan(&row).Error; err != nil {
		return false, err
	}
	if !opts.SpamThresholdReached(row.SpamCount) {
		return false, nil
	}

	res := tx.Model(targetModel(target.Kind)).
		Where("id = ? AND spam_count >= ? AND "+flag+" = ?", target.ID, opts.SpamsNumBeforeRemove, false).
		Update(flag, true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Approve clears spam state on a target that belongs to communityID.
// Approving a clean target is a no-op that still succeeds.
func (s *ModerationService) Approve(ctx context.Context, communityID string, target models.Target) error {
	if !target.Kind.Valid() || target.ID == "" {
		return fmt.Errorf("%w: invalid id", ErrInvalidArgument)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := targetCommunity(tx, target)
		if err != nil {
			return err
		}
		if owner != communityID {
			return fmt.Errorf("%w: %s in this community", ErrNotFound, target.ID)
		}

		if err := tx.Where("target_id = ?", target.ID).Delete(&models.SpamReport{}).Error; err != nil {
			return err
		}

		fields := map[string]any{
			"spam_count": 0,
			"is_deleted": false,
		}
		if target.Kind == models.TargetComment {
			fields["is_collapsed"] = false
		} else {
			fields["is_pending"] = false
		}
		if err := tx.Model(targetModel(target.Kind)).Where("id = ?", target.ID).Updates(fields).Error; err != nil {
			return err
		}

		return events.Enqueue(tx, events.TargetApproved, target.ID, map[string]any{
			"id":          target.ID,
			"kind":        target.Kind,
			"communityId": communityID,
		})
	})
	if err != nil {
		return err
	}
	metrics.ModerationActions.WithLabelValues("approve").Inc()
	return nil
}

// ShowComment un-collapses a comment. Spam reports and count are left as they are.
func (s *ModerationService) ShowComment(ctx context.Context, commentID string) error {
	if !models.HasTag(commentID, models.TagComment) {
		return fmt.Errorf("%w: invalid comment id", ErrInvalidArgument)
	}
	res := s.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("is_collapsed", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, commentID)
	}
	return nil
}
