package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/readit/backend/internal/database"
	"github.com/emilythestrangee/readit/backend/internal/metrics"
	"github.com/emilythestrangee/readit/backend/internal/models"
)

type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

type VoteResult struct {
	VotesCount int `json:"votesCount"`
	VoteType   int `json:"voteType"`
}

// Direction maps a request dir to a stored vote type. 1 and 2 upvote, 0 and -1 downvote.
func Direction(dir int) (int, bool) {
	switch dir {
	case 1, 2:
		return models.Upvote, true
	case 0, -1:
		return models.Downvote, true
	}
	return 0, false
}

// Vote records userID's vote on target. A repeat vote in the same direction
// fails with ErrAlreadyVoted, an opposite vote flips the record and moves the
// count by two.
func (s *VoteService) Vote(ctx context.Context, target models.Target, userID string, dir int) (*VoteResult, error) {
	voteType, ok := Direction(dir)
	if !ok || !target.Kind.Valid() || target.ID == "" || userID == "" {
		metrics.VotesCast.WithLabelValues(string(target.Kind), "invalid").Inc()
		return nil, fmt.Errorf("%w: invalid id or dir", ErrInvalidArgument)
	}

	var res VoteResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := targetCommunity(tx, target); err != nil {
			return err
		}

		var existing models.Vote
		if err := tx.Where("target_id = ? AND user_id = ?", target.ID, userID).Limit(1).Find(&existing).Error; err != nil {
			return err
		}

		delta := voteType
		switch {
		case existing.ID == 0:
			v := models.Vote{
				TargetID:   target.ID,
				TargetKind: target.Kind,
				UserID:     userID,
				VoteType:   voteType,
			}
			if err := tx.Create(&v).Error; err != nil {
				return err
			}
		case existing.VoteType == voteType:
			return ErrAlreadyVoted
		default:
			upd := tx.Model(&models.Vote{}).
				Where("id = ? AND vote_type = ?", existing.ID, existing.VoteType).
				Update("vote_type", voteType)
			if upd.Error != nil {
				return upd.Error
			}
			if upd.RowsAffected == 0 {
				return fmt.Errorf("%w: vote changed concurrently", ErrUpdateFailed)
			}
			delta = 2 * voteType
		}

		upd := tx.Model(targetModel(target.Kind)).
			Where("id = ?", target.ID).
			UpdateColumn("votes_count", gorm.Expr("votes_count + ?", delta))
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrUpdateFailed, target.ID)
		}

		var row struct{ VotesCount int }
		if err := tx.Model(targetModel(target.Kind)).Select("votes_count").Where("id = ?", target.ID).Scan(&row).Error; err != nil {
			return err
		}
		res = VoteResult{VotesCount: row.VotesCount, VoteType: voteType}
		return nil
	})
	if err != nil && !errors.Is(err, ErrUpdateFailed) && database.IsConflict(err) {
		err = fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	metrics.VotesCast.WithLabelValues(string(target.Kind), resultLabel(err)).Inc()
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UserVotes lists the targets userID voted on with the given vote type, newest first.
func (s *VoteService) UserVotes(ctx context.Context, userID string, voteType int) ([]models.Vote, error) {
	if voteType != models.Upvote && voteType != models.Downvote {
		return nil, fmt.Errorf("%w: vote type %d", ErrInvalidArgument, voteType)
	}
	votes := []models.Vote{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND vote_type = ?", userID, voteType).
		Order("created_at desc").
		Find(&votes).Error
	return votes, err
}
