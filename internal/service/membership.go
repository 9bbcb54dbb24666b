package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/readit/backend/internal/events"
	"github.com/emilythestrangee/readit/backend/internal/metrics"
	"github.com/emilythestrangee/readit/backend/internal/models"
)

// MembershipService keeps user-side and community-side relationship rows in step.
// Every two-sided change runs in one transaction.
type MembershipService struct {
	db                   *gorm.DB
	defaultSpamThreshold int
}

func NewMembershipService(db *gorm.DB, defaultSpamThreshold int) *MembershipService {
	return &MembershipService{db: db, defaultSpamThreshold: defaultSpamThreshold}
}

type restriction struct {
	kind   models.RestrictionKind
	column string
	on     bool
	notify models.NotificationType
	verb   string
}

var restrictions = map[string]restriction{
	"ban":    {models.RestrictionBanned, "is_banned", true, models.NotifyBan, "banned from"},
	"unban":  {models.RestrictionBanned, "is_banned", false, models.NotifyBan, "unbanned from"},
	"mute":   {models.RestrictionMuted, "is_muted", true, models.NotifyMute, "muted in"},
	"unmute": {models.RestrictionMuted, "is_muted", false, models.NotifyMute, "unmuted in"},
}

func ensureMembership(tx *gorm.DB, userID, communityID string) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Membership{UserID: userID, CommunityID: communityID}).Error
}

// BanOrMute applies op (ban, unban, mute, unmute) to targetUser in community.
// Both the community and the user are looked up before anything is written.
func (s *MembershipService) BanOrMute(ctx context.Context, communityRef, moderatorID, targetUserRef, op string) error {
	r, ok := restrictions[op]
	if !ok {
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidArgument, op)
	}
	db := s.db.WithContext(ctx)

	community, err := findCommunity(db, communityRef)
	if err != nil {
		return err
	}
	user, err := findUser(db, targetUserRef)
	if err != nil {
		return err
	}

	changed := false
	err = db.Transaction(func(tx *gorm.DB) error {
		var res *gorm.DB
		if r.on {
			res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.CommunityRestriction{
				CommunityID: community.ID,
				UserID:      user.ID,
				Kind:        r.kind,
			})
		} else {
			res = tx.Where("community_id = ? AND user_id = ? AND kind = ?", community.ID, user.ID, r.kind).
				Delete(&models.CommunityRestriction{})
		}
		if res.Error != nil {
			return res.Error
		}
		// repeating a ban or lifting one that was never set is silent
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true

		if err := ensureMembership(tx, user.ID, community.ID); err != nil {
			return err
		}
		if err := tx.Model(&models.Membership{}).
			Where("user_id = ? AND community_id = ?", user.ID, community.ID).
			Update(r.column, r.on).Error; err != nil {
			return err
		}

		note := models.Notification{
			UserID:   user.ID,
			Type:     r.notify,
			Message:  fmt.Sprintf("you have been %s r/%s", r.verb, community.Name),
			SourceID: community.ID,
		}
		if err := tx.Create(&note).Error; err != nil {
			return err
		}

		return events.Enqueue(tx, events.MemberRestricted, community.ID, map[string]string{
			"op":          op,
			"userId":      user.ID,
			"moderatorId": moderatorID,
		})
	})
	if err != nil {
		return err
	}

	if !changed {
		slog.Debug("membership restriction unchanged", "community", community.ID, "user", user.ID, "op", op)
		return nil
	}
	metrics.ModerationActions.WithLabelValues(op).Inc()
	slog.Info("membership restriction applied", "community", community.ID, "user", user.ID, "op", op, "by", moderatorID)
	return nil
}

// SubscribeResult reports the outcome of Subscribe. Err carries the failure
// kind (ErrInvalidArgument, ErrNotFound, ErrBanned) for status mapping.
type SubscribeResult struct {
	State bool   `json:"state"`
	Error string `json:"error,omitempty"`
	Err   error  `json:"-"`
}

func subscribeFailed(err error) SubscribeResult {
	return SubscribeResult{Error: err.Error(), Err: err}
}

// Subscribe toggles a subscription to a community (t5_ id or name) or a
// follow of a user (t2_ id or username). It reports failures in the result.
func (s *MembershipService) Subscribe(ctx context.Context, srName, action, userID string) SubscribeResult {
	var sub bool
	switch strings.ToLower(action) {
	case "sub", "subscribe":
		sub = true
	case "unsub", "unsubscribe":
		sub = false
	default:
		return subscribeFailed(fmt.Errorf("%w: invalid action %q", ErrInvalidArgument, action))
	}
	if srName == "" || userID == "" {
		return subscribeFailed(fmt.Errorf("%w: srName is required", ErrInvalidArgument))
	}
	db := s.db.WithContext(ctx)

	var err error
	switch {
	case models.HasTag(srName, models.TagCommunity):
		var c *models.Community
		if c, err = findCommunity(db, srName); err == nil {
			err = s.subscribeCommunity(db, c, userID, sub)
		}
	case models.HasTag(srName, models.TagUser):
		var u *models.User
		if u, err = findUser(db, srName); err == nil {
			err = s.followUser(db, u, userID, sub)
		}
	default:
		var c *models.Community
		if c, err = findCommunity(db, srName); err == nil {
			err = s.subscribeCommunity(db, c, userID, sub)
		} else if errors.Is(err, ErrNotFound) {
			var u *models.User
			if u, err = findUser(db, srName); err == nil {
				err = s.followUser(db, u, userID, sub)
			}
		}
	}

	switch {
	case err == nil:
		return SubscribeResult{State: true}
	case errors.Is(err, ErrNotFound):
		return subscribeFailed(fmt.Errorf("%w: %s", ErrNotFound, srName))
	case errors.Is(err, ErrBanned), errors.Is(err, ErrInvalidArgument):
		return subscribeFailed(err)
	}
	slog.Error("subscribe failed", "srName", srName, "user", userID, "err", err)
	return SubscribeResult{Error: "subscription failed", Err: err}
}

// subscribeCommunity moves subscribers_count only when is_subscribed actually flips.
func (s *MembershipService) subscribeCommunity(db *gorm.DB, c *models.Community, userID string, sub bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := ensureMembership(tx, userID, c.ID); err != nil {
			return err
		}
		if sub {
			m, err := membership(tx, userID, c.ID)
			if err != nil {
				return err
			}
			if m.IsBanned {
				return ErrBanned
			}
		}

		res := tx.Model(&models.Membership{}).
			Where("user_id = ? AND community_id = ? AND is_subscribed = ?", userID, c.ID, !sub).
			Update("is_subscribed", sub)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		expr := gorm.Expr("subscribers_count + 1")
		if !sub {
			expr = gorm.Expr("CASE WHEN subscribers_count > 0 THEN subscribers_count - 1 ELSE 0 END")
		}
		return tx.Model(&models.Community{}).Where("id = ?", c.ID).UpdateColumn("subscribers_count", expr).Error
	})
}

func (s *MembershipService) followUser(db *gorm.DB, u *models.User, followerID string, follow bool) error {
	if u.ID == followerID {
		return fmt.Errorf("%w: cannot follow yourself", ErrInvalidArgument)
	}
	if follow {
		blocked, err := isBlocked(db, followerID, u.ID)
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("%w: %s is blocked", ErrInvalidArgument, u.Username)
		}
		return db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Follow{FollowerID: followerID, FollowingID: u.ID}).Error
	}
	return db.Where("follower_id = ? AND following_id = ?", followerID, u.ID).Delete(&models.Follow{}).Error
}

// InviteModerator records an invite and notifies the invitee. Re-inviting is a no-op.
func (s *MembershipService) InviteModerator(ctx context.Context, communityRef, inviterID, inviteeRef string) error {
	db := s.db.WithContext(ctx)

	community, err := findCommunity(db, communityRef)
	if err != nil {
		return err
	}
	invitee, err := findUser(db, inviteeRef)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var mods int64
		if err := tx.Model(&models.Moderator{}).
			Where("community_id = ? AND user_id = ?", community.ID, invitee.ID).
			Count(&mods).Error; err != nil {
			return err
		}
		if mods > 0 {
			return fmt.Errorf("%w: %s is already a moderator", ErrInvalidArgument, invitee.Username)
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.ModeratorInvite{
			CommunityID: community.ID,
			UserID:      invitee.ID,
			InvitedBy:   inviterID,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		note := models.Notification{
			UserID:   invitee.ID,
			Type:     models.NotifyModeratorInvite,
			Message:  fmt.Sprintf("you have been invited to moderate r/%s", community.Name),
			SourceID: community.ID,
		}
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		return events.Enqueue(tx, events.ModeratorInvited, community.ID, map[string]string{
			"userId":    invitee.ID,
			"invitedBy": inviterID,
		})
	})
}

// AcceptModeratorInvite consumes the invite and adds the moderator in one step.
func (s *MembershipService) AcceptModeratorInvite(ctx context.Context, communityRef, userID string) error {
	db := s.db.WithContext(ctx)

	community, err := findCommunity(db, communityRef)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("community_id = ? AND user_id = ?", community.ID, userID).Delete(&models.ModeratorInvite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotInvited
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Moderator{CommunityID: community.ID, UserID: userID}).Error; err != nil {
			return err
		}
		return events.Enqueue(tx, events.ModeratorAdded, community.ID, map[string]string{"userId": userID})
	})
}

// RemoveModeratorInvitation declines or revokes a pending invite.
func (s *MembershipService) RemoveModeratorInvitation(ctx context.Context, communityRef, userID string) error {
	db := s.db.WithContext(ctx)

	community, err := findCommunity(db, communityRef)
	if err != nil {
		return err
	}

	res := db.Where("community_id = ? AND user_id = ?", community.ID, userID).Delete(&models.ModeratorInvite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotInvited
	}
	return nil
}

func (s *MembershipService) LeaveModerator(ctx context.Context, communityRef, userID string) error {
	db := s.db.WithContext(ctx)

	community, err := findCommunity(db, communityRef)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("community_id = ? AND user_id = ?", community.ID, userID).Delete(&models.Moderator{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotModerator
		}
		return events.Enqueue(tx, events.ModeratorLeft, community.ID, map[string]string{"userId": userID})
	})
}

// IsModerator fails with ErrNotFound when the community does not exist.
func (s *MembershipService) IsModerator(ctx context.Context, communityRef, userID string) (bool, error) {
	db := s.db.WithContext(ctx)

	community, err := findCommunity(db, communityRef)
	if err != nil {
		return false, err
	}
	var n int64
	err = db.Model(&models.Moderator{}).
		Where("community_id = ? AND user_id = ?", community.ID, userID).
		Count(&n).Error
	return n > 0, err
}

func (s *MembershipService) Moderators(ctx context.Context, communityRef string) ([]models.User, error) {
	db := s.db.WithContext(ctx)

	community, err := findCommunity(db, communityRef)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	err = db.Joins("JOIN moderators ON moderators.user_id = users.id").
		Where("moderators.community_id = ?", community.ID).
		Order("moderators.created_at").
		Find(&users).Error
	return users, err
}

// Restricted lists users with a banned or muted entry in the community.
func (s *MembershipService) Restricted(ctx context.Context, communityRef string, kind models.RestrictionKind) ([]models.User, error) {
	if kind != models.RestrictionBanned && kind != models.RestrictionMuted {
		return nil, fmt.Errorf("%w: restriction %q", ErrInvalidArgument, kind)
	}
	db := s.db.WithContext(ctx)

	community, err := findCommunity(db, communityRef)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	err = db.Joins("JOIN community_restrictions ON community_restrictions.user_id = users.id").
		Where("community_restrictions.community_id = ? AND community_restrictions.kind = ?", community.ID, kind).
		Order("community_restrictions.created_at").
		Find(&users).Error
	return users, err
}

func (s *MembershipService) ModeratedCommunities(ctx context.Context, userID string) ([]models.Community, error) {
	communities := []models.Community{}
	err := s.db.WithContext(ctx).
		Joins("JOIN moderators ON moderators.community_id = communities.id").
		Where("moderators.user_id = ?", userID).
		Order("communities.name").
		Find(&communities).Error
	return communities, err
}

func (s *MembershipService) SubscribedCommunities(ctx context.Context, userID string) ([]models.Community, error) {
	communities := []models.Community{}
	err := s.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.community_id = communities.id").
		Where("memberships.user_id = ? AND memberships.is_subscribed = ?", userID, true).
		Order("communities.name").
		Find(&communities).Error
	return communities, err
}
