package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/emilythestrangee/readit/backend/internal/models"
)

const listLimit = 100

type ContentService struct {
	db      *gorm.DB
	options *OptionsResolver
}

func NewContentService(db *gorm.DB, options *OptionsResolver) *ContentService {
	return &ContentService{db: db, options: options}
}

// CreatePost submits a post carrying its author's upvote. Posts in a community
// that is not auto-approved start pending.
func (s *ContentService) CreatePost(ctx context.Context, authorID, communityRef, title, text string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if authorID == "" || title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	db := s.db.WithContext(ctx)

	post := models.Post{
		ID:         models.NewID(models.TagPost),
		AuthorID:   authorID,
		Title:      title,
		Text:       text,
		VotesCount: 1,
	}

	if communityRef != "" {
		community, err := findCommunity(db, communityRef)
		if err != nil {
			return nil, err
		}
		m, err := membership(db, authorID, community.ID)
		if err != nil {
			return nil, err
		}
		if m.IsBanned {
			return nil, ErrBanned
		}
		opts, err := s.options.Get(ctx, community.ID)
		if err != nil {
			return nil, err
		}
		post.CommunityID = community.ID
		post.IsPending = !opts.IsAutoApproved
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		return tx.Create(&models.Vote{
			TargetID:   post.ID,
			TargetKind: models.TargetPost,
			UserID:     authorID,
			VoteType:   models.Upvote,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// AddComment replies to a post (t3_ parent) or to a comment (t1_ parent).
func (s *ContentService) AddComment(ctx context.Context, authorID, parentID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if authorID == "" || text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidArgument)
	}
	parent, err := models.ParseTarget(parentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid parentID", ErrInvalidArgument)
	}
	db := s.db.WithContext(ctx)

	comment := models.Comment{
		ID:         models.NewID(models.TagComment),
		AuthorID:   authorID,
		Text:       text,
		VotesCount: 1,
	}
	var notifyUser string

	switch parent.Kind {
	case models.TargetPost:
		var post models.Post
		if err := db.Where("id = ? AND is_deleted = ?", parent.ID, false).First(&post).Error; err != nil {
			return nil, notFound(err, parent.ID)
		}
		if post.IsLocked {
			return nil, fmt.Errorf("%w: post is locked", ErrInvalidArgument)
		}
		comment.PostID = post.ID
		comment.CommunityID = post.CommunityID
		comment.IsRoot = true
		notifyUser = post.AuthorID
	case models.TargetComment:
		var pc models.Comment
		if err := db.Where("id = ? AND is_deleted = ?", parent.ID, false).First(&pc).Error; err != nil {
			return nil, notFound(err, parent.ID)
		}
		if pc.IsLocked {
			return nil, fmt.Errorf("%w: comment is locked", ErrInvalidArgument)
		}
		comment.PostID = pc.PostID
		comment.CommunityID = pc.CommunityID
		comment.ParentID = &pc.ID
		notifyUser = pc.AuthorID
	}

	if comment.CommunityID != "" {
		m, err := membership(db, authorID, comment.CommunityID)
		if err != nil {
			return nil, err
		}
		if m.IsBanned || m.IsMuted {
			return nil, ErrBanned
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Vote{
			TargetID:   comment.ID,
			TargetKind: models.TargetComment,
			UserID:     authorID,
			VoteType:   models.Upvote,
		}).Error; err != nil {
			return err
		}
		if notifyUser == "" || notifyUser == authorID {
			return nil
		}
		return tx.Create(&models.Notification{
			UserID:   notifyUser,
			Type:     models.NotifyReply,
			Message:  "someone replied to you",
			SourceID: comment.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListPosts lists visible posts by criteria: new, top or hot.
func (s *ContentService) ListPosts(ctx context.Context, criteria, communityRef string) ([]models.Post, error) {
	db := s.db.WithContext(ctx)

	q := db.Where("is_deleted = ? AND is_pending = ?", false, false)
	switch criteria {
	case "new":
		q = q.Order("created_at desc")
	case "top":
		q = q.Order("votes_count desc").Order("created_at desc")
	case "hot", "best":
		q = q.Order("votes_count - spam_count desc").Order("created_at desc")
	default:
		return nil, fmt.Errorf("%w: criteria %q", ErrNotFound, criteria)
	}

	if communityRef != "" {
		community, err := findCommunity(db, communityRef)
		if err != nil {
			return nil, err
		}
		q = q.Where("community_id = ?", community.ID)
	}

	posts := []models.Post{}
	err := q.Limit(listLimit).Find(&posts).Error
	return posts, err
}

// ListComments returns a post's comments in the community's suggested order.
func (s *ContentService) ListComments(ctx context.Context, postID string) ([]models.Comment, string, error) {
	db := s.db.WithContext(ctx)

	var post models.Post
	if err := db.Where("id = ?", postID).First(&post).Error; err != nil {
		return nil, "", notFound(err, postID)
	}

	sort := "best"
	opts, err := s.options.ForCommunity(ctx, post.CommunityID)
	if err != nil {
		return nil, "", err
	}
	if opts != nil && opts.SuggestedCommentSort != "" {
		sort = opts.SuggestedCommentSort
	}

	q := db.Where("post_id = ? AND is_deleted = ?", post.ID, false)
	switch sort {
	case "new":
		q = q.Order("created_at desc")
	case "old", "qa":
		q = q.Order("created_at asc")
	case "controversial":
		q = q.Order("spam_count desc").Order("votes_count asc")
	default:
		q = q.Order("votes_count desc").Order("created_at asc")
	}

	comments := []models.Comment{}
	err = q.Find(&comments).Error
	return comments, sort, err
}

func notFound(err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}
