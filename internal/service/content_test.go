package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/readit/backend/internal/models"
)

func TestCreatePost(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	author := f.user("author")
	open := f.community("open", models.CommunityOptions{IsAutoApproved: true})
	gated := f.community("gated", models.CommunityOptions{IsAutoApproved: false})

	p, err := f.svc.Content.CreatePost(ctx, author.ID, open.Name, "hello", "world")
	require.NoError(t, err)
	assert.True(models.HasTag(p.ID, models.TagPost))
	assert.False(p.IsPending)
	assert.Equal(1, p.VotesCount)
	assert.EqualValues(1, f.count(&models.Vote{}, "target_id = ? AND user_id = ? AND vote_type = ?", p.ID, author.ID, models.Upvote))

	p, err = f.svc.Content.CreatePost(ctx, author.ID, gated.ID, "hello", "")
	require.NoError(t, err)
	assert.True(p.IsPending)

	_, err = f.svc.Content.CreatePost(ctx, author.ID, "", "  ", "")
	assert.ErrorIs(err, ErrInvalidArgument)

	_, err = f.svc.Content.CreatePost(ctx, author.ID, "nowhere", "hello", "")
	assert.ErrorIs(err, ErrNotFound)
}

func TestCreatePostBanned(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	mod, author := f.user("mod"), f.user("author")
	sr := f.community("golang", models.CommunityOptions{IsAutoApproved: true})
	require.NoError(t, f.svc.Members.BanOrMute(ctx, sr.ID, mod.ID, author.ID, "ban"))

	_, err := f.svc.Content.CreatePost(ctx, author.ID, sr.ID, "hello", "")
	assert.ErrorIs(t, err, ErrBanned)
	assert.Zero(t, f.count(&models.Post{}, "author_id = ?", author.ID))
}

func TestAddComment(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	op, replier := f.user("op"), f.user("replier")
	post := f.post(op, "")

	root, err := f.svc.Content.AddComment(ctx, replier.ID, post.ID, "first")
	require.NoError(t, err)
	assert.True(root.IsRoot)
	assert.Nil(root.ParentID)
	assert.Equal(post.ID, root.PostID)
	assert.Equal(1, root.VotesCount)
	assert.EqualValues(1, f.count(&models.Notification{}, "user_id = ? AND type = ? AND source_id = ?", op.ID, models.NotifyReply, root.ID))

	reply, err := f.svc.Content.AddComment(ctx, op.ID, root.ID, "thanks")
	require.NoError(t, err)
	assert.False(reply.IsRoot)
	require.NotNil(t, reply.ParentID)
	assert.Equal(root.ID, *reply.ParentID)
	assert.Equal(post.ID, reply.PostID)
	assert.EqualValues(1, f.count(&models.Notification{}, "user_id = ?", replier.ID))

	// replying to yourself does not notify
	_, err = f.svc.Content.AddComment(ctx, op.ID, reply.ID, "also")
	require.NoError(t, err)
	assert.EqualValues(1, f.count(&models.Notification{}, "user_id = ?", op.ID))
}

func TestAddCommentRejects(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	mod, op, muted := f.user("mod"), f.user("op"), f.user("muted")
	sr := f.community("golang", models.CommunityOptions{IsAutoApproved: true})
	post := f.post(op, sr.ID)

	_, err := f.svc.Content.AddComment(ctx, op.ID, "t5_"+post.ID[3:], "hi")
	assert.ErrorIs(err, ErrInvalidArgument)

	_, err = f.svc.Content.AddComment(ctx, op.ID, post.ID, " ")
	assert.ErrorIs(err, ErrInvalidArgument)

	_, err = f.svc.Content.AddComment(ctx, op.ID, "t3_missing", "hi")
	assert.ErrorIs(err, ErrNotFound)

	require.NoError(t, f.svc.Members.BanOrMute(ctx, sr.ID, mod.ID, muted.ID, "mute"))
	_, err = f.svc.Content.AddComment(ctx, muted.ID, post.ID, "hi")
	assert.ErrorIs(err, ErrBanned)

	require.NoError(t, f.db.Model(&models.Post{}).Where("id = ?", post.ID).Update("is_locked", true).Error)
	_, err = f.svc.Content.AddComment(ctx, op.ID, post.ID, "hi")
	assert.ErrorIs(err, ErrInvalidArgument)

	assert.Zero(f.count(&models.Comment{}, "post_id = ?", post.ID))
}

func TestListPosts(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	author := f.user("author")
	sr := f.community("golang", models.CommunityOptions{IsAutoApproved: true})
	low := f.post(author, sr.ID)
	high := f.post(author, sr.ID)
	elsewhere := f.post(author, "")
	hidden := f.post(author, sr.ID)
	require.NoError(t, f.db.Model(&models.Post{}).Where("id = ?", high.ID).Update("votes_count", 10).Error)
	require.NoError(t, f.db.Model(&models.Post{}).Where("id = ?", hidden.ID).Update("is_deleted", true).Error)

	top, err := f.svc.Content.ListPosts(ctx, "top", sr.Name)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(high.ID, top[0].ID)
	assert.Equal(low.ID, top[1].ID)

	all, err := f.svc.Content.ListPosts(ctx, "new", "")
	require.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch([]string{low.ID, high.ID, elsewhere.ID}, ids)

	_, err = f.svc.Content.ListPosts(ctx, "rising", "")
	assert.ErrorIs(err, ErrNotFound)
}

func TestListCommentsUsesSuggestedSort(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	author := f.user("author")
	sr := f.community("golang", models.CommunityOptions{IsAutoApproved: true})
	post := f.post(author, sr.ID)
	first := f.comment(author, post, 0)
	second := f.comment(author, post, 0)
	require.NoError(t, f.db.Model(&models.Comment{}).Where("id = ?", second.ID).Update("votes_count", 5).Error)
	require.NoError(t, f.db.Model(&models.Comment{}).Where("id = ?", first.ID).Update("created_at", time.Now().UTC().Add(-time.Hour)).Error)

	comments, sort, err := f.svc.Content.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal("best", sort)
	require.Len(t, comments, 2)
	assert.Equal(second.ID, comments[0].ID)

	require.NoError(t, f.svc.Options.SetSuggestedSort(ctx, sr.ID, "old"))
	comments, sort, err = f.svc.Content.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal("old", sort)
	require.Len(t, comments, 2)
	assert.Equal(first.ID, comments[0].ID)

	_, _, err = f.svc.Content.ListComments(ctx, "t3_missing")
	assert.ErrorIs(err, ErrNotFound)
}
