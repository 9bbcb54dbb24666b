package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/readit/backend/internal/models"
)

func TestSaveAndUnsavePost(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	reader, author := f.user("reader"), f.user("author")
	first, second := f.post(author, ""), f.post(author, "")

	require.NoError(t, f.svc.Content.SavePost(ctx, reader.ID, first.ID))
	require.NoError(t, f.svc.Content.SavePost(ctx, reader.ID, first.ID))
	require.NoError(t, f.svc.Content.SavePost(ctx, reader.ID, second.ID))
	assert.EqualValues(2, f.count(&models.SavedPost{}, "user_id = ?", reader.ID))

	saved, err := f.svc.Content.SavedPosts(ctx, reader.ID)
	require.NoError(t, err)
	assert.Len(saved, 2)

	require.NoError(t, f.svc.Content.UnsavePost(ctx, reader.ID, first.ID))
	require.NoError(t, f.svc.Content.UnsavePost(ctx, reader.ID, first.ID))
	saved, err = f.svc.Content.SavedPosts(ctx, reader.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(second.ID, saved[0].ID)

	// removed posts drop out of the list
	require.NoError(t, f.db.Model(&models.Post{}).Where("id = ?", second.ID).Update("is_deleted", true).Error)
	saved, err = f.svc.Content.SavedPosts(ctx, reader.ID)
	require.NoError(t, err)
	assert.Empty(saved)
}

func TestSavePostRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	reader := f.user("reader")
	post := f.post(reader, "")
	comment := f.comment(reader, post, 0)

	assert.ErrorIs(t, f.svc.Content.SavePost(ctx, reader.ID, ""), ErrInvalidArgument)
	assert.ErrorIs(t, f.svc.Content.SavePost(ctx, reader.ID, comment.ID), ErrInvalidArgument)
	assert.ErrorIs(t, f.svc.Content.UnsavePost(ctx, reader.ID, "missing"), ErrInvalidArgument)
	assert.ErrorIs(t, f.svc.Content.SavePost(ctx, reader.ID, "t3_missing"), ErrNotFound)
	assert.Zero(t, f.count(&models.SavedPost{}, "1 = 1"))
}
