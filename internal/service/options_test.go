package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/readit/backend/internal/models"
)

func TestSetSuggestedSort(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	sr := f.community("golang", models.CommunityOptions{IsAutoApproved: true, SpamsNumBeforeRemove: 21})

	// prime the cache so the update has to invalidate it
	opts, err := f.svc.Options.Get(ctx, sr.ID)
	require.NoError(t, err)
	assert.Empty(opts.SuggestedCommentSort)

	require.NoError(t, f.svc.Options.SetSuggestedSort(ctx, sr.ID, "top"))
	opts, err = f.svc.Options.Get(ctx, sr.ID)
	require.NoError(t, err)
	assert.Equal("top", opts.SuggestedCommentSort)

	require.NoError(t, f.svc.Options.SetSuggestedSort(ctx, sr.ID, ""))
	opts, err = f.svc.Options.Get(ctx, sr.ID)
	require.NoError(t, err)
	assert.Empty(opts.SuggestedCommentSort)
}

func TestSetSuggestedSortRejectsBadInput(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	sr := f.community("golang", models.CommunityOptions{})

	n := countStatements(t, f.db)
	assert.ErrorIs(f.svc.Options.SetSuggestedSort(ctx, "golang", "top"), ErrInvalidArgument)
	assert.ErrorIs(f.svc.Options.SetSuggestedSort(ctx, "t3_"+sr.ID[3:], "top"), ErrInvalidArgument)
	assert.ErrorIs(f.svc.Options.SetSuggestedSort(ctx, sr.ID, "random"), ErrInvalidArgument)
	assert.Zero(*n)

	assert.ErrorIs(f.svc.Options.SetSuggestedSort(ctx, "t5_missing", "new"), ErrNotFound)
}

func TestOptionsUpdate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	sr := f.community("golang", models.CommunityOptions{IsAutoApproved: true, SpamsNumBeforeRemove: 21})
	_, err := f.svc.Options.Get(ctx, sr.ID)
	require.NoError(t, err)

	off, threshold := false, 5
	opts, err := f.svc.Options.Update(ctx, sr.ID, OptionsUpdate{IsAutoApproved: &off, SpamsNumBeforeRemove: &threshold})
	require.NoError(t, err)
	assert.False(opts.IsAutoApproved)
	assert.Equal(5, opts.SpamsNumBeforeRemove)

	// a partial update leaves the other field alone
	on := true
	opts, err = f.svc.Options.Update(ctx, sr.ID, OptionsUpdate{IsAutoApproved: &on})
	require.NoError(t, err)
	assert.True(opts.IsAutoApproved)
	assert.Equal(5, opts.SpamsNumBeforeRemove)

	negative := -1
	_, err = f.svc.Options.Update(ctx, sr.ID, OptionsUpdate{SpamsNumBeforeRemove: &negative})
	assert.ErrorIs(err, ErrInvalidArgument)

	_, err = f.svc.Options.Update(ctx, "t5_missing", OptionsUpdate{IsAutoApproved: &on})
	assert.ErrorIs(err, ErrNotFound)
}

func TestOptionsForCommunity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	opts, err := f.svc.Options.ForCommunity(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, opts)

	_, err = f.svc.Options.ForCommunity(ctx, "t5_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
