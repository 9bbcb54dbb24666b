package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/readit/backend/internal/models"
)

func usernames(users []models.User) []string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names
}

func TestFollowersAndFollowing(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	alice, bob, carol := f.user("alice"), f.user("bob"), f.user("carol")
	require.True(t, f.svc.Members.Subscribe(ctx, alice.ID, "sub", bob.ID).State)
	require.True(t, f.svc.Members.Subscribe(ctx, "alice", "sub", carol.ID).State)
	require.True(t, f.svc.Members.Subscribe(ctx, carol.ID, "sub", bob.ID).State)

	followers, err := f.svc.Members.Followers(ctx, "alice")
	require.NoError(t, err)
	assert.ElementsMatch([]string{"bob", "carol"}, usernames(followers))

	following, err := f.svc.Members.Following(ctx, bob.ID)
	require.NoError(t, err)
	assert.ElementsMatch([]string{"alice", "carol"}, usernames(following))

	following, err = f.svc.Members.Following(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(following)

	_, err = f.svc.Members.Followers(ctx, "t2_missing")
	assert.ErrorIs(err, ErrNotFound)
}

func TestFriends(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	alice, bob, carol := f.user("alice"), f.user("bob"), f.user("carol")
	require.NoError(t, f.svc.Members.AddFriend(ctx, alice.ID, bob.ID))
	require.NoError(t, f.svc.Members.AddFriend(ctx, carol.ID, alice.ID))

	friends, err := f.svc.Members.Friends(ctx, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch([]string{"bob", "carol"}, usernames(friends))

	friends, err = f.svc.Members.Friends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal([]string{"alice"}, usernames(friends))
}

func TestBlock(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	alice, bob := f.user("alice"), f.user("bob")
	require.True(t, f.svc.Members.Subscribe(ctx, bob.ID, "sub", alice.ID).State)
	require.True(t, f.svc.Members.Subscribe(ctx, alice.ID, "sub", bob.ID).State)
	require.NoError(t, f.svc.Members.AddFriend(ctx, alice.ID, bob.ID))

	require.NoError(t, f.svc.Members.Block(ctx, alice.ID, "bob", "block"))
	require.NoError(t, f.svc.Members.Block(ctx, alice.ID, bob.ID, "block"))
	assert.EqualValues(1, f.count(&models.Block{}, "blocker_id = ? AND blocked_id = ?", alice.ID, bob.ID))
	assert.Zero(f.count(&models.Follow{}, "1 = 1"))
	assert.Zero(f.count(&models.Friend{}, "1 = 1"))

	blocked, err := f.svc.Members.Blocked(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal([]string{"bob"}, usernames(blocked))

	// a block stops new relationships from either side
	res := f.svc.Members.Subscribe(ctx, alice.ID, "sub", bob.ID)
	assert.ErrorIs(res.Err, ErrInvalidArgument)
	assert.ErrorIs(f.svc.Members.AddFriend(ctx, bob.ID, alice.ID), ErrInvalidArgument)

	require.NoError(t, f.svc.Members.Block(ctx, alice.ID, bob.ID, "unblock"))
	require.NoError(t, f.svc.Members.Block(ctx, alice.ID, bob.ID, "unblock"))
	assert.Zero(f.count(&models.Block{}, "1 = 1"))
	assert.True(f.svc.Members.Subscribe(ctx, alice.ID, "sub", bob.ID).State)

	assert.ErrorIs(f.svc.Members.Block(ctx, alice.ID, bob.ID, "mute"), ErrInvalidArgument)
	assert.ErrorIs(f.svc.Members.Block(ctx, alice.ID, alice.ID, "block"), ErrInvalidArgument)
	assert.ErrorIs(f.svc.Members.Block(ctx, alice.ID, "t2_missing", "block"), ErrNotFound)
}
