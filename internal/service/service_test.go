package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/emilythestrangee/readit/backend/internal/auth"
	"github.com/emilythestrangee/readit/backend/internal/cache"
	"github.com/emilythestrangee/readit/backend/internal/config"
	"github.com/emilythestrangee/readit/backend/internal/database"
	"github.com/emilythestrangee/readit/backend/internal/models"
)

type fixture struct {
	t   *testing.T
	db  *gorm.DB
	svc *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(config.Database{Driver: "sqlite", Path: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := New(db, cache.NewMemStore(100, time.Minute), Config{
		DefaultSpamThreshold: 21,
		Tokens:               auth.NewIssuer("test-secret", time.Hour),
	})
	return &fixture{t: t, db: db, svc: svc}
}

func (f *fixture) user(name string) *models.User {
	f.t.Helper()
	u := &models.User{
		ID:       models.NewID(models.TagUser),
		Username: name,
		Email:    name + "@example.com",
		Password: "x",
	}
	require.NoError(f.t, f.db.Create(u).Error)
	return u
}

func (f *fixture) community(name string, opts models.CommunityOptions) *models.Community {
	f.t.Helper()
	c := &models.Community{
		ID:      models.NewID(models.TagCommunity),
		Name:    name,
		Options: opts,
	}
	require.NoError(f.t, f.db.Create(c).Error)
	return c
}

func (f *fixture) post(author *models.User, communityID string) *models.Post {
	f.t.Helper()
	p := &models.Post{
		ID:          models.NewID(models.TagPost),
		AuthorID:    author.ID,
		CommunityID: communityID,
		Title:       "hello",
	}
	require.NoError(f.t, f.db.Create(p).Error)
	return p
}

func (f *fixture) comment(author *models.User, post *models.Post, spamCount int) *models.Comment {
	f.t.Helper()
	c := &models.Comment{
		ID:          models.NewID(models.TagComment),
		AuthorID:    author.ID,
		PostID:      post.ID,
		CommunityID: post.CommunityID,
		IsRoot:      true,
		Text:        "first",
		SpamCount:   spamCount,
	}
	require.NoError(f.t, f.db.Create(c).Error)
	return c
}

func (f *fixture) reloadPost(id string) models.Post {
	f.t.Helper()
	var p models.Post
	require.NoError(f.t, f.db.Where("id = ?", id).First(&p).Error)
	return p
}

func (f *fixture) reloadComment(id string) models.Comment {
	f.t.Helper()
	var c models.Comment
	require.NoError(f.t, f.db.Where("id = ?", id).First(&c).Error)
	return c
}

func (f *fixture) count(model any, query string, args ...any) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

// countStatements counts every statement gorm issues on db from now on.
func countStatements(t *testing.T, db *gorm.DB) *int {
	t.Helper()
	n := 0
	inc := func(*gorm.DB) { n++ }
	cb := db.Callback()
	require.NoError(t, cb.Create().Before("gorm:create").Register("test:count_create", inc))
	require.NoError(t, cb.Query().Before("gorm:query").Register("test:count_query", inc))
	require.NoError(t, cb.Update().Before("gorm:update").Register("test:count_update", inc))
	require.NoError(t, cb.Delete().Before("gorm:delete").Register("test:count_delete", inc))
	require.NoError(t, cb.Raw().Before("gorm:raw").Register("test:count_raw", inc))
	require.NoError(t, cb.Row().Before("gorm:row").Register("test:count_row", inc))
	return &n
}
