package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"jiansou/backend/app/db"
	"jiansou/backend/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Connect(db.Config{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "repo.db")})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@x.com", PasswordHash: "hash", IsActive: true}
	require.NoError(t, NewUserRepository(gdb).Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	gdb := openTestDB(t)
	users := NewUserRepository(gdb)
	ctx := context.Background()
	alice := createUser(t, gdb, "alice")

	n, err := users.CountByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = users.CountByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.True(t, got.IsActive)

	_, err = users.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = users.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, users.Update(ctx, alice.ID, map[string]any{"bio": "hi", "display_name": nil}))
	got, err = users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Bio)
	assert.Equal(t, "hi", *got.Bio)
	assert.Nil(t, got.DisplayName)

	require.NoError(t, users.Delete(ctx, alice.ID))
	assert.ErrorIs(t, users.Delete(ctx, alice.ID), ErrNotFound)
}

func TestUsernameAndEmailUnique(t *testing.T) {
	gdb := openTestDB(t)
	createUser(t, gdb, "alice")
	users := NewUserRepository(gdb)

	err := users.Create(context.Background(), &models.User{Username: "alice", Email: "other@x.com", PasswordHash: "h"})
	assert.Error(t, err)
	err = users.Create(context.Background(), &models.User{Username: "other", Email: "alice@x.com", PasswordHash: "h"})
	assert.Error(t, err)
}

func TestQuickLinkOwnership(t *testing.T) {
	gdb := openTestDB(t)
	links := NewQuickLinkRepository(gdb)
	ctx := context.Background()
	alice := createUser(t, gdb, "alice")
	bob := createUser(t, gdb, "bob")

	require.NoError(t, links.CreateBatch(ctx, []models.QuickLink{
		{Name: "GitHub", URL: "https://github.com", Category: "开发", UserID: alice.ID},
		{Name: "知乎", URL: "https://www.zhihu.com", Category: "学习", UserID: alice.ID},
		{Name: "微博", URL: "https://weibo.com", Category: "社交", UserID: bob.ID},
	}))

	all, err := links.ListByUser(ctx, alice.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "GitHub", all[0].Name)

	dev, err := links.ListByUser(ctx, alice.ID, "开发")
	require.NoError(t, err)
	assert.Len(t, dev, 1)

	bobs, err := links.ListByUser(ctx, bob.ID, "")
	require.NoError(t, err)
	require.Len(t, bobs, 1)

	_, err = links.FindOwned(ctx, alice.ID, bobs[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, links.DeleteOwned(ctx, alice.ID, bobs[0].ID), ErrNotFound)

	require.NoError(t, links.DeleteOwned(ctx, bob.ID, bobs[0].ID))
	n, err := links.CountByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, links.CreateBatch(ctx, nil))
}

func TestSearchEngineDefaultResolution(t *testing.T) {
	gdb := openTestDB(t)
	engines := NewSearchEngineRepository(gdb)
	ctx := context.Background()
	alice := createUser(t, gdb, "alice")

	_, err := engines.FindDefault(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, engines.CreateBatch(ctx, []models.SearchEngine{
		{Name: "off", URLTemplate: "https://off/?q={query}", IsActive: false, SortOrder: 0, UserID: alice.ID},
		{Name: "b", URLTemplate: "https://b/?q={query}", IsActive: true, SortOrder: 2, UserID: alice.ID},
		{Name: "a", URLTemplate: "https://a/?q={query}", IsActive: true, SortOrder: 1, UserID: alice.ID},
	}))

	e, err := engines.FindDefault(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", e.Name)

	b, err := engines.FindByName(ctx, alice.ID, "b")
	require.NoError(t, err)
	b.IsDefault = true
	require.NoError(t, engines.Save(ctx, b))

	e, err = engines.FindDefault(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", e.Name)

	require.NoError(t, engines.ClearDefault(ctx, alice.ID))
	n, err := engines.CountDefault(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	active, err := engines.ListByUser(ctx, alice.ID, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].Name)
	all, err := engines.ListByUser(ctx, alice.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSearchEngineNameUniquePerUser(t *testing.T) {
	gdb := openTestDB(t)
	engines := NewSearchEngineRepository(gdb)
	ctx := context.Background()
	alice := createUser(t, gdb, "alice")
	bob := createUser(t, gdb, "bob")

	require.NoError(t, engines.Create(ctx, &models.SearchEngine{Name: "x", URLTemplate: "https://x/?q={query}", UserID: alice.ID}))
	require.NoError(t, engines.Create(ctx, &models.SearchEngine{Name: "x", URLTemplate: "https://x/?q={query}", UserID: bob.ID}))
	assert.Error(t, engines.Create(ctx, &models.SearchEngine{Name: "x", URLTemplate: "https://x/?q={query}", UserID: alice.ID}))

	n, err := engines.CountByName(ctx, bob.ID, "x")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSearchHistoryNewestFirst(t *testing.T) {
	gdb := openTestDB(t)
	history := NewSearchHistoryRepository(gdb)
	ctx := context.Background()
	alice := createUser(t, gdb, "alice")
	bob := createUser(t, gdb, "bob")

	base := time.Now().Add(-time.Hour)
	for i, q := range []string{"one", "two", "three"} {
		require.NoError(t, history.Create(ctx, &models.SearchHistory{Query: q, SearchEngine: "baidu", UserID: alice.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}
	require.NoError(t, history.Create(ctx, &models.SearchHistory{Query: "bob", SearchEngine: "baidu", UserID: bob.ID}))

	rows, err := history.LatestByUser(ctx, alice.ID, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "three", rows[0].Query)
	assert.Equal(t, "two", rows[1].Query)

	n, err := history.DeleteByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	rows, err = history.LatestByUser(ctx, bob.ID, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
