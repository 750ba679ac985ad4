package services

import (
	"context"
	"testing"

	"jiansou/backend/app/defaults"
	"jiansou/backend/app/dto"
	"jiansou/backend/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRecordsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "alice")

	_, err := env.engines.Create(ctx, u.ID, dto.SearchEngineRequest{Name: "x", DisplayName: "X", URLTemplate: "https://x.com/s?q={query}"})
	require.NoError(t, err)

	resp, err := env.search.Search(ctx, u.ID, dto.SearchRequest{Query: "A&B", SearchEngine: "x"})
	require.NoError(t, err)
	assert.Equal(t, "https://x.com/s?q=A&B", resp.SearchURL)
	assert.Equal(t, "X", resp.SearchEngine)
	assert.Equal(t, "A&B", resp.Query)

	hist, err := env.search.History(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "A&B", hist[0].Query)
	assert.Equal(t, "x", hist[0].SearchEngine)
}

func TestSearchDefaultsToBaidu(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "alice")

	resp, err := env.search.Search(ctx, u.ID, dto.SearchRequest{Query: "golang"})
	require.NoError(t, err)
	assert.Contains(t, resp.SearchURL, "baidu.com")
	assert.Contains(t, resp.SearchURL, "golang")
}

func TestSearchErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "alice")

	_, err := env.search.Search(ctx, u.ID, dto.SearchRequest{Query: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = env.search.Search(ctx, u.ID, dto.SearchRequest{Query: "q", SearchEngine: "nope"})
	assert.ErrorIs(t, err, ErrEngineNotFound)

	hist, err := env.search.History(ctx, u.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestSearchSurvivesHistoryFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "alice")

	require.NoError(t, env.db.Migrator().DropTable(&models.SearchHistory{}))

	resp, err := env.search.Search(ctx, u.ID, dto.SearchRequest{Query: "still works", SearchEngine: "bing"})
	require.NoError(t, err)
	assert.Contains(t, resp.SearchURL, "still works")
}

func TestHistoryLimitAndClear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "alice")
	other := env.register(t, "bob")

	for _, q := range []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9", "q10", "q11", "q12"} {
		_, err := env.search.Search(ctx, u.ID, dto.SearchRequest{Query: q})
		require.NoError(t, err)
	}
	_, err := env.search.Search(ctx, other.ID, dto.SearchRequest{Query: "bob's"})
	require.NoError(t, err)

	hist, err := env.search.History(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, hist, 10)
	assert.Equal(t, "q12", hist[0].Query)

	hist, err = env.search.History(ctx, u.ID, 3)
	require.NoError(t, err)
	assert.Len(t, hist, 3)

	hist, err = env.search.History(ctx, u.ID, 1000)
	require.NoError(t, err)
	assert.Len(t, hist, 12)

	n, err := env.search.ClearHistory(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 12, n)

	hist, err = env.search.History(ctx, other.ID, 0)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestTemplate(t *testing.T) {
	assert.NoError(t, ValidateTemplate("https://www.google.com/search?q={query}"))
	assert.NoError(t, ValidateTemplate("http://x.com/{query}"))
	assert.ErrorIs(t, ValidateTemplate("https://x.com/ s?q={query}"), ErrInvalidTemplate)
	assert.ErrorIs(t, ValidateTemplate("{query}"), ErrInvalidTemplate)
	assert.Equal(t, "https://x.com/s?q=a b", ExpandTemplate("https://x.com/s?q={query}", "a b"))
}

func TestBuiltinTemplatesAreValid(t *testing.T) {
	for _, e := range defaults.Builtin().SearchEngines {
		assert.NoError(t, ValidateTemplate(e.URLTemplate), e.Name)
	}
}
