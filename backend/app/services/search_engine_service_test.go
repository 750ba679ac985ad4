package services

import (
	"context"
	"testing"

	"jiansou/backend/app/defaults"
	"jiansou/backend/app/dto"
	"jiansou/backend/app/repo"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchEngineCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	cases := []struct {
		name string
		req  dto.SearchEngineRequest
		want error
	}{
		{"duplicate name", dto.SearchEngineRequest{Name: "baidu", URLTemplate: "https://x.com/s?q={query}"}, ErrDuplicateName},
		{"no placeholder", dto.SearchEngineRequest{Name: "x1", URLTemplate: "https://x.com/s"}, ErrInvalidTemplate},
		{"two placeholders", dto.SearchEngineRequest{Name: "x2", URLTemplate: "https://x.com/{query}?q={query}"}, ErrInvalidTemplate},
		{"relative", dto.SearchEngineRequest{Name: "x3", URLTemplate: "/s?q={query}"}, ErrInvalidTemplate},
		{"ftp", dto.SearchEngineRequest{Name: "x4", URLTemplate: "ftp://x.com/{query}"}, ErrInvalidTemplate},
		{"empty name", dto.SearchEngineRequest{Name: "", URLTemplate: "https://x.com/s?q={query}"}, ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.engines.Create(ctx, alice.ID, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSearchEngineNamesArePerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	req := dto.SearchEngineRequest{Name: "ddg", URLTemplate: "https://duckduckgo.com/?q={query}"}
	a, err := env.engines.Create(ctx, alice.ID, req)
	require.NoError(t, err)
	assert.True(t, a.IsActive)
	assert.Equal(t, "ddg", a.DisplayName)
	_, err = env.engines.Create(ctx, bob.ID, req)
	require.NoError(t, err)
	_, err = env.engines.Create(ctx, alice.ID, req)
	assert.ErrorIs(t, err, ErrDuplicateName)

	inactive, err := env.engines.Create(ctx, alice.ID, dto.SearchEngineRequest{Name: "off", URLTemplate: "https://off.com/?q={query}", IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)

	active, err := env.engines.List(ctx, Owner(alice), true)
	require.NoError(t, err)
	all, err := env.engines.List(ctx, Owner(alice), false)
	require.NoError(t, err)
	assert.Len(t, all, len(active)+1)
}

func TestSearchEngineSingleDefault(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	engines := repo.NewSearchEngineRepository(env.db)

	created, err := env.engines.Create(ctx, alice.ID, dto.SearchEngineRequest{Name: "mine", URLTemplate: "https://mine.com/?q={query}", IsDefault: true})
	require.NoError(t, err)
	n, err := engines.CountDefault(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	def, err := env.engines.GetDefault(ctx, Owner(alice))
	require.NoError(t, err)
	assert.Equal(t, created.ID, def.ID)

	baidu, err := env.engines.FindByName(ctx, alice.ID, "baidu")
	require.NoError(t, err)
	_, err = env.engines.Update(ctx, alice.ID, baidu.ID, dto.SearchEnginePatch{IsDefault: dto.Some(true)})
	require.NoError(t, err)
	n, err = engines.CountDefault(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	def, err = env.engines.GetDefault(ctx, Owner(alice))
	require.NoError(t, err)
	assert.Equal(t, "baidu", def.Name)
}

func TestSearchEngineSingleDefaultProperty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	engines := repo.NewSearchEngineRepository(env.db)

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 20
	properties := gopter.NewProperties(params)
	properties.Property("at most one default after any sequence of writes", prop.ForAll(
		func(flags []bool) bool {
			u := env.register(t, "")
			list, err := env.engines.List(ctx, Owner(u), false)
			if err != nil {
				return false
			}
			for i, f := range flags {
				if i%2 == 0 {
					_, err = env.engines.Create(ctx, u.ID, dto.SearchEngineRequest{
						Name:        "e" + string(rune('a'+i)),
						URLTemplate: "https://e.com/?q={query}",
						IsDefault:   f,
					})
				} else {
					_, err = env.engines.Update(ctx, u.ID, list[i%len(list)].ID, dto.SearchEnginePatch{IsDefault: dto.Some(f)})
				}
				if err != nil {
					return false
				}
			}
			n, err := engines.CountDefault(ctx, u.ID)
			return err == nil && n <= 1
		},
		gen.SliceOfN(8, gen.Bool()),
	))
	properties.TestingRun(t)
}

func TestSearchEngineOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	e, err := env.engines.FindByName(ctx, alice.ID, "google")
	require.NoError(t, err)

	_, err = env.engines.Update(ctx, bob.ID, e.ID, dto.SearchEnginePatch{DisplayName: dto.Some("x")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, env.engines.Delete(ctx, bob.ID, e.ID), ErrNotFound)

	_, err = env.engines.Update(ctx, alice.ID, e.ID, dto.SearchEnginePatch{URLTemplate: dto.Some("https://g.com/")})
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	require.NoError(t, env.engines.Delete(ctx, alice.ID, e.ID))
	_, err = env.engines.FindByName(ctx, alice.ID, "google")
	assert.ErrorIs(t, err, ErrEngineNotFound)
}

func TestSearchEngineAnonymousDefault(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.engines.GetDefault(ctx, Owner(nil))
	require.NoError(t, err)
	second, err := env.engines.GetDefault(ctx, Owner(nil))
	require.NoError(t, err)
	assert.Equal(t, "baidu", first.Name)
	assert.Equal(t, first.Name, second.Name)
	assert.True(t, first.Owner.IsVirtual())

	list, err := env.engines.List(ctx, Owner(nil), true)
	require.NoError(t, err)
	assert.Len(t, list, 5)

	empty := newTestEnvWithCatalog(t, defaults.Catalog{})
	_, err = empty.engines.GetDefault(ctx, Owner(nil))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchEngineDefaultFallsBackToFirstActive(t *testing.T) {
	env := newTestEnvWithCatalog(t, defaults.Catalog{})
	ctx := context.Background()
	u := env.register(t, "alice")

	_, err := env.engines.GetDefault(ctx, Owner(u))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.engines.Create(ctx, u.ID, dto.SearchEngineRequest{Name: "b", URLTemplate: "https://b.com/?q={query}", SortOrder: 2})
	require.NoError(t, err)
	_, err = env.engines.Create(ctx, u.ID, dto.SearchEngineRequest{Name: "a", URLTemplate: "https://a.com/?q={query}", SortOrder: 1})
	require.NoError(t, err)

	def, err := env.engines.GetDefault(ctx, Owner(u))
	require.NoError(t, err)
	assert.Equal(t, "a", def.Name)
	assert.False(t, def.IsDefault)
}
