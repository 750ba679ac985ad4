package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"jiansou/backend/app/db"
	"jiansou/backend/app/defaults"
	"jiansou/backend/app/dto"
	"jiansou/backend/app/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	provider *defaults.Provider
	users    *UserService
	links    *QuickLinkService
	engines  *SearchEngineService
	search   *SearchService
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithCatalog(t, defaults.Builtin())
}

func newTestEnvWithCatalog(t *testing.T, c defaults.Catalog) *testEnv {
	t.Helper()
	gdb, err := db.Connect(db.Config{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "services.db")})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	p := defaults.NewProvider(c)
	engines := NewSearchEngineService(gdb, p)
	return &testEnv{
		db:       gdb,
		provider: p,
		users:    NewUserService(gdb, p, BcryptHasher{Cost: bcrypt.MinCost}, 6, zerolog.Nop()),
		links:    NewQuickLinkService(gdb, p),
		engines:  engines,
		search:   NewSearchService(gdb, engines, 10, zerolog.Nop()),
	}
}

var userSeq atomic.Int64

func (e *testEnv) register(t *testing.T, name string) *models.User {
	t.Helper()
	if name == "" {
		name = fmt.Sprintf("user%d", userSeq.Add(1))
	}
	u, err := e.users.Register(context.Background(), dto.RegisterRequest{
		Username: name,
		Email:    name + "@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	return u
}

func boolPtr(b bool) *bool { return &b }
