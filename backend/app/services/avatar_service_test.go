package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"jiansou/backend/app/webdav/davtest"
	"jiansou/backend/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newAvatarEnv(t *testing.T) (*testEnv, *AvatarService, *davtest.Server) {
	t.Helper()
	env := newTestEnv(t)
	srv := davtest.New(t, "dav", "pw")
	svc := NewAvatarService(config.WebDAV{URL: srv.URL, Username: "dav", Password: "pw", AvatarDir: "avatars", MaxFileSize: 1024}, env.users, zerolog.Nop())
	return env, svc, srv
}

func TestAvatarUploadReplaceDelete(t *testing.T) {
	env, svc, store := newAvatarEnv(t)
	ctx := context.Background()
	u := env.register(t, "alice")

	first, err := svc.Upload(ctx, u, "me.PNG", pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, AvatarDownloadPrefix+"avatar_"))
	assert.True(t, strings.HasSuffix(first, ".png"))
	assert.Len(t, store.Files(t, "/avatars"), 1)

	name := strings.TrimPrefix(first, AvatarDownloadPrefix)
	body, ctype, err := svc.Open(ctx, name)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(pngHeader, body))
	assert.Equal(t, "image/png", ctype)

	second, err := svc.Upload(ctx, u, "me2.png", pngHeader)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, []string{strings.TrimPrefix(second, AvatarDownloadPrefix)}, store.Files(t, "/avatars"), "previous avatar removed")

	stored, err := env.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AvatarURL)
	assert.Equal(t, second, *stored.AvatarURL)

	require.NoError(t, svc.Delete(ctx, u))
	assert.Empty(t, store.Files(t, "/avatars"))
	assert.ErrorIs(t, svc.Delete(ctx, u), ErrNotFound)

	stored, err = env.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.AvatarURL)
}

func TestAvatarUploadValidation(t *testing.T) {
	env, svc, _ := newAvatarEnv(t)
	ctx := context.Background()
	u := env.register(t, "alice")

	_, err := svc.Upload(ctx, u, "a.bmp", pngHeader)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	_, err = svc.Upload(ctx, u, "a.png", []byte("plain text, not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	_, err = svc.Upload(ctx, u, "a.png", append(pngHeader, make([]byte, 2048)...))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestAvatarOpenRejectsForeignNames(t *testing.T) {
	_, svc, _ := newAvatarEnv(t)
	for _, name := range []string{"../secret", "config.yaml", "avatar_1_x.png"} {
		_, _, err := svc.Open(context.Background(), name)
		assert.ErrorIs(t, err, ErrNotFound, name)
	}
}

func TestAvatarStorageUnavailable(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "alice")
	svc := NewAvatarService(config.WebDAV{}, env.users, zerolog.Nop())

	_, err := svc.Upload(context.Background(), u, "a.png", pngHeader)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, svc.Delete(context.Background(), u), ErrStorageUnavailable)
	_, _, err = svc.Open(context.Background(), "avatar_1_00000000-0000-0000-0000-000000000000.png")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestAvatarMaxSizeDefault(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAvatarService(config.WebDAV{MaxFileSize: 0}, env.users, zerolog.Nop())
	assert.EqualValues(t, DefaultAvatarMaxSize, svc.MaxSize())
}
