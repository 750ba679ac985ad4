package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"jiansou/backend/app/models"
	"jiansou/backend/app/webdav"
	"jiansou/backend/config"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AvatarDownloadPrefix is the public path avatars are served under.
const AvatarDownloadPrefix = "/api/avatar/download/"

var (
	avatarExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
	avatarNameRe     = regexp.MustCompile(`^avatar_\d+_[0-9a-f-]{36}\.(jpg|jpeg|png|gif|webp)$`)
)

// DefaultAvatarMaxSize applies when no positive limit is configured.
const DefaultAvatarMaxSize = 5 << 20

const avatarStoreTimeout = 30 * time.Second

var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrUnsupportedImage = errors.New("unsupported image format")
)

type AvatarService struct {
	client  *webdav.Client
	dir     string
	maxSize int64
	users   *UserService
	log     zerolog.Logger
}

// NewAvatarService returns a service whose operations all fail with
// ErrStorageUnavailable when cfg has no WebDAV URL.
func NewAvatarService(cfg config.WebDAV, users *UserService, log zerolog.Logger) *AvatarService {
	s := &AvatarService{dir: cfg.AvatarDir, maxSize: cfg.MaxFileSize, users: users, log: log}
	if s.maxSize <= 0 {
		s.maxSize = DefaultAvatarMaxSize
	}
	if cfg.Configured() {
		s.client = webdav.NewClient(cfg.URL, cfg.Username, cfg.Password, avatarStoreTimeout)
	}
	return s
}

// MaxSize is the largest accepted avatar in bytes.
func (s *AvatarService) MaxSize() int64 { return s.maxSize }

func (s *AvatarService) remotePath(name string) string {
	if s.dir == "" {
		return name
	}
	return s.dir + "/" + name
}

// Upload stores content as the user's new avatar and returns its public URL.
// The previous avatar file is removed best-effort.
func (s *AvatarService) Upload(ctx context.Context, u *models.User, filename string, content []byte) (string, error) {
	if s.client == nil {
		return "", ErrStorageUnavailable
	}
	if int64(len(content)) > s.maxSize {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.maxSize)
	}
	ext := strings.ToLower(path.Ext(filename))
	if !avatarExtensions[ext] {
		return "", ErrUnsupportedImage
	}
	ctype := http.DetectContentType(content)
	if !strings.HasPrefix(ctype, "image/") {
		return "", ErrUnsupportedImage
	}

	name := fmt.Sprintf("avatar_%d_%s%s", u.ID, uuid.NewString(), ext)
	if err := s.client.MkdirAll(s.dir); err != nil {
		return "", fmt.Errorf("create avatar dir: %w", err)
	}
	if err := s.client.Put(s.remotePath(name), content); err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	url := AvatarDownloadPrefix + name
	if err := s.users.SetAvatar(ctx, u.ID, &url); err != nil {
		if derr := s.client.Delete(s.remotePath(name)); derr != nil {
			s.log.Warn().Err(derr).Str("file", name).Msg("failed to remove orphaned avatar")
		}
		return "", err
	}
	if old := avatarFile(u.AvatarURL); old != "" {
		if err := s.removeFile(old); err != nil {
			s.log.Warn().Err(err).Str("file", old).Msg("failed to remove previous avatar")
		}
	}
	u.AvatarURL = &url
	return url, nil
}

// Delete clears the user's avatar. ErrNotFound when none is set.
func (s *AvatarService) Delete(ctx context.Context, u *models.User) error {
	if s.client == nil {
		return ErrStorageUnavailable
	}
	if u.AvatarURL == nil {
		return ErrNotFound
	}
	if old := avatarFile(u.AvatarURL); old != "" {
		if err := s.removeFile(old); err != nil {
			s.log.Warn().Err(err).Str("file", old).Msg("failed to remove avatar file")
		}
	}
	if err := s.users.SetAvatar(ctx, u.ID, nil); err != nil {
		return err
	}
	u.AvatarURL = nil
	return nil
}

// Open fetches a stored avatar by file name.
func (s *AvatarService) Open(_ context.Context, filename string) ([]byte, string, error) {
	if s.client == nil {
		return nil, "", ErrStorageUnavailable
	}
	if !avatarNameRe.MatchString(filename) {
		return nil, "", ErrNotFound
	}
	b, err := s.client.Get(s.remotePath(filename))
	if errors.Is(err, webdav.ErrNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	ctype := mime.TypeByExtension(path.Ext(filename))
	if ctype == "" {
		ctype = http.DetectContentType(b)
	}
	return b, ctype, nil
}

func (s *AvatarService) removeFile(name string) error {
	err := s.client.Delete(s.remotePath(name))
	if errors.Is(err, webdav.ErrNotFound) {
		return nil
	}
	return err
}

// avatarFile extracts the stored file name from an avatar URL we issued.
func avatarFile(avatarURL *string) string {
	if avatarURL == nil || !strings.HasPrefix(*avatarURL, AvatarDownloadPrefix) {
		return ""
	}
	name := strings.TrimPrefix(*avatarURL, AvatarDownloadPrefix)
	if !avatarNameRe.MatchString(name) {
		return ""
	}
	return name
}
