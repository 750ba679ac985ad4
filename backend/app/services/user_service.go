package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"jiansou/backend/app/defaults"
	"jiansou/backend/app/dto"
	"jiansou/backend/app/models"
	"jiansou/backend/app/repo"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	maxUsernameLength    = 50
	maxDisplayNameLength = 255
	maxBioLength         = 500
)

type UserService struct {
	db        *gorm.DB
	users     *repo.UserRepository
	links     *repo.QuickLinkRepository
	engines   *repo.SearchEngineRepository
	defaults  *defaults.Provider
	hasher    PasswordHasher
	minPwdLen int
	log       zerolog.Logger
}

func NewUserService(db *gorm.DB, p *defaults.Provider, hasher PasswordHasher, minPwdLen int, log zerolog.Logger) *UserService {
	return &UserService{
		db:        db,
		users:     repo.NewUserRepository(db),
		links:     repo.NewQuickLinkRepository(db),
		engines:   repo.NewSearchEngineRepository(db),
		defaults:  p,
		hasher:    hasher,
		minPwdLen: minPwdLen,
		log:       log,
	}
}

// Register creates the account and then copies the default catalog into it.
// A failed copy is logged and the account is kept.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, fmt.Errorf("%w: username", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email", ErrInvalidInput)
	}
	if err := s.checkAvailable(ctx, username, email); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(req.Password) < s.minPwdLen {
		return nil, ErrPasswordTooShort
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{Username: username, Email: email, PasswordHash: hash, IsActive: true}
	if err := s.users.Create(ctx, u); err != nil {
		// lost a race against a concurrent registration
		if cerr := s.checkAvailable(ctx, username, email); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	if err := s.seedDefaults(ctx, u.ID); err != nil {
		s.log.Error().Err(err).Uint("user_id", u.ID).Msg("failed to seed default data for new user")
	}
	return u, nil
}

func (s *UserService) checkAvailable(ctx context.Context, username, email string) error {
	n, err := s.users.CountByUsername(ctx, username)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateUsername
	}
	n, err = s.users.CountByEmail(ctx, email)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateEmail
	}
	return nil
}

// seedDefaults gives a new user a private copy of the default catalog.
func (s *UserService) seedDefaults(ctx context.Context, userID uint) error {
	c := s.defaults.Catalog()
	links := make([]models.QuickLink, 0, len(c.QuickLinks))
	for _, l := range c.QuickLinks {
		links = append(links, models.QuickLink{Name: l.Name, URL: l.URL, Icon: l.Icon, Color: l.Color, Category: l.Category, UserID: userID})
	}
	engines := make([]models.SearchEngine, 0, len(c.SearchEngines))
	seenDefault := false
	for _, e := range c.SearchEngines {
		isDefault := e.IsDefault && !seenDefault
		seenDefault = seenDefault || isDefault
		engines = append(engines, models.SearchEngine{
			Name:        e.Name,
			DisplayName: e.DisplayName,
			URLTemplate: e.URLTemplate,
			Icon:        e.Icon,
			Color:       e.Color,
			IsActive:    e.IsActive,
			IsDefault:   isDefault,
			SortOrder:   e.SortOrder,
			UserID:      userID,
		})
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.links.WithTx(tx).CreateBatch(ctx, links); err != nil {
			return fmt.Errorf("seed quick links: %w", err)
		}
		if err := s.engines.WithTx(tx).CreateBatch(ctx, engines); err != nil {
			return fmt.Errorf("seed search engines: %w", err)
		}
		return nil
	})
}

func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) || !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfile applies the fields present in patch; explicit nulls clear.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, patch dto.ProfilePatch) (*models.User, error) {
	updates := map[string]any{}
	if patch.DisplayName.Set {
		if patch.DisplayName.Null {
			updates["display_name"] = nil
		} else {
			v := strings.TrimSpace(patch.DisplayName.Value)
			if utf8.RuneCountInString(v) > maxDisplayNameLength {
				return nil, fmt.Errorf("%w: display_name", ErrInvalidInput)
			}
			updates["display_name"] = v
		}
	}
	if patch.Bio.Set {
		if patch.Bio.Null {
			updates["bio"] = nil
		} else {
			if utf8.RuneCountInString(patch.Bio.Value) > maxBioLength {
				return nil, fmt.Errorf("%w: bio", ErrInvalidInput)
			}
			updates["bio"] = patch.Bio.Value
		}
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.users.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(u.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}
	if utf8.RuneCountInString(newPassword) < s.minPwdLen {
		return ErrPasswordTooShort
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.Update(ctx, userID, map[string]any{"password_hash": hash})
}

// SetAvatar stores or clears (nil) the avatar reference.
func (s *UserService) SetAvatar(ctx context.Context, userID uint, avatarURL *string) error {
	var v any
	if avatarURL != nil {
		v = *avatarURL
	}
	return s.users.Update(ctx, userID, map[string]any{"avatar_url": v})
}

func UserToDTO(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}
