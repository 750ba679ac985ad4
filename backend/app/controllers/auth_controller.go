package controllers

import (
	"errors"
	"net/http"

	"jiansou/backend/app/dto"
	jwtutil "jiansou/backend/app/jwt"
	"jiansou/backend/app/middleware"
	"jiansou/backend/app/services"

	"github.com/rs/zerolog"
)

type AuthController struct {
	Users  *services.UserService
	Signer *jwtutil.Signer
	Log    zerolog.Logger
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer, log zerolog.Logger) *AuthController {
	return &AuthController{Users: users, Signer: signer, Log: log}
}

// Register POST /api/auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := c.Users.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	c.Log.Info().Uint("user_id", u.ID).Str("username", u.Username).Msg("user registered")
	writeJSON(w, http.StatusCreated, services.UserToDTO(u))
}

// Login POST /api/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "missing credentials")
		return
	}
	u, err := c.Users.ValidateCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeJSONError(w, http.StatusUnauthorized, "incorrect username or password")
			return
		}
		writeServiceError(w, c.Log, err)
		return
	}
	token, err := c.Signer.Sign(u.Username)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer", User: services.UserToDTO(u)})
}

// Me GET /api/auth/me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, services.UserToDTO(middleware.CurrentUser(r.Context())))
}

// UpdateMe PATCH /api/auth/me
func (c *AuthController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var patch dto.ProfilePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	u, err := c.Users.UpdateProfile(r.Context(), middleware.CurrentUser(r.Context()).ID, patch)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, services.UserToDTO(u))
}

// ChangePassword POST /api/auth/password
func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := c.Users.ChangePassword(r.Context(), middleware.CurrentUser(r.Context()).ID, req.OldPassword, req.NewPassword)
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeJSONError(w, http.StatusBadRequest, "old password is incorrect")
		return
	}
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeMessage(w, "password updated")
}
