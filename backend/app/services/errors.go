package services

import (
	"errors"

	"jiansou/backend/app/repo"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = repo.ErrNotFound
	ErrDuplicateName      = errors.New("search engine name already exists")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrEngineNotFound     = errors.New("search engine not found")
	ErrInvalidTemplate    = errors.New("url template must contain {query} exactly once and be an http(s) url")
	ErrStorageUnavailable = errors.New("file storage is not configured")
)
