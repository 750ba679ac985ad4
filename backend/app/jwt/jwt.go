package jwtutil

import (
	"errors"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// FallbackSecret signs tokens when no secret is configured. It is public in
// the source tree, so anything signed with it is forgeable.
const FallbackSecret = "jiansou-insecure-fallback-secret"

const DefaultExpMin = 30 * 24 * 60

var ErrInvalidToken = errors.New("invalid token")

var fallbackWarning sync.Once

type Claims struct {
	jwt.RegisteredClaims
}

type Signer struct {
	Secret []byte
	Issuer string
	ExpMin int
	Log    zerolog.Logger

	now func() time.Time
}

func NewSigner(secret, issuer string, expMin int, log zerolog.Logger) *Signer {
	if expMin <= 0 {
		expMin = DefaultExpMin
	}
	return &Signer{Secret: []byte(secret), Issuer: issuer, ExpMin: expMin, Log: log}
}

func (s *Signer) key() []byte {
	if len(s.Secret) > 0 {
		return s.Secret
	}
	fallbackWarning.Do(func() {
		s.Log.Warn().Msg("jwt secret is not configured, using built-in fallback secret; do not run this in production")
	})
	return []byte(FallbackSecret)
}

func (s *Signer) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *Signer) TTL() time.Duration { return time.Duration(s.ExpMin) * time.Minute }

// Sign issues a token whose subject is username.
func (s *Signer) Sign(username string) (string, error) {
	now := s.clock()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    s.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL())),
	}}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key())
}

func (s *Signer) Parse(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock),
	}
	if s.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) { return s.key(), nil }, opts...)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Subject validates tokenStr and returns the username it was issued for.
// Every failure, whatever its cause, is reported as ErrInvalidToken.
func (s *Signer) Subject(tokenStr string) (string, error) {
	claims, err := s.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
