package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
)

const (
	// DefaultTokenTTL is how long a session token stays valid.
	DefaultTokenTTL = time.Hour
	// TokenCookieName is the cookie that carries the session token.
	TokenCookieName = "token"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingEmail = errors.New("email is required")
	ErrEmptySecret  = errors.New("token signing secret is empty")
)

// TokenClaims is the payload of a session token.
type TokenClaims struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	PhotoURL string `json:"photoURL,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for the identity. The identity must carry an email.
func (s *TokenService) Issue(id models.Identity) (string, time.Time, error) {
	email := strings.TrimSpace(id.Email)
	if email == "" {
		return "", time.Time{}, ErrMissingEmail
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := TokenClaims{
		Email:    email,
		Name:     id.Name,
		PhotoURL: id.PhotoURL,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry and returns the identity the token carries.
func (s *TokenService) Verify(token string) (models.Identity, error) {
	var claims TokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Email == "" {
		return models.Identity{}, fmt.Errorf("%w: no email claim", ErrInvalidToken)
	}

	return models.Identity{
		Email:     claims.Email,
		Name:      claims.Name,
		PhotoURL:  claims.PhotoURL,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
