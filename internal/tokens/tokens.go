package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eatsexchange/eats-exchange-server/internal/models"
	"github.com/eatsexchange/eats-exchange-server/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers malformed, tampered and wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid authentication token")
	// ErrExpiredToken is returned once exp has passed.
	ErrExpiredToken = errors.New("authentication token has expired")
)

// DefaultTTL is the absolute lifetime of a credential; there is no refresh.
const DefaultTTL = 10 * time.Hour

// Service signs and verifies the credential carried in the cookie.
// The secret is loaded once at startup and never rotated.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *Service) TTL() time.Duration { return s.ttl }

// Issue creates a signed HS256 token for the identity and returns it with its expiry.
func (s *Service) Issue(ctx context.Context, id models.Identity) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := jwt.MapClaims{
		"email": id.Email,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
		"jti":   uuid.NewString(),
	}
	if id.Name != "" {
		claims["name"] = id.Name
	}
	if id.Photo != "" {
		claims["photo"] = id.Photo
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature and expiry and returns the token's claims.
func (s *Service) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &Token{claims: claims}, nil
}

// Token is a verified credential.
type Token struct {
	claims jwt.MapClaims
}

// Claims decodes the token payload into v, the same way *oidc.IDToken does.
func (t *Token) Claims(v interface{}) error {
	b, err := json.Marshal(t.claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Meta is the subset of registered claims needed for revocation.
type Meta struct {
	ID        string `json:"jti"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"exp"`
}

// Expiry returns exp as a time.
func (m Meta) Expiry() time.Time { return time.Unix(m.ExpiresAt, 0) }

// ReadMeta extracts Meta from any verified token.
func ReadMeta(t middleware.Token) (Meta, error) {
	var m Meta
	if err := t.Claims(&m); err != nil {
		return Meta{}, err
	}
	return m, nil
}
