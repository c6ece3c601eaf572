package oidc

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/eatsexchange/eats-exchange-server/pkg/middleware"
)

// Verifier wraps the OIDC provider and token verifier for one client id.
type Verifier struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// NewVerifier discovers issuer's keys and returns a verifier for clientID.
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: clientID})
	return &Verifier{provider: provider, verifier: verifier}, nil
}

// Verify checks signature, issuer, audience and expiry of a raw ID token.
func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return idToken, nil
}

// Identity is the subset of standard ID token claims the server uses.
type Identity struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// ReadIdentity extracts Identity from a verified token. A token that says
// its email is unverified is rejected; a token that is silent about it is not.
func ReadIdentity(t middleware.Token) (Identity, error) {
	var id Identity
	if err := t.Claims(&id); err != nil {
		return Identity{}, fmt.Errorf("decode id token claims: %w", err)
	}
	if id.Email == "" {
		return Identity{}, fmt.Errorf("id token has no email claim")
	}
	if id.EmailVerified != nil && !*id.EmailVerified {
		return Identity{}, fmt.Errorf("id token email %s is not verified", id.Email)
	}
	return id, nil
}
