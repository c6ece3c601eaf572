package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/eatsexchange/eats-exchange-server/pkg/logger"
	"github.com/eatsexchange/eats-exchange-server/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimsKey is the gin context key holding the verified claims map.
const ClaimsKey = "claims"

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// RevocationChecker reports tokens logged out before expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// CookieAuth returns a Gin middleware that admits only requests carrying a valid
// credential cookie. Every failure (missing, malformed, expired, tampered,
// revoked) produces the same 401 so callers learn nothing about the cause.
func CookieAuth(cookieName string, ver Verifier, rev RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			unauthorized(c, "missing_cookie")
			return
		}

		tok, err := ver.Verify(c.Request.Context(), raw)
		if err != nil {
			reason := "invalid_token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				reason = "expired_token"
			}
			logger.Debugf("auth guard: %s %s rejected: %v", c.Request.Method, c.Request.URL.Path, err)
			unauthorized(c, reason)
			return
		}

		var claims map[string]interface{}
		if err := tok.Claims(&claims); err != nil {
			unauthorized(c, "bad_claims")
			return
		}

		if rev != nil {
			jti, _ := claims["jti"].(string)
			revoked, err := rev.IsRevoked(c.Request.Context(), jti)
			if err != nil {
				logger.Errorf("auth guard: revocation lookup failed: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Authentication error"})
				return
			}
			if revoked {
				unauthorized(c, "revoked_token")
				return
			}
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func unauthorized(c *gin.Context, reason string) {
	metrics.AuthFailures.WithLabelValues(reason).Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
}

// Claims returns the claims stored by CookieAuth.
func Claims(c *gin.Context) (map[string]interface{}, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	cm, ok := v.(map[string]interface{})
	return cm, ok
}

// ClaimsEmail returns the authenticated identity's email claim.
func ClaimsEmail(c *gin.Context) (string, bool) {
	cm, ok := Claims(c)
	if !ok {
		return "", false
	}
	email, ok := cm["email"].(string)
	return email, ok && email != ""
}
