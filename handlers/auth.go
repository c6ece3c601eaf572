package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/eatsexchange/eats-exchange-server/internal/access"
	"github.com/eatsexchange/eats-exchange-server/internal/apierror"
	"github.com/eatsexchange/eats-exchange-server/internal/models"
	"github.com/eatsexchange/eats-exchange-server/internal/oidc"
	"github.com/eatsexchange/eats-exchange-server/internal/revocation"
	"github.com/eatsexchange/eats-exchange-server/internal/tokens"
	"github.com/eatsexchange/eats-exchange-server/pkg/logger"
	"github.com/eatsexchange/eats-exchange-server/pkg/metrics"
	"github.com/eatsexchange/eats-exchange-server/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// IDTokenVerifier checks an identity-provider token. *oidc.Verifier satisfies it.
type IDTokenVerifier interface {
	Verify(ctx context.Context, raw string) (middleware.Token, error)
}

// AuthHandler issues and clears the credential cookie.
type AuthHandler struct {
	tokens *tokens.Service
	cookie tokens.Cookie
	idp    IDTokenVerifier
	deny   *revocation.Denylist
}

// NewAuthHandler wires the handler. idp and deny may be nil: without idp the
// posted identity is trusted as-is, without deny logout only clears the cookie.
func NewAuthHandler(ts *tokens.Service, cookie tokens.Cookie, idp IDTokenVerifier, deny *revocation.Denylist) *AuthHandler {
	return &AuthHandler{tokens: ts, cookie: cookie, idp: idp, deny: deny}
}

func (h *AuthHandler) Register(r *access.Router) {
	r.POST("/jwt", h.IssueToken)
	r.GET("/logout", h.Logout)
}

// IssueToken signs the posted identity into the credential cookie.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var id models.Identity
	if err := c.ShouldBindJSON(&id); err != nil {
		apierror.Respond(c, apierror.BindError(err))
		return
	}

	if h.idp != nil {
		if id.IDToken == "" {
			metrics.AuthFailures.WithLabelValues("missing_id_token").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		tok, err := h.idp.Verify(c.Request.Context(), id.IDToken)
		if err != nil {
			logger.Debugf("POST /jwt: id token rejected: %v", err)
			metrics.AuthFailures.WithLabelValues("invalid_id_token").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		proven, err := oidc.ReadIdentity(tok)
		if err != nil || !strings.EqualFold(proven.Email, id.Email) {
			logger.Warnf("POST /jwt: identity mismatch for %s: %v", id.Email, err)
			metrics.AuthFailures.WithLabelValues("identity_mismatch").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		id.Email = proven.Email
		if id.Name == "" {
			id.Name = proven.Name
		}
		if id.Photo == "" {
			id.Photo = proven.Picture
		}
	}

	signed, _, err := h.tokens.Issue(c.Request.Context(), id)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	metrics.TokensIssued.Inc()
	logger.Infof("issued credential for %s", id.Email)
	h.cookie.Set(c, signed, h.tokens.TTL())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout clears the cookie. With a deny-list configured the presented token
// is also revoked until it would have expired.
func (h *AuthHandler) Logout(c *gin.Context) {
	raw, err := c.Cookie(h.cookie.Name)
	h.cookie.Clear(c)
	if err != nil || raw == "" || !h.deny.Enabled() {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	tok, err := h.tokens.Verify(c.Request.Context(), raw)
	if err != nil {
		// nothing worth revoking
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	meta, err := tokens.ReadMeta(tok)
	if err == nil {
		err = h.deny.Revoke(c.Request.Context(), meta.ID, meta.Expiry())
	}
	if err != nil {
		logger.Errorf("logout: revoke token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
