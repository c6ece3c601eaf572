package middleware

import "github.com/gin-gonic/gin"

// IdentityKey holds the email of a request whose cookie verified before the
// auth guard ran. It only keys rate limiting and never grants access.
const IdentityKey = "rate_identity"

// Identify reads the credential cookie and, if it verifies, records its email
// under IdentityKey. Requests without a usable cookie pass through untouched.
// Revocation is left to CookieAuth.
func Identify(cookieName string, ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}
		tok, err := ver.Verify(c.Request.Context(), raw)
		if err != nil {
			c.Next()
			return
		}
		var claims map[string]interface{}
		if tok.Claims(&claims) == nil {
			if email, _ := claims["email"].(string); email != "" {
				c.Set(IdentityKey, email)
			}
		}
		c.Next()
	}
}
