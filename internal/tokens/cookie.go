package tokens

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie describes how the credential is transported: HTTP-only, secure and
// usable from the cross-site frontend (SameSite=None).
type Cookie struct {
	Name   string
	Domain string
	Secure bool
}

// Set writes the credential cookie. maxAge is rounded down to whole seconds.
func (ck Cookie) Set(c *gin.Context, value string, maxAge time.Duration) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(ck.Name, value, int(maxAge/time.Second), "/", ck.Domain, ck.Secure, true)
}

// Clear expires the credential cookie on the client. Attributes must match Set
// or browsers keep the old cookie.
func (ck Cookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(ck.Name, "", -1, "/", ck.Domain, ck.Secure, true)
}
