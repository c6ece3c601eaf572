package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/eatsexchange/eats-exchange-server/internal/access"
	"github.com/eatsexchange/eats-exchange-server/internal/revocation"
	"github.com/eatsexchange/eats-exchange-server/internal/tokens"
	"github.com/eatsexchange/eats-exchange-server/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handlers-secret-32-bytes-xxxxxxxxxx"

// fake identity provider: the raw token is a JSON claims object
type fakeIDP struct{}

type jsonToken string

func (t jsonToken) Claims(v interface{}) error { return json.Unmarshal([]byte(t), v) }

func (fakeIDP) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	if !strings.HasPrefix(raw, "{") {
		return nil, errors.New("bad signature")
	}
	return jsonToken(raw), nil
}

type authFixture struct {
	g      *gin.Engine
	tokens *tokens.Service
}

// newAuthFixture mounts /jwt, /logout and a guarded /me that echoes the email.
func newAuthFixture(t *testing.T, idp IDTokenVerifier, deny *revocation.Denylist) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ts, err := tokens.NewService(testSecret, 10*time.Hour)
	require.NoError(t, err)

	var rev middleware.RevocationChecker
	if deny.Enabled() {
		rev = deny
	}
	g := gin.New()
	r := access.NewRouter(g, access.Default(), middleware.CookieAuth("token", ts, rev))
	NewAuthHandler(ts, tokens.Cookie{Name: "token", Secure: true}, idp, deny).Register(r)
	r.GET("/me", func(c *gin.Context) {
		email, _ := middleware.ClaimsEmail(c)
		c.String(http.StatusOK, email)
	})
	return &authFixture{g: g, tokens: ts}
}

func (f *authFixture) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	f.g.ServeHTTP(w, req)
	return w
}

func tokenCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "token" {
			return ck
		}
	}
	t.Fatalf("no token cookie in response")
	return nil
}

func TestIssueToken_SetsCookie(t *testing.T) {
	f := newAuthFixture(t, nil, nil)

	w := f.do(http.MethodPost, "/jwt", `{"email":"d@x.com","name":"Dana"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())

	ck := tokenCookie(t, w)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteNoneMode, ck.SameSite)
	assert.Equal(t, int((10 * time.Hour).Seconds()), ck.MaxAge)

	tok, err := f.tokens.Verify(context.Background(), ck.Value)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	assert.Equal(t, "d@x.com", claims["email"])
	assert.Equal(t, "Dana", claims["name"])

	w = f.do(http.MethodGet, "/me", "", &http.Cookie{Name: "token", Value: ck.Value})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "d@x.com", w.Body.String())
}

func TestIssueToken_RejectsBadBody(t *testing.T) {
	f := newAuthFixture(t, nil, nil)

	w := f.do(http.MethodPost, "/jwt", `{"name":"no email"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = f.do(http.MethodPost, "/jwt", `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, w.Result().Cookies())
}

func TestIssueToken_WithIdentityProvider(t *testing.T) {
	f := newAuthFixture(t, fakeIDP{}, nil)

	w := f.do(http.MethodPost, "/jwt", `{"email":"d@x.com"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodPost, "/jwt", `{"email":"d@x.com","idToken":"forged"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	idTok, _ := json.Marshal(`{"email":"other@x.com"}`)
	w = f.do(http.MethodPost, "/jwt", `{"email":"d@x.com","idToken":`+string(idTok)+`}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	idTok, _ = json.Marshal(`{"email":"D@x.com","name":"Dana","picture":"https://p/d.png"}`)
	w = f.do(http.MethodPost, "/jwt", `{"email":"d@x.com","idToken":`+string(idTok)+`}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	tok, err := f.tokens.Verify(context.Background(), tokenCookie(t, w).Value)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	assert.Equal(t, "D@x.com", claims["email"])
	assert.Equal(t, "https://p/d.png", claims["photo"])
}

func TestLogout_ClearsCookieWithoutDenylist(t *testing.T) {
	f := newAuthFixture(t, nil, nil)
	w := f.do(http.MethodPost, "/jwt", `{"email":"d@x.com"}`)
	issued := tokenCookie(t, w)

	w = f.do(http.MethodGet, "/logout", "", &http.Cookie{Name: "token", Value: issued.Value})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())
	cleared := tokenCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	// stateless: the old token still works if replayed
	w = f.do(http.MethodGet, "/me", "", &http.Cookie{Name: "token", Value: issued.Value})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/logout", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLogout_RevokesWithDenylist(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	deny := revocation.NewDenylist(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	f := newAuthFixture(t, nil, deny)

	issued := tokenCookie(t, f.do(http.MethodPost, "/jwt", `{"email":"d@x.com"}`))
	replay := &http.Cookie{Name: "token", Value: issued.Value}

	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/me", "", replay).Code)
	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/logout", "", replay).Code)
	require.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/me", "", replay).Code)

	// entry disappears with the token's natural expiry
	m.FastForward(11 * time.Hour)
	keys := m.Keys()
	require.Empty(t, keys)
}

func TestLogout_DenylistDown(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	deny := revocation.NewDenylist(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	f := newAuthFixture(t, nil, deny)
	issued := tokenCookie(t, f.do(http.MethodPost, "/jwt", `{"email":"d@x.com"}`))
	m.Close()

	w := f.do(http.MethodGet, "/logout", "", &http.Cookie{Name: "token", Value: issued.Value})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, tokenCookie(t, w).Value)
}

func TestIssueToken_SignsOnlyIdentityClaims(t *testing.T) {
	f := newAuthFixture(t, nil, nil)
	w := f.do(http.MethodPost, "/jwt", `{"email":"dana@x.com","name":"Dana","role":"admin","exp":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	tok, err := f.tokens.Verify(context.Background(), tokenCookie(t, w).Value)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))

	assert.Equal(t, "dana@x.com", claims["email"])
	assert.Equal(t, "Dana", claims["name"])
	assert.NotContains(t, claims, "role")
	assert.Greater(t, claims["exp"].(float64), float64(time.Now().Unix()))
}
