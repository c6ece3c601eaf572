package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eatsexchange/eats-exchange-server/internal/access"
	"github.com/eatsexchange/eats-exchange-server/internal/apierror"
	"github.com/eatsexchange/eats-exchange-server/internal/models"
	"github.com/eatsexchange/eats-exchange-server/internal/request/service"
	"github.com/eatsexchange/eats-exchange-server/internal/tokens"
	"github.com/eatsexchange/eats-exchange-server/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const foodID = "65f0c0ffee65f0c0ffee65f0"

type fixture struct {
	g      *gin.Engine
	tokens *tokens.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, apierror.RegisterValidators())
	ts, err := tokens.NewService("requests-secret-32-bytes-xxxxxxxxxx", time.Hour)
	require.NoError(t, err)
	g := gin.New()
	r := access.NewRouter(g, access.Default(), middleware.CookieAuth("token", ts, nil))
	RegisterRequestRoutes(r, service.NewMemoryService())
	return &fixture{g: g, tokens: ts}
}

func (f *fixture) cookieFor(t *testing.T, email string) string {
	t.Helper()
	tok, _, err := f.tokens.Issue(context.Background(), models.Identity{Email: email})
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(method, path, body, cookie string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}
	w := httptest.NewRecorder()
	f.g.ServeHTTP(w, req)
	return w
}

func requestBody(email string) string {
	return `{"FoodId":"` + foodID + `","FoodName":"Rice","Requester":{"Email":"` + email + `","Name":"Nadia"},"DonationMoney":5}`
}

func TestRequestHandler_OwnershipCheck(t *testing.T) {
	f := newFixture(t)
	x := f.cookieFor(t, "x@x.com")

	w := f.do(http.MethodPost, "/requests", requestBody("x@x.com"), x)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(http.MethodGet, "/requests?email=x@x.com", "", x)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "pending", list[0]["Status"])

	w = f.do(http.MethodGet, "/requests?email=y@x.com", "", x)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.JSONEq(t, `{"message":"Forbidden Access"}`, w.Body.String())

	w = f.do(http.MethodGet, "/requests", "", x)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.JSONEq(t, `{"message":"Not found"}`, w.Body.String())

	w = f.do(http.MethodGet, "/requests?email=x@x.com", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestHandler_ByFoodAndStatus(t *testing.T) {
	f := newFixture(t)
	x := f.cookieFor(t, "x@x.com")
	other := f.cookieFor(t, "someone@x.com")

	w := f.do(http.MethodPost, "/requests", requestBody("x@x.com"), x)
	require.Equal(t, http.StatusOK, w.Code)
	var ins models.InsertAck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ins))

	// any authenticated caller may view requests for a listing
	w = f.do(http.MethodGet, "/requests/"+foodID, "", other)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = f.do(http.MethodPatch, "/requests/"+ins.InsertedID, `{"Status":"accepted","FoodName":"Hacked"}`, other)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"acknowledged":true,"matchedCount":1,"modifiedCount":1,"upsertedCount":0,"upsertedId":null}`, w.Body.String())

	w = f.do(http.MethodGet, "/requests?email=x@x.com", "", x)
	list = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, "accepted", list[0]["Status"])
	require.Equal(t, "Rice", list[0]["FoodName"])

	w = f.do(http.MethodPatch, "/requests/"+ins.InsertedID, `{"Status":"eaten"}`, x)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodDelete, "/requests/"+ins.InsertedID, "", x)
	require.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, w.Body.String())
	w = f.do(http.MethodDelete, "/requests/"+ins.InsertedID, "", x)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"acknowledged":true,"deletedCount":0}`, w.Body.String())
}

func TestRequestHandler_Validation(t *testing.T) {
	f := newFixture(t)
	x := f.cookieFor(t, "x@x.com")

	w := f.do(http.MethodPost, "/requests", `{"FoodId":"nope","Requester":{"Email":"x@x.com"}}`, x)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "FoodId: invalid id")

	w = f.do(http.MethodPost, "/requests", `{"FoodId":"`+foodID+`","Requester":{"Email":"not-an-email"}}`, x)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPatch, "/requests/not-an-id", `{"Status":"accepted"}`, x)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"message":"invalid id"}`, w.Body.String())

	w = f.do(http.MethodPost, "/requests", requestBody("x@x.com"), "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
