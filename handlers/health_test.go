package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestHealthRoutes(t *testing.T) {
	healthy := true
	g := gin.New()
	RegisterHealth(g, map[string]Check{
		"mongodb": func(ctx context.Context) error { return nil },
		"redis": func(ctx context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("connection refused")
		},
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Eats Exchange Server is running", w.Body.String())

	require.Equal(t, http.StatusOK, get("/health").Code)

	w = get("/ready")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ready","checks":{"mongodb":"ok","redis":"ok"}}`, w.Body.String())

	healthy = false
	w = get("/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.JSONEq(t, `{"status":"not ready","checks":{"mongodb":"ok","redis":"unavailable"}}`, w.Body.String())
}
