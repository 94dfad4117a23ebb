package routes

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/tournament-portal/handlers"
	"github.com/Dosada05/tournament-portal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() http.Handler {
	return newRouterWithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newRouterWithLogger(logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	SetupRoutes(r, Handlers{
		User:       handlers.NewUserHandler(nil, logger),
		Tournament: handlers.NewTournamentHandler(nil, logger),
		WebSocket:  handlers.NewWebSocketHandler(nil, nil, []string{"*"}, logger),
	}, middleware.NewAuthenticator("secret", logger), []string{"https://sendou.ink"}, logger)
	return r
}

// Requests here are answered before any service is reached.
func TestRoutes(t *testing.T) {
	router := newRouter()
	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{http.MethodGet, "/to/itz/invite-codes", http.StatusUnauthorized},
		{http.MethodPut, "/tournaments/6f1c2a9e-3d0b-4c55-9a8e-1f2b3c4d5e60/seeds", http.StatusUnauthorized},
		{http.MethodPut, "/tournaments/6f1c2a9e-3d0b-4c55-9a8e-1f2b3c4d5e60/banner", http.StatusUnauthorized},
		{http.MethodGet, "/tournaments/not-a-uuid", http.StatusBadRequest},
		{http.MethodGet, "/tournaments/not-a-uuid/bracket-preview", http.StatusBadRequest},
		{http.MethodGet, "/to/itz?tab=bogus", http.StatusPermanentRedirect},
		{http.MethodGet, "/ws/tournaments/not-a-uuid", http.StatusBadRequest},
		{http.MethodDelete, "/tournaments/6f1c2a9e-3d0b-4c55-9a8e-1f2b3c4d5e60", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRoutes_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/to/itz", nil)
	req.Header.Set("Origin", "https://sendou.ink")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, "https://sendou.ink", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutes_AccessLogIsStructured(t *testing.T) {
	var buf bytes.Buffer
	router := newRouterWithLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/to/itz?tab=bogus", nil))
	require.Equal(t, http.StatusPermanentRedirect, rec.Code)

	var entry map[string]interface{}
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line), scanner.Text())
		if line["msg"] == "request completed" {
			entry = line
		}
	}
	require.NotNil(t, entry)
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/to/itz", entry["path"])
	assert.EqualValues(t, http.StatusPermanentRedirect, entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}
