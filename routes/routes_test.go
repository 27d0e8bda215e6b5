package routes

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/chess-federation/handlers"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestRouter(t *testing.T, rateLimit int) http.Handler {
	t.Helper()
	router := chi.NewRouter()
	SetupRoutes(router,
		Options{
			Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
			AllowedOrigins:     []string{"http://localhost:5173"},
			RateLimitPerMinute: rateLimit,
		},
		Handlers{
			System:     handlers.NewSystemHandler(okPinger{}),
			Player:     handlers.NewPlayerHandler(nil),
			Tournament: handlers.NewTournamentHandler(nil),
			Round:      handlers.NewRoundHandler(nil),
			Match:      handlers.NewMatchHandler(nil),
			News:       handlers.NewNewsHandler(nil),
			Event:      handlers.NewEventHandler(nil),
			Gallery:    handlers.NewGalleryHandler(nil),
			Analysis:   handlers.NewAnalysisHandler(nil),
		},
	)
	return router
}

func TestSetupRoutes(t *testing.T) {
	router := newTestRouter(t, 60)

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Content-Type"))
	})

	t.Run("openapi document", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"openapi"`)
	})

	t.Run("unknown route answers json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"the requested resource could not be found"}`, rec.Body.String())
	})

	t.Run("bad id is rejected before the service", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/rounds/x", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("legacy singular paths are routed", func(t *testing.T) {
		for _, tc := range []struct{ method, path string }{
			{http.MethodGet, "/tournament/x"},
			{http.MethodGet, "/tournament/x/standings"},
			{http.MethodDelete, "/tournament/x"},
			{http.MethodGet, "/player/x/matches"},
			{http.MethodDelete, "/player/x"},
			{http.MethodDelete, "/event/x"},
			{http.MethodDelete, "/round/x"},
			{http.MethodDelete, "/match/x"},
		} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tc.method, tc.path)
		}
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/players", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSetupRoutes_RateLimitsAnalyze(t *testing.T) {
	router := newTestRouter(t, 1)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	// первый запрос доходит до обработчика и падает на пустом теле
	require.Equal(t, http.StatusBadRequest, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestSetupRoutes_RateLimitIsPerRouteGroup(t *testing.T) {
	router := newTestRouter(t, 1)

	send := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "203.0.113.8:5000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	// каждый маршрут пропускает свой первый запрос, он падает на пустом теле
	for _, path := range []string{"/news", "/matches", "/images", "/analyze"} {
		assert.Equal(t, http.StatusBadRequest, send(path), path)
	}

	// форма галереи по старому адресу делит счётчик с /images
	assert.Equal(t, http.StatusTooManyRequests, send("/upload-images"))
	assert.Equal(t, http.StatusTooManyRequests, send("/news"))
}
