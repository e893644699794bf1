package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/config"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
)

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		AppEnv:                config.EnvDev,
		ServiceName:           "tournify-api",
		HTTPAddr:              ":0",
		PublicBaseURL:         "http://localhost:3000",
		StorageDriver:         config.StorageMemory,
		CacheEnabled:          true,
		CacheTTL:              time.Minute,
		CORSAllowedOrigins:    []string{"*"},
		AuthMode:              config.AuthModeJWT,
		AuthJWTSecret:         "test-secret",
		ScheduleMatchDuration: 90,
		ScheduleBreakDuration: 10,
		ReminderWorkers:       2,
		ReadTimeout:           time.Second,
		WriteTimeout:          time.Second,
	}

	runtime, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build runtime: %v", err)
	}
	t.Cleanup(func() { _ = runtime.Close() })

	if runtime.Hub == nil {
		t.Fatalf("expected realtime hub to be built")
	}

	rec := httptest.NewRecorder()
	runtime.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tournaments", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	runtime.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	t.Parallel()

	if _, err := NewHTTPServer(context.Background(), config.Config{}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}
