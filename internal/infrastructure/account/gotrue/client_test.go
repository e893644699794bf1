package gotrue

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/role"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/resilience"
	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
)

func newTestClient(baseURL string, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		APIKey:         "anon-key",
		CircuitBreaker: breaker,
		Logger:         logging.NewNop(),
	})
}

func TestClientVerifyAccessToken_SendsHeadersAndParsesUser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
			t.Errorf("unexpected authorization header: %s", got)
		}
		if got := r.Header.Get("apikey"); got != "anon-key" {
			t.Errorf("unexpected apikey header: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "user-123",
			"email": "captain@example.com",
			"role": "authenticated",
			"app_metadata": {"provider": "email", "role": "team_manager"},
			"user_metadata": {"role": "tournament_director"}
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, resilience.CircuitBreakerConfig{Enabled: false})
	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.UserID != "user-123" || principal.Email != "captain@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if principal.Role != role.TeamManager {
		t.Fatalf("expected app_metadata role to win, got %q", principal.Role)
	}
}

func TestClientVerifyAccessToken_RejectedToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, resilience.CircuitBreakerConfig{Enabled: false})
	_, err := client.VerifyAccessToken(context.Background(), "expired")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_RejectedTokensKeepCircuitClosed(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
	})

	for range 3 {
		_, err := client.VerifyAccessToken(context.Background(), "expired")
		if !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected every rejected token to reach the auth server, got %d calls", got)
	}
	if state := client.breaker.State(); state != resilience.CircuitStateClosed {
		t.Fatalf("expected closed circuit after client errors, got %s", state)
	}
}

func TestClientVerifyAccessToken_ServerErrorOpensCircuit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
	})

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	_, err = client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) || !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit to report ErrDependencyUnavailable, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected open circuit to skip the second request, got %d calls", got)
	}
}

func TestClientVerifyAccessToken_CachesPrincipal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-cache"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, resilience.CircuitBreakerConfig{Enabled: false})
	for i := 0; i < 2; i++ {
		principal, err := client.VerifyAccessToken(context.Background(), "cached-token")
		if err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
		if principal.UserID != "user-cache" {
			t.Fatalf("unexpected user id: %s", principal.UserID)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one user lookup with cache, got %d", got)
	}
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := newTestClient("http://127.0.0.1:0", resilience.CircuitBreakerConfig{Enabled: false})
	if _, err := client.VerifyAccessToken(context.Background(), "  "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base, path, want string
	}{
		{"https://auth.example.com/", "/auth/v1/user", "https://auth.example.com/auth/v1/user"},
		{"https://auth.example.com", "auth/v1/user", "https://auth.example.com/auth/v1/user"},
		{"https://auth.example.com", "https://other.example.com/user", "https://other.example.com/user"},
		{"https://auth.example.com/", "", "https://auth.example.com"},
	}
	for _, tc := range cases {
		if got := buildURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("buildURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
