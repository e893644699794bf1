package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/role"
	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
)

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	resolver := stubSessionResolver{sessions: map[string]usecase.Session{
		"good": newSession("user-1", role.Volunteer),
	}}

	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := principalFromContext(r.Context())
		gotRole = principal.Role
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireAuth(resolver, next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer  ", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid token", header: "bearer good", want: http.StatusNoContent},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Fatalf("%s: expected status %d, got %d", tt.name, tt.want, rec.Code)
		}
	}

	if gotRole != role.Volunteer {
		t.Fatalf("expected profile role to reach the handler, got %q", gotRole)
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	resolver := stubSessionResolver{sessions: map[string]usecase.Session{
		"director": newSession("user-1", role.TournamentDirector),
		"fan":      newSession("user-2", role.Spectator),
	}}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := withRole(resolver, directorOnly, next)

	for token, want := range map[string]int{
		"director": http.StatusNoContent,
		"fan":      http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodPost, "/v1/tournaments", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("token %s: expected status %d, got %d", token, want, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	RequireRole(directorOnly, next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/tournaments", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without principal, got %d", rec.Code)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	RequireInternalJobToken("", next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/spirit-reminders", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 when token is unset, got %d", rec.Code)
	}

	handler := RequireInternalJobToken("secret", next)
	for provided, want := range map[string]int{
		"":       http.StatusUnauthorized,
		"wrong":  http.StatusUnauthorized,
		"secret": http.StatusNoContent,
	} {
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/spirit-reminders", nil)
		if provided != "" {
			req.Header.Set("X-Internal-Job-Token", provided)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("token %q: expected status %d, got %d", provided, want, rec.Code)
		}
	}
}
