package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{
			name:       "exact origin echoed",
			allowed:    []string{"https://tournify-web.vercel.app/"},
			method:     http.MethodGet,
			origin:     "https://tournify-web.vercel.app",
			wantOrigin: "https://tournify-web.vercel.app",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wildcard preview deployment",
			allowed:    []string{"https://*.vercel.app"},
			method:     http.MethodGet,
			origin:     "https://tournify-git-roster-ui.vercel.app",
			wantOrigin: "https://tournify-git-roster-ui.vercel.app",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wildcard covers one label only",
			allowed:    []string{"https://*.vercel.app"},
			method:     http.MethodGet,
			origin:     "https://evil.example.vercel.app",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wildcard keeps scheme",
			allowed:    []string{"https://*.vercel.app"},
			method:     http.MethodGet,
			origin:     "http://tournify.vercel.app",
			wantStatus: http.StatusOK,
		},
		{
			name:       "any origin preflight",
			allowed:    []string{"*"},
			method:     http.MethodOptions,
			origin:     "https://tournify-web.vercel.app",
			wantOrigin: "*",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "unlisted origin",
			allowed:    []string{"https://allowed.example.com"},
			method:     http.MethodGet,
			origin:     "https://not-allowed.example.com",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(tt.method, "/v1/dashboard", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			CORS(tt.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}
