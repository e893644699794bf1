package httpapi

import "testing"

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: " /READYZ ", want: false},
		{path: "/openapi.yaml", want: false},
		{path: "/docs/", want: false},
		{path: "/v1/tournaments/monsoon-hat-2026/live", want: false},
		{path: "/v1/tournaments/monsoon-hat-2026/matches", want: true},
		{path: "/v1/admin/approvals", want: true},
		{path: "/live", want: true},
		{path: "/", want: true},
	}

	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", tt.path, got, tt.want)
		}
	}
}
