package usecase

import (
	"testing"
	"time"
)

func TestDedupKey(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, time.November, 14, 16, 47, 12, 0, time.FixedZone("IST", 5*3600+1800))

	got := dedupKey("spirit reminder", "m-1/team a", at, 30*time.Minute)
	want := "spirit-reminder-m-1-team-a-20261114T110000Z"
	if got != want {
		t.Fatalf("unexpected dedup key: got=%s want=%s", got, want)
	}

	if got := dedupKey("", " ", at, 0); got != "unknown-unknown-20261114T111700Z" {
		t.Fatalf("unexpected fallback dedup key: %s", got)
	}
}
