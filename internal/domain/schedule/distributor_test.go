package schedule

import (
	"testing"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
)

func TestDistribute_GlobalTimeline(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.May, 2, 9, 0, 0, 0, time.UTC)
	in := []match.Match{{ID: "m1", FieldNumber: 1}, {ID: "m2", FieldNumber: 2}, {ID: "m3", FieldNumber: 1}}

	got := Distribute(in, start, 60, 10)
	want := []time.Time{start, start.Add(70 * time.Minute), start.Add(140 * time.Minute)}
	for i := range got {
		if got[i].ScheduledTime == nil || !got[i].ScheduledTime.Equal(want[i]) {
			t.Fatalf("match %d scheduled=%v want=%v", i, got[i].ScheduledTime, want[i])
		}
		if got[i].FieldNumber != in[i].FieldNumber {
			t.Fatalf("field number changed for match %d", i)
		}
	}
	if in[0].ScheduledTime != nil {
		t.Fatalf("input was mutated")
	}
}

func TestDistribute_Defaults(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.May, 2, 9, 0, 0, 0, time.UTC)
	got := Distribute([]match.Match{{}, {}}, start, 0, -5)
	if !got[1].ScheduledTime.Equal(start.Add(100 * time.Minute)) {
		t.Fatalf("unexpected default slot: %v", got[1].ScheduledTime)
	}

	if empty := Distribute(nil, start, 60, 10); len(empty) != 0 {
		t.Fatalf("expected empty output, got %d", len(empty))
	}
}

func TestDistribute_ZeroBreakIsHonoured(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.May, 2, 9, 0, 0, 0, time.UTC)
	got := Distribute([]match.Match{{}, {}, {}}, start, 45, 0)
	if !got[2].ScheduledTime.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("expected back-to-back slots, got %v", got[2].ScheduledTime)
	}
}

func TestDistributePerField(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.May, 2, 9, 0, 0, 0, time.UTC)
	in := []match.Match{{FieldNumber: 1}, {FieldNumber: 2}, {FieldNumber: 1}, {FieldNumber: 2}}

	got := DistributePerField(in, start, 50, 10)
	want := []time.Time{start, start, start.Add(time.Hour), start.Add(time.Hour)}
	for i := range got {
		if !got[i].ScheduledTime.Equal(want[i]) {
			t.Fatalf("match %d scheduled=%v want=%v", i, got[i].ScheduledTime, want[i])
		}
	}
}

func TestAssignFields(t *testing.T) {
	t.Parallel()

	in := []match.Match{{FieldNumber: 1}, {}, {}}
	got := AssignFields(in, []string{"f-a", "f-b"})
	if got[0].FieldID != "f-a" || got[1].FieldID != "f-b" || got[2].FieldID != "f-a" {
		t.Fatalf("unexpected field ids: %s %s %s", got[0].FieldID, got[1].FieldID, got[2].FieldID)
	}
	if got[1].FieldNumber != 2 || got[2].FieldNumber != 1 {
		t.Fatalf("unexpected field numbers: %d %d", got[1].FieldNumber, got[2].FieldNumber)
	}
	if in[1].FieldID != "" {
		t.Fatalf("input was mutated")
	}
}
