package team

import "testing"

func jersey(v int) *int { return &v }

func TestSortRoster(t *testing.T) {
	t.Parallel()

	roster := []Player{
		{ID: "p-1", Name: "zoe"},
		{ID: "p-2", Name: "Arjun", JerseyNumber: jersey(23)},
		{ID: "p-3", Name: "Bea"},
		{ID: "p-4", Name: "Chen", JerseyNumber: jersey(4)},
	}
	SortRoster(roster)

	want := []string{"p-4", "p-2", "p-3", "p-1"}
	for i, id := range want {
		if roster[i].ID != id {
			t.Fatalf("position %d: want %s, got %s", i, id, roster[i].ID)
		}
	}
}

func TestPlayerValidate(t *testing.T) {
	t.Parallel()

	base := Player{ID: "p-1", TeamID: "team-1", Name: "Arjun", JerseyNumber: jersey(7)}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid player, got %v", err)
	}

	cases := map[string]Player{
		"blank name":     {ID: "p-1", TeamID: "team-1", Name: "  "},
		"missing team":   {ID: "p-1", Name: "Arjun"},
		"jersey >99":     {ID: "p-1", TeamID: "team-1", Name: "Arjun", JerseyNumber: jersey(100)},
		"negative shirt": {ID: "p-1", TeamID: "team-1", Name: "Arjun", JerseyNumber: jersey(-1)},
	}
	for name, p := range cases {
		if err := p.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestJerseyTaken(t *testing.T) {
	t.Parallel()

	roster := []Player{{Name: "a", JerseyNumber: jersey(0)}, {Name: "b"}}
	if !JerseyTaken(roster, jersey(0)) {
		t.Fatalf("expected jersey 0 to be taken")
	}
	if JerseyTaken(roster, jersey(1)) || JerseyTaken(roster, nil) {
		t.Fatalf("unexpected taken jersey")
	}
}
