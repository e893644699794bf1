package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/field"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	fieldmock "github.com/ShubhamShuklaX/Tournify/internal/mocks/domain/field"
	tournamentmock "github.com/ShubhamShuklaX/Tournify/internal/mocks/domain/tournament"
	basecache "github.com/ShubhamShuklaX/Tournify/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestTournamentRepository_GetByIDCachesUntilUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	item := tournament.Tournament{
		ID:           "t-1",
		Name:         "Monsoon Hat",
		Status:       tournament.StatusRegistrationOpen,
		AgeDivisions: []string{"Open"},
	}

	next := tournamentmock.NewRepository(t)
	next.On("GetByID", mock.Anything, "t-1").Return(item, true, nil).Twice()
	next.On("Update", mock.Anything, mock.MatchedBy(func(v tournament.Tournament) bool {
		return v.ID == "t-1"
	})).Return(nil).Once()

	repo := NewTournamentRepository(next, basecache.NewStore(time.Minute))

	first, exists, err := repo.GetByID(ctx, "t-1")
	if err != nil || !exists {
		t.Fatalf("first GetByID: exists=%v err=%v", exists, err)
	}
	first.AgeDivisions[0] = "Mixed"

	second, _, err := repo.GetByID(ctx, "t-1")
	if err != nil {
		t.Fatalf("second GetByID: %v", err)
	}
	if second.AgeDivisions[0] != "Open" {
		t.Fatalf("cached value was mutated through a returned copy: %v", second.AgeDivisions)
	}

	item.Status = tournament.StatusRegistrationClosed
	if err := repo.Update(ctx, item); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, _, err := repo.GetByID(ctx, "t-1"); err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
}

func TestTournamentRepository_ListCachesMissesAndErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	loadErr := errors.New("db down")

	next := tournamentmock.NewRepository(t)
	next.On("GetByID", mock.Anything, "missing").Return(tournament.Tournament{}, false, nil).Once()
	next.On("List", mock.Anything).Return(nil, loadErr).Once()
	next.On("List", mock.Anything).Return([]tournament.Tournament{{ID: "t-1"}}, nil).Once()

	repo := NewTournamentRepository(next, basecache.NewStore(time.Minute))

	for range 2 {
		_, exists, err := repo.GetByID(ctx, "missing")
		if err != nil || exists {
			t.Fatalf("GetByID missing: exists=%v err=%v", exists, err)
		}
	}

	if _, err := repo.List(ctx); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	for range 2 {
		items, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(items) != 1 || items[0].ID != "t-1" {
			t.Fatalf("unexpected items: %+v", items)
		}
	}
}

func TestFieldRepository_CreateInvalidatesTournamentList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	created := field.Field{ID: "f-2", TournamentID: "t-1", Name: "Field 2"}

	next := fieldmock.NewRepository(t)
	next.On("ListByTournament", mock.Anything, "t-1").Return([]field.Field{{ID: "f-1", TournamentID: "t-1"}}, nil).Once()
	next.On("Create", mock.Anything, created).Return(nil).Once()
	next.On("ListByTournament", mock.Anything, "t-1").Return([]field.Field{
		{ID: "f-1", TournamentID: "t-1"},
		created,
	}, nil).Once()

	repo := NewFieldRepository(next, basecache.NewStore(time.Minute))

	for range 2 {
		items, err := repo.ListByTournament(ctx, "t-1")
		if err != nil {
			t.Fatalf("ListByTournament: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("unexpected cached fields: %+v", items)
		}
	}

	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("Create: %v", err)
	}
	items, err := repo.ListByTournament(ctx, "t-1")
	if err != nil {
		t.Fatalf("ListByTournament after create: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected refreshed fields, got %+v", items)
	}
}
