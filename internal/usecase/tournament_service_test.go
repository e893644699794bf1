package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/team"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	"github.com/ShubhamShuklaX/Tournify/internal/infrastructure/repository/memory"
	teammock "github.com/ShubhamShuklaX/Tournify/internal/mocks/domain/team"
	tournamentmock "github.com/ShubhamShuklaX/Tournify/internal/mocks/domain/tournament"
	"github.com/stretchr/testify/mock"
)

func newTournamentFixture(now time.Time) (*TournamentService, *memory.RegistrationRepository) {
	registrations := memory.NewRegistrationRepository(memory.SeedRegistrations())
	service := NewTournamentService(
		memory.NewTournamentRepository(memory.SeedTournaments()),
		registrations,
		memory.NewTeamRepository(append(memory.SeedTeams(), team.Team{ID: "team-late-bloomers", Name: "Late Bloomers"})),
		&sequenceIDGenerator{},
		nil,
	)
	service.now = func() time.Time { return now }

	return service, registrations
}

func TestTournamentService_Create(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.October, 1, 10, 0, 0, 0, time.UTC)
	service, _ := newTournamentFixture(now)

	got, err := service.Create(context.Background(), CreateTournamentInput{
		Name:         "  Winter Classic  ",
		Location:     "Shimla",
		StartDate:    time.Date(2026, time.December, 20, 8, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.December, 21, 18, 0, 0, 0, time.UTC),
		MaxTeams:     12,
		AgeDivisions: []string{"Open", " ", "Mixed"},
		CreatedBy:    memory.UserIDDirector,
	})
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	if got.ID != "id-1" || got.Name != "Winter Classic" {
		t.Fatalf("unexpected tournament: %+v", got)
	}
	if got.Status != tournament.StatusDraft || got.Format != tournament.FormatRoundRobin {
		t.Fatalf("unexpected defaults: status=%s format=%s", got.Status, got.Format)
	}
	if len(got.AgeDivisions) != 2 {
		t.Fatalf("blank divisions not dropped: %v", got.AgeDivisions)
	}
}

func TestTournamentService_CreateInvalid(t *testing.T) {
	t.Parallel()

	service, _ := newTournamentFixture(time.Now())

	_, err := service.Create(context.Background(), CreateTournamentInput{
		Name:      "X",
		StartDate: time.Date(2026, time.December, 20, 8, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.December, 19, 8, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	var fields tournament.ValidationError
	if !errors.As(err, &fields) {
		t.Fatalf("expected tournament.ValidationError, got %v", err)
	}
}

func TestTournamentService_RegisterTeam(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	beforeDeadline := time.Date(2026, time.November, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates pending registration", func(t *testing.T) {
		service, _ := newTournamentFixture(beforeDeadline)
		got, err := service.RegisterTeam(ctx, RegisterTeamInput{
			TournamentID: memory.TournamentIDMonsoonHat,
			TeamID:       "team-late-bloomers",
			RegisteredBy: memory.UserIDManager,
		})
		if err != nil {
			t.Fatalf("register team: %v", err)
		}
		if got.Status != tournament.RegistrationPending {
			t.Fatalf("unexpected status: %s", got.Status)
		}
	})

	t.Run("refuses duplicate active registration", func(t *testing.T) {
		service, _ := newTournamentFixture(beforeDeadline)
		_, err := service.RegisterTeam(ctx, RegisterTeamInput{TournamentID: memory.TournamentIDMonsoonHat, TeamID: "team-layout-legends"})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("refuses after deadline", func(t *testing.T) {
		service, _ := newTournamentFixture(time.Date(2026, time.November, 10, 0, 0, 0, 0, time.UTC))
		_, err := service.RegisterTeam(ctx, RegisterTeamInput{TournamentID: memory.TournamentIDMonsoonHat, TeamID: "team-late-bloomers"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("refuses unknown team", func(t *testing.T) {
		service, _ := newTournamentFixture(beforeDeadline)
		_, err := service.RegisterTeam(ctx, RegisterTeamInput{TournamentID: memory.TournamentIDMonsoonHat, TeamID: "team-ghost"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("refuses draft tournament", func(t *testing.T) {
		service, _ := newTournamentFixture(beforeDeadline)
		_, err := service.RegisterTeam(ctx, RegisterTeamInput{TournamentID: memory.TournamentIDCityLeague, TeamID: "team-late-bloomers"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestTournamentService_ReviewRegistration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTournamentFixture(time.Date(2026, time.November, 1, 12, 0, 0, 0, time.UTC))

	got, err := service.ReviewRegistration(ctx, "reg-team-layout-legends", "APPROVED")
	if err != nil {
		t.Fatalf("approve registration: %v", err)
	}
	if got.Status != tournament.RegistrationApproved {
		t.Fatalf("unexpected status: %s", got.Status)
	}

	teamIDs, err := service.ApprovedTeamIDs(ctx, memory.TournamentIDMonsoonHat)
	if err != nil {
		t.Fatalf("approved team ids: %v", err)
	}
	if len(teamIDs) != 5 {
		t.Fatalf("unexpected approved count: got=%d want=5", len(teamIDs))
	}

	if _, err := service.ReviewRegistration(ctx, "reg-team-layout-legends", tournament.RegistrationRejected); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict when rejecting approved registration, got %v", err)
	}
	if _, err := service.ReviewRegistration(ctx, "reg-missing", tournament.RegistrationApproved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTournamentService_ReviewRefusesWhenFull(t *testing.T) {
	t.Parallel()

	tournaments := memory.SeedTournaments()
	tournaments[0].MaxTeams = 4
	service := NewTournamentService(
		memory.NewTournamentRepository(tournaments),
		memory.NewRegistrationRepository(memory.SeedRegistrations()),
		memory.NewTeamRepository(memory.SeedTeams()),
		&sequenceIDGenerator{},
		nil,
	)

	_, err := service.ReviewRegistration(context.Background(), "reg-team-layout-legends", tournament.RegistrationApproved)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestTournamentService_UpdateStatusUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, time.November, 8, 0, 0, 0, 0, time.UTC)
	tournamentRepo := tournamentmock.NewRepository(t)
	service := NewTournamentService(tournamentRepo, tournamentmock.NewRegistrationRepository(t), teammock.NewRepository(t), &sequenceIDGenerator{}, nil)
	service.now = func() time.Time { return now }

	tournamentRepo.
		On("GetByID", mock.Anything, "t-1").
		Return(tournament.Tournament{ID: "t-1", Status: tournament.StatusRegistrationOpen}, true, nil).
		Twice()
	tournamentRepo.
		On("Update", mock.Anything, mock.MatchedBy(func(v tournament.Tournament) bool {
			return v.ID == "t-1" && v.Status == tournament.StatusRegistrationClosed && v.UpdatedAt.Equal(now)
		})).
		Return(nil).
		Once()

	got, err := service.UpdateStatus(ctx, "t-1", "registration_closed")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.Status != tournament.StatusRegistrationClosed {
		t.Fatalf("unexpected status: %s", got.Status)
	}

	if _, err := service.UpdateStatus(ctx, "t-1", tournament.StatusCompleted); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for skipped transition, got %v", err)
	}
	if _, err := service.UpdateStatus(ctx, "t-1", "archived"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}
