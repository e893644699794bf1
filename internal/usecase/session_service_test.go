package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/role"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/session"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
	"github.com/ShubhamShuklaX/Tournify/internal/infrastructure/repository/memory"
	usermock "github.com/ShubhamShuklaX/Tournify/internal/mocks/domain/user"
	"github.com/stretchr/testify/mock"
)

type stubVerifier struct {
	principals map[string]user.Principal
}

func (v stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v.principals[token]
	if !ok {
		return user.Principal{}, ErrUnauthorized
	}
	return principal, nil
}

var fastSessionConfig = SessionConfig{
	ProfileRetries:        3,
	ProfileInitialBackoff: time.Millisecond,
	ProfileMaxBackoff:     2 * time.Millisecond,
}

func TestSessionService_Resolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	verifier := stubVerifier{principals: map[string]user.Principal{
		"director-token": {UserID: memory.UserIDDirector, Email: "director@tournify.local", Role: role.TournamentDirector},
		"pending-token":  {UserID: "user-volunteer", Role: role.Volunteer},
		"player-token":   {UserID: "user-player", Email: "player@tournify.local", Role: role.Player},
	}}
	profiles := append(memory.SeedProfiles(),
		user.Profile{ID: "user-volunteer", Role: role.Volunteer, IsApproved: false},
		user.Profile{ID: "user-player", IsApproved: false},
	)
	service := NewSessionService(verifier, memory.NewProfileRepository(profiles), fastSessionConfig, nil)

	t.Run("approved profile is ready", func(t *testing.T) {
		got, err := service.Resolve(ctx, "director-token")
		if err != nil {
			t.Fatalf("resolve session: %v", err)
		}
		if got.State != session.StateReady {
			t.Fatalf("unexpected state: %s", got.State)
		}
		if got.Profile.DisplayName() != "Asha Director" {
			t.Fatalf("unexpected profile: %+v", got.Profile)
		}
	})

	t.Run("unapproved role is forbidden", func(t *testing.T) {
		got, err := service.Resolve(ctx, "pending-token")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if got.State != session.StateError {
			t.Fatalf("unexpected state: %s", got.State)
		}
	})

	t.Run("player needs no approval", func(t *testing.T) {
		got, err := service.Resolve(ctx, "player-token")
		if err != nil {
			t.Fatalf("resolve player session: %v", err)
		}
		if got.Profile.Role != role.Player || got.Profile.Email != "player@tournify.local" {
			t.Fatalf("profile not filled from principal: %+v", got.Profile)
		}
	})

	t.Run("blank token", func(t *testing.T) {
		if _, err := service.Resolve(ctx, "  "); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		if _, err := service.Resolve(ctx, "forged"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestSessionService_ProfileRetriesUntilVisibleUsingMockery(t *testing.T) {
	t.Parallel()

	profileRepo := usermock.NewProfileRepository(t)
	service := NewSessionService(stubVerifier{}, profileRepo, fastSessionConfig, nil)

	profileRepo.
		On("GetByID", mock.Anything, "u-1").
		Return(user.Profile{}, false, nil).
		Twice()
	profileRepo.
		On("GetByID", mock.Anything, "u-1").
		Return(user.Profile{ID: "u-1", Role: role.TeamManager, IsApproved: true}, true, nil).
		Once()

	got, err := service.Profile(context.Background(), user.Principal{UserID: "u-1"})
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if got.ID != "u-1" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestSessionService_ProfileMissingAfterRetriesUsingMockery(t *testing.T) {
	t.Parallel()

	profileRepo := usermock.NewProfileRepository(t)
	service := NewSessionService(stubVerifier{}, profileRepo, fastSessionConfig, nil)

	profileRepo.
		On("GetByID", mock.Anything, "u-ghost").
		Return(user.Profile{}, false, nil).
		Times(3)

	_, err := service.Profile(context.Background(), user.Principal{UserID: "u-ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionService_ProfileStoreErrorIsNotRetriedUsingMockery(t *testing.T) {
	t.Parallel()

	profileRepo := usermock.NewProfileRepository(t)
	service := NewSessionService(stubVerifier{}, profileRepo, fastSessionConfig, nil)
	storeErr := errors.New("connection reset")

	profileRepo.
		On("GetByID", mock.Anything, "u-1").
		Return(user.Profile{}, false, storeErr).
		Once()

	_, err := service.Profile(context.Background(), user.Principal{UserID: "u-1"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
