package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/standing"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
)

type StandingService struct {
	tournamentRepo   tournament.Repository
	registrationRepo tournament.RegistrationRepository
	matchRepo        match.Repository
}

func NewStandingService(
	tournamentRepo tournament.Repository,
	registrationRepo tournament.RegistrationRepository,
	matchRepo match.Repository,
) *StandingService {
	return &StandingService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
	}
}

// Leaderboard ranks the approved teams of a tournament over its completed matches.
func (s *StandingService) Leaderboard(ctx context.Context, tournamentID string) ([]standing.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Leaderboard", tournamentAttr(tournamentID))
	defer span.End()

	item, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	teamIDs, err := approvedTeamIDs(ctx, s.registrationRepo, item.ID)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return standing.Leaderboard(matches, teamIDs), nil
}

func (s *StandingService) TeamStats(ctx context.Context, tournamentID, teamID string) (standing.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.TeamStats", tournamentAttr(tournamentID), teamAttr(teamID))
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return standing.Stats{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return standing.Stats{}, err
	}

	teamIDs, err := approvedTeamIDs(ctx, s.registrationRepo, item.ID)
	if err != nil {
		return standing.Stats{}, err
	}
	if !slices.Contains(teamIDs, teamID) {
		return standing.Stats{}, fmt.Errorf("%w: team=%s tournament=%s", ErrNotFound, teamID, item.ID)
	}

	matches, err := s.matchRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return standing.Stats{}, fmt.Errorf("list matches: %w", err)
	}

	return standing.ForTeam(matches, teamID), nil
}
