package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/team"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	idgen "github.com/ShubhamShuklaX/Tournify/internal/platform/id"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
)

type CreateTournamentInput struct {
	Name                 string
	Description          string
	Location             string
	StartDate            time.Time
	EndDate              time.Time
	RegistrationDeadline *time.Time
	MaxTeams             int
	AgeDivisions         []string
	Format               string
	CreatedBy            string
}

type RegisterTeamInput struct {
	TournamentID string
	TeamID       string
	RegisteredBy string
}

type TournamentService struct {
	tournamentRepo   tournament.Repository
	registrationRepo tournament.RegistrationRepository
	teamRepo         team.Repository
	idGen            idgen.Generator
	logger           *logging.Logger
	now              func() time.Time
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	registrationRepo tournament.RegistrationRepository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TournamentService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		teamRepo:         teamRepo,
		idGen:            idGen,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	divisions := make([]string, 0, len(input.AgeDivisions))
	for _, division := range input.AgeDivisions {
		if division = strings.TrimSpace(division); division != "" {
			divisions = append(divisions, division)
		}
	}

	format := strings.TrimSpace(input.Format)
	if format == "" {
		format = tournament.FormatRoundRobin
	}

	now := s.now().UTC()
	item := tournament.Tournament{
		Name:                 strings.TrimSpace(input.Name),
		Description:          strings.TrimSpace(input.Description),
		Location:             strings.TrimSpace(input.Location),
		StartDate:            input.StartDate.UTC(),
		EndDate:              input.EndDate.UTC(),
		RegistrationDeadline: input.RegistrationDeadline,
		MaxTeams:             input.MaxTeams,
		AgeDivisions:         divisions,
		Format:               format,
		Status:               tournament.StatusDraft,
		CreatedBy:            strings.TrimSpace(input.CreatedBy),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := item.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	tournamentID, err := s.idGen.NewID()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("generate tournament id: %w", err)
	}
	item.ID = tournamentID

	if err := s.tournamentRepo.Create(ctx, item); err != nil {
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created", "tournament_id", item.ID, "format", item.Format)
	return item, nil
}

func (s *TournamentService) List(ctx context.Context) ([]tournament.Tournament, error) {
	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	return items, nil
}

func (s *TournamentService) Get(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	return getTournament(ctx, s.tournamentRepo, tournamentID)
}

func (s *TournamentService) UpdateStatus(ctx context.Context, tournamentID, status string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.UpdateStatus", tournamentAttr(tournamentID))
	defer span.End()

	status = strings.ToLower(strings.TrimSpace(status))
	if !tournament.IsKnownStatus(status) {
		return tournament.Tournament{}, fmt.Errorf("%w: unknown tournament status %q", ErrInvalidInput, status)
	}

	item, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return tournament.Tournament{}, err
	}

	updated, err := item.TransitionTo(status, s.now().UTC())
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %w", ErrConflict, err)
	}
	if err := s.tournamentRepo.Update(ctx, updated); err != nil {
		return tournament.Tournament{}, fmt.Errorf("update tournament status: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament status changed",
		"tournament_id", updated.ID,
		"from", item.Status,
		"to", updated.Status,
	)
	return updated, nil
}

func (s *TournamentService) RegisterTeam(ctx context.Context, input RegisterTeamInput) (tournament.Registration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.RegisterTeam", tournamentAttr(input.TournamentID), teamAttr(input.TeamID))
	defer span.End()

	teamID := strings.TrimSpace(input.TeamID)
	if teamID == "" {
		return tournament.Registration{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, err := getTournament(ctx, s.tournamentRepo, input.TournamentID)
	if err != nil {
		return tournament.Registration{}, err
	}

	now := s.now().UTC()
	if !item.CanRegister(now) {
		return tournament.Registration{}, fmt.Errorf("%w: registration is closed for tournament=%s", ErrInvalidInput, item.ID)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return tournament.Registration{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return tournament.Registration{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	registrations, err := s.registrationRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return tournament.Registration{}, fmt.Errorf("list registrations: %w", err)
	}
	for _, existing := range registrations {
		if existing.TeamID == teamID && existing.IsActive() {
			return tournament.Registration{}, fmt.Errorf("%w: team=%s is already registered", ErrConflict, teamID)
		}
	}
	if !item.HasCapacity(len(tournament.ApprovedTeamIDs(registrations))) {
		return tournament.Registration{}, fmt.Errorf("%w: tournament=%s is full", ErrConflict, item.ID)
	}

	registrationID, err := s.idGen.NewID()
	if err != nil {
		return tournament.Registration{}, fmt.Errorf("generate registration id: %w", err)
	}

	registration := tournament.Registration{
		ID:           registrationID,
		TournamentID: item.ID,
		TeamID:       teamID,
		Status:       tournament.RegistrationPending,
		RegisteredBy: strings.TrimSpace(input.RegisteredBy),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		return tournament.Registration{}, fmt.Errorf("create registration: %w", err)
	}

	return registration, nil
}

// ReviewRegistration approves, rejects or withdraws a registration.
// Approval is refused once the tournament holds max_teams approved teams.
func (s *TournamentService) ReviewRegistration(ctx context.Context, registrationID, status string) (tournament.Registration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ReviewRegistration")
	defer span.End()

	registrationID = strings.TrimSpace(registrationID)
	status = strings.ToLower(strings.TrimSpace(status))
	if registrationID == "" {
		return tournament.Registration{}, fmt.Errorf("%w: registration id is required", ErrInvalidInput)
	}

	registration, exists, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return tournament.Registration{}, fmt.Errorf("get registration: %w", err)
	}
	if !exists {
		return tournament.Registration{}, fmt.Errorf("%w: registration=%s", ErrNotFound, registrationID)
	}

	if status == tournament.RegistrationApproved {
		item, err := getTournament(ctx, s.tournamentRepo, registration.TournamentID)
		if err != nil {
			return tournament.Registration{}, err
		}
		registrations, err := s.registrationRepo.ListByTournament(ctx, item.ID)
		if err != nil {
			return tournament.Registration{}, fmt.Errorf("list registrations: %w", err)
		}
		if !item.HasCapacity(len(tournament.ApprovedTeamIDs(registrations))) {
			return tournament.Registration{}, fmt.Errorf("%w: tournament=%s is full", ErrConflict, item.ID)
		}
	}

	reviewed, err := registration.Review(status, s.now().UTC())
	if err != nil {
		if errors.Is(err, tournament.ErrInvalidTransition) {
			return tournament.Registration{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return tournament.Registration{}, err
	}
	if err := s.registrationRepo.Update(ctx, reviewed); err != nil {
		return tournament.Registration{}, fmt.Errorf("update registration: %w", err)
	}

	s.logger.InfoContext(ctx, "registration reviewed",
		"registration_id", reviewed.ID,
		"tournament_id", reviewed.TournamentID,
		"status", reviewed.Status,
	)
	return reviewed, nil
}

func (s *TournamentService) ListRegistrations(ctx context.Context, tournamentID string) ([]tournament.Registration, error) {
	item, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	items, err := s.registrationRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	return items, nil
}

func (s *TournamentService) ApprovedTeamIDs(ctx context.Context, tournamentID string) ([]string, error) {
	items, err := s.ListRegistrations(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	return tournament.ApprovedTeamIDs(items), nil
}

func getTournament(ctx context.Context, repo tournament.Repository, tournamentID string) (tournament.Tournament, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}

	return item, nil
}

func approvedTeamIDs(ctx context.Context, repo tournament.RegistrationRepository, tournamentID string) ([]string, error) {
	items, err := repo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	return tournament.ApprovedTeamIDs(items), nil
}
