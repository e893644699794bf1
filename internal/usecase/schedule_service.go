package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/bracket"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/field"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/schedule"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	idgen "github.com/ShubhamShuklaX/Tournify/internal/platform/id"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
)

type ScheduleConfig struct {
	MatchMinutes int
	BreakMinutes int
}

type SchedulePreview struct {
	TournamentID     string `json:"tournament_id"`
	BracketType      string `json:"bracket_type"`
	ApprovedTeams    int    `json:"approved_teams"`
	Fields           int    `json:"fields"`
	EstimatedMatches int    `json:"estimated_matches"`
	CanGenerate      bool   `json:"can_generate"`
}

type GenerateScheduleInput struct {
	TournamentID string
	BracketType  string
	StartTime    time.Time
	// MatchMinutes and BreakMinutes fall back to the service config when nil.
	MatchMinutes *int
	BreakMinutes *int
	// ParallelFields runs one timeline per field instead of one global timeline.
	ParallelFields bool
}

type ScheduleService struct {
	tournamentRepo   tournament.Repository
	registrationRepo tournament.RegistrationRepository
	fieldRepo        field.Repository
	matchRepo        match.Repository
	idGen            idgen.Generator
	publisher        EventPublisher
	cfg              ScheduleConfig
	logger           *logging.Logger
	now              func() time.Time
}

func NewScheduleService(
	tournamentRepo tournament.Repository,
	registrationRepo tournament.RegistrationRepository,
	fieldRepo field.Repository,
	matchRepo match.Repository,
	idGen idgen.Generator,
	publisher EventPublisher,
	cfg ScheduleConfig,
	logger *logging.Logger,
) *ScheduleService {
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MatchMinutes <= 0 {
		cfg.MatchMinutes = schedule.DefaultMatchMinutes
	}
	if cfg.BreakMinutes < 0 {
		cfg.BreakMinutes = schedule.DefaultBreakMinutes
	}

	return &ScheduleService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		fieldRepo:        fieldRepo,
		matchRepo:        matchRepo,
		idGen:            idGen,
		publisher:        publisher,
		cfg:              cfg,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *ScheduleService) Preview(ctx context.Context, tournamentID, bracketType string) (SchedulePreview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Preview", tournamentAttr(tournamentID))
	defer span.End()

	item, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return SchedulePreview{}, err
	}

	bracketType = resolveBracketType(bracketType, item.Format)
	teamIDs, err := approvedTeamIDs(ctx, s.registrationRepo, item.ID)
	if err != nil {
		return SchedulePreview{}, err
	}
	fields, err := s.fieldRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return SchedulePreview{}, fmt.Errorf("list fields: %w", err)
	}

	estimated := bracket.EstimatedMatches(bracketType, len(teamIDs))
	return SchedulePreview{
		TournamentID:     item.ID,
		BracketType:      bracketType,
		ApprovedTeams:    len(teamIDs),
		Fields:           len(fields),
		EstimatedMatches: estimated,
		CanGenerate:      len(teamIDs) >= 2 && len(fields) >= 1 && estimated > 0,
	}, nil
}

// Generate builds the tournament schedule and replaces any existing matches.
func (s *ScheduleService) Generate(ctx context.Context, input GenerateScheduleInput) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Generate", tournamentAttr(input.TournamentID))
	defer span.End()

	item, err := getTournament(ctx, s.tournamentRepo, input.TournamentID)
	if err != nil {
		return nil, err
	}
	if input.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}
	if input.MatchMinutes != nil && *input.MatchMinutes < 1 {
		return nil, fmt.Errorf("%w: match duration must be at least 1 minute", ErrInvalidInput)
	}
	if input.BreakMinutes != nil && *input.BreakMinutes < 0 {
		return nil, fmt.Errorf("%w: break duration cannot be negative", ErrInvalidInput)
	}

	teamIDs, err := approvedTeamIDs(ctx, s.registrationRepo, item.ID)
	if err != nil {
		return nil, err
	}
	if len(teamIDs) < 2 {
		return nil, fmt.Errorf("%w: at least 2 approved teams are required, got %d", ErrInvalidInput, len(teamIDs))
	}

	fields, err := s.fieldRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: at least 1 field is required", ErrInvalidInput)
	}

	bracketType := resolveBracketType(input.BracketType, item.Format)
	matches, err := bracket.Generate(bracketType, teamIDs, len(fields))
	if err != nil {
		if errors.Is(err, bracket.ErrUnsupportedFormat) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("generate bracket: %w", err)
	}

	bracket.AdvanceWinners(matches)
	matches = schedule.AssignFields(matches, field.IDs(fields))

	matchMinutes := s.cfg.MatchMinutes
	if input.MatchMinutes != nil {
		matchMinutes = *input.MatchMinutes
	}
	breakMinutes := s.cfg.BreakMinutes
	if input.BreakMinutes != nil {
		breakMinutes = *input.BreakMinutes
	}
	start := input.StartTime.UTC()
	if input.ParallelFields {
		matches = schedule.DistributePerField(matches, start, matchMinutes, breakMinutes)
	} else {
		matches = schedule.Distribute(matches, start, matchMinutes, breakMinutes)
	}

	now := s.now().UTC()
	for i := range matches {
		matchID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate match id: %w", err)
		}
		matches[i].ID = matchID
		matches[i].TournamentID = item.ID
		matches[i].CreatedAt = now
		matches[i].UpdatedAt = now
	}

	if err := s.matchRepo.ReplaceByTournament(ctx, item.ID, matches); err != nil {
		return nil, fmt.Errorf("replace tournament matches: %w", err)
	}

	s.publisher.Publish(ctx, item.ID, EventScheduleGenerated, map[string]any{
		"bracket_type": bracketType,
		"match_count":  len(matches),
		"team_count":   len(teamIDs),
		"field_count":  len(fields),
	})
	s.logger.InfoContext(ctx, "schedule generated",
		"tournament_id", item.ID,
		"bracket_type", bracketType,
		"matches", len(matches),
		"teams", len(teamIDs),
		"fields", len(fields),
	)

	return matches, nil
}

// resolveBracketType falls back to the tournament format when the request leaves it empty.
func resolveBracketType(requested, format string) string {
	requested = strings.ToLower(strings.TrimSpace(requested))
	if requested != "" {
		return requested
	}
	switch format {
	case tournament.FormatElimination:
		return match.BracketElimination
	case tournament.FormatRoundRobin:
		return match.BracketRoundRobin
	default:
		return format
	}
}
