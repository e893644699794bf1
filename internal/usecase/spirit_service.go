package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/spirit"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	idgen "github.com/ShubhamShuklaX/Tournify/internal/platform/id"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
)

type SubmitSpiritInput struct {
	MatchID       string
	ScoringTeamID string
	Scores        spirit.Scores
	Comments      string
	SubmittedBy   string
}

// PendingSpirit is a completed match side that has not scored its opponent yet.
type PendingSpirit struct {
	MatchID        string     `json:"match_id"`
	TournamentID   string     `json:"tournament_id"`
	TeamID         string     `json:"team_id"`
	OpponentTeamID string     `json:"opponent_team_id"`
	RoundName      string     `json:"round_name"`
	ScheduledTime  *time.Time `json:"scheduled_time,omitempty"`
}

type SpiritService struct {
	tournamentRepo tournament.Repository
	matchRepo      match.Repository
	spiritRepo     spirit.Repository
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewSpiritService(
	tournamentRepo tournament.Repository,
	matchRepo match.Repository,
	spiritRepo spirit.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SpiritService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SpiritService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		spiritRepo:     spiritRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *SpiritService) Submit(ctx context.Context, input SubmitSpiritInput) (spirit.Score, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SpiritService.Submit", matchAttr(input.MatchID), teamAttr(input.ScoringTeamID))
	defer span.End()

	scoringTeamID := strings.TrimSpace(input.ScoringTeamID)
	if scoringTeamID == "" {
		return spirit.Score{}, fmt.Errorf("%w: scoring team id is required", ErrInvalidInput)
	}

	item, err := getMatch(ctx, s.matchRepo, input.MatchID)
	if err != nil {
		return spirit.Score{}, err
	}
	if !item.IsCompleted() {
		return spirit.Score{}, fmt.Errorf("%w: spirit scores can only be submitted for completed matches", ErrInvalidInput)
	}
	if item.IsBye() || !item.HasTeam(scoringTeamID) {
		return spirit.Score{}, fmt.Errorf("%w: team=%s did not play match=%s", ErrForbidden, scoringTeamID, item.ID)
	}
	if err := input.Scores.Validate(); err != nil {
		return spirit.Score{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	existing, err := s.spiritRepo.ListByMatch(ctx, item.ID)
	if err != nil {
		return spirit.Score{}, fmt.Errorf("list spirit scores by match: %w", err)
	}
	if spirit.HasSubmitted(existing, item.ID, scoringTeamID) {
		return spirit.Score{}, fmt.Errorf("%w: %w", ErrConflict, spirit.ErrDuplicateSubmission)
	}

	scoreID, err := s.idGen.NewID()
	if err != nil {
		return spirit.Score{}, fmt.Errorf("generate spirit score id: %w", err)
	}

	record := spirit.Score{
		ID:             scoreID,
		MatchID:        item.ID,
		TournamentID:   item.TournamentID,
		ScoringTeamID:  scoringTeamID,
		OpponentTeamID: item.Opponent(scoringTeamID),
		Scores:         input.Scores,
		TotalScore:     input.Scores.Total(),
		Comments:       strings.TrimSpace(input.Comments),
		SubmittedBy:    strings.TrimSpace(input.SubmittedBy),
		SubmittedAt:    s.now().UTC(),
	}
	if err := s.spiritRepo.Create(ctx, record); err != nil {
		if errors.Is(err, spirit.ErrDuplicateSubmission) {
			return spirit.Score{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return spirit.Score{}, fmt.Errorf("create spirit score: %w", err)
	}

	s.logger.InfoContext(ctx, "spirit score submitted",
		"match_id", record.MatchID,
		"scoring_team_id", record.ScoringTeamID,
		"opponent_team_id", record.OpponentTeamID,
		"total", record.TotalScore,
	)
	return record, nil
}

func (s *SpiritService) Leaderboard(ctx context.Context, tournamentID string) ([]spirit.Entry, error) {
	records, err := s.listByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	return spirit.Leaderboard(records), nil
}

func (s *SpiritService) Summary(ctx context.Context, tournamentID string) (spirit.Summary, error) {
	records, err := s.listByTournament(ctx, tournamentID)
	if err != nil {
		return spirit.Summary{}, err
	}

	return spirit.Summarize(records), nil
}

// Pending lists completed match sides that still owe a spirit score.
func (s *SpiritService) Pending(ctx context.Context, tournamentID string) ([]PendingSpirit, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SpiritService.Pending", tournamentAttr(tournamentID))
	defer span.End()

	records, err := s.listByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByTournament(ctx, strings.TrimSpace(tournamentID))
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]PendingSpirit, 0)
	for _, m := range matches {
		if !m.IsCompleted() || m.IsBye() || m.Team1ID == "" || m.Team2ID == "" {
			continue
		}
		for _, teamID := range []string{m.Team1ID, m.Team2ID} {
			if spirit.HasSubmitted(records, m.ID, teamID) {
				continue
			}
			out = append(out, PendingSpirit{
				MatchID:        m.ID,
				TournamentID:   m.TournamentID,
				TeamID:         teamID,
				OpponentTeamID: m.Opponent(teamID),
				RoundName:      m.RoundName,
				ScheduledTime:  m.ScheduledTime,
			})
		}
	}

	return out, nil
}

func (s *SpiritService) listByTournament(ctx context.Context, tournamentID string) ([]spirit.Score, error) {
	item, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	records, err := s.spiritRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list spirit scores: %w", err)
	}

	return records, nil
}
