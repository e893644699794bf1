package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/bracket"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
)

type UpdateScoreInput struct {
	MatchID    string
	Team1Score int
	Team2Score int
}

type MatchService struct {
	tournamentRepo tournament.Repository
	matchRepo      match.Repository
	publisher      EventPublisher
	logger         *logging.Logger
	now            func() time.Time
}

func NewMatchService(
	tournamentRepo tournament.Repository,
	matchRepo match.Repository,
	publisher EventPublisher,
	logger *logging.Logger,
) *MatchService {
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *MatchService) ListByTournament(ctx context.Context, tournamentID string) ([]match.Match, error) {
	item, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	items, err := s.matchRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return items, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	return getMatch(ctx, s.matchRepo, matchID)
}

func (s *MatchService) Start(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Start", matchAttr(matchID))
	defer span.End()

	return s.apply(ctx, matchID, EventMatchStarted, func(m match.Match, now time.Time) (match.Match, error) {
		return m.Start(now)
	})
}

func (s *MatchService) UpdateScore(ctx context.Context, input UpdateScoreInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateScore", matchAttr(input.MatchID))
	defer span.End()

	return s.apply(ctx, input.MatchID, EventMatchScoreUpdated, func(m match.Match, now time.Time) (match.Match, error) {
		return m.SetScore(input.Team1Score, input.Team2Score, now)
	})
}

// End completes a live match. In elimination play the winner moves into the next round.
func (s *MatchService) End(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.End", matchAttr(matchID))
	defer span.End()

	ended, err := s.apply(ctx, matchID, EventMatchCompleted, func(m match.Match, now time.Time) (match.Match, error) {
		return m.End(now)
	})
	if err != nil {
		return match.Match{}, err
	}

	if ended.BracketType == match.BracketElimination && !ended.IsFinal {
		if err := s.advance(ctx, ended.TournamentID); err != nil {
			return match.Match{}, err
		}
	}

	return ended, nil
}

func (s *MatchService) Cancel(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Cancel", matchAttr(matchID))
	defer span.End()

	return s.apply(ctx, matchID, EventMatchCancelled, func(m match.Match, now time.Time) (match.Match, error) {
		return m.Cancel(now)
	})
}

func (s *MatchService) apply(
	ctx context.Context,
	matchID string,
	eventType string,
	change func(match.Match, time.Time) (match.Match, error),
) (match.Match, error) {
	item, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return match.Match{}, err
	}

	updated, err := change(item, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, match.ErrTiedResult):
			return match.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		case errors.Is(err, match.ErrInvalidTransition):
			return match.Match{}, fmt.Errorf("%w: %w", ErrConflict, err)
		default:
			return match.Match{}, err
		}
	}

	if err := s.matchRepo.Update(ctx, updated); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	s.publisher.Publish(ctx, updated.TournamentID, eventType, updated)
	s.logger.InfoContext(ctx, "match updated",
		"match_id", updated.ID,
		"tournament_id", updated.TournamentID,
		"event", eventType,
		"status", updated.Status,
	)
	return updated, nil
}

func (s *MatchService) advance(ctx context.Context, tournamentID string) error {
	items, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("list matches for advance: %w", err)
	}

	for _, changed := range bracket.AdvanceWinners(items) {
		changed.UpdatedAt = s.now().UTC()
		if err := s.matchRepo.Update(ctx, changed); err != nil {
			return fmt.Errorf("advance winner into match=%s: %w", changed.ID, err)
		}
		s.publisher.Publish(ctx, tournamentID, EventMatchScoreUpdated, changed)
	}

	return nil
}

func getMatch(ctx context.Context, repo match.Repository, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return item, nil
}
