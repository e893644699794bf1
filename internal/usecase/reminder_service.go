package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

const (
	defaultReminderWorkers = 4
	defaultReminderWindow  = 6 * time.Hour
)

type ReminderConfig struct {
	Workers int
	// Window is the deduplication bucket; one reminder per match side per window.
	Window time.Duration
}

type SpiritReminderInput struct {
	TournamentID string `json:"tournament_id"`
	MatchID      string `json:"match_id"`
	TeamID       string `json:"team_id"`
}

type ReminderDispatchResult struct {
	TournamentCount  int      `json:"tournament_count"`
	QueuedCount      int      `json:"queued_count"`
	FailedCount      int      `json:"failed_count"`
	WorkerCount      int      `json:"worker_count"`
	QueuedOperations []string `json:"queued_operations"`
}

type reminderPendingProvider interface {
	Pending(ctx context.Context, tournamentID string) ([]PendingSpirit, error)
}

type ReminderService struct {
	tournamentRepo tournament.Repository
	spiritSvc      reminderPendingProvider
	// queue is nil when no job queue is configured; reminders then go
	// straight to live subscribers.
	queue     JobQueue
	publisher EventPublisher
	cfg       ReminderConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewReminderService(
	tournamentRepo tournament.Repository,
	spiritSvc reminderPendingProvider,
	queue JobQueue,
	publisher EventPublisher,
	cfg ReminderConfig,
	logger *logging.Logger,
) *ReminderService {
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultReminderWorkers
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultReminderWindow
	}

	return &ReminderService{
		tournamentRepo: tournamentRepo,
		spiritSvc:      spiritSvc,
		queue:          queue,
		publisher:      publisher,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

// DispatchSpiritReminders scans tournaments in progress (or the one given) and
// enqueues one reminder job per completed match side that still owes a spirit score.
// Without a job queue each reminder is published immediately.
func (s *ReminderService) DispatchSpiritReminders(ctx context.Context, tournamentID string) (ReminderDispatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReminderService.DispatchSpiritReminders")
	defer span.End()

	targets, err := s.pickTournaments(ctx, tournamentID)
	if err != nil {
		return ReminderDispatchResult{}, err
	}

	workerCount := min(s.cfg.Workers, max(len(targets), 1))
	result := ReminderDispatchResult{
		TournamentCount:  len(targets),
		WorkerCount:      workerCount,
		QueuedOperations: make([]string, 0),
	}
	if len(targets) == 0 {
		return result, nil
	}

	now := s.now().UTC()
	operations := make(chan string, 64)
	var queuedCount atomic.Int32
	var failedCount atomic.Int32

	collected := make(chan []string, 1)
	go func() {
		items := make([]string, 0)
		for op := range operations {
			items = append(items, op)
		}
		collected <- items
	}()

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		close(operations)
		<-collected
		return ReminderDispatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	var submitErr error
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			pending, err := s.spiritSvc.Pending(ctx, target.ID)
			if err != nil {
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "list pending spirit scores failed", "tournament_id", target.ID, "error", err)
				return
			}
			for _, item := range pending {
				if s.queue == nil {
					s.publisher.Publish(ctx, item.TournamentID, EventSpiritReminder, item)
					queuedCount.Add(1)
					operations <- "spirit-reminder:" + item.MatchID + ":" + item.TeamID
					continue
				}
				dedupID := dedupKey("spirit-reminder", item.MatchID+"-"+item.TeamID, now, s.cfg.Window)
				payload := SpiritReminderInput{
					TournamentID: item.TournamentID,
					MatchID:      item.MatchID,
					TeamID:       item.TeamID,
				}
				if err := s.queue.Enqueue(ctx, JobPathSpiritReminder, payload, 0, dedupID); err != nil {
					failedCount.Add(1)
					s.logger.WarnContext(ctx, "enqueue spirit reminder failed",
						"tournament_id", target.ID,
						"match_id", item.MatchID,
						"team_id", item.TeamID,
						"error", err,
					)
					continue
				}
				queuedCount.Add(1)
				operations <- "spirit-reminder:" + item.MatchID + ":" + item.TeamID
			}
		}); err != nil {
			workers.Done()
			submitErr = fmt.Errorf("submit task to worker pool: %w", err)
			break
		}
	}

	workers.Wait()
	close(operations)
	result.QueuedOperations = <-collected
	if submitErr != nil {
		return ReminderDispatchResult{}, submitErr
	}

	sort.Strings(result.QueuedOperations)
	result.QueuedCount = int(queuedCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "spirit reminders dispatched",
		"tournaments", result.TournamentCount,
		"queued", result.QueuedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

// HandleSpiritReminder pushes a reminder to live subscribers when the match side is still pending.
// It reports whether a reminder was sent.
func (s *ReminderService) HandleSpiritReminder(ctx context.Context, input SpiritReminderInput) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReminderService.HandleSpiritReminder")
	defer span.End()

	input.TournamentID = strings.TrimSpace(input.TournamentID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.MatchID == "" || input.TeamID == "" {
		return false, fmt.Errorf("%w: match id and team id are required", ErrInvalidInput)
	}

	pending, err := s.spiritSvc.Pending(ctx, input.TournamentID)
	if err != nil {
		return false, err
	}
	for _, item := range pending {
		if item.MatchID != input.MatchID || item.TeamID != input.TeamID {
			continue
		}
		s.publisher.Publish(ctx, input.TournamentID, EventSpiritReminder, item)
		return true, nil
	}

	return false, nil
}

func (s *ReminderService) pickTournaments(ctx context.Context, tournamentID string) ([]tournament.Tournament, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID != "" {
		item, err := getTournament(ctx, s.tournamentRepo, tournamentID)
		if err != nil {
			return nil, err
		}
		return []tournament.Tournament{item}, nil
	}

	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments for reminders: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(items))
	for _, item := range items {
		if item.Status == tournament.StatusInProgress {
			out = append(out, item)
		}
	}
	return out, nil
}
