package usecase

import "context"

const (
	EventScheduleGenerated = "schedule.generated"
	EventMatchStarted      = "match.started"
	EventMatchScoreUpdated = "match.score_updated"
	EventMatchCompleted    = "match.completed"
	EventMatchCancelled    = "match.cancelled"
	EventSpiritReminder    = "spirit.reminder"
)

// EventPublisher pushes tournament events to realtime subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, tournamentID, eventType string, payload any)
}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(context.Context, string, string, any) {}

func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}
