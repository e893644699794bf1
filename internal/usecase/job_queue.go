package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"
)

const (
	JobPathSpiritReminders = "/v1/internal/jobs/spirit-reminders"
	JobPathSpiritReminder  = "/v1/internal/jobs/spirit-reminder"
)

// JobQueue delivers a delayed HTTP callback to one of the internal job paths.
type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// dedupKey buckets at into windows of bucket so repeated dispatches inside one
// window share a deduplication id.
func dedupKey(prefix, subject string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	prefix = sanitizeDedupSegment(prefix)
	subject = sanitizeDedupSegment(subject)
	return prefix + "-" + subject + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}
