package jobqueue

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/resilience"
	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
	"github.com/stretchr/testify/require"
)

func TestQStashPublisher_EnqueueSendsUpstashHeaders(t *testing.T) {
	t.Parallel()

	var gotPath, gotBody string
	headers := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotPath = r.URL.Path
		gotBody = string(raw)
		headers <- r.Header.Clone()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"msg-1"}`))
	}))
	defer srv.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          srv.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://api.tournify.example",
		Retries:          3,
		InternalJobToken: "job-secret",
		CircuitBreaker:   resilience.CircuitBreakerConfig{Enabled: false},
	}, logging.NewNop())

	payload := usecase.SpiritReminderInput{TournamentID: "t-1", MatchID: "m-1", TeamID: "b"}
	err := publisher.Enqueue(context.Background(), usecase.JobPathSpiritReminder, payload, 90*time.Second, "spirit-reminder-m-1-b")
	require.NoError(t, err)

	h := <-headers
	require.Equal(t, "/v2/publish/https://api.tournify.example/v1/internal/jobs/spirit-reminder", gotPath)
	require.Equal(t, "Bearer qstash-token", h.Get("Authorization"))
	require.Equal(t, "POST", h.Get("Upstash-Method"))
	require.Equal(t, "3", h.Get("Upstash-Retries"))
	require.Equal(t, "90s", h.Get("Upstash-Delay"))
	require.Equal(t, "spirit-reminder-m-1-b", h.Get("Upstash-Deduplication-Id"))
	require.Equal(t, "job-secret", h.Get("Upstash-Forward-X-Internal-Job-Token"))
	require.JSONEq(t, `{"tournament_id":"t-1","match_id":"m-1","team_id":"b"}`, gotBody)
}

func TestQStashPublisher_ServerErrorsOpenCircuit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:        srv.URL,
		Token:          "qstash-token",
		TargetBaseURL:  "https://api.tournify.example",
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2},
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		err := publisher.Enqueue(context.Background(), usecase.JobPathSpiritReminders, nil, 0, "")
		require.Error(t, err)
		require.True(t, errors.Is(err, errQStashTransient), "expected transient error, got %v", err)
	}

	err := publisher.Enqueue(context.Background(), usecase.JobPathSpiritReminders, nil, 0, "")
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	require.Equal(t, int32(2), calls.Load())
	require.Equal(t, resilience.CircuitStateOpen, publisher.breaker.State())
}

func TestQStashPublisher_CircuitClosesAfterRecovery(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messageId":"msg_1"}`))
	}))
	defer srv.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       srv.URL,
		Token:         "qstash-token",
		TargetBaseURL: "https://api.tournify.example",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      20 * time.Millisecond,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	err := publisher.Enqueue(context.Background(), usecase.JobPathSpiritReminders, nil, 0, "")
	require.ErrorIs(t, err, errQStashTransient)
	require.Equal(t, resilience.CircuitStateOpen, publisher.breaker.State())

	require.Eventually(t, func() bool {
		return publisher.breaker.State() == resilience.CircuitStateHalfOpen
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, publisher.Enqueue(context.Background(), usecase.JobPathSpiritReminders, nil, 0, ""))
	require.Equal(t, resilience.CircuitStateClosed, publisher.breaker.State())
	require.Equal(t, int32(2), calls.Load())
}

func TestQStashPublisher_ClientErrorDoesNotTripCircuit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid destination"}`))
	}))
	defer srv.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:        srv.URL,
		TargetBaseURL:  "https://api.tournify.example",
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1},
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		err := publisher.Enqueue(context.Background(), usecase.JobPathSpiritReminders, nil, 0, "")
		require.Error(t, err)
		require.False(t, errors.Is(err, errQStashTransient))
		require.Contains(t, err.Error(), "invalid destination")
	}
}

func TestQStashPublisher_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       "ftp://qstash.example",
		TargetBaseURL: "https://api.tournify.example",
	}, logging.NewNop())

	err := publisher.Enqueue(context.Background(), usecase.JobPathSpiritReminders, nil, 0, "")
	require.ErrorContains(t, err, "QSTASH_BASE_URL")

	err = publisher.Enqueue(context.Background(), " / ", nil, 0, "")
	require.ErrorContains(t, err, "job path is required")
}

func TestBuildCurlPreview_MasksSecrets(t *testing.T) {
	t.Parallel()

	preview := buildCurlPreview("https://qstash.example/v2/publish/x", 2, 5*time.Second, "dedup-1", []byte(`{"team":"it's"}`), true)
	require.True(t, strings.HasPrefix(preview, "curl -X POST 'https://qstash.example/v2/publish/x'"))
	require.Contains(t, preview, "'Authorization: Bearer ***'")
	require.Contains(t, preview, "'Upstash-Delay: 5s'")
	require.Contains(t, preview, "'Upstash-Forward-X-Internal-Job-Token: ***'")
	require.Contains(t, preview, `'{"team":"it'"'"'s"}'`)
	require.Equal(t, "0s", normalizeDelay(0))
}
