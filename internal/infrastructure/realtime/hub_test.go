package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub([]string{"https://tournify.example"}, logging.NewNop())
	hub.now = func() time.Time { return time.Date(2026, 11, 14, 9, 30, 0, 0, time.UTC) }
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		room := strings.TrimPrefix(r.URL.Path, "/live/")
		if err := hub.ServeRoom(w, r, room); err != nil {
			t.Logf("serve room: %v", err)
		}
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dialRoom(t *testing.T, hub *Hub, srv *httptest.Server, room string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live/" + room
	before := hub.RoomSize(room)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool {
		return hub.RoomSize(room) == before+1
	}, 2*time.Second, 10*time.Millisecond)
	return conn
}

func TestHub_PublishReachesOnlyTournamentRoom(t *testing.T) {
	t.Parallel()

	hub, srv := startHub(t)
	subscriber := dialRoom(t, hub, srv, "t-1")
	other := dialRoom(t, hub, srv, "t-2")

	hub.Publish(context.Background(), "t-1", "match.score_updated", map[string]any{
		"match_id":    "m-1",
		"team1_score": 7,
		"team2_score": 5,
	})

	require.NoError(t, subscriber.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := subscriber.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type         string         `json:"type"`
		TournamentID string         `json:"tournament_id"`
		Payload      map[string]any `json:"payload"`
		SentAt       string         `json:"sent_at"`
	}
	require.NoError(t, sonic.Unmarshal(raw, &msg))
	require.Equal(t, "match.score_updated", msg.Type)
	require.Equal(t, "t-1", msg.TournamentID)
	require.Equal(t, "m-1", msg.Payload["match_id"])
	require.Equal(t, "2026-11-14T09:30:00Z", msg.SentAt)

	require.NoError(t, other.SetReadDeadline(time.Now().Add(150*time.Millisecond)))
	_, _, err = other.ReadMessage()
	require.Error(t, err, "subscriber of another tournament must not receive the event")
}

func TestHub_ClientLeavingEmptiesRoom(t *testing.T) {
	t.Parallel()

	hub, srv := startHub(t)
	conn := dialRoom(t, hub, srv, "t-9")

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return hub.RoomSize("t-9") == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RejectsUnknownOrigin(t *testing.T) {
	t.Parallel()

	_, srv := startHub(t)
	header := http.Header{}
	header.Set("Origin", "https://evil.example")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live/t-1"
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHub_PublishIgnoresBlankTournament(t *testing.T) {
	t.Parallel()

	hub := NewHub(nil, logging.NewNop())
	hub.Publish(context.Background(), " ", "match.started", nil)
	require.Len(t, hub.broadcast, 0)
}

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	check := originChecker([]string{"https://tournify.example/"})
	req := httptest.NewRequest(http.MethodGet, "/live/t-1", nil)
	require.True(t, check(req), "requests without Origin are allowed")

	req.Header.Set("Origin", "https://tournify.example")
	require.True(t, check(req))

	req.Header.Set("Origin", "https://other.example")
	require.False(t, check(req))

	require.True(t, originChecker([]string{"*"})(req))
}
