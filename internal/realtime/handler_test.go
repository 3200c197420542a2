package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/observability/metrics"
)

func invalidMessages(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.RealtimeMessagesInvalidTotal.Write(&m))
	return m.GetCounter().GetValue()
}

type progressCall struct {
	challengeID, userID int64
	progress            float64
}

type stubProgress struct {
	mu    sync.Mutex
	calls []progressCall
	err   error
}

func (s *stubProgress) UpdateProgress(_ context.Context, challengeID, userID int64, progress float64) (*domain.ChallengeParticipant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, progressCall{challengeID, userID, progress})
	if s.err != nil {
		return nil, s.err
	}
	return &domain.ChallengeParticipant{ChallengeID: challengeID, UserID: userID, CurrentProgress: progress}, nil
}

func (s *stubProgress) Calls() []progressCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]progressCall(nil), s.calls...)
}

func newTestHandler(t *testing.T) (*Handler, *Hub, *stubProgress) {
	t.Helper()
	hub := startHub(t)
	progress := &stubProgress{}
	return NewHandler(hub, progress, nil, zerolog.Nop()), hub, progress
}

func TestDispatch_StartAndEndWorkout(t *testing.T) {
	h, hub, _ := newTestHandler(t)
	c := connect(t, hub)

	h.dispatch(context.Background(), c, []byte(`{"type":"startWorkout","payload":{"userId":7}}`))
	assert.True(t, hub.Bound(7))

	h.dispatch(context.Background(), c, []byte(`{"type":"endWorkout","payload":{"userId":7}}`))
	assert.False(t, hub.Bound(7))
}

func TestDispatch_UpdateWorkoutRelaysToTrainer(t *testing.T) {
	h, hub, _ := newTestHandler(t)
	athlete := connect(t, hub)
	trainer := connect(t, hub)
	hub.Bind(2, trainer)

	h.dispatch(context.Background(), athlete,
		[]byte(`{"type":"updateWorkout","payload":{"userId":1,"trainerId":2,"reps":12}}`))

	msg := receive(t, trainer)
	assert.Equal(t, TypeClientWorkoutUpdate, msg.Type)
	assert.JSONEq(t, `{"userId":1,"trainerId":2,"reps":12}`, string(msg.Payload))
	assertSilent(t, athlete)
}

func TestDispatch_UpdateWorkoutWithoutUserStillRelays(t *testing.T) {
	h, hub, _ := newTestHandler(t)
	sender := connect(t, hub)
	trainer := connect(t, hub)
	hub.Bind(2, trainer)
	before := invalidMessages(t)

	h.dispatch(context.Background(), sender,
		[]byte(`{"type":"updateWorkout","payload":{"trainerId":2,"heartRate":140}}`))

	msg := receive(t, trainer)
	assert.Equal(t, TypeClientWorkoutUpdate, msg.Type)
	assert.JSONEq(t, `{"trainerId":2,"heartRate":140}`, string(msg.Payload))
	assert.Equal(t, before, invalidMessages(t))
}

func TestDispatch_UpdateWorkoutWithoutTrainerIsIgnored(t *testing.T) {
	h, hub, _ := newTestHandler(t)
	c := connect(t, hub)
	hub.Bind(1, c)

	h.dispatch(context.Background(), c, []byte(`{"type":"updateWorkout","payload":{"userId":1}}`))
	hub.Clients()
	assertSilent(t, c)
}

func TestDispatch_UpdateChallengeCallsService(t *testing.T) {
	h, hub, progress := newTestHandler(t)
	c := connect(t, hub)

	h.dispatch(context.Background(), c,
		[]byte(`{"type":"updateChallenge","payload":{"challengeId":4,"userId":1,"progress":55.5}}`))

	assert.Equal(t, []progressCall{{4, 1, 55.5}}, progress.Calls())
}

func TestDispatch_UpdateChallengeErrorKeepsConnection(t *testing.T) {
	h, hub, progress := newTestHandler(t)
	progress.err = domain.NotFound("Challenge participation", 4)
	c := connect(t, hub)

	h.dispatch(context.Background(), c,
		[]byte(`{"type":"updateChallenge","payload":{"challengeId":4,"userId":1,"progress":10}}`))

	assert.Len(t, progress.Calls(), 1)
	assert.Equal(t, 1, hub.Clients())
}

func TestDispatch_UnknownTypeIsEchoed(t *testing.T) {
	h, hub, _ := newTestHandler(t)
	c := connect(t, hub)

	h.dispatch(context.Background(), c, []byte(`{"type":"ping","payload":{"n":1}}`))

	msg := receive(t, c)
	assert.Equal(t, TypeEcho, msg.Type)
	assert.JSONEq(t, `{"type":"ping","payload":{"n":1}}`, string(msg.Payload))
}

func TestDispatch_MalformedFramesAreDropped(t *testing.T) {
	h, hub, progress := newTestHandler(t)
	c := connect(t, hub)

	for _, frame := range []string{
		`not json`,
		`{"payload":{}}`,
		`{"type":"startWorkout","payload":{}}`,
		`{"type":"endWorkout","payload":{"trainerId":2}}`,
		`{"type":"startWorkout","payload":"x"}`,
		`{"type":"updateChallenge","payload":{"userId":1}}`,
	} {
		h.dispatch(context.Background(), c, []byte(frame))
	}

	assert.Equal(t, 1, hub.Clients())
	assert.Empty(t, progress.Calls())
	assertSilent(t, c)
}

func TestOriginChecker(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	open := originChecker([]string{"*"})
	assert.True(t, open(req("https://evil.example")))

	restricted := originChecker([]string{"https://app.healthhub.io"})
	assert.True(t, restricted(req("https://app.healthhub.io")))
	assert.True(t, restricted(req("")))
	assert.False(t, restricted(req("https://evil.example")))
}

func TestServe_EndToEnd(t *testing.T) {
	h, hub, _ := newTestHandler(t)
	e := echo.New()
	e.GET("/ws", h.Serve)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	dial := func() *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close() })
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var greeting Message
		require.NoError(t, conn.ReadJSON(&greeting))
		require.Equal(t, TypeConnection, greeting.Type)
		return conn
	}

	trainer := dial()
	athlete := dial()

	require.NoError(t, trainer.WriteJSON(Message{Type: TypeStartWorkout, Payload: json.RawMessage(`{"userId":2}`)}))
	require.Eventually(t, func() bool { return hub.Bound(2) }, time.Second, 10*time.Millisecond)

	require.NoError(t, athlete.WriteJSON(Message{
		Type:    TypeUpdateWorkout,
		Payload: json.RawMessage(`{"userId":1,"trainerId":2,"heartRate":140}`),
	}))

	var relayed Message
	require.NoError(t, trainer.ReadJSON(&relayed))
	assert.Equal(t, TypeClientWorkoutUpdate, relayed.Type)
	assert.JSONEq(t, `{"userId":1,"trainerId":2,"heartRate":140}`, string(relayed.Payload))

	require.NoError(t, trainer.Close())
	require.Eventually(t, func() bool { return !hub.Bound(2) && hub.Clients() == 1 }, time.Second, 10*time.Millisecond)
}
