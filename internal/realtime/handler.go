package realtime

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/observability/metrics"
)

// ProgressUpdater is the slice of the challenge service the socket needs.
type ProgressUpdater interface {
	UpdateProgress(ctx context.Context, challengeID, userID int64, progress float64) (*domain.ChallengeParticipant, error)
}

// Handler upgrades HTTP requests and routes inbound frames.
type Handler struct {
	hub      *Hub
	progress ProgressUpdater
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHandler returns a Handler accepting connections from allowedOrigins.
// An empty list or "*" accepts any origin.
func NewHandler(hub *Hub, progress ProgressUpdater, allowedOrigins []string, log zerolog.Logger) *Handler {
	h := &Handler{hub: hub, progress: progress, log: log}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

// Serve handles GET /ws. It blocks for the lifetime of the connection.
func (h *Handler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	client := newClient(conn, h.log)
	h.hub.Register(client)
	go client.writePump()

	ctx := context.WithoutCancel(c.Request().Context())
	client.readPump(func(frame []byte) { h.dispatch(ctx, client, frame) })
	h.hub.Unregister(client)
	return nil
}

func (h *Handler) dispatch(ctx context.Context, c *Client, frame []byte) {
	var msg Message
	if err := json.Unmarshal(frame, &msg); err != nil || msg.Type == "" {
		h.invalid(c, "malformed message", err)
		return
	}

	switch msg.Type {
	case TypeStartWorkout, TypeEndWorkout, TypeUpdateWorkout:
		var p workoutPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			h.invalid(c, "invalid workout payload", err)
			return
		}
		// Relays only need a trainer; binding needs the user.
		if msg.Type != TypeUpdateWorkout && p.UserID <= 0 {
			h.invalid(c, "invalid workout payload", nil)
			return
		}
		switch msg.Type {
		case TypeStartWorkout:
			h.hub.Bind(p.UserID, c)
		case TypeEndWorkout:
			h.hub.Unbind(p.UserID, c)
		case TypeUpdateWorkout:
			if p.TrainerID == nil {
				return
			}
			frame, err := json.Marshal(Message{Type: TypeClientWorkoutUpdate, Payload: msg.Payload})
			if err != nil {
				h.log.Error().Err(err).Msg("encode workout relay")
				return
			}
			h.hub.SendTo(*p.TrainerID, TypeClientWorkoutUpdate, frame)
		}

	case TypeUpdateChallenge:
		var p challengePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.ChallengeID <= 0 || p.UserID <= 0 {
			h.invalid(c, "invalid challenge payload", err)
			return
		}
		if _, err := h.progress.UpdateProgress(ctx, p.ChallengeID, p.UserID, p.Progress); err != nil {
			c.log.Warn().Err(err).
				Int64("challenge_id", p.ChallengeID).
				Int64("user_id", p.UserID).
				Msg("challenge progress from socket rejected")
		}

	default:
		reply, err := encode(TypeEcho, msg)
		if err != nil {
			return
		}
		h.hub.Reply(c, TypeEcho, reply)
	}
}

func (h *Handler) invalid(c *Client, reason string, err error) {
	metrics.RealtimeMessagesInvalidTotal.Inc()
	c.log.Warn().Err(err).Msg(reason)
}

func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
