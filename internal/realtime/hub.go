package realtime

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/observability/metrics"
)

const commandBuffer = 64

// Hub tracks live clients and which user each one speaks for. Every method
// is safe for concurrent use; they hand work to the Run loop.
type Hub struct {
	commands chan func()
	done     chan struct{}

	// Owned by the Run goroutine.
	clients  map[*Client]struct{}
	bindings map[int64]*Client

	log zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		commands: make(chan func(), commandBuffer),
		done:     make(chan struct{}),
		clients:  make(map[*Client]struct{}),
		bindings: make(map[int64]*Client),
		log:      log,
	}
}

// Run processes commands until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.remove(c)
			}
			return
		case cmd := <-h.commands:
			cmd()
		}
	}
}

// Register adds c and greets it.
func (h *Hub) Register(c *Client) {
	h.exec(func() {
		h.clients[c] = struct{}{}
		metrics.RealtimeConnections.Inc()
		greeting, err := encode(TypeConnection, connectionPayload{
			Message:  "Connected to fitness realtime server",
			ClientID: c.id,
		})
		if err == nil {
			h.push(c, TypeConnection, greeting)
		}
		h.log.Debug().Str("client_id", c.id).Msg("realtime client connected")
	})
}

// Unregister removes c from every user slot and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.exec(func() { h.remove(c) })
}

// Bind routes userID's events to c. The latest binding wins.
func (h *Hub) Bind(userID int64, c *Client) {
	h.exec(func() {
		if _, ok := h.clients[c]; !ok {
			return
		}
		h.bindings[userID] = c
	})
}

// Unbind drops userID's binding if it still points at c.
func (h *Hub) Unbind(userID int64, c *Client) {
	h.exec(func() {
		if h.bindings[userID] == c {
			delete(h.bindings, userID)
		}
	})
}

// SendTo delivers an encoded frame to userID's connection, if any.
func (h *Hub) SendTo(userID int64, msgType string, frame []byte) {
	h.exec(func() { h.deliver(userID, msgType, frame) })
}

// Reply sends an encoded frame straight back to c.
func (h *Hub) Reply(c *Client, msgType string, frame []byte) {
	h.exec(func() {
		if _, ok := h.clients[c]; ok {
			h.push(c, msgType, frame)
		}
	})
}

// NotifyChallengeUpdate implements ports.Notifier.
func (h *Hub) NotifyChallengeUpdate(_ context.Context, update domain.ChallengeUpdate, recipients []int64) {
	frame, err := encode(TypeChallengeUpdate, update)
	if err != nil {
		h.log.Error().Err(err).Msg("encode challenge update")
		return
	}
	h.exec(func() {
		for _, userID := range recipients {
			h.deliver(userID, TypeChallengeUpdate, frame)
		}
	})
}

// Bound reports whether userID currently has a connection.
func (h *Hub) Bound(userID int64) bool {
	var ok bool
	h.call(func() { _, ok = h.bindings[userID] })
	return ok
}

// Clients reports the number of registered clients.
func (h *Hub) Clients() int {
	var n int
	h.call(func() { n = len(h.clients) })
	return n
}

// exec queues fn. It is dropped once the hub has stopped.
func (h *Hub) exec(fn func()) bool {
	select {
	case h.commands <- fn:
		return true
	case <-h.done:
		return false
	}
}

// call runs fn on the hub goroutine and waits for it.
func (h *Hub) call(fn func()) {
	finished := make(chan struct{})
	if !h.exec(func() { fn(); close(finished) }) {
		return
	}
	select {
	case <-finished:
	case <-h.done:
	}
}

func (h *Hub) deliver(userID int64, msgType string, frame []byte) {
	c, ok := h.bindings[userID]
	if !ok {
		metrics.RealtimeEventsTotal.WithLabelValues(msgType, "no_connection").Inc()
		return
	}
	h.push(c, msgType, frame)
}

// push never blocks; a full buffer drops the frame.
func (h *Hub) push(c *Client, msgType string, frame []byte) {
	select {
	case c.send <- frame:
		metrics.RealtimeEventsTotal.WithLabelValues(msgType, "delivered").Inc()
	default:
		metrics.RealtimeEventsTotal.WithLabelValues(msgType, "dropped").Inc()
		h.log.Warn().Str("client_id", c.id).Str("type", msgType).Msg("send buffer full, dropping frame")
	}
}

func (h *Hub) remove(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for userID, bound := range h.bindings {
		if bound == c {
			delete(h.bindings, userID)
		}
	}
	close(c.send)
	metrics.RealtimeConnections.Dec()
	h.log.Debug().Str("client_id", c.id).Msg("realtime client disconnected")
}
