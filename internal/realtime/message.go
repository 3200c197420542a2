// Package realtime pushes live workout and challenge updates to WebSocket
// clients. A Hub owns every connection and the user bindings; all mutation
// happens on the hub's own goroutine.
package realtime

import "encoding/json"

// Inbound message types.
const (
	TypeStartWorkout    = "startWorkout"
	TypeUpdateWorkout   = "updateWorkout"
	TypeEndWorkout      = "endWorkout"
	TypeUpdateChallenge = "updateChallenge"
)

// Outbound message types.
const (
	TypeConnection          = "connection"
	TypeEcho                = "echo"
	TypeClientWorkoutUpdate = "clientWorkoutUpdate"
	TypeChallengeUpdate     = "challengeUpdate"
)

// Message is the envelope of every frame in both directions.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type workoutPayload struct {
	UserID    int64  `json:"userId"`
	TrainerID *int64 `json:"trainerId,omitempty"`
}

type challengePayload struct {
	ChallengeID int64   `json:"challengeId"`
	UserID      int64   `json:"userId"`
	Progress    float64 `json:"progress"`
}

type connectionPayload struct {
	Message  string `json:"message"`
	ClientID string `json:"clientId"`
}

func encode(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: msgType, Payload: raw})
}
