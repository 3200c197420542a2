package ports

import (
	"context"
	"time"

	"github.com/healthhub/fitness-api/internal/core/domain"
)

// Cache is a byte-oriented key/value cache with expiry.
type Cache interface {
	// Get reports found=false on a miss.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix drops every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// ActivityEvent is a point written to the activity log.
type ActivityEvent struct {
	UserID    int64          `json:"userId"`
	Kind      string         `json:"kind"`
	Fields    map[string]any `json:"fields"`
	Timestamp time.Time      `json:"timestamp"`
}

// ActivityLogger records activity and session events for later analysis.
// Failures are reported but never block the originating request.
type ActivityLogger interface {
	LogActivity(ctx context.Context, userID int64, kind string, fields map[string]any) error
	LogWorkoutSession(ctx context.Context, s *domain.WorkoutSession) error
}

// RecommendationQueue schedules background recommendation generation.
type RecommendationQueue interface {
	Enqueue(userID int64)
}

// ContentGenerator produces recommendation and insight texts.
type ContentGenerator interface {
	Recommendation(recType string) string
	Insight(prompt string) string
}

// Notifier pushes realtime events to connected users.
type Notifier interface {
	// NotifyChallengeUpdate delivers the update to each recipient that has a
	// live connection. Delivery is best-effort.
	NotifyChallengeUpdate(ctx context.Context, update domain.ChallengeUpdate, recipients []int64)
}
