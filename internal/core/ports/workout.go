package ports

import (
	"context"
	"time"

	"github.com/healthhub/fitness-api/internal/core/domain"
)

// WorkoutFilter narrows the catalog. Empty fields do not filter.
type WorkoutFilter struct {
	Type       string
	Difficulty string
}

type WorkoutRepository interface {
	Create(ctx context.Context, w *domain.Workout) (*domain.Workout, error)
	FindByID(ctx context.Context, id int64) (*domain.Workout, error)
	List(ctx context.Context, f WorkoutFilter) ([]*domain.Workout, error)
}

type WorkoutService interface {
	List(ctx context.Context, f WorkoutFilter) ([]*domain.Workout, error)
	Get(ctx context.Context, id int64) (*domain.Workout, error)
	Create(ctx context.Context, w *domain.Workout) (*domain.Workout, error)
}

type WorkoutSessionRepository interface {
	Create(ctx context.Context, s *domain.WorkoutSession) (*domain.WorkoutSession, error)
	FindByID(ctx context.Context, id int64) (*domain.WorkoutSession, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.WorkoutSession, error)
	Update(ctx context.Context, id int64, mutate func(*domain.WorkoutSession) error) (*domain.WorkoutSession, error)
}

type StartSessionInput struct {
	UserID    int64
	WorkoutID int64
	StartTime time.Time
}

type SessionPatch struct {
	EndTime        *time.Time
	ElapsedTime    *int
	CaloriesBurned *float64
	HeartRate      *int
	Completed      *bool
}

// SessionWithWorkout is a session with its catalog entry embedded.
// Workout is nil when the entry no longer exists.
type SessionWithWorkout struct {
	*domain.WorkoutSession
	Workout *domain.Workout `json:"workout"`
}

type WorkoutSessionService interface {
	Start(ctx context.Context, in StartSessionInput) (*domain.WorkoutSession, error)
	ListByUser(ctx context.Context, userID int64) ([]SessionWithWorkout, error)
	// Update applies the patch. Completing a session with an end time folds
	// its calories and minutes into today's activity stats.
	Update(ctx context.Context, id int64, patch SessionPatch) (*domain.WorkoutSession, error)
}
