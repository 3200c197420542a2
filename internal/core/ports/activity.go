package ports

import (
	"context"
	"time"

	"github.com/healthhub/fitness-api/internal/core/domain"
)

// ActivityStatRepository persists daily activity rows.
type ActivityStatRepository interface {
	Create(ctx context.Context, s *domain.ActivityStat) (*domain.ActivityStat, error)
	// FindByUserAndDate matches the calendar day of date exactly.
	FindByUserAndDate(ctx context.Context, userID int64, date time.Time) (*domain.ActivityStat, error)
	ListByUserSince(ctx context.Context, userID int64, since time.Time) ([]*domain.ActivityStat, error)
	Update(ctx context.Context, id int64, mutate func(*domain.ActivityStat) error) (*domain.ActivityStat, error)
}

// RecordActivityInput sets the metrics of one (user, date) row. Nil fields
// keep the stored value.
type RecordActivityInput struct {
	UserID        int64
	Date          time.Time
	Steps         *int
	Calories      *float64
	ActiveMinutes *int
	Sleep         *float64
	Water         *float64
}

// ActivityService manages daily stats and keeps goals in sync with them.
type ActivityService interface {
	// ForDate returns the row for the day, creating an empty one when missing.
	ForDate(ctx context.Context, userID int64, date time.Time) (*domain.ActivityStat, error)
	// Record upserts the row; created reports whether a new row was inserted.
	Record(ctx context.Context, in RecordActivityInput) (stat *domain.ActivityStat, created bool, err error)
	History(ctx context.Context, userID int64, days int) ([]*domain.ActivityStat, error)
	// AddWorkout adds session totals onto the row for the day.
	AddWorkout(ctx context.Context, userID int64, date time.Time, calories float64, minutes int) (*domain.ActivityStat, error)
}
