package ports

import (
	"context"
	"time"

	"github.com/healthhub/fitness-api/internal/core/domain"
)

type GoalRepository interface {
	Create(ctx context.Context, g *domain.Goal) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Goal, error)
	Update(ctx context.Context, id int64, mutate func(*domain.Goal) error) (*domain.Goal, error)
}

type CreateGoalInput struct {
	UserID      int64
	Type        string
	Target      float64
	Period      string
	Description string
	Deadline    *time.Time
}

type GoalPatch struct {
	Target      *float64
	Current     *float64
	Period      *string
	Description *string
	Deadline    *time.Time
}

type GoalService interface {
	List(ctx context.Context, userID int64) ([]*domain.Goal, error)
	Create(ctx context.Context, in CreateGoalInput) (*domain.Goal, error)
	Update(ctx context.Context, id int64, patch GoalPatch) (*domain.Goal, error)
}
