package ports

import (
	"context"

	"github.com/healthhub/fitness-api/internal/core/domain"
)

type RecommendationRepository interface {
	Create(ctx context.Context, r *domain.Recommendation) (*domain.Recommendation, error)
	// ListByUser filters by type when recType is non-empty.
	ListByUser(ctx context.Context, userID int64, recType string) ([]*domain.Recommendation, error)
	Update(ctx context.Context, id int64, mutate func(*domain.Recommendation) error) (*domain.Recommendation, error)
}

type WorkoutPlanInput struct {
	UserID int64
	Goal   string
	Level  string
}

type PlanDay struct {
	Day     string          `json:"day"`
	Workout *domain.Workout `json:"workout"`
}

type WorkoutPlan struct {
	UserID   int64     `json:"userId"`
	Goal     string    `json:"goal"`
	Level    string    `json:"level"`
	Schedule []PlanDay `json:"schedule"`
	Notes    string    `json:"notes"`
}

type Insight struct {
	UserID int64  `json:"userId"`
	Prompt string `json:"prompt"`
	Advice string `json:"advice"`
}

type RecommendationService interface {
	// List returns newest first.
	List(ctx context.Context, userID int64, recType string) ([]*domain.Recommendation, error)
	Feedback(ctx context.Context, id int64, feedback string) (*domain.Recommendation, error)
	// Generate creates one recommendation of every type for the user.
	Generate(ctx context.Context, userID int64) ([]*domain.Recommendation, error)
	WorkoutPlan(ctx context.Context, in WorkoutPlanInput) (*WorkoutPlan, error)
	Insight(ctx context.Context, userID int64, prompt string) (*Insight, error)
}
