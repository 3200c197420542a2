package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/observability/metrics"
)

var planDays = []string{"Monday", "Wednesday", "Friday"}

const planNotes = "Rest or stretch on the days in between. Increase intensity gradually as the sessions get easier."

type RecommendationService struct {
	recs      ports.RecommendationRepository
	workouts  ports.WorkoutRepository
	generator ports.ContentGenerator
	log       zerolog.Logger
}

func NewRecommendationService(
	recs ports.RecommendationRepository,
	workouts ports.WorkoutRepository,
	generator ports.ContentGenerator,
	log zerolog.Logger,
) *RecommendationService {
	return &RecommendationService{recs: recs, workouts: workouts, generator: generator, log: log}
}

func (s *RecommendationService) List(ctx context.Context, userID int64, recType string) ([]*domain.Recommendation, error) {
	recs, err := s.recs.ListByUser(ctx, userID, recType)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].ID > recs[j].ID
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs, nil
}

func (s *RecommendationService) Feedback(ctx context.Context, id int64, feedback string) (*domain.Recommendation, error) {
	if feedback != domain.FeedbackPositive && feedback != domain.FeedbackNegative {
		return nil, domain.Errorf(domain.ErrValidation, "feedback must be one of: positive negative")
	}
	return s.recs.Update(ctx, id, func(r *domain.Recommendation) error {
		r.Feedback = &feedback
		return nil
	})
}

func (s *RecommendationService) Generate(ctx context.Context, userID int64) ([]*domain.Recommendation, error) {
	out := make([]*domain.Recommendation, 0, len(domain.RecommendationTypes))
	for _, t := range domain.RecommendationTypes {
		rec, err := s.recs.Create(ctx, &domain.Recommendation{
			UserID:  userID,
			Type:    t,
			Content: s.generator.Recommendation(t),
		})
		if err != nil {
			return out, err
		}
		metrics.RecommendationsGeneratedTotal.WithLabelValues(t).Inc()
		out = append(out, rec)
	}
	s.log.Info().Int64("user_id", userID).Int("count", len(out)).Msg("recommendations generated")
	return out, nil
}

// WorkoutPlan schedules the first catalog workouts across the week.
func (s *RecommendationService) WorkoutPlan(ctx context.Context, in ports.WorkoutPlanInput) (*ports.WorkoutPlan, error) {
	if in.UserID <= 0 {
		return nil, domain.Errorf(domain.ErrValidation, "userId is required")
	}
	workouts, err := s.workouts.List(ctx, ports.WorkoutFilter{})
	if err != nil {
		return nil, err
	}

	plan := &ports.WorkoutPlan{
		UserID:   in.UserID,
		Goal:     in.Goal,
		Level:    in.Level,
		Schedule: make([]ports.PlanDay, 0, len(planDays)),
		Notes:    planNotes,
	}
	for i, day := range planDays {
		if i >= len(workouts) {
			break
		}
		plan.Schedule = append(plan.Schedule, ports.PlanDay{Day: day, Workout: workouts[i]})
	}
	return plan, nil
}

func (s *RecommendationService) Insight(_ context.Context, userID int64, prompt string) (*ports.Insight, error) {
	if prompt == "" {
		return nil, domain.Errorf(domain.ErrValidation, "prompt is required")
	}
	return &ports.Insight{UserID: userID, Prompt: prompt, Advice: s.generator.Insight(prompt)}, nil
}
