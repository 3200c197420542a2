package service

import (
	"context"
	"testing"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/infrastructure/repository"
)

func newRecommendationFixture(t *testing.T) (*RecommendationService, *repository.Repositories) {
	t.Helper()
	repos := newRepos()
	return NewRecommendationService(repos.Recommendations, repos.Workouts, fixedGenerator{}, nop()), repos
}

func TestRecommendationService_GenerateOnePerType(t *testing.T) {
	svc, _ := newRecommendationFixture(t)

	recs, err := svc.Generate(context.Background(), 7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(recs) != len(domain.RecommendationTypes) {
		t.Fatalf("expected %d recommendations, got %d", len(domain.RecommendationTypes), len(recs))
	}
	for i, rec := range recs {
		if rec.UserID != 7 || rec.Type != domain.RecommendationTypes[i] || rec.Content != "do more "+rec.Type {
			t.Fatalf("unexpected recommendation: %+v", rec)
		}
	}
}

func TestRecommendationService_ListNewestFirstAndFiltered(t *testing.T) {
	svc, _ := newRecommendationFixture(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := svc.Generate(ctx, 1); err != nil {
			t.Fatalf("Generate: %v", err)
		}
	}
	if _, err := svc.Generate(ctx, 2); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	all, err := svc.List(ctx, 1, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("expected 6, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if cur.CreatedAt.After(prev.CreatedAt) || (cur.CreatedAt.Equal(prev.CreatedAt) && cur.ID > prev.ID) {
			t.Fatalf("not newest first at %d: %+v before %+v", i, prev, cur)
		}
	}

	sleep, err := svc.List(ctx, 1, domain.RecommendationSleep)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sleep) != 2 {
		t.Fatalf("expected 2 sleep recommendations, got %d", len(sleep))
	}
	for _, r := range sleep {
		if r.Type != domain.RecommendationSleep || r.UserID != 1 {
			t.Fatalf("filter leaked: %+v", r)
		}
	}
}

func TestRecommendationService_Feedback(t *testing.T) {
	svc, _ := newRecommendationFixture(t)
	ctx := context.Background()
	recs, _ := svc.Generate(ctx, 1)

	rec, err := svc.Feedback(ctx, recs[0].ID, domain.FeedbackPositive)
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}
	if rec.Feedback == nil || *rec.Feedback != domain.FeedbackPositive {
		t.Fatalf("feedback not stored: %+v", rec)
	}

	_, err = svc.Feedback(ctx, recs[0].ID, "meh")
	expectKind(t, err, domain.ErrValidation)

	_, err = svc.Feedback(ctx, 999, domain.FeedbackNegative)
	expectKind(t, err, domain.ErrNotFound)
}

func TestRecommendationService_WorkoutPlan(t *testing.T) {
	svc, repos := newRecommendationFixture(t)
	ctx := context.Background()
	if err := repository.SeedWorkouts(ctx, repos.Workouts, nop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	plan, err := svc.WorkoutPlan(ctx, ports.WorkoutPlanInput{UserID: 1, Goal: "endurance", Level: "beginner"})
	if err != nil {
		t.Fatalf("WorkoutPlan: %v", err)
	}
	if len(plan.Schedule) != 3 || plan.Notes == "" {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	for i, day := range []string{"Monday", "Wednesday", "Friday"} {
		if plan.Schedule[i].Day != day || plan.Schedule[i].Workout == nil {
			t.Fatalf("day %d: %+v", i, plan.Schedule[i])
		}
	}

	_, err = svc.WorkoutPlan(ctx, ports.WorkoutPlanInput{})
	expectKind(t, err, domain.ErrValidation)
}

func TestRecommendationService_Insight(t *testing.T) {
	svc, _ := newRecommendationFixture(t)

	insight, err := svc.Insight(context.Background(), 3, "how do I sleep better")
	if err != nil {
		t.Fatalf("Insight: %v", err)
	}
	if insight.UserID != 3 || insight.Advice != "advice for how do I sleep better" {
		t.Fatalf("unexpected insight: %+v", insight)
	}

	_, err = svc.Insight(context.Background(), 3, "")
	expectKind(t, err, domain.ErrValidation)
}
