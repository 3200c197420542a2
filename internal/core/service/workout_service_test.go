package service

import (
	"context"
	"testing"
	"time"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/infrastructure/repository"
)

func newWorkoutFixture(t *testing.T) (*WorkoutService, *mapCache) {
	t.Helper()
	repos := newRepos()
	if err := repository.SeedWorkouts(context.Background(), repos.Workouts, nop()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cache := newMapCache()
	return NewWorkoutService(repos.Workouts, cache, time.Minute, nop()), cache
}

func TestWorkoutService_ListIsCached(t *testing.T) {
	svc, cache := newWorkoutFixture(t)
	ctx := context.Background()

	first, err := svc.List(ctx, ports.WorkoutFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 seeded workouts, got %d", len(first))
	}

	second, err := svc.List(ctx, ports.WorkoutFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if cache.hits != 1 || len(second) != len(first) || second[0].Name != first[0].Name {
		t.Fatalf("expected a cache hit with the same result, hits=%d", cache.hits)
	}
}

func TestWorkoutService_ListFilters(t *testing.T) {
	svc, _ := newWorkoutFixture(t)

	list, err := svc.List(context.Background(), ports.WorkoutFilter{Difficulty: domain.DifficultyBeginner})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) == 0 {
		t.Fatalf("expected beginner workouts")
	}
	for _, w := range list {
		if w.Difficulty != domain.DifficultyBeginner {
			t.Fatalf("filter leaked: %+v", w)
		}
	}
}

func TestWorkoutService_CreateInvalidatesCache(t *testing.T) {
	svc, cache := newWorkoutFixture(t)
	ctx := context.Background()

	if _, err := svc.List(ctx, ports.WorkoutFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	created, err := svc.Create(ctx, &domain.Workout{Name: "HIIT", Type: "cardio", Difficulty: domain.DifficultyAdvanced, Duration: 20})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(cache.deletes) != 1 {
		t.Fatalf("expected cache invalidation")
	}

	list, err := svc.List(ctx, ports.WorkoutFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 4 || list[3].ID != created.ID {
		t.Fatalf("new workout missing after invalidation: %d entries", len(list))
	}
}

func TestWorkoutService_CreateValidationAndGet(t *testing.T) {
	svc, _ := newWorkoutFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.Workout{Name: "X", Type: "cardio", Difficulty: "extreme"})
	expectKind(t, err, domain.ErrValidation)

	_, err = svc.Get(ctx, 999)
	expectKind(t, err, domain.ErrNotFound)
}
