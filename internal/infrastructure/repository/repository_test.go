package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/store"
)

func TestActivityStatRepository_FindByUserAndDateIgnoresTimeOfDay(t *testing.T) {
	repos := New(MemoryCollections())
	ctx := context.Background()
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	if _, err := repos.ActivityStats.Create(ctx, &domain.ActivityStat{UserID: 1, Date: day.Add(15 * time.Hour), Steps: 10}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repos.ActivityStats.FindByUserAndDate(ctx, 1, day.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Steps != 10 || !got.Date.Equal(day) {
		t.Fatalf("unexpected row: %+v", got)
	}

	if _, err := repos.ActivityStats.FindByUserAndDate(ctx, 2, day); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParticipantRepository_NotFoundMessage(t *testing.T) {
	repos := New(MemoryCollections())

	_, err := repos.Participants.FindByChallengeAndUser(context.Background(), 1, 1)
	var derr *domain.Error
	if !errors.As(err, &derr) || derr.Message != "Challenge participation not found" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWorkoutRepository_ListFilters(t *testing.T) {
	repos := New(MemoryCollections())
	ctx := context.Background()
	if err := SeedWorkouts(ctx, repos.Workouts, zerolog.Nop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	all, _ := repos.Workouts.List(ctx, ports.WorkoutFilter{})
	if len(all) != 3 {
		t.Fatalf("expected 3 workouts, got %d", len(all))
	}

	beginner, _ := repos.Workouts.List(ctx, ports.WorkoutFilter{Difficulty: domain.DifficultyBeginner})
	if len(beginner) != 2 {
		t.Fatalf("expected 2 beginner workouts, got %d", len(beginner))
	}

	cardio, _ := repos.Workouts.List(ctx, ports.WorkoutFilter{Type: "cardio", Difficulty: domain.DifficultyBeginner})
	if len(cardio) != 1 || cardio[0].Name != "Morning Cardio" {
		t.Fatalf("unexpected cardio result: %+v", cardio)
	}

	// Seeding twice is a no-op.
	if err := SeedWorkouts(ctx, repos.Workouts, zerolog.Nop()); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	all, _ = repos.Workouts.List(ctx, ports.WorkoutFilter{})
	if len(all) != 3 {
		t.Fatalf("expected catalog to stay at 3, got %d", len(all))
	}
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	repos := New(MemoryCollections())

	_, err := repos.Users.Update(context.Background(), 9, func(*domain.User) error { return nil })
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// duplicateCollection fails every write the way a unique index would.
type duplicateCollection[T any] struct {
	store.Collection[T]
}

func (duplicateCollection[T]) Create(context.Context, *T) (*T, error) {
	return nil, store.ErrDuplicate
}

func (duplicateCollection[T]) Update(context.Context, int64, func(*T) error) (*T, error) {
	return nil, store.ErrDuplicate
}

func TestRepositories_DuplicateKeyIsConflict(t *testing.T) {
	cols := MemoryCollections()
	cols.Users = duplicateCollection[domain.User]{cols.Users}
	cols.Participants = duplicateCollection[domain.ChallengeParticipant]{cols.Participants}
	cols.ActivityStats = duplicateCollection[domain.ActivityStat]{cols.ActivityStats}
	repos := New(cols)
	ctx := context.Background()

	if _, err := repos.Users.Create(ctx, &domain.User{Username: "bob"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("user create: expected ErrConflict, got %v", err)
	}
	if _, err := repos.Users.Update(ctx, 1, func(*domain.User) error { return nil }); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("user update: expected ErrConflict, got %v", err)
	}
	if _, err := repos.Participants.Create(ctx, &domain.ChallengeParticipant{ChallengeID: 1, UserID: 1}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("participant create: expected ErrConflict, got %v", err)
	}
	if _, err := repos.ActivityStats.Create(ctx, &domain.ActivityStat{UserID: 1}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("stat create: expected ErrConflict, got %v", err)
	}
}
