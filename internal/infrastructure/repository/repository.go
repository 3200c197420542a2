// Package repository adapts typed store collections to the ports repository
// interfaces. It is backend agnostic: the collections may live in memory or
// in MongoDB.
package repository

import (
	"errors"
	"fmt"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/store"
)

// Collections groups one collection per entity.
type Collections struct {
	Users           store.Collection[domain.User]
	Goals           store.Collection[domain.Goal]
	ActivityStats   store.Collection[domain.ActivityStat]
	Workouts        store.Collection[domain.Workout]
	WorkoutSessions store.Collection[domain.WorkoutSession]
	Challenges      store.Collection[domain.Challenge]
	Participants    store.Collection[domain.ChallengeParticipant]
	Recommendations store.Collection[domain.Recommendation]
}

// MemoryCollections returns empty in-memory collections.
func MemoryCollections() Collections {
	return Collections{
		Users:           store.NewMemory[domain.User](),
		Goals:           store.NewMemory[domain.Goal](),
		ActivityStats:   store.NewMemory[domain.ActivityStat](),
		Workouts:        store.NewMemory[domain.Workout](),
		WorkoutSessions: store.NewMemory[domain.WorkoutSession](),
		Challenges:      store.NewMemory[domain.Challenge](),
		Participants:    store.NewMemory[domain.ChallengeParticipant](),
		Recommendations: store.NewMemory[domain.Recommendation](),
	}
}

// Repositories bundles every repository built over a Collections set.
type Repositories struct {
	Users           *UserRepository
	Goals           *GoalRepository
	ActivityStats   *ActivityStatRepository
	Workouts        *WorkoutRepository
	WorkoutSessions *WorkoutSessionRepository
	Challenges      *ChallengeRepository
	Participants    *ParticipantRepository
	Recommendations *RecommendationRepository
}

func New(c Collections) *Repositories {
	return &Repositories{
		Users:           &UserRepository{col: c.Users},
		Goals:           &GoalRepository{col: c.Goals},
		ActivityStats:   &ActivityStatRepository{col: c.ActivityStats},
		Workouts:        &WorkoutRepository{col: c.Workouts},
		WorkoutSessions: &WorkoutSessionRepository{col: c.WorkoutSessions},
		Challenges:      &ChallengeRepository{col: c.Challenges},
		Participants:    &ParticipantRepository{col: c.Participants},
		Recommendations: &RecommendationRepository{col: c.Recommendations},
	}
}

// conflict turns a unique index violation into a client-facing domain error.
func conflict(err error, message string) error {
	if errors.Is(err, store.ErrDuplicate) {
		return domain.Errorf(domain.ErrConflict, "%s", message)
	}
	return err
}

// notFound converts the store sentinel into a client-facing domain error.
func notFound(err error, entity string, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return domain.NotFound(entity, id)
	}
	if errors.Is(err, store.ErrDuplicate) {
		return domain.Errorf(domain.ErrConflict, "%s %d conflicts with an existing record", entity, id)
	}
	return fmt.Errorf("%s %d: %w", entity, id, err)
}
