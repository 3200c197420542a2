package repository

import (
	"context"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/store"
)

type WorkoutRepository struct {
	col store.Collection[domain.Workout]
}

func (r *WorkoutRepository) Create(ctx context.Context, w *domain.Workout) (*domain.Workout, error) {
	return r.col.Create(ctx, w)
}

func (r *WorkoutRepository) FindByID(ctx context.Context, id int64) (*domain.Workout, error) {
	w, err := r.col.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Workout", id)
	}
	return w, nil
}

func (r *WorkoutRepository) List(ctx context.Context, f ports.WorkoutFilter) ([]*domain.Workout, error) {
	var filter store.Filter
	if f.Type != "" {
		filter = append(filter, store.Eq("type", f.Type))
	}
	if f.Difficulty != "" {
		filter = append(filter, store.Eq("difficulty", f.Difficulty))
	}
	return r.col.FindAll(ctx, filter)
}

type WorkoutSessionRepository struct {
	col store.Collection[domain.WorkoutSession]
}

func (r *WorkoutSessionRepository) Create(ctx context.Context, s *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	return r.col.Create(ctx, s)
}

func (r *WorkoutSessionRepository) FindByID(ctx context.Context, id int64) (*domain.WorkoutSession, error) {
	s, err := r.col.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "WorkoutSession", id)
	}
	return s, nil
}

func (r *WorkoutSessionRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.WorkoutSession, error) {
	return r.col.FindAll(ctx, store.Where(store.Eq("user_id", userID)))
}

func (r *WorkoutSessionRepository) Update(ctx context.Context, id int64, mutate func(*domain.WorkoutSession) error) (*domain.WorkoutSession, error) {
	s, err := r.col.Update(ctx, id, mutate)
	if err != nil {
		return nil, notFound(err, "WorkoutSession", id)
	}
	return s, nil
}
