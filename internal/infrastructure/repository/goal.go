package repository

import (
	"context"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/store"
)

type GoalRepository struct {
	col store.Collection[domain.Goal]
}

func (r *GoalRepository) Create(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	return r.col.Create(ctx, g)
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Goal, error) {
	return r.col.FindAll(ctx, store.Where(store.Eq("user_id", userID)))
}

func (r *GoalRepository) Update(ctx context.Context, id int64, mutate func(*domain.Goal) error) (*domain.Goal, error) {
	g, err := r.col.Update(ctx, id, mutate)
	if err != nil {
		return nil, notFound(err, "Goal", id)
	}
	return g, nil
}
