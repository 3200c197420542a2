package repository

import (
	"context"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/store"
)

type RecommendationRepository struct {
	col store.Collection[domain.Recommendation]
}

func (r *RecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error) {
	return r.col.Create(ctx, rec)
}

func (r *RecommendationRepository) ListByUser(ctx context.Context, userID int64, recType string) ([]*domain.Recommendation, error) {
	filter := store.Where(store.Eq("user_id", userID))
	if recType != "" {
		filter = append(filter, store.Eq("type", recType))
	}
	return r.col.FindAll(ctx, filter)
}

func (r *RecommendationRepository) Update(ctx context.Context, id int64, mutate func(*domain.Recommendation) error) (*domain.Recommendation, error) {
	rec, err := r.col.Update(ctx, id, mutate)
	if err != nil {
		return nil, notFound(err, "Recommendation", id)
	}
	return rec, nil
}
