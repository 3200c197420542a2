package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/store"
)

type ActivityStatRepository struct {
	col store.Collection[domain.ActivityStat]
}

func (r *ActivityStatRepository) Create(ctx context.Context, s *domain.ActivityStat) (*domain.ActivityStat, error) {
	s.Date = domain.Day(s.Date)
	created, err := r.col.Create(ctx, s)
	if err != nil {
		return nil, conflict(err, "Activity stats for this day already exist")
	}
	return created, nil
}

func (r *ActivityStatRepository) FindByUserAndDate(ctx context.Context, userID int64, date time.Time) (*domain.ActivityStat, error) {
	s, err := r.col.FindOne(ctx, store.Where(
		store.Eq("user_id", userID),
		store.Eq("date", domain.Day(date)),
	))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "No activity stats for %s", domain.Day(date).Format(domain.DateLayout))
		}
		return nil, fmt.Errorf("find activity stats: %w", err)
	}
	return s, nil
}

func (r *ActivityStatRepository) ListByUserSince(ctx context.Context, userID int64, since time.Time) ([]*domain.ActivityStat, error) {
	return r.col.FindAll(ctx, store.Where(
		store.Eq("user_id", userID),
		store.Gte("date", since),
	))
}

func (r *ActivityStatRepository) Update(ctx context.Context, id int64, mutate func(*domain.ActivityStat) error) (*domain.ActivityStat, error) {
	s, err := r.col.Update(ctx, id, mutate)
	if err != nil {
		return nil, notFound(err, "ActivityStat", id)
	}
	return s, nil
}
