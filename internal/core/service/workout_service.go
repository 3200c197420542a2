package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/observability/metrics"
)

const (
	workoutCachePrefix     = "workouts:"
	defaultWorkoutCacheTTL = 5 * time.Minute
)

// WorkoutService serves the workout catalog, caching list queries.
type WorkoutService struct {
	repo  ports.WorkoutRepository
	cache ports.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewWorkoutService(repo ports.WorkoutRepository, cache ports.Cache, ttl time.Duration, log zerolog.Logger) *WorkoutService {
	if ttl <= 0 {
		ttl = defaultWorkoutCacheTTL
	}
	return &WorkoutService{repo: repo, cache: cache, ttl: ttl, log: log}
}

func (s *WorkoutService) List(ctx context.Context, f ports.WorkoutFilter) ([]*domain.Workout, error) {
	key := fmt.Sprintf("%slist:%s:%s", workoutCachePrefix, f.Type, f.Difficulty)

	data, found, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
	case found:
		var cached []*domain.Workout
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		s.log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	default:
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	workouts, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(workouts); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache store failed")
		}
	}
	return workouts, nil
}

func (s *WorkoutService) Get(ctx context.Context, id int64) (*domain.Workout, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *WorkoutService) Create(ctx context.Context, w *domain.Workout) (*domain.Workout, error) {
	if w.Name == "" || w.Type == "" {
		return nil, domain.Errorf(domain.ErrValidation, "name and type are required")
	}
	switch w.Difficulty {
	case domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced:
	default:
		return nil, domain.Errorf(domain.ErrValidation, "difficulty must be one of: beginner intermediate advanced")
	}

	created, err := s.repo.Create(ctx, w)
	if err != nil {
		return nil, err
	}

	if err := s.cache.DeletePrefix(ctx, workoutCachePrefix); err != nil {
		s.log.Warn().Err(err).Msg("cache invalidation failed")
	}
	s.log.Info().Int64("workout_id", created.ID).Str("name", created.Name).Msg("workout created")
	return created, nil
}
