package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/observability/metrics"
)

// ActivityService owns daily activity stats and the goal progress derived
// from them. Writes to the same (user, day) row are serialised.
type ActivityService struct {
	stats    ports.ActivityStatRepository
	goals    ports.GoalRepository
	activity ports.ActivityLogger
	locks    *keyedMutex
	now      func() time.Time
	log      zerolog.Logger
}

func NewActivityService(
	stats ports.ActivityStatRepository,
	goals ports.GoalRepository,
	activity ports.ActivityLogger,
	log zerolog.Logger,
) *ActivityService {
	return &ActivityService{
		stats:    stats,
		goals:    goals,
		activity: activity,
		locks:    newKeyedMutex(),
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

func (s *ActivityService) ForDate(ctx context.Context, userID int64, date time.Time) (*domain.ActivityStat, error) {
	if date.IsZero() {
		date = s.now()
	}
	day := domain.Day(date)

	unlock := s.locks.Lock(dayKey(userID, day))
	defer unlock()

	return s.findOrCreate(ctx, userID, day)
}

func (s *ActivityService) Record(ctx context.Context, in ports.RecordActivityInput) (*domain.ActivityStat, bool, error) {
	if in.UserID <= 0 {
		return nil, false, domain.Errorf(domain.ErrValidation, "userId is required")
	}
	if negative(in.Steps) || negative(in.Calories) || negative(in.ActiveMinutes) || negative(in.Sleep) || negative(in.Water) {
		return nil, false, domain.Errorf(domain.ErrValidation, "activity values must not be negative")
	}
	if in.Date.IsZero() {
		in.Date = s.now()
	}
	day := domain.Day(in.Date)

	unlock := s.locks.Lock(dayKey(in.UserID, day))
	defer unlock()

	apply := func(a *domain.ActivityStat) error {
		setIf(&a.Steps, in.Steps)
		setIf(&a.Calories, in.Calories)
		setIf(&a.ActiveMinutes, in.ActiveMinutes)
		setIf(&a.Sleep, in.Sleep)
		setIf(&a.Water, in.Water)
		return nil
	}

	var (
		stat    *domain.ActivityStat
		created bool
	)
	existing, err := s.stats.FindByUserAndDate(ctx, in.UserID, day)
	switch {
	case err == nil:
		stat, err = s.stats.Update(ctx, existing.ID, apply)
	case errors.Is(err, domain.ErrNotFound):
		fresh := &domain.ActivityStat{UserID: in.UserID, Date: day}
		_ = apply(fresh)
		stat, err = s.stats.Create(ctx, fresh)
		created = true
	}
	if err != nil {
		return nil, false, err
	}

	if err := s.syncGoals(ctx, stat); err != nil {
		return nil, false, err
	}

	result := "updated"
	if created {
		result = "created"
	}
	metrics.ActivityStatWritesTotal.WithLabelValues(result).Inc()

	s.logActivity(ctx, in.UserID, "daily_stats", map[string]any{
		"date":          day.Format(domain.DateLayout),
		"steps":         stat.Steps,
		"calories":      stat.Calories,
		"activeMinutes": stat.ActiveMinutes,
		"sleep":         stat.Sleep,
		"water":         stat.Water,
	})

	s.log.Info().Int64("user_id", in.UserID).Str("date", day.Format(domain.DateLayout)).Str("result", result).Msg("activity stats recorded")
	return stat, created, nil
}

// History returns the rows of the last days calendar days, today included,
// newest first.
func (s *ActivityService) History(ctx context.Context, userID int64, days int) ([]*domain.ActivityStat, error) {
	if days <= 0 {
		return nil, domain.Errorf(domain.ErrValidation, "days must be greater than 0")
	}
	since := domain.Day(s.now()).AddDate(0, 0, -(days - 1))

	rows, err := s.stats.ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return rows, nil
}

func (s *ActivityService) AddWorkout(ctx context.Context, userID int64, date time.Time, calories float64, minutes int) (*domain.ActivityStat, error) {
	day := domain.Day(date)

	unlock := s.locks.Lock(dayKey(userID, day))
	defer unlock()

	stat, err := s.findOrCreate(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	stat, err = s.stats.Update(ctx, stat.ID, func(a *domain.ActivityStat) error {
		a.Calories += calories
		a.ActiveMinutes += minutes
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.syncGoals(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

// findOrCreate must be called with the day lock held.
func (s *ActivityService) findOrCreate(ctx context.Context, userID int64, day time.Time) (*domain.ActivityStat, error) {
	stat, err := s.stats.FindByUserAndDate(ctx, userID, day)
	if err == nil {
		return stat, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.stats.Create(ctx, &domain.ActivityStat{UserID: userID, Date: day})
}

// syncGoals copies the stat values onto the user's matching goals.
func (s *ActivityService) syncGoals(ctx context.Context, stat *domain.ActivityStat) error {
	goals, err := s.goals.ListByUser(ctx, stat.UserID)
	if err != nil {
		return fmt.Errorf("load goals: %w", err)
	}
	for _, g := range goals {
		value, ok := stat.GoalValue(g.Type)
		if !ok || value == g.Current {
			continue
		}
		if _, err := s.goals.Update(ctx, g.ID, func(goal *domain.Goal) error {
			goal.Current = value
			return nil
		}); err != nil {
			return fmt.Errorf("update goal %d: %w", g.ID, err)
		}
	}
	return nil
}

func (s *ActivityService) logActivity(ctx context.Context, userID int64, kind string, fields map[string]any) {
	if err := s.activity.LogActivity(ctx, userID, kind, fields); err != nil {
		metrics.ActivityLogErrorsTotal.Inc()
		s.log.Warn().Err(err).Int64("user_id", userID).Str("kind", kind).Msg("failed to write activity log")
	}
}

func negative[T int | float64](v *T) bool {
	return v != nil && *v < 0
}

func dayKey(userID int64, day time.Time) string {
	return fmt.Sprintf("%d:%s", userID, day.Format(domain.DateLayout))
}
