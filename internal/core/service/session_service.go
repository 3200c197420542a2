package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/observability/metrics"
)

type WorkoutSessionService struct {
	sessions ports.WorkoutSessionRepository
	workouts ports.WorkoutRepository
	users    ports.UserRepository
	stats    ports.ActivityService
	activity ports.ActivityLogger
	now      func() time.Time
	log      zerolog.Logger
}

func NewWorkoutSessionService(
	sessions ports.WorkoutSessionRepository,
	workouts ports.WorkoutRepository,
	users ports.UserRepository,
	stats ports.ActivityService,
	activity ports.ActivityLogger,
	log zerolog.Logger,
) *WorkoutSessionService {
	return &WorkoutSessionService{
		sessions: sessions,
		workouts: workouts,
		users:    users,
		stats:    stats,
		activity: activity,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

func (s *WorkoutSessionService) Start(ctx context.Context, in ports.StartSessionInput) (*domain.WorkoutSession, error) {
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		return nil, err
	}
	if _, err := s.workouts.FindByID(ctx, in.WorkoutID); err != nil {
		return nil, err
	}

	start := in.StartTime
	if start.IsZero() {
		start = s.now()
	}

	session, err := s.sessions.Create(ctx, &domain.WorkoutSession{
		UserID:    in.UserID,
		WorkoutID: in.WorkoutID,
		StartTime: start,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", in.UserID).Int64("session_id", session.ID).Int64("workout_id", in.WorkoutID).Msg("workout session started")
	return session, nil
}

func (s *WorkoutSessionService) ListByUser(ctx context.Context, userID int64) ([]ports.SessionWithWorkout, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	workouts := make(map[int64]*domain.Workout)
	out := make([]ports.SessionWithWorkout, 0, len(sessions))
	for _, session := range sessions {
		w, seen := workouts[session.WorkoutID]
		if !seen {
			w, err = s.workouts.FindByID(ctx, session.WorkoutID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			workouts[session.WorkoutID] = w
		}
		out = append(out, ports.SessionWithWorkout{WorkoutSession: session, Workout: w})
	}
	return out, nil
}

func (s *WorkoutSessionService) Update(ctx context.Context, id int64, p ports.SessionPatch) (*domain.WorkoutSession, error) {
	if (p.ElapsedTime != nil && *p.ElapsedTime < 0) || (p.CaloriesBurned != nil && *p.CaloriesBurned < 0) {
		return nil, domain.Errorf(domain.ErrValidation, "elapsedTime and caloriesBurned must not be negative")
	}

	var completing bool
	session, err := s.sessions.Update(ctx, id, func(ws *domain.WorkoutSession) error {
		wasCompleted := ws.Completed
		if p.EndTime != nil {
			ws.EndTime = p.EndTime
		}
		setIf(&ws.ElapsedTime, p.ElapsedTime)
		setIf(&ws.CaloriesBurned, p.CaloriesBurned)
		setIf(&ws.HeartRate, p.HeartRate)
		setIf(&ws.Completed, p.Completed)
		completing = p.Completed != nil && *p.Completed && !wasCompleted && ws.EndTime != nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !completing {
		return session, nil
	}

	if _, err := s.stats.AddWorkout(ctx, session.UserID, s.now(), session.CaloriesBurned, session.ActiveMinutes()); err != nil {
		return nil, err
	}
	metrics.WorkoutSessionsCompletedTotal.Inc()

	if err := s.activity.LogWorkoutSession(ctx, session); err != nil {
		metrics.ActivityLogErrorsTotal.Inc()
		s.log.Warn().Err(err).Int64("session_id", session.ID).Msg("failed to write session to activity log")
	}

	s.log.Info().
		Int64("user_id", session.UserID).
		Int64("session_id", session.ID).
		Float64("calories", session.CaloriesBurned).
		Int("minutes", session.ActiveMinutes()).
		Msg("workout session completed")
	return session, nil
}
