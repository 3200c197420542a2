// Package activitylog ships activity and workout session events to an
// append-only log for later analysis.
package activitylog

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
)

const kindWorkoutSession = "workout_session"

func sessionEvent(s *domain.WorkoutSession, now time.Time) ports.ActivityEvent {
	fields := map[string]any{
		"sessionId":      s.ID,
		"workoutId":      s.WorkoutID,
		"elapsedTime":    s.ElapsedTime,
		"caloriesBurned": s.CaloriesBurned,
		"heartRate":      s.HeartRate,
		"completed":      s.Completed,
	}
	return ports.ActivityEvent{UserID: s.UserID, Kind: kindWorkoutSession, Fields: fields, Timestamp: now}
}

// Logger writes events to the structured application log. It is the default
// when no broker is configured.
type Logger struct {
	log zerolog.Logger
}

func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "activitylog").Logger()}
}

func (l *Logger) LogActivity(_ context.Context, userID int64, kind string, fields map[string]any) error {
	l.log.Info().Int64("user_id", userID).Str("kind", kind).Fields(fields).Msg("activity")
	return nil
}

func (l *Logger) LogWorkoutSession(_ context.Context, s *domain.WorkoutSession) error {
	evt := sessionEvent(s, time.Now().UTC())
	l.log.Info().Int64("user_id", evt.UserID).Str("kind", evt.Kind).Fields(evt.Fields).Msg("activity")
	return nil
}
