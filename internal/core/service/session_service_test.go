package service

import (
	"context"
	"testing"
	"time"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/infrastructure/repository"
)

type sessionFixture struct {
	svc     *WorkoutSessionService
	stats   *ActivityService
	repos   *repository.Repositories
	user    *domain.User
	workout *domain.Workout
	log     *stubActivityLog
}

func newSessionFixture(t *testing.T) sessionFixture {
	t.Helper()
	repos := newRepos()
	user := createUser(t, repos, "alice")
	for _, g := range domain.DefaultGoals(user.ID) {
		if _, err := repos.Goals.Create(context.Background(), g); err != nil {
			t.Fatalf("create goal: %v", err)
		}
	}
	workout, err := repos.Workouts.Create(context.Background(), &domain.Workout{
		Name: "Morning Cardio", Type: "cardio", Difficulty: domain.DifficultyBeginner, Duration: 30,
	})
	if err != nil {
		t.Fatalf("create workout: %v", err)
	}

	log := &stubActivityLog{}
	stats := NewActivityService(repos.ActivityStats, repos.Goals, log, nop())
	stats.now = func() time.Time { return today }
	svc := NewWorkoutSessionService(repos.WorkoutSessions, repos.Workouts, repos.Users, stats, log, nop())
	svc.now = func() time.Time { return today }
	return sessionFixture{svc: svc, stats: stats, repos: repos, user: user, workout: workout, log: log}
}

func ptr[T any](v T) *T { return &v }

func TestSessionService_Start(t *testing.T) {
	f := newSessionFixture(t)

	s, err := f.svc.Start(context.Background(), ports.StartSessionInput{UserID: f.user.ID, WorkoutID: f.workout.ID})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.StartTime.Equal(today) || s.Completed {
		t.Fatalf("unexpected session: %+v", s)
	}

	_, err = f.svc.Start(context.Background(), ports.StartSessionInput{UserID: f.user.ID, WorkoutID: 999})
	expectKind(t, err, domain.ErrNotFound)

	_, err = f.svc.Start(context.Background(), ports.StartSessionInput{UserID: 999, WorkoutID: f.workout.ID})
	expectKind(t, err, domain.ErrNotFound)
}

func TestSessionService_CompleteAddsToTodaysStats(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	s, err := f.svc.Start(ctx, ports.StartSessionInput{UserID: f.user.ID, WorkoutID: f.workout.ID})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	end := today.Add(30 * time.Minute)
	patch := ports.SessionPatch{
		EndTime:        &end,
		ElapsedTime:    ptr(1800),
		CaloriesBurned: ptr(250.0),
		Completed:      ptr(true),
	}
	if _, err := f.svc.Update(ctx, s.ID, patch); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stat, err := f.repos.ActivityStats.FindByUserAndDate(ctx, f.user.ID, today)
	if err != nil {
		t.Fatalf("expected today's stat to exist: %v", err)
	}
	if stat.Calories != 250 || stat.ActiveMinutes != 30 {
		t.Fatalf("unexpected totals: %+v", stat)
	}
	goals := goalsByType(t, f.repos, f.user.ID)
	if goals[domain.GoalCalories].Current != 250 || goals[domain.GoalActiveMinutes].Current != 30 {
		t.Fatalf("goals not synced after completion: calories=%v minutes=%v",
			goals[domain.GoalCalories].Current, goals[domain.GoalActiveMinutes].Current)
	}
	if len(f.log.sessions) != 1 || f.log.sessions[0] != s.ID {
		t.Fatalf("session not written to activity log: %v", f.log.sessions)
	}

	// Re-sending the completion does not count twice.
	if _, err := f.svc.Update(ctx, s.ID, patch); err != nil {
		t.Fatalf("Update: %v", err)
	}
	stat, _ = f.repos.ActivityStats.FindByUserAndDate(ctx, f.user.ID, today)
	if stat.Calories != 250 || stat.ActiveMinutes != 30 {
		t.Fatalf("completion counted twice: %+v", stat)
	}
}

func TestSessionService_CompleteAddsOntoExistingStats(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	if _, _, err := f.stats.Record(ctx, ports.RecordActivityInput{UserID: f.user.ID, Calories: ptr(100.0), ActiveMinutes: ptr(10)}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	s, _ := f.svc.Start(ctx, ports.StartSessionInput{UserID: f.user.ID, WorkoutID: f.workout.ID})

	end := today
	if _, err := f.svc.Update(ctx, s.ID, ports.SessionPatch{
		EndTime: &end, ElapsedTime: ptr(1799), CaloriesBurned: ptr(50.0), Completed: ptr(true),
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stat, _ := f.repos.ActivityStats.FindByUserAndDate(ctx, f.user.ID, today)
	if stat.Calories != 150 || stat.ActiveMinutes != 39 {
		t.Fatalf("unexpected totals: %+v", stat)
	}
}

func TestSessionService_CompleteWithoutEndTimeIsNotCounted(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	s, _ := f.svc.Start(ctx, ports.StartSessionInput{UserID: f.user.ID, WorkoutID: f.workout.ID})

	updated, err := f.svc.Update(ctx, s.ID, ports.SessionPatch{CaloriesBurned: ptr(250.0), Completed: ptr(true)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("patch not applied")
	}
	if _, err := f.repos.ActivityStats.FindByUserAndDate(ctx, f.user.ID, today); err == nil {
		t.Fatalf("no stat expected without an end time")
	}
}

func TestSessionService_UpdateMissing(t *testing.T) {
	f := newSessionFixture(t)
	_, err := f.svc.Update(context.Background(), 404, ports.SessionPatch{HeartRate: ptr(120)})
	expectKind(t, err, domain.ErrNotFound)
}

func TestSessionService_ListEmbedsWorkout(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := f.svc.Start(ctx, ports.StartSessionInput{UserID: f.user.ID, WorkoutID: f.workout.ID}); err != nil {
			t.Fatalf("Start: %v", err)
		}
	}

	list, err := f.svc.ListByUser(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
	for _, s := range list {
		if s.Workout == nil || s.Workout.Name != "Morning Cardio" {
			t.Fatalf("workout not embedded: %+v", s)
		}
	}
}
