package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
)

// catalog is the reference workout set loaded into an empty store.
var catalog = []domain.Workout{
	{
		Name:         "Morning Cardio",
		Type:         "cardio",
		Description:  "A quick morning cardio routine to get your heart pumping",
		Difficulty:   domain.DifficultyBeginner,
		Duration:     30,
		CaloriesBurn: 250,
		Exercises: []domain.Exercise{
			{Name: "Jumping Jacks", Sets: 3, Reps: 20},
			{Name: "High Knees", Sets: 3, Reps: 20},
			{Name: "Mountain Climbers", Sets: 3, Reps: 15},
		},
	},
	{
		Name:         "Full Body Strength",
		Type:         "strength",
		Description:  "A comprehensive strength workout targeting all major muscle groups",
		Difficulty:   domain.DifficultyIntermediate,
		Duration:     45,
		CaloriesBurn: 350,
		Exercises: []domain.Exercise{
			{Name: "Push-ups", Sets: 3, Reps: 12},
			{Name: "Squats", Sets: 3, Reps: 15},
			{Name: "Lunges", Sets: 3, Reps: 10},
			{Name: "Plank", Sets: 3, Reps: 1, Duration: 60},
		},
	},
	{
		Name:         "Yoga Flow",
		Type:         "flexibility",
		Description:  "A relaxing yoga flow to improve flexibility and reduce stress",
		Difficulty:   domain.DifficultyBeginner,
		Duration:     40,
		CaloriesBurn: 150,
		Exercises: []domain.Exercise{
			{Name: "Sun Salutation", Sets: 3, Reps: 1},
			{Name: "Warrior Pose", Sets: 2, Reps: 1},
			{Name: "Downward Dog", Sets: 2, Reps: 1},
			{Name: "Child's Pose", Sets: 1, Reps: 1},
		},
	},
}

// SeedWorkouts loads the catalog when the workouts collection is empty.
func SeedWorkouts(ctx context.Context, repo ports.WorkoutRepository, log zerolog.Logger) error {
	existing, err := repo.List(ctx, ports.WorkoutFilter{})
	if err != nil {
		return fmt.Errorf("seed workouts: %w", err)
	}
	if len(existing) > 0 {
		log.Debug().Int("count", len(existing)).Msg("workout catalog already present")
		return nil
	}

	for i := range catalog {
		w := catalog[i]
		w.Exercises = append([]domain.Exercise(nil), catalog[i].Exercises...)
		if _, err := repo.Create(ctx, &w); err != nil {
			return fmt.Errorf("seed workout %q: %w", w.Name, err)
		}
	}
	log.Info().Int("count", len(catalog)).Msg("workout catalog seeded")
	return nil
}
