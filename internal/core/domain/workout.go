package domain

import (
	"slices"
	"time"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Exercise is a single movement inside a workout.
type Exercise struct {
	Name     string `json:"name" bson:"name"`
	Sets     int    `json:"sets,omitempty" bson:"sets,omitempty"`
	Reps     int    `json:"reps,omitempty" bson:"reps,omitempty"`
	Duration int    `json:"duration,omitempty" bson:"duration,omitempty"`
}

// Workout is a catalog entry.
type Workout struct {
	Model        `bson:",inline"`
	Name         string     `json:"name" bson:"name"`
	Type         string     `json:"type" bson:"type"`
	Description  string     `json:"description" bson:"description"`
	Difficulty   string     `json:"difficulty" bson:"difficulty"`
	Duration     int        `json:"duration" bson:"duration"`
	CaloriesBurn int        `json:"caloriesBurn" bson:"calories_burn"`
	Exercises    []Exercise `json:"exercises" bson:"exercises"`
}

func (w *Workout) Field(name string) (any, bool) {
	switch name {
	case "name":
		return w.Name, true
	case "type":
		return w.Type, true
	case "difficulty":
		return w.Difficulty, true
	case "duration":
		return w.Duration, true
	}
	return w.modelField(name)
}

func (w *Workout) Clone() Workout {
	out := *w
	out.Exercises = slices.Clone(w.Exercises)
	return out
}

// WorkoutSession is one user's run through a workout.
type WorkoutSession struct {
	Model          `bson:",inline"`
	UserID         int64      `json:"userId" bson:"user_id"`
	WorkoutID      int64      `json:"workoutId" bson:"workout_id"`
	StartTime      time.Time  `json:"startTime" bson:"start_time"`
	EndTime        *time.Time `json:"endTime" bson:"end_time,omitempty"`
	ElapsedTime    int        `json:"elapsedTime" bson:"elapsed_time"`
	CaloriesBurned float64    `json:"caloriesBurned" bson:"calories_burned"`
	HeartRate      int        `json:"heartRate" bson:"heart_rate"`
	Completed      bool       `json:"completed" bson:"completed"`
}

func (s *WorkoutSession) Field(name string) (any, bool) {
	switch name {
	case "user_id":
		return s.UserID, true
	case "workout_id":
		return s.WorkoutID, true
	case "completed":
		return s.Completed, true
	case "start_time":
		return s.StartTime, true
	}
	return s.modelField(name)
}

// ActiveMinutes is the whole number of minutes spent in the session.
func (s *WorkoutSession) ActiveMinutes() int {
	return s.ElapsedTime / 60
}

func (s *WorkoutSession) Clone() WorkoutSession {
	out := *s
	out.EndTime = clonePtr(s.EndTime)
	return out
}
