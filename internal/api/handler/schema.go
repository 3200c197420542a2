package handler

import (
	"time"

	"github.com/healthhub/fitness-api/internal/core/domain"
)

// --- Request / Response types ---

type registerRequest struct {
	Username     string   `json:"username"`
	Password     string   `json:"password"`
	Email        string   `json:"email"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	ProfileImage *string  `json:"profileImage"`
	Height       *float64 `json:"height"`
	Weight       *float64 `json:"weight"`
	Age          *int     `json:"age"`
	Gender       *string  `json:"gender"`
	Location     *string  `json:"location"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the user flattened next to the bearer token.
type loginResponse struct {
	*domain.User
	Token string `json:"token"`
}

type updateUserRequest struct {
	Username      *string  `json:"username"      validate:"omitempty,min=3,max=50"`
	Email         *string  `json:"email"         validate:"omitempty,email"`
	FirstName     *string  `json:"firstName"`
	LastName      *string  `json:"lastName"`
	ProfileImage  *string  `json:"profileImage"`
	Height        *float64 `json:"height"        validate:"omitempty,gt=0"`
	Weight        *float64 `json:"weight"        validate:"omitempty,gt=0"`
	Age           *int     `json:"age"           validate:"omitempty,gt=0"`
	Gender        *string  `json:"gender"`
	Location      *string  `json:"location"`
	ActivityLevel *int     `json:"activityLevel" validate:"omitempty,min=1,max=10"`
	FitnessGoal   *string  `json:"fitnessGoal"`
}

// recordActivityRequest fields left out of the body keep their stored value.
type recordActivityRequest struct {
	UserID        int64    `json:"userId"        validate:"required,gt=0"`
	Date          string   `json:"date"`
	Steps         *int     `json:"steps"         validate:"omitempty,gte=0"`
	Calories      *float64 `json:"calories"      validate:"omitempty,gte=0"`
	ActiveMinutes *int     `json:"activeMinutes" validate:"omitempty,gte=0"`
	Sleep         *float64 `json:"sleep"         validate:"omitempty,gte=0"`
	Water         *float64 `json:"water"         validate:"omitempty,gte=0"`
}

type createGoalRequest struct {
	UserID      int64      `json:"userId"   validate:"required,gt=0"`
	Type        string     `json:"type"     validate:"required,oneof=steps calories active_minutes activeMinutes water custom"`
	Target      float64    `json:"target"   validate:"gte=0"`
	Period      string     `json:"period"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}

type updateGoalRequest struct {
	Target      *float64   `json:"target"  validate:"omitempty,gte=0"`
	Current     *float64   `json:"current" validate:"omitempty,gte=0"`
	Period      *string    `json:"period"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}

type exerciseRequest struct {
	Name     string `json:"name"     validate:"required"`
	Sets     int    `json:"sets"     validate:"gte=0"`
	Reps     int    `json:"reps"     validate:"gte=0"`
	Duration int    `json:"duration" validate:"gte=0"`
}

type createWorkoutRequest struct {
	Name         string            `json:"name"         validate:"required"`
	Type         string            `json:"type"         validate:"required"`
	Description  string            `json:"description"`
	Difficulty   string            `json:"difficulty"   validate:"required,oneof=beginner intermediate advanced"`
	Duration     int               `json:"duration"     validate:"gt=0"`
	CaloriesBurn int               `json:"caloriesBurn" validate:"gte=0"`
	Exercises    []exerciseRequest `json:"exercises"    validate:"dive"`
}

type startSessionRequest struct {
	UserID    int64      `json:"userId"    validate:"required,gt=0"`
	WorkoutID int64      `json:"workoutId" validate:"required,gt=0"`
	StartTime *time.Time `json:"startTime"`
}

type updateSessionRequest struct {
	EndTime        *time.Time `json:"endTime"`
	ElapsedTime    *int       `json:"elapsedTime"    validate:"omitempty,gte=0"`
	CaloriesBurned *float64   `json:"caloriesBurned" validate:"omitempty,gte=0"`
	HeartRate      *int       `json:"heartRate"      validate:"omitempty,gte=0"`
	Completed      *bool      `json:"completed"`
}

type createChallengeRequest struct {
	Name        string    `json:"name"      validate:"required"`
	Description string    `json:"description"`
	Type        string    `json:"type"      validate:"required"`
	Target      float64   `json:"target"    validate:"gt=0"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate"   validate:"required"`
	CreatedBy   int64     `json:"createdBy"`
}

type joinChallengeRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
}

type progressRequest struct {
	UserID   int64   `json:"userId"   validate:"required,gt=0"`
	Progress float64 `json:"progress" validate:"gte=0"`
}

type feedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,oneof=positive negative"`
}

type workoutPlanRequest struct {
	UserID int64  `json:"userId" validate:"required,gt=0"`
	Goal   string `json:"goal"`
	Level  string `json:"level"`
}

type insightRequest struct {
	UserID int64  `json:"userId" validate:"required,gt=0"`
	Prompt string `json:"prompt" validate:"required"`
}
