package domain

import (
	"math"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ActivityStat is one calendar day of aggregated activity for a user.
type ActivityStat struct {
	Model         `bson:",inline"`
	UserID        int64     `json:"userId" bson:"user_id"`
	Date          time.Time `json:"date" bson:"date"`
	Steps         int       `json:"steps" bson:"steps"`
	Calories      float64   `json:"calories" bson:"calories"`
	ActiveMinutes int       `json:"activeMinutes" bson:"active_minutes"`
	Sleep         float64   `json:"sleep" bson:"sleep"`
	Water         float64   `json:"water" bson:"water"`
}

func (a *ActivityStat) Field(name string) (any, bool) {
	switch name {
	case "user_id":
		return a.UserID, true
	case "date":
		return a.Date, true
	}
	return a.modelField(name)
}

// GoalValue returns the stat that feeds a goal of the given type.
// ok is false for goal types with no matching stat.
func (a *ActivityStat) GoalValue(goalType string) (value float64, ok bool) {
	switch NormalizeGoalType(goalType) {
	case GoalSteps:
		return float64(a.Steps), true
	case GoalCalories:
		return a.Calories, true
	case GoalActiveMinutes:
		return float64(a.ActiveMinutes), true
	case GoalWater:
		return math.Round(a.Water*10) / 10, true
	}
	return 0, false
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
