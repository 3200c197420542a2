package domain

import "time"

const (
	GoalSteps         = "steps"
	GoalCalories      = "calories"
	GoalActiveMinutes = "active_minutes"
	GoalWater         = "water"
	GoalCustom        = "custom"

	PeriodDaily = "daily"
)

// NormalizeGoalType maps accepted aliases onto the canonical goal type.
func NormalizeGoalType(t string) string {
	if t == "activeMinutes" {
		return GoalActiveMinutes
	}
	return t
}

// Goal is a per-user numeric target tracked against daily activity.
type Goal struct {
	Model       `bson:",inline"`
	UserID      int64      `json:"userId" bson:"user_id"`
	Type        string     `json:"type" bson:"type"`
	Target      float64    `json:"target" bson:"target"`
	Current     float64    `json:"current" bson:"current"`
	Period      string     `json:"period" bson:"period"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
}

func (g *Goal) Field(name string) (any, bool) {
	switch name {
	case "user_id":
		return g.UserID, true
	case "type":
		return g.Type, true
	case "period":
		return g.Period, true
	}
	return g.modelField(name)
}

// DefaultGoals returns the goals every new member starts with.
func DefaultGoals(userID int64) []*Goal {
	return []*Goal{
		{UserID: userID, Type: GoalSteps, Target: 10000, Period: PeriodDaily, Description: "Walk 10,000 steps every day"},
		{UserID: userID, Type: GoalCalories, Target: 500, Period: PeriodDaily, Description: "Burn 500 calories through exercise"},
		{UserID: userID, Type: GoalActiveMinutes, Target: 30, Period: PeriodDaily, Description: "Get 30 minutes of active exercise"},
		{UserID: userID, Type: GoalWater, Target: 8, Period: PeriodDaily, Description: "Drink 8 glasses of water"},
	}
}

func (g *Goal) Clone() Goal {
	out := *g
	out.Deadline = clonePtr(g.Deadline)
	return out
}
