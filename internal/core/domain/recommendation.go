package domain

const (
	RecommendationWorkout   = "workout"
	RecommendationNutrition = "nutrition"
	RecommendationSleep     = "sleep"

	FeedbackPositive = "positive"
	FeedbackNegative = "negative"
)

// RecommendationTypes lists the generated categories in generation order.
var RecommendationTypes = []string{RecommendationWorkout, RecommendationNutrition, RecommendationSleep}

// Recommendation is a generated suggestion for a user.
type Recommendation struct {
	Model    `bson:",inline"`
	UserID   int64   `json:"userId" bson:"user_id"`
	Type     string  `json:"type" bson:"type"`
	Content  string  `json:"content" bson:"content"`
	Feedback *string `json:"feedback" bson:"feedback,omitempty"`
}

func (r *Recommendation) Field(name string) (any, bool) {
	switch name {
	case "user_id":
		return r.UserID, true
	case "type":
		return r.Type, true
	}
	return r.modelField(name)
}

func (r *Recommendation) Clone() Recommendation {
	out := *r
	out.Feedback = clonePtr(r.Feedback)
	return out
}
