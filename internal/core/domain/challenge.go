package domain

import "time"

// Challenge is a time-boxed competitive target users can join.
type Challenge struct {
	Model       `bson:",inline"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Type        string    `json:"type" bson:"type"`
	Target      float64   `json:"target" bson:"target"`
	StartDate   time.Time `json:"startDate" bson:"start_date"`
	EndDate     time.Time `json:"endDate" bson:"end_date"`
	CreatedBy   int64     `json:"createdBy" bson:"created_by"`
}

func (c *Challenge) Field(name string) (any, bool) {
	switch name {
	case "type":
		return c.Type, true
	case "created_by":
		return c.CreatedBy, true
	case "start_date":
		return c.StartDate, true
	case "end_date":
		return c.EndDate, true
	}
	return c.modelField(name)
}

// ChallengeParticipant links a user to a challenge.
type ChallengeParticipant struct {
	Model           `bson:",inline"`
	ChallengeID     int64     `json:"challengeId" bson:"challenge_id"`
	UserID          int64     `json:"userId" bson:"user_id"`
	CurrentProgress float64   `json:"currentProgress" bson:"current_progress"`
	JoinDate        time.Time `json:"joinDate" bson:"join_date"`
}

func (p *ChallengeParticipant) Field(name string) (any, bool) {
	switch name {
	case "challenge_id":
		return p.ChallengeID, true
	case "user_id":
		return p.UserID, true
	case "current_progress":
		return p.CurrentProgress, true
	}
	return p.modelField(name)
}

// ChallengeUpdate is the event pushed to participants when progress changes.
type ChallengeUpdate struct {
	ChallengeID int64   `json:"challengeId"`
	UserID      int64   `json:"userId"`
	Progress    float64 `json:"progress"`
}
