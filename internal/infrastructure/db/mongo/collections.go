package mongo

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/infrastructure/repository"
)

// Collections returns MongoDB-backed collections for every entity.
func Collections(db *mongo.Database) repository.Collections {
	return repository.Collections{
		Users:           NewCollection[domain.User](db, CollectionUsers),
		Goals:           NewCollection[domain.Goal](db, CollectionGoals),
		ActivityStats:   NewCollection[domain.ActivityStat](db, CollectionActivityStats),
		Workouts:        NewCollection[domain.Workout](db, CollectionWorkouts),
		WorkoutSessions: NewCollection[domain.WorkoutSession](db, CollectionWorkoutSessions),
		Challenges:      NewCollection[domain.Challenge](db, CollectionChallenges),
		Participants:    NewCollection[domain.ChallengeParticipant](db, CollectionParticipants),
		Recommendations: NewCollection[domain.Recommendation](db, CollectionRecommendations),
	}
}
