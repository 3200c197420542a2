// Package mongo holds the MongoDB backend for the record store.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Collection names.
const (
	CollectionUsers           = "users"
	CollectionGoals           = "goals"
	CollectionActivityStats   = "activity_stats"
	CollectionWorkouts        = "workouts"
	CollectionWorkoutSessions = "workout_sessions"
	CollectionChallenges      = "challenges"
	CollectionParticipants    = "challenge_participants"
	CollectionRecommendations = "recommendations"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the lookup and uniqueness indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		CollectionGoals: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		CollectionActivityStats: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}, Options: unique},
		},
		CollectionWorkouts: {
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "difficulty", Value: 1}}},
		},
		CollectionWorkoutSessions: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		CollectionParticipants: {
			{Keys: bson.D{{Key: "challenge_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		CollectionRecommendations: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}
