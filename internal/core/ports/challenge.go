package ports

import (
	"context"
	"time"

	"github.com/healthhub/fitness-api/internal/core/domain"
)

type ChallengeRepository interface {
	Create(ctx context.Context, c *domain.Challenge) (*domain.Challenge, error)
	FindByID(ctx context.Context, id int64) (*domain.Challenge, error)
	List(ctx context.Context) ([]*domain.Challenge, error)
}

type ParticipantRepository interface {
	Create(ctx context.Context, p *domain.ChallengeParticipant) (*domain.ChallengeParticipant, error)
	FindByChallengeAndUser(ctx context.Context, challengeID, userID int64) (*domain.ChallengeParticipant, error)
	// ListByChallenge returns participants in join order.
	ListByChallenge(ctx context.Context, challengeID int64) ([]*domain.ChallengeParticipant, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.ChallengeParticipant, error)
	Update(ctx context.Context, id int64, mutate func(*domain.ChallengeParticipant) error) (*domain.ChallengeParticipant, error)
}

type CreateChallengeInput struct {
	Name        string
	Description string
	Type        string
	Target      float64
	StartDate   time.Time
	EndDate     time.Time
	CreatedBy   int64
}

// ChallengeView is a challenge with its creator's public summary.
type ChallengeView struct {
	*domain.Challenge
	Creator *domain.UserSummary `json:"creator"`
}

// LeaderboardEntry is one participant row, ranked from 1.
type LeaderboardEntry struct {
	*domain.ChallengeParticipant
	Rank int                 `json:"rank"`
	User *domain.UserSummary `json:"user"`
}

// UserChallenge is a participation with its challenge embedded.
type UserChallenge struct {
	*domain.ChallengeParticipant
	Challenge *domain.Challenge `json:"challenge"`
}

type ChallengeService interface {
	List(ctx context.Context) ([]ChallengeView, error)
	Get(ctx context.Context, id int64) (*ChallengeView, error)
	Create(ctx context.Context, in CreateChallengeInput) (*domain.Challenge, error)
	Leaderboard(ctx context.Context, challengeID int64) ([]LeaderboardEntry, error)
	Join(ctx context.Context, challengeID, userID int64) (*domain.ChallengeParticipant, error)
	// UpdateProgress overwrites the participant's progress and notifies every
	// participant of the challenge.
	UpdateProgress(ctx context.Context, challengeID, userID int64, progress float64) (*domain.ChallengeParticipant, error)
	UserChallenges(ctx context.Context, userID int64) ([]UserChallenge, error)
}
