package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/store"
)

type ChallengeRepository struct {
	col store.Collection[domain.Challenge]
}

func (r *ChallengeRepository) Create(ctx context.Context, c *domain.Challenge) (*domain.Challenge, error) {
	return r.col.Create(ctx, c)
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id int64) (*domain.Challenge, error) {
	c, err := r.col.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Challenge", id)
	}
	return c, nil
}

func (r *ChallengeRepository) List(ctx context.Context) ([]*domain.Challenge, error) {
	return r.col.FindAll(ctx, nil)
}

type ParticipantRepository struct {
	col store.Collection[domain.ChallengeParticipant]
}

func (r *ParticipantRepository) Create(ctx context.Context, p *domain.ChallengeParticipant) (*domain.ChallengeParticipant, error) {
	created, err := r.col.Create(ctx, p)
	if err != nil {
		return nil, conflict(err, "User already joined this challenge")
	}
	return created, nil
}

func (r *ParticipantRepository) FindByChallengeAndUser(ctx context.Context, challengeID, userID int64) (*domain.ChallengeParticipant, error) {
	p, err := r.col.FindOne(ctx, store.Where(
		store.Eq("challenge_id", challengeID),
		store.Eq("user_id", userID),
	))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "Challenge participation not found")
		}
		return nil, fmt.Errorf("find participant: %w", err)
	}
	return p, nil
}

func (r *ParticipantRepository) ListByChallenge(ctx context.Context, challengeID int64) ([]*domain.ChallengeParticipant, error) {
	return r.col.FindAll(ctx, store.Where(store.Eq("challenge_id", challengeID)))
}

func (r *ParticipantRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.ChallengeParticipant, error) {
	return r.col.FindAll(ctx, store.Where(store.Eq("user_id", userID)))
}

func (r *ParticipantRepository) Update(ctx context.Context, id int64, mutate func(*domain.ChallengeParticipant) error) (*domain.ChallengeParticipant, error) {
	p, err := r.col.Update(ctx, id, mutate)
	if err != nil {
		return nil, notFound(err, "ChallengeParticipant", id)
	}
	return p, nil
}
