package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/observability/metrics"
)

type ChallengeService struct {
	challenges   ports.ChallengeRepository
	participants ports.ParticipantRepository
	users        ports.UserRepository
	notifier     ports.Notifier
	joins        *keyedMutex
	now          func() time.Time
	log          zerolog.Logger
}

func NewChallengeService(
	challenges ports.ChallengeRepository,
	participants ports.ParticipantRepository,
	users ports.UserRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *ChallengeService {
	return &ChallengeService{
		challenges:   challenges,
		participants: participants,
		users:        users,
		notifier:     notifier,
		joins:        newKeyedMutex(),
		now:          func() time.Time { return time.Now().UTC() },
		log:          log,
	}
}

func (s *ChallengeService) List(ctx context.Context) ([]ports.ChallengeView, error) {
	challenges, err := s.challenges.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ChallengeView, 0, len(challenges))
	for _, c := range challenges {
		view, err := s.view(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, *view)
	}
	return out, nil
}

func (s *ChallengeService) Get(ctx context.Context, id int64) (*ports.ChallengeView, error) {
	c, err := s.challenges.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

func (s *ChallengeService) Create(ctx context.Context, in ports.CreateChallengeInput) (*domain.Challenge, error) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return nil, domain.Errorf(domain.ErrValidation, "name is required")
	case in.Type == "":
		return nil, domain.Errorf(domain.ErrValidation, "type is required")
	case in.Target <= 0:
		return nil, domain.Errorf(domain.ErrValidation, "target must be greater than 0")
	case in.StartDate.IsZero() || in.EndDate.IsZero():
		return nil, domain.Errorf(domain.ErrValidation, "startDate and endDate are required")
	case in.EndDate.Before(in.StartDate):
		return nil, domain.Errorf(domain.ErrValidation, "endDate must not be before startDate")
	}
	if _, err := s.users.FindByID(ctx, in.CreatedBy); err != nil {
		return nil, err
	}

	c, err := s.challenges.Create(ctx, &domain.Challenge{
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Target:      in.Target,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatedBy:   in.CreatedBy,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("challenge_id", c.ID).Int64("created_by", c.CreatedBy).Msg("challenge created")
	return c, nil
}

// Leaderboard ranks participants by progress, highest first. Equal progress
// keeps join order.
func (s *ChallengeService) Leaderboard(ctx context.Context, challengeID int64) ([]ports.LeaderboardEntry, error) {
	if _, err := s.challenges.FindByID(ctx, challengeID); err != nil {
		return nil, err
	}

	participants, err := s.participants.ListByChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	entries := make([]ports.LeaderboardEntry, 0, len(participants))
	for _, p := range participants {
		entry := ports.LeaderboardEntry{ChallengeParticipant: p}
		u, err := s.users.FindByID(ctx, p.UserID)
		switch {
		case err == nil:
			profile := u.PublicProfile()
			entry.User = &profile
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CurrentProgress > entries[j].CurrentProgress
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (s *ChallengeService) Join(ctx context.Context, challengeID, userID int64) (*domain.ChallengeParticipant, error) {
	if _, err := s.challenges.FindByID(ctx, challengeID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	unlock := s.joins.Lock(fmt.Sprintf("%d:%d", challengeID, userID))
	defer unlock()

	_, err := s.participants.FindByChallengeAndUser(ctx, challengeID, userID)
	switch {
	case err == nil:
		return nil, domain.Errorf(domain.ErrConflict, "User already joined this challenge")
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	p, err := s.participants.Create(ctx, &domain.ChallengeParticipant{
		ChallengeID:     challengeID,
		UserID:          userID,
		CurrentProgress: 0,
		JoinDate:        s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("challenge_id", challengeID).Int64("user_id", userID).Msg("challenge joined")
	return p, nil
}

func (s *ChallengeService) UpdateProgress(ctx context.Context, challengeID, userID int64, progress float64) (*domain.ChallengeParticipant, error) {
	if progress < 0 {
		return nil, domain.Errorf(domain.ErrValidation, "progress must not be negative")
	}

	p, err := s.participants.FindByChallengeAndUser(ctx, challengeID, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.participants.Update(ctx, p.ID, func(cp *domain.ChallengeParticipant) error {
		cp.CurrentProgress = progress
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ChallengeProgressUpdatesTotal.Inc()

	s.broadcast(ctx, domain.ChallengeUpdate{ChallengeID: challengeID, UserID: userID, Progress: progress})

	s.log.Info().Int64("challenge_id", challengeID).Int64("user_id", userID).Float64("progress", progress).Msg("challenge progress updated")
	return updated, nil
}

func (s *ChallengeService) UserChallenges(ctx context.Context, userID int64) ([]ports.UserChallenge, error) {
	participations, err := s.participants.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]ports.UserChallenge, 0, len(participations))
	for _, p := range participations {
		c, err := s.challenges.FindByID(ctx, p.ChallengeID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		out = append(out, ports.UserChallenge{ChallengeParticipant: p, Challenge: c})
	}
	return out, nil
}

// broadcast fans the update out to every participant. Failures to resolve
// recipients are logged; the progress write already succeeded.
func (s *ChallengeService) broadcast(ctx context.Context, update domain.ChallengeUpdate) {
	participants, err := s.participants.ListByChallenge(ctx, update.ChallengeID)
	if err != nil {
		s.log.Warn().Err(err).Int64("challenge_id", update.ChallengeID).Msg("could not resolve challenge recipients")
		return
	}
	recipients := make([]int64, 0, len(participants))
	for _, p := range participants {
		recipients = append(recipients, p.UserID)
	}
	s.notifier.NotifyChallengeUpdate(ctx, update, recipients)
}

func (s *ChallengeService) view(ctx context.Context, c *domain.Challenge) (*ports.ChallengeView, error) {
	view := &ports.ChallengeView{Challenge: c}
	creator, err := s.users.FindByID(ctx, c.CreatedBy)
	switch {
	case err == nil:
		summary := creator.Summary()
		view.Creator = &summary
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	return view, nil
}
