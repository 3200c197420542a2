package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
)

type GoalService struct {
	goals ports.GoalRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewGoalService(goals ports.GoalRepository, users ports.UserRepository, log zerolog.Logger) *GoalService {
	return &GoalService{goals: goals, users: users, log: log}
}

func (s *GoalService) List(ctx context.Context, userID int64) ([]*domain.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

func (s *GoalService) Create(ctx context.Context, in ports.CreateGoalInput) (*domain.Goal, error) {
	if in.Type == "" {
		return nil, domain.Errorf(domain.ErrValidation, "type is required")
	}
	if in.Target < 0 {
		return nil, domain.Errorf(domain.ErrValidation, "target must be at least 0")
	}
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	period := in.Period
	if period == "" {
		period = domain.PeriodDaily
	}

	goal, err := s.goals.Create(ctx, &domain.Goal{
		UserID:      in.UserID,
		Type:        domain.NormalizeGoalType(in.Type),
		Target:      in.Target,
		Period:      period,
		Description: in.Description,
		Deadline:    in.Deadline,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", in.UserID).Int64("goal_id", goal.ID).Str("type", goal.Type).Msg("goal created")
	return goal, nil
}

func (s *GoalService) Update(ctx context.Context, id int64, p ports.GoalPatch) (*domain.Goal, error) {
	if p.Target != nil && *p.Target < 0 {
		return nil, domain.Errorf(domain.ErrValidation, "target must be at least 0")
	}
	return s.goals.Update(ctx, id, func(g *domain.Goal) error {
		setIf(&g.Target, p.Target)
		setIf(&g.Current, p.Current)
		setIf(&g.Period, p.Period)
		setIf(&g.Description, p.Description)
		if p.Deadline != nil {
			g.Deadline = p.Deadline
		}
		return nil
	})
}
