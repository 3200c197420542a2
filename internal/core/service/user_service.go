package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
)

type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update applies a partial profile edit. Username and email stay unique.
func (s *UserService) Update(ctx context.Context, id int64, p ports.UserPatch) (*domain.User, error) {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, err
	}

	var username, email string
	if p.Username != nil {
		if n := len(*p.Username); n < minUsernameLen || n > maxUsernameLen {
			return nil, domain.Errorf(domain.ErrValidation, "username must be between 3 and 50 characters")
		}
		username = *p.Username
	}
	if p.Email != nil {
		if validate.Var(*p.Email, "required,email") != nil {
			return nil, domain.Errorf(domain.ErrValidation, "email must be a valid email")
		}
		email = *p.Email
	}
	unlock := lockIdentity(username, email)
	defer unlock()

	if err := checkUnique(ctx, s.users, username, email, id); err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, id, func(u *domain.User) error {
		setIf(&u.Username, p.Username)
		setIf(&u.Email, p.Email)
		setIf(&u.FirstName, p.FirstName)
		setIf(&u.LastName, p.LastName)
		setIf(&u.ActivityLevel, p.ActivityLevel)
		setIf(&u.FitnessGoal, p.FitnessGoal)
		if p.ProfileImage != nil {
			u.ProfileImage = p.ProfileImage
		}
		if p.Height != nil {
			u.Height = p.Height
		}
		if p.Weight != nil {
			u.Weight = p.Weight
		}
		if p.Age != nil {
			u.Age = p.Age
		}
		if p.Gender != nil {
			u.Gender = p.Gender
		}
		if p.Location != nil {
			u.Location = p.Location
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Msg("profile updated")
	return user, nil
}

// setIf copies *src into *dst when src is non-nil.
func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
