package ports

import (
	"context"

	"github.com/healthhub/fitness-api/internal/core/domain"
)

// UserRepository persists members.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByUsername and FindByEmail return domain.ErrNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id int64, mutate func(*domain.User) error) (*domain.User, error)
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username     string
	Password     string
	Email        string
	FirstName    string
	LastName     string
	ProfileImage *string
	Height       *float64
	Weight       *float64
	Age          *int
	Gender       *string
	Location     *string
}

// AuthService registers and authenticates members.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed bearer token along with the user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// UserPatch holds optional profile changes; nil fields are left untouched.
type UserPatch struct {
	Username      *string
	Email         *string
	FirstName     *string
	LastName      *string
	ProfileImage  *string
	Height        *float64
	Weight        *float64
	Age           *int
	Gender        *string
	Location      *string
	ActivityLevel *int
	FitnessGoal   *string
}

// UserService reads and edits profiles.
type UserService interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*domain.User, error)
}
