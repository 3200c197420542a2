package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/observability/metrics"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
)

// bcrypt rejects longer passwords.
const maxPasswordLen = 72

var validate = validator.New()

// identities serialises the uniqueness check and the write for usernames
// and emails across registration and profile edits.
var identities = newKeyedMutex()

func lockIdentity(username, email string) (unlock func()) {
	var keys []string
	if username != "" {
		keys = append(keys, "username:"+username)
	}
	if email != "" {
		keys = append(keys, "email:"+email)
	}
	return identities.LockAll(keys...)
}

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	goals     ports.GoalRepository
	queue     ports.RecommendationQueue
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	goals ports.GoalRepository,
	queue ports.RecommendationQueue,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		goals:     goals,
		queue:     queue,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates the member, its default goals, and schedules the first
// batch of recommendations.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	unlock := lockIdentity(in.Username, in.Email)
	defer unlock()

	if err := s.ensureUnique(ctx, in.Username, in.Email, 0); err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Username:      in.Username,
		Email:         in.Email,
		PasswordHash:  string(hash),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		ProfileImage:  in.ProfileImage,
		Height:        in.Height,
		Weight:        in.Weight,
		Age:           in.Age,
		Gender:        in.Gender,
		Location:      in.Location,
		Role:          domain.RoleUser,
		ActivityLevel: 5,
		FitnessGoal:   "general fitness",
	})
	if err != nil {
		return nil, err
	}

	for _, g := range domain.DefaultGoals(user.ID) {
		if _, err := s.goals.Create(ctx, g); err != nil {
			return nil, err
		}
	}

	s.queue.Enqueue(user.ID)
	metrics.UsersRegisteredTotal.Inc()

	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.Errorf(domain.ErrValidation, "Username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.Errorf(domain.ErrUnauthenticated, "Invalid credentials")
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.Errorf(domain.ErrUnauthenticated, "Invalid credentials")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Debug().Int64("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// ensureUnique rejects a username or email already held by another member.
// selfID excludes the caller's own record on profile edits.
func (s *AuthService) ensureUnique(ctx context.Context, username, email string, selfID int64) error {
	return checkUnique(ctx, s.users, username, email, selfID)
}

func checkUnique(ctx context.Context, users ports.UserRepository, username, email string, selfID int64) error {
	if username != "" {
		existing, err := users.FindByUsername(ctx, username)
		switch {
		case err == nil && existing.ID != selfID:
			return domain.Errorf(domain.ErrConflict, "Username already exists")
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}
	}
	if email != "" {
		existing, err := users.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != selfID:
			return domain.Errorf(domain.ErrConflict, "Email already exists")
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}
	}
	return nil
}

func validateRegistration(in ports.RegisterInput) error {
	var problems []string
	if n := len(in.Username); n < minUsernameLen || n > maxUsernameLen {
		problems = append(problems, "username must be between 3 and 50 characters")
	}
	if len(in.Password) < minPasswordLen {
		problems = append(problems, "password must be at least 6 characters")
	}
	if len(in.Password) > maxPasswordLen {
		problems = append(problems, "password must be at most 72 bytes")
	}
	if validate.Var(in.Email, "required,email") != nil {
		problems = append(problems, "email must be a valid email")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		problems = append(problems, "firstName is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		problems = append(problems, "lastName is required")
	}
	if len(problems) > 0 {
		return domain.Errorf(domain.ErrValidation, "%s", strings.Join(problems, "; "))
	}
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
