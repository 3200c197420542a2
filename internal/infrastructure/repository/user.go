package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/store"
)

type UserRepository struct {
	col store.Collection[domain.User]
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	created, err := r.col.Create(ctx, u)
	if err != nil {
		return nil, conflict(err, "Username or email already exists")
	}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := r.col.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User", id)
	}
	return u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *UserRepository) Update(ctx context.Context, id int64, mutate func(*domain.User) error) (*domain.User, error) {
	u, err := r.col.Update(ctx, id, mutate)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, conflict(err, "Username or email already exists")
		}
		return nil, notFound(err, "User", id)
	}
	return u, nil
}

func (r *UserRepository) findOne(ctx context.Context, field, value string) (*domain.User, error) {
	u, err := r.col.FindOne(ctx, store.Where(store.Eq(field, value)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("find user by %s: %w", field, err)
	}
	return u, nil
}
