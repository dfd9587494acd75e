package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/config"
	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/repository"
	apperrors "github.com/spec-kit/content-service/pkg/util"
)

// UserListOptions describes listing parameters.
type UserListOptions struct {
	Limit     int
	Page      int
	SortOrder string
}

// UserService handles account reads and administrative mutations. Account
// creation goes through AuthService so the credential is always hashed.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.Auth.BcryptCost}
}

// Get fetches a single account by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// List returns a page of accounts ordered by email.
func (s *UserService) List(ctx context.Context, opts UserListOptions) ([]domain.User, error) {
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	if opts.Page < 0 {
		opts.Page = 0
	}
	order := "desc"
	if opts.SortOrder == "asc" {
		order = "asc"
	}

	users, err := s.users.List(ctx, opts.Limit, opts.Page*opts.Limit, order)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

// Update replaces the account's email and credential.
func (s *UserService) Update(ctx context.Context, id, email, password string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user.Email = email
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperrors.NewAlreadyExists()
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.NewNotFound("User")
		default:
			return nil, apperrors.NewInternalError(err)
		}
	}
	return user, nil
}

// Delete removes the account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User")
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}
