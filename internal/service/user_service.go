package service

import (
	"context"
	"errors"

	"alcyxob/fitness-api/internal/domain"
	"alcyxob/fitness-api/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserService owns the user lifecycle: creation with a caller-supplied id,
// lookups, substring search and partial updates.
type UserService interface {
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	SearchUsers(ctx context.Context, username string) ([]domain.User, error)
	PatchUser(ctx context.Context, userID uuid.UUID, patch domain.UserPatch) (*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// CreateUser inserts the user and relies on the store's uniqueness constraint
// to arbitrate duplicate ids, avoiding a check-then-insert race.
func (s *userService) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID fetches a single user.
func (s *userService) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SearchUsers returns all users whose username contains the given term.
// An empty term matches every user; no match is an empty slice, not an error.
func (s *userService) SearchUsers(ctx context.Context, username string) ([]domain.User, error) {
	return s.userRepo.SearchByUsername(ctx, username)
}

// PatchUser applies a partial update to an existing user.
func (s *userService) PatchUser(ctx context.Context, userID uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.userRepo.Update(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
