package service

import (
	"context"

	"storefront_api/internal/logger"
	"storefront_api/internal/model"
	"storefront_api/internal/repository"
)

// UserService defines operations for user accounts
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id int) (*model.User, error)
	Create(ctx context.Context, req model.CreateUserRequest, actorID *int) (*model.User, error)
	Update(ctx context.Context, id int, patch model.UserPatch, actorID *int) (*model.User, error)
	Delete(ctx context.Context, id int) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) Get(ctx context.Context, id int) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Create registers a user. Creating an admin requires actorID to name an
// existing admin.
func (s *userService) Create(ctx context.Context, req model.CreateUserRequest, actorID *int) (*model.User, error) {
	user, err := s.repo.Create(ctx, req, actorID)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().Int("created_user_id", user.ID).Bool("is_admin", user.IsAdmin).Msg("user created")
	return user, nil
}

func (s *userService) Update(ctx context.Context, id int, patch model.UserPatch, actorID *int) (*model.User, error) {
	user, err := s.repo.Update(ctx, id, patch, actorID)
	if err != nil {
		return nil, err
	}
	if patch.IsAdmin != nil {
		logger.FromContext(ctx).Info().Int("target_user_id", id).Bool("is_admin", user.IsAdmin).Msg("admin flag changed")
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int) (*model.User, error) {
	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().Int("deleted_user_id", id).Msg("user deleted")
	return user, nil
}
