package user

import (
	"context"
	"log/slog"

	"github.com/globalcounseling/counseling-api/internal/types"
)

var _ UserService = (*UserServiceImpl)(nil)

// UserService exposes directory account CRUD to the transport layer.
type UserService interface {
	GetUsers(ctx context.Context) ([]types.UserAccount, error)
	GetUser(ctx context.Context, id string) (*types.UserAccount, error)
	CreateUser(ctx context.Context, params *types.CreateUserRequest) (*types.UserAccount, error)
	UpdateUser(ctx context.Context, id string, params *types.UpdateUserRequest) (*types.UserAccount, error)
	DeleteUser(ctx context.Context, id string) error
}

type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *UserServiceImpl) GetUsers(ctx context.Context) ([]types.UserAccount, error) {
	return s.repo.GetUsers(ctx)
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*types.UserAccount, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, params *types.CreateUserRequest) (*types.UserAccount, error) {
	s.logger.DebugContext(ctx, "Creating user", slog.String("email", params.Email))
	return s.repo.CreateUser(ctx, params)
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, params *types.UpdateUserRequest) (*types.UserAccount, error) {
	return s.repo.UpdateUser(ctx, id, params)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}
