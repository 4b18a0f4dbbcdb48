package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/manganova/api/internal/application/dtos"
	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/domain/entities"
)

// UserService implements account lookup and direct account creation.
// Registration with login goes through AuthService instead.
type UserService struct {
	users  ports.UserRepository
	uow    ports.UnitOfWork
	hasher ports.PasswordHasher
}

// NewUserService creates a UserService.
func NewUserService(users ports.UserRepository, uow ports.UnitOfWork, hasher ports.PasswordHasher) *UserService {
	return &UserService{users: users, uow: uow, hasher: hasher}
}

// GetByID loads an account by id.
func (s *UserService) GetByID(ctx context.Context, id int64) (*dtos.UserDTO, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apierrors.NewUserNotFound(apierrors.F("userId", id))
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	dto := dtos.ToUserDTO(user)
	return &dto, nil
}

// Create stores a new account without logging it in. Uniqueness follows the
// registration policy: a taken email reports EmailOrPasswordError, a taken
// username reports the conflict.
func (s *UserService) Create(ctx context.Context, cmd dtos.CreateUserCommand) (*dtos.UserDTO, error) {
	var result *dtos.UserDTO

	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		emailTaken, err := s.users.ExistsByEmail(txCtx, cmd.Email)
		if err != nil {
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if emailTaken {
			return apierrors.NewEmailOrPassword()
		}

		usernameTaken, err := s.users.ExistsByUsername(txCtx, cmd.Username)
		if err != nil {
			return fmt.Errorf("failed to check username uniqueness: %w", err)
		}
		if usernameTaken {
			return apierrors.NewUsernameAlreadyExists(apierrors.F("username", cmd.Username))
		}

		hash, err := s.hasher.Hash(cmd.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := &entities.User{
			Username: cmd.Username,
			Email:    cmd.Email,
			Password: hash,
		}
		if err := s.users.Save(txCtx, user); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		dto := dtos.ToUserDTO(user)
		result = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
