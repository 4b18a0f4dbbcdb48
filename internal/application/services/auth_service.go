// Package services orchestrates the catalog's use cases. Services depend on
// ports only, return DTOs, and report failures as typed apierrors variants
// that propagate unmodified to the HTTP boundary.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/manganova/api/internal/application/dtos"
	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/domain/entities"
	"github.com/manganova/api/internal/validation"
)

// PasswordPolicy holds the regex policies applied at registration and
// password change. Patterns come from configuration.
type PasswordPolicy struct {
	EmailRegex    string
	UsernameRegex string
	PasswordRegex string
}

// AuthService implements login, registration and password change.
//
// Failed logins always raise EmailOrPasswordError, whether the account is
// missing or the password is wrong, so responses never reveal whether an
// email is registered.
type AuthService struct {
	users        ports.UserRepository
	uow          ports.UnitOfWork
	hasher       ports.PasswordHasher
	tokens       ports.TokenIssuer
	policy       PasswordPolicy
	historyLimit int
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users ports.UserRepository,
	uow ports.UnitOfWork,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	policy PasswordPolicy,
	historyLimit int,
) *AuthService {
	return &AuthService{
		users:        users,
		uow:          uow,
		hasher:       hasher,
		tokens:       tokens,
		policy:       policy,
		historyLimit: historyLimit,
	}
}

// Login authenticates by email and password and mints an access token. With
// StayLoggedIn set the token gets the extended expiry.
func (s *AuthService) Login(ctx context.Context, cmd dtos.LoginCommand) (*dtos.AuthResultDTO, error) {
	user, err := s.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apierrors.NewEmailOrPassword()
		}
		return nil, fmt.Errorf("failed to load user by email: %w", err)
	}

	ok, err := s.hasher.Verify(user.Password, cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, apierrors.NewEmailOrPassword()
	}

	token, err := s.tokens.Generate(user.ID, user.Email, user.Username, cmd.StayLoggedIn)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dtos.AuthResultDTO{
		AccessToken: token,
		User:        dtos.ToUserDTO(user),
	}, nil
}

// Register creates an account and logs it in. Uniqueness is checked before
// the field policies: a taken email reports EmailOrPasswordError so the
// response shape matches a failed login, a taken username reports the
// conflict outright.
func (s *AuthService) Register(ctx context.Context, cmd dtos.RegisterCommand) (*dtos.AuthResultDTO, error) {
	var result *dtos.AuthResultDTO

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

		if err := validation.Regex(cmd.Username, s.policy.UsernameRegex, apierrors.NewInvalidUsername); err != nil {
			return err
		}
		if err := validation.Regex(cmd.Email, s.policy.EmailRegex, apierrors.NewInvalidEmail); err != nil {
			return err
		}
		if err := validation.Regex(cmd.Password, s.policy.PasswordRegex, apierrors.NewInvalidPassword); err != nil {
			return err
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

		// Registration always mints a standard-expiry token.
		token, err := s.tokens.Generate(user.ID, user.Email, user.Username, false)
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}

		result = &dtos.AuthResultDTO{
			AccessToken: token,
			User:        dtos.ToUserDTO(user),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// changePasswordRetries bounds transaction reruns when concurrent changes
// for the same account conflict on the user row and the history insert.
const changePasswordRetries = 3

// ChangePassword replaces the caller's password. The new password must
// differ from the current one and from every recorded historical one, and
// must satisfy the password policy. The superseded hash goes into the
// history in the same transaction as the credential update.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, cmd dtos.ChangePasswordCommand) (*dtos.UserDTO, error) {
	var result *dtos.UserDTO

	err := s.uow.ExecuteWithRetry(ctx, changePasswordRetries, func(txCtx context.Context) error {
		user, err := s.users.FindByID(txCtx, userID)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				// Token subject no longer resolves to an account. Reported
				// like a failed login so the response leaks nothing.
				return apierrors.NewEmailOrPassword()
			}
			return fmt.Errorf("failed to load user: %w", err)
		}

		same, err := s.hasher.Verify(user.Password, cmd.NewPassword)
		if err != nil {
			return fmt.Errorf("failed to compare against current password: %w", err)
		}
		if same {
			return apierrors.NewPasswordsDoNotMatch()
		}

		history, err := s.users.PasswordHistory(txCtx, userID, s.historyLimit)
		if err != nil {
			return fmt.Errorf("failed to load password history: %w", err)
		}
		for _, old := range history {
			used, err := s.hasher.Verify(old.Password, cmd.NewPassword)
			if err != nil {
				return fmt.Errorf("failed to compare against password history: %w", err)
			}
			if used {
				return apierrors.NewPasswordAlreadyUsed()
			}
		}

		if err := validation.Regex(cmd.NewPassword, s.policy.PasswordRegex, apierrors.NewInvalidPassword); err != nil {
			return err
		}

		newHash, err := s.hasher.Hash(cmd.NewPassword)
		if err != nil {
			return fmt.Errorf("failed to hash new password: %w", err)
		}

		if err := s.users.AppendPasswordHistory(txCtx, userID, user.Password); err != nil {
			return fmt.Errorf("failed to record password history: %w", err)
		}

		user.Password = newHash
		if err := s.users.Save(txCtx, user); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
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
