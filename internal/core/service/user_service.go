package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/identikit/user-service/internal/core/domain"
	"github.com/identikit/user-service/internal/core/ports"
)

// UserService implements the account lifecycle on top of a UserRepository.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Create registers a new account. The password is stored as a bcrypt hash.
func (s *UserService) Create(ctx context.Context, in ports.RegisterInput, createdBy string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Guid:         uuid.New(),
		Login:        in.Login,
		PasswordHash: string(hash),
		Name:         in.Name,
		Gender:       in.Gender,
		Birthday:     in.Birthday,
		Admin:        in.Admin,
		CreatedOn:    s.now(),
		CreatedBy:    createdBy,
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("login", user.Login).Str("created_by", createdBy).Msg("user created")
	return user, nil
}

func (s *UserService) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	return s.repo.FindByLogin(ctx, login)
}

func (s *UserService) ActiveUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindActive(ctx)
}

// UsersAboveAge returns users strictly older than age years: a birthday
// exactly age years ago does not qualify.
func (s *UserService) UsersAboveAge(ctx context.Context, age int) ([]domain.User, error) {
	cutoff := s.now().AddDate(-age, 0, 0)
	return s.repo.FindBornBefore(ctx, cutoff)
}

// UpdateProfile replaces name, gender, and birthday.
func (s *UserService) UpdateProfile(ctx context.Context, login string, in ports.ProfileInput, modifiedBy string) (*domain.User, error) {
	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if err := selfDeactivationGuard(user, modifiedBy); err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Gender = in.Gender
	user.Birthday = in.Birthday
	s.markModified(user, modifiedBy)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, login, newPassword, modifiedBy string) error {
	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return err
	}
	if err := selfDeactivationGuard(user, modifiedBy); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	s.markModified(user, modifiedBy)

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Str("login", login).Str("modified_by", modifiedBy).Msg("password changed")
	return nil
}

// ChangeLogin renames the account. The duplicate check on newLogin runs
// before the target lookup, so a taken new login yields ErrLoginExists even
// when the target does not exist.
func (s *UserService) ChangeLogin(ctx context.Context, login, newLogin, modifiedBy string) error {
	if _, err := s.repo.FindByLogin(ctx, newLogin); err == nil {
		return domain.ErrLoginExists
	} else if err != domain.ErrUserNotFound {
		return err
	}

	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return err
	}
	if err := selfDeactivationGuard(user, modifiedBy); err != nil {
		return err
	}

	user.Login = newLogin
	s.markModified(user, modifiedBy)

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Str("login", login).Str("new_login", newLogin).Msg("login changed")
	return nil
}

// Deactivate soft-deletes the account. Re-deactivating an already revoked
// account resets the revocation timestamp and actor.
func (s *UserService) Deactivate(ctx context.Context, login, revokedBy string) error {
	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return err
	}

	now := s.now()
	user.RevokedOn = &now
	user.RevokedBy = revokedBy

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Str("login", login).Str("revoked_by", revokedBy).Msg("user deactivated")
	return nil
}

// Restore clears the revocation fields, returning the account to the active
// state.
func (s *UserService) Restore(ctx context.Context, login string) error {
	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return err
	}

	user.RevokedOn = nil
	user.RevokedBy = ""

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Str("login", login).Msg("user restored")
	return nil
}

// Delete permanently removes the account, regardless of deactivation state.
func (s *UserService) Delete(ctx context.Context, login string) error {
	if err := s.repo.Delete(ctx, login); err != nil {
		return err
	}
	s.logger.Info().Str("login", login).Msg("user deleted")
	return nil
}

func (s *UserService) markModified(user *domain.User, modifiedBy string) {
	now := s.now()
	user.ModifiedOn = &now
	user.ModifiedBy = modifiedBy
}

// selfDeactivationGuard blocks a deactivated user from modifying their own
// account. The guard intentionally does not fire when someone else (an admin)
// acts on the deactivated account.
func selfDeactivationGuard(user *domain.User, actor string) error {
	if user.RevokedOn != nil && actor == user.Login {
		return domain.ErrAccountDeactivated
	}
	return nil
}
