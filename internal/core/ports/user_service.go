package ports

import (
	"context"
	"time"

	"github.com/identikit/user-service/internal/core/domain"
)

// RegisterInput carries the fields required to create a new account.
type RegisterInput struct {
	Login    string
	Password string
	Name     string
	Gender   domain.Gender
	Birthday *time.Time
	Admin    bool
}

// ProfileInput carries the mutable profile fields of an account. All fields
// replace the stored ones.
type ProfileInput struct {
	Name     string
	Gender   domain.Gender
	Birthday *time.Time
}

// UserService manages the account lifecycle: creation, profile and credential
// changes, deactivation, restoration, and permanent deletion.
//
// The deactivation guard on the mutating operations fires only when the actor
// is the account owner (actor == login): a deactivated user may not modify
// themself, but an admin acting on someone else's deactivated account is not
// blocked. This asymmetry is deliberate.
type UserService interface {
	Create(ctx context.Context, in RegisterInput, createdBy string) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	ActiveUsers(ctx context.Context) ([]domain.User, error)
	UsersAboveAge(ctx context.Context, age int) ([]domain.User, error)
	UpdateProfile(ctx context.Context, login string, in ProfileInput, modifiedBy string) (*domain.User, error)
	ChangePassword(ctx context.Context, login, newPassword, modifiedBy string) error
	ChangeLogin(ctx context.Context, login, newLogin, modifiedBy string) error
	Deactivate(ctx context.Context, login, revokedBy string) error
	Restore(ctx context.Context, login string) error
	Delete(ctx context.Context, login string) error
}
