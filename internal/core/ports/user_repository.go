package ports

import (
	"context"
	"time"

	"github.com/identikit/user-service/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
//
// Implementations must enforce login uniqueness with a storage-level
// constraint (not just a read-then-write check) and surface violations as
// domain.ErrLoginExists. Lookups on an absent login return
// domain.ErrUserNotFound.
type UserRepository interface {
	// Insert stores a new user.
	Insert(ctx context.Context, user *domain.User) error
	// FindByLogin returns the user with the given login.
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	// FindActive returns all non-deactivated users ordered by creation time
	// ascending.
	FindActive(ctx context.Context) ([]domain.User, error)
	// FindBornBefore returns all users whose birthday is strictly before
	// cutoff, ordered by creation time ascending. Users without a birthday
	// are excluded.
	FindBornBefore(ctx context.Context, cutoff time.Time) ([]domain.User, error)
	// Update replaces the stored record identified by user.Guid.
	Update(ctx context.Context, user *domain.User) error
	// Delete permanently removes the user with the given login.
	Delete(ctx context.Context, login string) error
}
