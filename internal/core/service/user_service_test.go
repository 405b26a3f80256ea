package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/identikit/user-service/internal/core/domain"
	"github.com/identikit/user-service/internal/core/ports"
)

// stubUserRepo is an in-memory UserRepository that preserves insertion order,
// which doubles as creation-time order in these tests.
type stubUserRepo struct {
	users []*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Login == user.Login {
			return domain.ErrLoginExists
		}
	}
	r.users = append(r.users, cloneUser(user))
	return nil
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Login == login {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindActive(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0)
	for _, u := range r.users {
		if u.RevokedOn == nil {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindBornBefore(_ context.Context, cutoff time.Time) ([]domain.User, error) {
	out := make([]domain.User, 0)
	for _, u := range r.users {
		if u.Birthday != nil && u.Birthday.Before(cutoff) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Guid != user.Guid && u.Login == user.Login {
			return domain.ErrLoginExists
		}
	}
	for i, u := range r.users {
		if u.Guid == user.Guid {
			r.users[i] = cloneUser(user)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, login string) error {
	for i, u := range r.users {
		if u.Login == login {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func newTestUserService(repo ports.UserRepository) *UserService {
	return NewUserService(repo, zerolog.Nop())
}

func mustCreate(t *testing.T, svc *UserService, login string) *domain.User {
	t.Helper()
	user, err := svc.Create(context.Background(), ports.RegisterInput{
		Login:    login,
		Password: "Pass123",
		Name:     "Ivan",
		Gender:   domain.GenderMale,
	}, "Admin")
	if err != nil {
		t.Fatalf("create %s: %v", login, err)
	}
	return user
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	user := mustCreate(t, svc, "Ivan01")
	if user.Guid == uuid.Nil {
		t.Fatalf("expected generated guid")
	}
	if user.PasswordHash == "Pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.CreatedBy != "Admin" {
		t.Fatalf("unexpected created_by: %s", user.CreatedBy)
	}
}

func TestUserService_Create_DuplicateLogin(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	mustCreate(t, svc, "Ivan01")
	_, err := svc.Create(context.Background(), ports.RegisterInput{
		Login: "Ivan01", Password: "Other1", Name: "Petr", Gender: domain.GenderMale,
	}, "Admin")
	if err != domain.ErrLoginExists {
		t.Fatalf("expected ErrLoginExists, got %v", err)
	}
}

func TestUserService_DeactivateRestore_Listing(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())
	ctx := context.Background()

	mustCreate(t, svc, "first")
	mustCreate(t, svc, "second")
	mustCreate(t, svc, "third")

	if err := svc.Deactivate(ctx, "second", "Admin"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := svc.ActiveUsers(ctx)
	if err != nil {
		t.Fatalf("active users: %v", err)
	}
	if len(active) != 2 || active[0].Login != "first" || active[1].Login != "third" {
		t.Fatalf("unexpected active listing: %+v", active)
	}

	if err := svc.Restore(ctx, "second"); err != nil {
		t.Fatalf("restore: %v", err)
	}

	active, err = svc.ActiveUsers(ctx)
	if err != nil {
		t.Fatalf("active users after restore: %v", err)
	}
	if len(active) != 3 || active[1].Login != "second" {
		t.Fatalf("restored user not back in original creation order: %+v", active)
	}
}

func TestUserService_Deactivate_ResetsRevocation(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	ctx := context.Background()

	mustCreate(t, svc, "Ivan01")

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	if err := svc.Deactivate(ctx, "Ivan01", "Admin"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	svc.now = func() time.Time { return base.Add(time.Hour) }
	if err := svc.Deactivate(ctx, "Ivan01", "Root"); err != nil {
		t.Fatalf("re-deactivate: %v", err)
	}

	user, err := repo.FindByLogin(ctx, "Ivan01")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if user.RevokedOn == nil || !user.RevokedOn.Equal(base.Add(time.Hour)) {
		t.Fatalf("expected revocation timestamp reset, got %v", user.RevokedOn)
	}
	if user.RevokedBy != "Root" {
		t.Fatalf("expected revoked_by reset, got %s", user.RevokedBy)
	}
}

func TestUserService_SelfUpdateOnDeactivated_Blocked(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())
	ctx := context.Background()

	mustCreate(t, svc, "Ivan01")
	if err := svc.Deactivate(ctx, "Ivan01", "Admin"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	in := ports.ProfileInput{Name: "Petr", Gender: domain.GenderMale}

	// The owner acting on their own deactivated account is blocked.
	if _, err := svc.UpdateProfile(ctx, "Ivan01", in, "Ivan01"); err != domain.ErrAccountDeactivated {
		t.Fatalf("expected ErrAccountDeactivated for self-update, got %v", err)
	}
	if err := svc.ChangePassword(ctx, "Ivan01", "NewPass1", "Ivan01"); err != domain.ErrAccountDeactivated {
		t.Fatalf("expected ErrAccountDeactivated for self password change, got %v", err)
	}
	if err := svc.ChangeLogin(ctx, "Ivan01", "Ivan02", "Ivan01"); err != domain.ErrAccountDeactivated {
		t.Fatalf("expected ErrAccountDeactivated for self login change, got %v", err)
	}

	// An admin acting on the same deactivated account is not.
	updated, err := svc.UpdateProfile(ctx, "Ivan01", in, "Admin")
	if err != nil {
		t.Fatalf("admin update on deactivated account failed: %v", err)
	}
	if updated.Name != "Petr" {
		t.Fatalf("expected updated name, got %s", updated.Name)
	}
	if updated.ModifiedBy != "Admin" {
		t.Fatalf("expected modified_by Admin, got %s", updated.ModifiedBy)
	}
}

func TestUserService_ChangeLogin_DuplicateCheckedFirst(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())
	ctx := context.Background()

	mustCreate(t, svc, "taken")

	// The duplicate check on the new login runs before the target lookup, so
	// a taken new login conflicts even when the target does not exist.
	if err := svc.ChangeLogin(ctx, "ghost", "taken", "Admin"); err != domain.ErrLoginExists {
		t.Fatalf("expected ErrLoginExists, got %v", err)
	}
	if err := svc.ChangeLogin(ctx, "ghost", "fresh", "Admin"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ChangeLogin_Renames(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	ctx := context.Background()

	mustCreate(t, svc, "Ivan01")
	if err := svc.ChangeLogin(ctx, "Ivan01", "Ivan02", "Ivan01"); err != nil {
		t.Fatalf("change login: %v", err)
	}

	if _, err := repo.FindByLogin(ctx, "Ivan01"); err != domain.ErrUserNotFound {
		t.Fatalf("old login still resolves: %v", err)
	}
	user, err := repo.FindByLogin(ctx, "Ivan02")
	if err != nil {
		t.Fatalf("new login not found: %v", err)
	}
	if user.ModifiedBy != "Ivan01" {
		t.Fatalf("expected modified_by Ivan01, got %s", user.ModifiedBy)
	}
}

func TestUserService_Delete_ThenLookup(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())
	ctx := context.Background()

	mustCreate(t, svc, "Ivan01")
	if err := svc.Delete(ctx, "Ivan01"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByLogin(ctx, "Ivan01"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, "Ivan01"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on repeated delete, got %v", err)
	}
}

func TestUserService_UsersAboveAge_StrictBoundary(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	ctx := context.Background()

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	older := now.AddDate(-20, 0, -1)   // one day past twenty years
	exact := now.AddDate(-20, 0, 0)    // exactly twenty years ago
	younger := now.AddDate(-19, 0, 0)  // nineteen

	for _, tc := range []struct {
		login    string
		birthday time.Time
	}{
		{"older", older},
		{"exact", exact},
		{"younger", younger},
	} {
		b := tc.birthday
		if _, err := svc.Create(ctx, ports.RegisterInput{
			Login: tc.login, Password: "Pass123", Name: "Ivan",
			Gender: domain.GenderUnknown, Birthday: &b,
		}, "Admin"); err != nil {
			t.Fatalf("create %s: %v", tc.login, err)
		}
	}
	// No birthday set at all: never listed.
	mustCreate(t, svc, "unknown")

	users, err := svc.UsersAboveAge(ctx, 20)
	if err != nil {
		t.Fatalf("users above age: %v", err)
	}
	if len(users) != 1 || users[0].Login != "older" {
		t.Fatalf("expected only the strictly older user, got %+v", users)
	}
}

func TestUserService_UpdateProfile_NotFound(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	_, err := svc.UpdateProfile(context.Background(), "ghost", ports.ProfileInput{Name: "Ivan"}, "Admin")
	if err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
