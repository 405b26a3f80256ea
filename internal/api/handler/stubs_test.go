package handler

import (
	"context"

	"github.com/identikit/user-service/internal/core/domain"
	"github.com/identikit/user-service/internal/core/ports"
)

// stubUserService lets each test wire only the operations it exercises.
type stubUserService struct {
	createFn         func(ctx context.Context, in ports.RegisterInput, createdBy string) (*domain.User, error)
	getByLoginFn     func(ctx context.Context, login string) (*domain.User, error)
	activeUsersFn    func(ctx context.Context) ([]domain.User, error)
	usersAboveAgeFn  func(ctx context.Context, age int) ([]domain.User, error)
	updateProfileFn  func(ctx context.Context, login string, in ports.ProfileInput, modifiedBy string) (*domain.User, error)
	changePasswordFn func(ctx context.Context, login, newPassword, modifiedBy string) error
	changeLoginFn    func(ctx context.Context, login, newLogin, modifiedBy string) error
	deactivateFn     func(ctx context.Context, login, revokedBy string) error
	restoreFn        func(ctx context.Context, login string) error
	deleteFn         func(ctx context.Context, login string) error
}

func (s *stubUserService) Create(ctx context.Context, in ports.RegisterInput, createdBy string) (*domain.User, error) {
	return s.createFn(ctx, in, createdBy)
}

func (s *stubUserService) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	return s.getByLoginFn(ctx, login)
}

func (s *stubUserService) ActiveUsers(ctx context.Context) ([]domain.User, error) {
	return s.activeUsersFn(ctx)
}

func (s *stubUserService) UsersAboveAge(ctx context.Context, age int) ([]domain.User, error) {
	return s.usersAboveAgeFn(ctx, age)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, login string, in ports.ProfileInput, modifiedBy string) (*domain.User, error) {
	return s.updateProfileFn(ctx, login, in, modifiedBy)
}

func (s *stubUserService) ChangePassword(ctx context.Context, login, newPassword, modifiedBy string) error {
	return s.changePasswordFn(ctx, login, newPassword, modifiedBy)
}

func (s *stubUserService) ChangeLogin(ctx context.Context, login, newLogin, modifiedBy string) error {
	return s.changeLoginFn(ctx, login, newLogin, modifiedBy)
}

func (s *stubUserService) Deactivate(ctx context.Context, login, revokedBy string) error {
	return s.deactivateFn(ctx, login, revokedBy)
}

func (s *stubUserService) Restore(ctx context.Context, login string) error {
	return s.restoreFn(ctx, login)
}

func (s *stubUserService) Delete(ctx context.Context, login string) error {
	return s.deleteFn(ctx, login)
}

type stubLoginService struct {
	tryLoginFn func(ctx context.Context, login, password string) (*domain.UserClaims, error)
}

func (s *stubLoginService) TryLogin(ctx context.Context, login, password string) (*domain.UserClaims, error) {
	return s.tryLoginFn(ctx, login, password)
}

type stubTokenIssuer struct {
	issueFn func(claims domain.UserClaims) (string, error)
}

func (s *stubTokenIssuer) Issue(claims domain.UserClaims) (string, error) {
	return s.issueFn(claims)
}

func (s *stubTokenIssuer) Parse(string) (*domain.UserClaims, error) {
	panic("not used in handler tests")
}

// stubThrottle records interactions and optionally blocks every attempt.
type stubThrottle struct {
	blocked  bool
	failures []string
	resets   []string
}

func (s *stubThrottle) Allow(_ context.Context, login string) (bool, error) {
	return !s.blocked, nil
}

func (s *stubThrottle) RecordFailure(_ context.Context, login string) error {
	s.failures = append(s.failures, login)
	return nil
}

func (s *stubThrottle) Reset(_ context.Context, login string) error {
	s.resets = append(s.resets, login)
	return nil
}
