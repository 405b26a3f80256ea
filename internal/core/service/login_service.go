package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/identikit/user-service/internal/core/domain"
	"github.com/identikit/user-service/internal/core/ports"
)

// LoginService validates credentials against the user store.
type LoginService struct {
	repo ports.UserRepository
}

func NewLoginService(repo ports.UserRepository) *LoginService {
	return &LoginService{repo: repo}
}

// TryLogin looks up the user and compares the password against the stored
// bcrypt hash. A deactivated account fails before the password is checked.
func (s *LoginService) TryLogin(ctx context.Context, login, password string) (*domain.UserClaims, error) {
	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	if !user.Active() {
		return nil, domain.ErrAccountDeactivated
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	claims := user.Claims()
	return &claims, nil
}
