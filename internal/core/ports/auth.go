package ports

import (
	"context"

	"github.com/identikit/user-service/internal/core/domain"
)

// LoginService validates credentials and yields the claims for a token.
type LoginService interface {
	// TryLogin checks login and password against the store. It returns
	// domain.ErrUserNotFound for an unknown login, domain.ErrAccountDeactivated
	// for a deactivated account (checked before the password), and
	// domain.ErrInvalidCredentials when the password does not match.
	TryLogin(ctx context.Context, login, password string) (*domain.UserClaims, error)
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	// Issue returns a signed token embedding the claims. Tokens expire one
	// hour after issuance; there is no refresh mechanism.
	Issue(claims domain.UserClaims) (string, error)
	// Parse verifies signature, issuer, audience, and lifetime, returning the
	// embedded claims.
	Parse(token string) (*domain.UserClaims, error)
}

// LoginThrottle limits repeated failed login attempts per login.
type LoginThrottle interface {
	// Allow reports whether another attempt for the login is permitted.
	Allow(ctx context.Context, login string) (bool, error)
	// RecordFailure counts one failed attempt.
	RecordFailure(ctx context.Context, login string) error
	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, login string) error
}
