package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/identikit/user-service/internal/core/domain"
)

// TokenTTL is the fixed token lifetime. Expired tokens require a fresh login;
// there is no refresh mechanism.
const TokenTTL = time.Hour

// accessClaims is the wire shape of an issued token: the registered claims
// carry jti, sub (user guid), issuer, audience, and expiry; Login and Admin
// are custom claims.
type accessClaims struct {
	Login string `json:"name"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS512-signed bearer tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewTokenService(secret, issuer, audience string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &TokenService{secret: []byte(secret), issuer: issuer, audience: audience, ttl: ttl}
}

// Issue signs a token for the claims with a freshly generated token id.
func (s *TokenService) Issue(claims domain.UserClaims) (string, error) {
	now := time.Now().UTC()
	ac := accessClaims{
		Login: claims.Login,
		Admin: claims.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   claims.Guid.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS512, ac)
	return t.SignedString(s.secret)
}

// Parse verifies signature, issuer, audience, and lifetime and returns the
// embedded user claims.
func (s *TokenService) Parse(token string) (*domain.UserClaims, error) {
	var ac accessClaims
	parsed, err := jwt.ParseWithClaims(token, &ac,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	subject, err := uuid.Parse(ac.Subject)
	if err != nil {
		return nil, fmt.Errorf("token subject: %w", err)
	}

	return &domain.UserClaims{Guid: subject, Login: ac.Login, Admin: ac.Admin}, nil
}
