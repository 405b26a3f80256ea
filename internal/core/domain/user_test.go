package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenderValid(t *testing.T) {
	for _, g := range []Gender{GenderFemale, GenderMale, GenderUnknown} {
		if !g.Valid() {
			t.Fatalf("gender %d should be valid", g)
		}
	}
	for _, g := range []Gender{-1, 3, 42} {
		if g.Valid() {
			t.Fatalf("gender %d should be invalid", g)
		}
	}
}

func TestUserActive(t *testing.T) {
	u := User{Login: "Ivan01"}
	if !u.Active() {
		t.Fatalf("user without revocation should be active")
	}

	now := time.Now().UTC()
	u.RevokedOn = &now
	if u.Active() {
		t.Fatalf("revoked user should not be active")
	}
}

func TestUserClaims(t *testing.T) {
	u := User{Guid: uuid.New(), Login: "Admin", Admin: true, PasswordHash: "hash"}
	claims := u.Claims()
	if claims.Guid != u.Guid || claims.Login != "Admin" || !claims.Admin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}
