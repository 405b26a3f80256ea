package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Gender is the self-reported gender of a user.
type Gender int

const (
	GenderFemale  Gender = 0
	GenderMale    Gender = 1
	GenderUnknown Gender = 2
)

// Valid reports whether g is one of the known gender values.
func (g Gender) Valid() bool {
	return g >= GenderFemale && g <= GenderUnknown
}

var ErrLoginExists = errors.New("login already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrAccountDeactivated = errors.New("account deactivated")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// User is the core account aggregate. Login is unique across all stored
// users; the storage layer backs that with a unique index. A non-nil
// RevokedOn marks the account as deactivated.
type User struct {
	Guid         uuid.UUID  `json:"guid" bson:"_id"`
	Login        string     `json:"login" bson:"login"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Name         string     `json:"name" bson:"name"`
	Gender       Gender     `json:"gender" bson:"gender"`
	Birthday     *time.Time `json:"birthday,omitempty" bson:"birthday,omitempty"`
	Admin        bool       `json:"admin" bson:"admin"`
	CreatedOn    time.Time  `json:"created_on" bson:"created_on"`
	CreatedBy    string     `json:"created_by" bson:"created_by"`
	ModifiedOn   *time.Time `json:"modified_on,omitempty" bson:"modified_on,omitempty"`
	ModifiedBy   string     `json:"modified_by,omitempty" bson:"modified_by,omitempty"`
	RevokedOn    *time.Time `json:"revoked_on,omitempty" bson:"revoked_on,omitempty"`
	RevokedBy    string     `json:"revoked_by,omitempty" bson:"revoked_by,omitempty"`
}

// Active reports whether the account has not been deactivated.
func (u *User) Active() bool {
	return u.RevokedOn == nil
}

// UserClaims is the minimal identity derived from a User at login time. It
// lives only for the duration of token construction and request handling and
// is never persisted.
type UserClaims struct {
	Guid  uuid.UUID
	Login string
	Admin bool
}

// Claims builds the token identity for the user.
func (u *User) Claims() UserClaims {
	return UserClaims{Guid: u.Guid, Login: u.Login, Admin: u.Admin}
}
