package handler

import (
	"time"

	"github.com/identikit/user-service/internal/core/domain"
)

// --- Request types ---

type registerRequest struct {
	Login    string     `json:"login" validate:"required,alphanum"`
	Password string     `json:"password" validate:"required,alphanum"`
	Name     string     `json:"name" validate:"required,personname"`
	Gender   int        `json:"gender" validate:"gte=0,lte=2"`
	Birthday *time.Time `json:"birthday,omitempty"`
	Admin    bool       `json:"admin"`
}

type updateUserRequest struct {
	Name     string     `json:"name" validate:"required,personname"`
	Gender   int        `json:"gender" validate:"gte=0,lte=2"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

type changePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,alphanum"`
}

type changeLoginRequest struct {
	NewLogin string `json:"newLogin" validate:"required,alphanum"`
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type deleteUserRequest struct {
	// 0 soft-deletes (deactivates) the account, 1 removes it permanently.
	DeleteMode int `json:"deleteMode"`
}

// --- Response types ---

// userView is the compact shape returned by login and the above-age listing.
type userView struct {
	Name     string     `json:"name"`
	Gender   int        `json:"gender"`
	Birthday *time.Time `json:"birthday,omitempty"`
	Admin    bool       `json:"admin"`
	IsActive bool       `json:"is_active"`
}

// userSummary is the audit-complete shape returned by register, update, and
// the active-user listing. The password hash is never exposed.
type userSummary struct {
	Guid       string     `json:"guid"`
	Login      string     `json:"login"`
	Name       string     `json:"name"`
	Gender     int        `json:"gender"`
	Birthday   *time.Time `json:"birthday,omitempty"`
	Admin      bool       `json:"admin"`
	CreatedOn  time.Time  `json:"created_on"`
	CreatedBy  string     `json:"created_by"`
	ModifiedOn *time.Time `json:"modified_on,omitempty"`
	ModifiedBy string     `json:"modified_by,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toUserView(u *domain.User) userView {
	return userView{
		Name:     u.Name,
		Gender:   int(u.Gender),
		Birthday: u.Birthday,
		Admin:    u.Admin,
		IsActive: u.Active(),
	}
}

func toUserSummary(u *domain.User) userSummary {
	return userSummary{
		Guid:       u.Guid.String(),
		Login:      u.Login,
		Name:       u.Name,
		Gender:     int(u.Gender),
		Birthday:   u.Birthday,
		Admin:      u.Admin,
		CreatedOn:  u.CreatedOn,
		CreatedBy:  u.CreatedBy,
		ModifiedOn: u.ModifiedOn,
		ModifiedBy: u.ModifiedBy,
	}
}
