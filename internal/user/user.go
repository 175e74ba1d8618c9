package user

import (
	"errors"
	"time"

	userDatamodel "github.com/Cordillera123/APIs-Solstic-sub002/internal/core/datamodel/user"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ProfileID int64     `json:"profile_id"`
	OfficeID  *int64    `json:"office_id,omitempty"`
	Disabled  bool      `json:"disabled"`
	StateID   int64     `json:"state_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the account can be used at all: the disabled flag
// and an inactive state id are equivalent.
func (u *User) IsActive() bool {
	return !u.Disabled && u.StateID == userDatamodel.ActiveStateID
}

func (u *User) HasOffice() bool {
	return u.OfficeID != nil && *u.OfficeID > 0
}

type Profile struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

var ErrNotFound = errors.New("user not found")

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		ProfileID: u.ProfileID,
		OfficeID:  u.OfficeID,
		Disabled:  u.Disabled,
		StateID:   u.StateID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
