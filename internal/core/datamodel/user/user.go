package user

import "time"

// ActiveStateID is the user state considered active; any other state is
// treated the same as the disabled flag.
const ActiveStateID int64 = 1

type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	ProfileID    int64     `gorm:"column:profile_id;not null" json:"profile_id"`
	OfficeID     *int64    `gorm:"column:office_id" json:"office_id,omitempty"`
	Disabled     bool      `gorm:"column:disabled;default:false" json:"disabled"`
	StateID      int64     `gorm:"column:state_id;default:1" json:"state_id"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type Profile struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Active    bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()" json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

type Office struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"column:name;not null" json:"name"`
	InstitutionID int64  `gorm:"column:institution_id" json:"institution_id"`
	Active        bool   `gorm:"column:active;default:true" json:"active"`
}

func (Office) TableName() string {
	return "offices"
}
