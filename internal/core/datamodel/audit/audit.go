package audit

import "time"

// AccessAttempt is an append-only record of a denied access attempt. Rows are
// never updated or deleted by this subsystem.
type AccessAttempt struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"column:user_id;not null;index" json:"user_id"`
	OfficeID    int64     `gorm:"column:office_id;default:0" json:"office_id"`
	AttemptedAt time.Time `gorm:"column:attempted_at;not null" json:"attempted_at"`
	Weekday     int       `gorm:"column:weekday;not null" json:"weekday"`
	FailureType string    `gorm:"column:failure_type;not null" json:"failure_type"`
	WindowStart *string   `gorm:"column:window_start" json:"window_start,omitempty"`
	WindowEnd   *string   `gorm:"column:window_end" json:"window_end,omitempty"`
	ClientIP    string    `gorm:"column:client_ip" json:"client_ip"`
	UserAgent   string    `gorm:"column:user_agent" json:"user_agent"`
	Notes       string    `gorm:"column:notes" json:"notes"`
}

func (AccessAttempt) TableName() string {
	return "access_attempts"
}
