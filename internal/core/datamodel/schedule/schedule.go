package schedule

import "time"

// Weekday follows ISO numbering: 1=Monday .. 7=Sunday.

type OfficeSchedule struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	OfficeID  int64  `gorm:"column:office_id;not null;index" json:"office_id"`
	Weekday   int    `gorm:"column:weekday;not null" json:"weekday"`
	StartTime string `gorm:"column:start_time;not null" json:"start_time"`
	EndTime   string `gorm:"column:end_time;not null" json:"end_time"`
	Enabled   bool   `gorm:"column:enabled;default:true" json:"enabled"`
}

func (OfficeSchedule) TableName() string {
	return "office_schedules"
}

// PersonalSchedule overrides the office schedule for one user/weekday.
type PersonalSchedule struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	UserID    int64  `gorm:"column:user_id;not null;index" json:"user_id"`
	Weekday   int    `gorm:"column:weekday;not null" json:"weekday"`
	StartTime string `gorm:"column:start_time;not null" json:"start_time"`
	EndTime   string `gorm:"column:end_time;not null" json:"end_time"`
}

func (PersonalSchedule) TableName() string {
	return "personal_schedules"
}

// TemporarySchedule overrides personal and office schedules while
// date_from <= today <= date_to and the row is active.
type TemporarySchedule struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;index" json:"user_id"`
	Weekday   int       `gorm:"column:weekday;not null" json:"weekday"`
	StartTime string    `gorm:"column:start_time;not null" json:"start_time"`
	EndTime   string    `gorm:"column:end_time;not null" json:"end_time"`
	DateFrom  time.Time `gorm:"column:date_from;type:date;not null" json:"date_from"`
	DateTo    time.Time `gorm:"column:date_to;type:date;not null" json:"date_to"`
	Active    bool      `gorm:"column:active;default:true" json:"active"`
	Type      string    `gorm:"column:type" json:"type"`
	Reason    string    `gorm:"column:reason" json:"reason"`
}

func (TemporarySchedule) TableName() string {
	return "temporary_schedules"
}
