package postgres

import (
	"errors"
	"time"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal/schedule"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/user"

	scheduleDatamodel "github.com/Cordillera123/APIs-Solstic-sub002/internal/core/datamodel/schedule"
	userDatamodel "github.com/Cordillera123/APIs-Solstic-sub002/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// ScheduleRepository implements schedule.Repository using GORM. All methods
// are read-only; the gate never writes schedule rows.
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) schedule.Repository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) GetUser(userID int64) (*user.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&u), nil
}

// GetTemporaryWindow returns the active temporary override covering today,
// most recent row first when several overlap.
func (r *ScheduleRepository) GetTemporaryWindow(userID int64, weekday int, today time.Time) (*schedule.RawWindow, error) {
	var row scheduleDatamodel.TemporarySchedule
	err := r.db.
		Where("user_id = ? AND weekday = ? AND active = ? AND date_from <= ? AND date_to >= ?",
			userID, weekday, true, today, today).
		Order("id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule.RawWindow{StartTime: row.StartTime, EndTime: row.EndTime}, nil
}

func (r *ScheduleRepository) GetPersonalWindow(userID int64, weekday int) (*schedule.RawWindow, error) {
	var row scheduleDatamodel.PersonalSchedule
	err := r.db.
		Where("user_id = ? AND weekday = ?", userID, weekday).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule.RawWindow{StartTime: row.StartTime, EndTime: row.EndTime}, nil
}

func (r *ScheduleRepository) GetOfficeWindow(officeID int64, weekday int) (*schedule.RawWindow, error) {
	var row scheduleDatamodel.OfficeSchedule
	err := r.db.
		Where("office_id = ? AND weekday = ? AND enabled = ?", officeID, weekday, true).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule.RawWindow{StartTime: row.StartTime, EndTime: row.EndTime}, nil
}
