package postgres

import (
	"errors"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal/user"

	userDatamodel "github.com/Cordillera123/APIs-Solstic-sub002/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
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

func (r *UserRepository) GetProfile(profileID int64) (*user.Profile, error) {
	var p userDatamodel.Profile
	err := r.db.Where("id = ?", profileID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &user.Profile{ID: p.ID, Name: p.Name, Active: p.Active}, nil
}
