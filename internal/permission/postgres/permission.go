package postgres

import (
	"errors"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal/permission"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/user"

	permissionDatamodel "github.com/Cordillera123/APIs-Solstic-sub002/internal/core/datamodel/permission"
	userDatamodel "github.com/Cordillera123/APIs-Solstic-sub002/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// PermissionRepository implements permission.Repository using GORM.
type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.Repository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Transaction(fn func(permission.Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&PermissionRepository{db: tx})
	})
}

func (r *PermissionRepository) GetUser(userID int64) (*user.User, error) {
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

const availabilityQuery = `
SELECT pp.men_id AS menu_id, m.men_nombre AS menu_name, m.men_icono AS menu_icon, m.men_componente AS menu_component,
       pp.sub_id AS submenu_id, s.sub_nombre AS submenu_name, s.sub_icono AS submenu_icon, s.sub_componente AS submenu_component, s.sub_activo AS submenu_active,
       pp.opc_id AS option_id, o.opc_nombre AS option_name, o.opc_icono AS option_icon, o.opc_componente AS option_component, o.opc_activo AS option_active
FROM profile_permissions pp
JOIN menus m ON m.men_id = pp.men_id
LEFT JOIN submenus s ON s.sub_id = pp.sub_id
LEFT JOIN options o ON o.opc_id = pp.opc_id
WHERE pp.profile_id = ? AND m.men_activo = ?
ORDER BY pp.id`

// GetAvailability returns the profile's permission rows joined with node
// metadata, filtered to active menus, in insertion order.
func (r *PermissionRepository) GetAvailability(profileID int64) ([]permission.AvailabilityRow, error) {
	var rows []permission.AvailabilityRow
	err := r.db.Raw(availabilityQuery, profileID, true).Scan(&rows).Error
	return rows, err
}

// HasAvailability checks for an active availability row at the exact triple.
// NULL levels match IS NULL, never any value.
func (r *PermissionRepository) HasAvailability(profileID int64, t permission.Triple) (bool, error) {
	q := r.db.Table("profile_permissions pp").
		Joins("JOIN menus m ON m.men_id = pp.men_id").
		Where("pp.profile_id = ? AND pp.men_id = ? AND m.men_activo = ?", profileID, t.MenuID, true)

	if t.SubmenuID == nil {
		q = q.Where("pp.sub_id IS NULL")
	} else {
		q = q.Joins("JOIN submenus s ON s.sub_id = pp.sub_id").
			Where("pp.sub_id = ? AND s.sub_activo = ?", *t.SubmenuID, true)
	}

	if t.OptionID == nil {
		q = q.Where("pp.opc_id IS NULL")
	} else {
		q = q.Joins("JOIN options o ON o.opc_id = pp.opc_id").
			Where("pp.opc_id = ? AND o.opc_activo = ?", *t.OptionID, true)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PermissionRepository) GetUserPermissions(userID int64) ([]permission.Triple, error) {
	var rows []permissionDatamodel.UserPermission
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	triples := make([]permission.Triple, 0, len(rows))
	for _, row := range rows {
		triples = append(triples, permission.Triple{
			MenuID:    row.MenuID,
			SubmenuID: row.SubmenuID,
			OptionID:  row.OptionID,
		})
	}
	return triples, nil
}

func (r *PermissionRepository) UserPermissionExists(userID int64, t permission.Triple) (bool, error) {
	var count int64
	err := r.userPermissionScope(userID, t).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PermissionRepository) InsertUserPermission(userID int64, t permission.Triple) error {
	row := permissionDatamodel.UserPermission{
		UserID:    userID,
		MenuID:    t.MenuID,
		SubmenuID: t.SubmenuID,
		OptionID:  t.OptionID,
	}
	return r.db.Create(&row).Error
}

func (r *PermissionRepository) DeleteUserPermission(userID int64, t permission.Triple) error {
	return r.userPermissionScope(userID, t).Delete(&permissionDatamodel.UserPermission{}).Error
}

func (r *PermissionRepository) DeleteAllUserPermissions(userID int64) error {
	return r.db.Where("user_id = ?", userID).Delete(&permissionDatamodel.UserPermission{}).Error
}

func (r *PermissionRepository) userPermissionScope(userID int64, t permission.Triple) *gorm.DB {
	q := r.db.Model(&permissionDatamodel.UserPermission{}).
		Where("user_id = ? AND men_id = ?", userID, t.MenuID)

	if t.SubmenuID == nil {
		q = q.Where("sub_id IS NULL")
	} else {
		q = q.Where("sub_id = ?", *t.SubmenuID)
	}

	if t.OptionID == nil {
		q = q.Where("opc_id IS NULL")
	} else {
		q = q.Where("opc_id = ?", *t.OptionID)
	}

	return q
}
