package permission

import "time"

type Menu struct {
	ID        int64   `gorm:"primaryKey;column:men_id" json:"men_id"`
	Name      string  `gorm:"column:men_nombre;not null" json:"men_nombre"`
	Icon      *string `gorm:"column:men_icono" json:"men_icono,omitempty"`
	Component *string `gorm:"column:men_componente" json:"men_componente,omitempty"`
	Active    bool    `gorm:"column:men_activo;default:true" json:"men_activo"`
}

func (Menu) TableName() string {
	return "menus"
}

type Submenu struct {
	ID        int64   `gorm:"primaryKey;column:sub_id" json:"sub_id"`
	Name      string  `gorm:"column:sub_nombre;not null" json:"sub_nombre"`
	Icon      *string `gorm:"column:sub_icono" json:"sub_icono,omitempty"`
	Component *string `gorm:"column:sub_componente" json:"sub_componente,omitempty"`
	Active    bool    `gorm:"column:sub_activo;default:true" json:"sub_activo"`
}

func (Submenu) TableName() string {
	return "submenus"
}

type Option struct {
	ID        int64   `gorm:"primaryKey;column:opc_id" json:"opc_id"`
	Name      string  `gorm:"column:opc_nombre;not null" json:"opc_nombre"`
	Icon      *string `gorm:"column:opc_icono" json:"opc_icono,omitempty"`
	Component *string `gorm:"column:opc_componente" json:"opc_componente,omitempty"`
	Active    bool    `gorm:"column:opc_activo;default:true" json:"opc_activo"`
}

func (Option) TableName() string {
	return "options"
}

// ProfilePermission declares a menu/submenu/option node reachable by a
// profile. NULL submenu/option ids mean "this level only", never a wildcard;
// the triple (profile_id, men_id, sub_id, opc_id) is unique.
type ProfilePermission struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	ProfileID int64  `gorm:"column:profile_id;not null;uniqueIndex:uq_profile_perm" json:"profile_id"`
	MenuID    int64  `gorm:"column:men_id;not null;uniqueIndex:uq_profile_perm" json:"men_id"`
	SubmenuID *int64 `gorm:"column:sub_id;uniqueIndex:uq_profile_perm" json:"sub_id,omitempty"`
	OptionID  *int64 `gorm:"column:opc_id;uniqueIndex:uq_profile_perm" json:"opc_id,omitempty"`
}

func (ProfilePermission) TableName() string {
	return "profile_permissions"
}

// UserPermission is the sole mutable authorization state: the row's presence
// grants the node to the user.
type UserPermission struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uq_user_perm" json:"user_id"`
	MenuID    int64     `gorm:"column:men_id;not null;uniqueIndex:uq_user_perm" json:"men_id"`
	SubmenuID *int64    `gorm:"column:sub_id;uniqueIndex:uq_user_perm" json:"sub_id,omitempty"`
	OptionID  *int64    `gorm:"column:opc_id;uniqueIndex:uq_user_perm" json:"opc_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()" json:"created_at"`
}

func (UserPermission) TableName() string {
	return "user_permissions"
}
