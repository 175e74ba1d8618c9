package permission

import (
	"fmt"
	"strconv"
)

// Triple identifies one menu/submenu/option node. A nil SubmenuID or
// OptionID means "this level only" and is part of the identity, never a
// wildcard: (5, null, null) and (5, 1, null) are distinct permissions.
type Triple struct {
	MenuID    int64  `json:"men_id"`
	SubmenuID *int64 `json:"sub_id,omitempty"`
	OptionID  *int64 `json:"opc_id,omitempty"`
}

// Key renders the composite lookup key with explicit "null" tokens so that
// absent levels never compare equal to concrete ids.
func (t Triple) Key() string {
	return fmt.Sprintf("%d-%s-%s", t.MenuID, nullableToken(t.SubmenuID), nullableToken(t.OptionID))
}

func (t Triple) String() string {
	return fmt.Sprintf("(men_id=%d, sub_id=%s, opc_id=%s)", t.MenuID, nullableToken(t.SubmenuID), nullableToken(t.OptionID))
}

func nullableToken(id *int64) string {
	if id == nil {
		return "null"
	}
	return strconv.FormatInt(*id, 10)
}

// AvailabilityRow is one profile-permission row joined with the active
// menu/submenu/option metadata needed to render tree nodes.
type AvailabilityRow struct {
	MenuID        int64   `json:"men_id"`
	MenuName      string  `json:"men_nombre"`
	MenuIcon      *string `json:"men_icono,omitempty"`
	MenuComponent *string `json:"men_componente,omitempty"`

	SubmenuID        *int64  `json:"sub_id,omitempty"`
	SubmenuName      *string `json:"sub_nombre,omitempty"`
	SubmenuIcon      *string `json:"sub_icono,omitempty"`
	SubmenuComponent *string `json:"sub_componente,omitempty"`
	SubmenuActive    *bool   `json:"sub_activo,omitempty"`

	OptionID        *int64  `json:"opc_id,omitempty"`
	OptionName      *string `json:"opc_nombre,omitempty"`
	OptionIcon      *string `json:"opc_icono,omitempty"`
	OptionComponent *string `json:"opc_componente,omitempty"`
	OptionActive    *bool   `json:"opc_activo,omitempty"`
}

func (r AvailabilityRow) Triple() Triple {
	return Triple{MenuID: r.MenuID, SubmenuID: r.SubmenuID, OptionID: r.OptionID}
}

// MenuNode is a tree node at menu level. Absence of a node means the profile
// cannot reach it at all, which is distinct from HasPermission=false
// (available but not individually granted).
type MenuNode struct {
	MenID         int64         `json:"men_id"`
	Name          string        `json:"men_nombre"`
	Icon          *string       `json:"men_icono,omitempty"`
	Component     *string       `json:"men_componente,omitempty"`
	HasPermission bool          `json:"has_permission"`
	Submenus      []SubmenuNode `json:"submenus"`
}

type SubmenuNode struct {
	SubID         int64        `json:"sub_id"`
	Name          string       `json:"sub_nombre"`
	Icon          *string      `json:"sub_icono,omitempty"`
	Component     *string      `json:"sub_componente,omitempty"`
	HasPermission bool         `json:"has_permission"`
	Options       []OptionNode `json:"options"`
}

type OptionNode struct {
	OpcID         int64   `json:"opc_id"`
	Name          string  `json:"opc_nombre"`
	Icon          *string `json:"opc_icono,omitempty"`
	Component     *string `json:"opc_componente,omitempty"`
	HasPermission bool    `json:"has_permission"`
}

// BuildTree folds flat availability rows into ordered menu/submenu/option
// nodes. granted is the user's own permission set keyed by Triple.Key.
// Ordered maps (slice + index) keep insertion order and avoid duplicate-key
// overwrites; conversion to plain lists happens here, at the output boundary.
func BuildTree(rows []AvailabilityRow, granted map[string]struct{}) []MenuNode {
	menus := make([]MenuNode, 0)
	menuIdx := make(map[int64]int)
	subIdx := make(map[int64]map[int64]int)

	has := func(t Triple) bool {
		_, ok := granted[t.Key()]
		return ok
	}

	for _, row := range rows {
		mi, ok := menuIdx[row.MenuID]
		if !ok {
			mi = len(menus)
			menuIdx[row.MenuID] = mi
			subIdx[row.MenuID] = make(map[int64]int)
			menus = append(menus, MenuNode{
				MenID:     row.MenuID,
				Name:      row.MenuName,
				Icon:      row.MenuIcon,
				Component: row.MenuComponent,
				Submenus:  make([]SubmenuNode, 0),
			})
		}

		if row.SubmenuID == nil && row.OptionID == nil {
			// leaf permission at menu level
			menus[mi].HasPermission = has(Triple{MenuID: row.MenuID})
			continue
		}

		if row.SubmenuID == nil || row.SubmenuActive == nil || !*row.SubmenuActive {
			continue
		}

		si, ok := subIdx[row.MenuID][*row.SubmenuID]
		if !ok {
			si = len(menus[mi].Submenus)
			subIdx[row.MenuID][*row.SubmenuID] = si
			sub := SubmenuNode{
				SubID:   *row.SubmenuID,
				Options: make([]OptionNode, 0),
			}
			if row.SubmenuName != nil {
				sub.Name = *row.SubmenuName
			}
			sub.Icon = row.SubmenuIcon
			sub.Component = row.SubmenuComponent
			menus[mi].Submenus = append(menus[mi].Submenus, sub)
		}

		if row.OptionID == nil {
			menus[mi].Submenus[si].HasPermission = has(Triple{MenuID: row.MenuID, SubmenuID: row.SubmenuID})
			continue
		}

		if row.OptionActive == nil || !*row.OptionActive {
			continue
		}

		opt := OptionNode{
			OpcID:         *row.OptionID,
			Icon:          row.OptionIcon,
			Component:     row.OptionComponent,
			HasPermission: has(Triple{MenuID: row.MenuID, SubmenuID: row.SubmenuID, OptionID: row.OptionID}),
		}
		if row.OptionName != nil {
			opt.Name = *row.OptionName
		}
		menus[mi].Submenus[si].Options = append(menus[mi].Submenus[si].Options, opt)
	}

	return menus
}

// GrantedSet builds the lookup set from the user's permission rows.
func GrantedSet(triples []Triple) map[string]struct{} {
	set := make(map[string]struct{}, len(triples))
	for _, t := range triples {
		set[t.Key()] = struct{}{}
	}
	return set
}
