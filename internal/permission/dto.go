package permission

import "errors"

// ChangeRequest is one entry of an assign batch: grant or revoke a single
// menu/submenu/option triple.
type ChangeRequest struct {
	MenuID    int64  `json:"men_id"`
	SubmenuID *int64 `json:"sub_id,omitempty"`
	OptionID  *int64 `json:"opc_id,omitempty"`
	Grant     bool   `json:"grant"`
}

func (c ChangeRequest) Triple() Triple {
	return Triple{MenuID: c.MenuID, SubmenuID: c.SubmenuID, OptionID: c.OptionID}
}

func (c ChangeRequest) Validate() error {
	if c.MenuID <= 0 {
		return errors.New("men_id is required")
	}
	if c.OptionID != nil && c.SubmenuID == nil {
		return errors.New("opc_id requires sub_id")
	}
	return nil
}

type AssignPermissionsDTO struct {
	Changes []ChangeRequest `json:"changes"`
}

func (d AssignPermissionsDTO) Validate() error {
	if len(d.Changes) == 0 {
		return errors.New("changes is required")
	}
	return nil
}

// AssignResult reports partial success: rows actually changed plus the
// per-entry errors that were skipped over.
type AssignResult struct {
	Changed int      `json:"changed"`
	Errors  []string `json:"errors"`
}

type CopyPermissionsDTO struct {
	SourceUserID int64 `json:"source_user_id"`
	Overwrite    bool  `json:"overwrite"`
}

func (d CopyPermissionsDTO) Validate() error {
	if d.SourceUserID <= 0 {
		return errors.New("source_user_id is required")
	}
	return nil
}

type CopyResult struct {
	Copied int `json:"copied"`
}

// ActivePermissions is a reporting view: the profile's availability set and
// the subset actually granted to the user.
type ActivePermissions struct {
	Available      []Triple `json:"available"`
	Granted        []Triple `json:"granted"`
	AvailableCount int      `json:"available_count"`
	GrantedCount   int      `json:"granted_count"`
}
