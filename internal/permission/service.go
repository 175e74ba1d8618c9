package permission

import (
	"fmt"
	"log/slog"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/user"
)

// Repository defines the data access methods for permission state. All
// methods operate on the exact triple: NULL levels are matched as NULL.
type Repository interface {
	GetUser(userID int64) (*user.User, error)
	GetAvailability(profileID int64) ([]AvailabilityRow, error)
	HasAvailability(profileID int64, t Triple) (bool, error)
	GetUserPermissions(userID int64) ([]Triple, error)
	UserPermissionExists(userID int64, t Triple) (bool, error)
	InsertUserPermission(userID int64, t Triple) error
	DeleteUserPermission(userID int64, t Triple) error
	DeleteAllUserPermissions(userID int64) error

	// Transaction runs fn against a repository bound to one transaction;
	// returning an error rolls back everything fn did.
	Transaction(fn func(Repository) error) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetPermissionTree returns the menu tree reachable by the user's profile,
// with has_permission flagged from the user's own grant rows. Read-only.
func (s *Service) GetPermissionTree(userID int64) ([]MenuNode, error) {
	u, err := s.repo.GetUser(userID)
	if err != nil {
		s.logger.Warn("permission tree: user lookup failed", "error", err, "user_id", userID)
		return nil, internal.ErrUserNotFound
	}

	rows, err := s.repo.GetAvailability(u.ProfileID)
	if err != nil {
		s.logger.Error("permission tree: availability query failed", "error", err, "profile_id", u.ProfileID)
		return nil, internal.NewStorageError("failed to load profile permissions", err)
	}

	grants, err := s.repo.GetUserPermissions(userID)
	if err != nil {
		s.logger.Error("permission tree: user permission query failed", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("failed to load user permissions", err)
	}

	return BuildTree(rows, GrantedSet(grants)), nil
}

// AssignPermissions applies a batch of grant/revoke requests. Each entry is
// checked against the profile's current availability; entries that fail the
// check are collected as errors while the rest proceed. The whole call runs
// in one transaction, rolled back only on storage failure.
func (s *Service) AssignPermissions(userID int64, changes []ChangeRequest) (*AssignResult, error) {
	u, err := s.repo.GetUser(userID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	result := &AssignResult{Errors: make([]string, 0)}

	txErr := s.repo.Transaction(func(tx Repository) error {
		for _, change := range changes {
			if err := change.Validate(); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", change.Triple(), err))
				continue
			}

			t := change.Triple()

			available, err := tx.HasAvailability(u.ProfileID, t)
			if err != nil {
				return err
			}
			if !available {
				result.Errors = append(result.Errors,
					fmt.Sprintf("%s is not available for profile %d", t, u.ProfileID))
				continue
			}

			exists, err := tx.UserPermissionExists(userID, t)
			if err != nil {
				return err
			}

			switch {
			case change.Grant && !exists:
				if err := tx.InsertUserPermission(userID, t); err != nil {
					return err
				}
				result.Changed++
			case !change.Grant && exists:
				if err := tx.DeleteUserPermission(userID, t); err != nil {
					return err
				}
				result.Changed++
			default:
				// already in the requested state
			}
		}
		return nil
	})
	if txErr != nil {
		s.logger.Error("assign permissions failed", "error", txErr, "user_id", userID)
		return nil, internal.NewStorageError("failed to assign permissions", txErr)
	}

	s.logger.Info("permissions assigned",
		"user_id", userID,
		"requested", len(changes),
		"changed", result.Changed,
		"errors", len(result.Errors))

	return result, nil
}

// CopyPermissions replicates the source user's permission set onto the
// target. Both users must share a profile because availability is
// profile-scoped.
func (s *Service) CopyPermissions(sourceUserID, targetUserID int64, overwrite bool) (*CopyResult, error) {
	src, err := s.repo.GetUser(sourceUserID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	dst, err := s.repo.GetUser(targetUserID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	if src.ProfileID != dst.ProfileID {
		s.logger.Warn("copy permissions rejected: profile mismatch",
			"source_user_id", sourceUserID,
			"target_user_id", targetUserID,
			"source_profile", src.ProfileID,
			"target_profile", dst.ProfileID)
		return nil, internal.ErrProfileMismatch
	}

	result := &CopyResult{}

	txErr := s.repo.Transaction(func(tx Repository) error {
		if overwrite {
			if err := tx.DeleteAllUserPermissions(targetUserID); err != nil {
				return err
			}
		}

		sourceRows, err := tx.GetUserPermissions(sourceUserID)
		if err != nil {
			return err
		}

		for _, t := range sourceRows {
			if !overwrite {
				exists, err := tx.UserPermissionExists(targetUserID, t)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
			}
			if err := tx.InsertUserPermission(targetUserID, t); err != nil {
				return err
			}
			result.Copied++
		}
		return nil
	})
	if txErr != nil {
		s.logger.Error("copy permissions failed", "error", txErr,
			"source_user_id", sourceUserID, "target_user_id", targetUserID)
		return nil, internal.NewStorageError("failed to copy permissions", txErr)
	}

	s.logger.Info("permissions copied",
		"source_user_id", sourceUserID,
		"target_user_id", targetUserID,
		"overwrite", overwrite,
		"copied", result.Copied)

	return result, nil
}

// GetActivePermissions intersects the profile's availability with the user's
// grants. Stale grants with no availability backing are excluded from the
// granted subset.
func (s *Service) GetActivePermissions(userID int64) (*ActivePermissions, error) {
	u, err := s.repo.GetUser(userID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	rows, err := s.repo.GetAvailability(u.ProfileID)
	if err != nil {
		return nil, internal.NewStorageError("failed to load profile permissions", err)
	}

	grants, err := s.repo.GetUserPermissions(userID)
	if err != nil {
		return nil, internal.NewStorageError("failed to load user permissions", err)
	}

	grantedSet := GrantedSet(grants)

	res := &ActivePermissions{
		Available: make([]Triple, 0, len(rows)),
		Granted:   make([]Triple, 0),
	}
	for _, row := range rows {
		t := row.Triple()
		res.Available = append(res.Available, t)
		if _, ok := grantedSet[t.Key()]; ok {
			res.Granted = append(res.Granted, t)
		}
	}
	res.AvailableCount = len(res.Available)
	res.GrantedCount = len(res.Granted)

	return res, nil
}
