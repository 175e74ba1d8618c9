package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal/core/events"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/user"
)

// Repository defines the read-only queries the gate issues. Lookups return
// (nil, nil) when no row matches.
type Repository interface {
	GetUser(userID int64) (*user.User, error)
	GetTemporaryWindow(userID int64, weekday int, today time.Time) (*RawWindow, error)
	GetPersonalWindow(userID int64, weekday int) (*RawWindow, error)
	GetOfficeWindow(officeID int64, weekday int) (*RawWindow, error)
}

// Publisher dispatches denial events to the audit subscriber without ever
// blocking the deny response.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Options configure the gate's operational behavior. FailOpen trades
// strictness for availability: an internal defect allows access instead of
// locking everyone out.
type Options struct {
	SuperAdminProfileID int64
	FailOpen            bool
	Location            *time.Location
}

type Service struct {
	repo   Repository
	bus    Publisher
	opts   Options
	logger *slog.Logger
}

func NewService(repo Repository, bus Publisher, opts Options, logger *slog.Logger) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{
		repo:   repo,
		bus:    bus,
		opts:   opts,
		logger: logger,
	}
}

// Evaluate runs the gate's decision table for a user at an instant. It is a
// pure function of its inputs plus read-only queries; the only side effect
// is the best-effort audit event on denial.
func (s *Service) Evaluate(ctx context.Context, userID int64, now time.Time, meta ClientMeta) Decision {
	localNow := now.In(s.opts.Location)
	weekday := ISOWeekday(localNow)

	u, err := s.repo.GetUser(userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// nothing to log against: no user row exists
			return Decision{
				Allowed:      false,
				Reason:       ReasonUserNotFound,
				Message:      "user not found",
				CloseSession: true,
			}
		}
		return s.internalFailure(ctx, err, userID)
	}

	if !u.IsActive() {
		d := Decision{
			Allowed:      false,
			Reason:       ReasonUserDisabled,
			Message:      "user account is disabled",
			CloseSession: true,
		}
		s.audit(ctx, u, weekday, d, meta)
		return d
	}

	if u.ProfileID == s.opts.SuperAdminProfileID {
		return Decision{
			Allowed: true,
			Reason:  ReasonSuperAdmin,
			Message: "super admin access",
		}
	}

	if !u.HasOffice() {
		d := Decision{
			Allowed: false,
			Reason:  ReasonNoOffice,
			Message: "no office assigned",
		}
		s.audit(ctx, u, weekday, d, meta)
		return d
	}

	raw, origin, err := s.effectiveWindow(u, weekday, localNow)
	if err != nil {
		return s.internalFailure(ctx, err, userID)
	}
	if raw == nil {
		d := Decision{
			Allowed: false,
			Reason:  ReasonNoSchedule,
			Message: "no schedule defined for this day",
		}
		s.audit(ctx, u, weekday, d, meta)
		return d
	}

	window, err := parseWindow(raw)
	if err != nil {
		return s.internalFailure(ctx, err, userID)
	}

	info := &WindowInfo{
		Start:  window.Start.String(),
		End:    window.End.String(),
		Origin: origin,
	}

	if !window.Contains(TimeOfDayFrom(localNow)) {
		d := Decision{
			Allowed:      false,
			Reason:       OutsideReason(origin),
			Message:      fmt.Sprintf("outside working hours %s-%s", info.Start, info.End),
			Window:       info,
			CloseSession: true,
		}
		s.audit(ctx, u, weekday, d, meta)
		return d
	}

	return Decision{
		Allowed: true,
		Reason:  ReasonInsideWindow,
		Message: fmt.Sprintf("inside working hours %s-%s", info.Start, info.End),
		Window:  info,
	}
}

// effectiveWindow resolves the winning schedule source for today by strict
// priority: temporary, then personal, then office-inherited.
func (s *Service) effectiveWindow(u *user.User, weekday int, localNow time.Time) (*RawWindow, Origin, error) {
	today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, localNow.Location())

	raw, err := s.repo.GetTemporaryWindow(u.ID, weekday, today)
	if err != nil {
		return nil, "", err
	}
	if raw != nil {
		return raw, OriginTemporary, nil
	}

	raw, err = s.repo.GetPersonalWindow(u.ID, weekday)
	if err != nil {
		return nil, "", err
	}
	if raw != nil {
		return raw, OriginPersonal, nil
	}

	raw, err = s.repo.GetOfficeWindow(*u.OfficeID, weekday)
	if err != nil {
		return nil, "", err
	}
	if raw != nil {
		return raw, OriginOffice, nil
	}

	return nil, "", nil
}

func parseWindow(raw *RawWindow) (Window, error) {
	start, err := ParseTimeOfDay(raw.StartTime)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseTimeOfDay(raw.EndTime)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: end}, nil
}

// internalFailure converts an evaluation error into the configured fallback.
// Fail-open never instructs the client to close the session.
func (s *Service) internalFailure(ctx context.Context, err error, userID int64) Decision {
	s.logger.Error("schedule gate evaluation failed", "error", err, "user_id", userID, "fail_open", s.opts.FailOpen)

	if s.opts.FailOpen {
		return Decision{
			Allowed: true,
			Reason:  ReasonInternalError,
			Message: "internal error during schedule evaluation, access allowed",
		}
	}
	return Decision{
		Allowed: false,
		Reason:  ReasonInternalError,
		Message: "internal error during schedule evaluation",
	}
}

// audit publishes the denial for the append-only access-attempt log. Publish
// dispatches asynchronously; failures surface only in diagnostics.
func (s *Service) audit(ctx context.Context, u *user.User, weekday int, d Decision, meta ClientMeta) {
	if s.bus == nil {
		return
	}

	var officeID int64
	if u.OfficeID != nil {
		officeID = *u.OfficeID
	}

	var windowStart, windowEnd string
	if d.Window != nil {
		windowStart = d.Window.Start
		windowEnd = d.Window.End
	}

	if err := s.bus.Publish(ctx, events.NewAccessDeniedEvent(
		u.ID, officeID, weekday, d.Reason, d.Message, windowStart, windowEnd, meta.IP, meta.UserAgent, meta.Path,
	)); err != nil {
		s.logger.Error("failed to publish access denied event", "error", err, "user_id", u.ID)
	}
}
