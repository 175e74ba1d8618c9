package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is minutes since midnight. Windows are compared as time-of-day
// only, with no date component.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS"; seconds are discarded.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return TimeOfDay(hour*60 + minute), nil
}

func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Window is a working-hours window with inclusive bounds.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Contains applies the midnight-crossing rule: when End < Start the window
// wraps past midnight and t is inside iff t >= Start or t <= End.
func (w Window) Contains(t TimeOfDay) bool {
	if w.End < w.Start {
		return t >= w.Start || t <= w.End
	}
	return t >= w.Start && t <= w.End
}

// Origin names which schedule source won the precedence resolution.
type Origin string

const (
	OriginTemporary Origin = "TEMPORAL"
	OriginPersonal  Origin = "PERSONALIZADO"
	OriginOffice    Origin = "HEREDADO_OFICINA"
)

// Reason codes for gate decisions.
const (
	ReasonUserNotFound     = "USER_NOT_FOUND"
	ReasonUserDisabled     = "USER_DISABLED"
	ReasonSuperAdmin       = "SUPER_ADMIN"
	ReasonNoOffice         = "SIN_OFICINA"
	ReasonNoSchedule       = "SIN_HORARIO"
	ReasonOutsideOffice    = "FUERA_HORARIO"
	ReasonOutsideTemporary = "FUERA_HORARIO_TEMPORAL"
	ReasonOutsidePersonal  = "FUERA_HORARIO_PERSONAL"
	ReasonInsideWindow     = "DENTRO_HORARIO"
	ReasonInternalError    = "ERROR_INTERNO"
)

// OutsideReason maps a window origin to its denial reason code.
func OutsideReason(origin Origin) string {
	switch origin {
	case OriginTemporary:
		return ReasonOutsideTemporary
	case OriginPersonal:
		return ReasonOutsidePersonal
	default:
		return ReasonOutsideOffice
	}
}

// WindowInfo echoes the effective window bounds in a decision payload.
type WindowInfo struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Origin Origin `json:"origin"`
}

// Decision is the gate's structured allow/deny outcome. CloseSession tells
// the client to terminate the session; it is never set for internal errors.
type Decision struct {
	Allowed      bool        `json:"allowed"`
	Reason       string      `json:"reason"`
	Message      string      `json:"message"`
	Window       *WindowInfo `json:"window,omitempty"`
	CloseSession bool        `json:"close_session"`
}

// RawWindow is a schedule row's time bounds as stored.
type RawWindow struct {
	StartTime string
	EndTime   string
}

// ClientMeta is request metadata carried into the audit log on denial.
type ClientMeta struct {
	IP        string
	UserAgent string
	Path      string
}

// ISOWeekday returns 1=Monday .. 7=Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
