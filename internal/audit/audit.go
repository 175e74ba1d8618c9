package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/core/events"

	auditDatamodel "github.com/Cordillera123/APIs-Solstic-sub002/internal/core/datamodel/audit"
)

// Repository persists access attempts. The log is append-only: there are no
// update or delete operations.
type Repository interface {
	Insert(ctx context.Context, attempt *auditDatamodel.AccessAttempt) error
}

// Recorder subscribes to denial events and writes the audit trail. A failed
// insert is logged and discarded; it must never affect the deny response.
type Recorder struct {
	repo   Repository
	logger *slog.Logger
}

func NewRecorder(repo Repository, logger *slog.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger,
	}
}

// Register wires the recorder to the event bus.
func (rec *Recorder) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeAccessDenied, rec.HandleAccessDenied)
}

func (rec *Recorder) HandleAccessDenied(ctx context.Context, event events.Event) error {
	data, ok := event.Payload().(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected payload type for event %s", event.EventID())
	}

	attempt := &auditDatamodel.AccessAttempt{
		UserID:      asInt64(data["user_id"]),
		OfficeID:    asInt64(data["office_id"]),
		AttemptedAt: event.OccurredAt(),
		Weekday:     int(asInt64(data["weekday"])),
		FailureType: asString(data["reason"]),
		ClientIP:    asString(data["client_ip"]),
		UserAgent:   asString(data["user_agent"]),
		Notes:       asString(data["notes"]),
	}

	if start := asString(data["window_start"]); start != "" {
		attempt.WindowStart = &start
	}
	if end := asString(data["window_end"]); end != "" {
		attempt.WindowEnd = &end
	}

	// a slow audit insert must not hold the handler goroutine forever
	insertCtx, cancel := internal.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rec.repo.Insert(insertCtx, attempt); err != nil {
		rec.logger.Error("failed to record access attempt",
			"error", err,
			"user_id", attempt.UserID,
			"failure_type", attempt.FailureType)
		return err
	}

	rec.logger.Info("access attempt recorded",
		"user_id", attempt.UserID,
		"failure_type", attempt.FailureType,
		"weekday", attempt.Weekday)
	return nil
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
