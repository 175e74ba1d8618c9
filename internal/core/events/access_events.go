package events

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeAccessDenied = "access.denied"

// NewAccessDeniedEvent carries everything the audit subscriber needs to
// persist an access-attempt row without another round trip.
func NewAccessDeniedEvent(userID, officeID int64, weekday int, reason, message, windowStart, windowEnd, clientIP, userAgent, notes string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTypeAccessDenied,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id":      userID,
			"office_id":    officeID,
			"weekday":      weekday,
			"reason":       reason,
			"message":      message,
			"window_start": windowStart,
			"window_end":   windowEnd,
			"client_ip":    clientIP,
			"user_agent":   userAgent,
			"notes":        notes,
		},
	}
}
