package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal"
	"github.com/Cordillera123/APIs-Solstic-sub002/pkg/logger"
)

// Envelope is the wire shape every endpoint returns.
type Envelope struct {
	Status  string      `json:"status"` // success, error or warning
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a raw JSON response without the envelope.
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteSuccess wraps data in a success envelope.
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	h.WriteJSON(w, status, Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// WriteWarning wraps a partial success: data plus the per-entry errors.
func (h *BaseHandler) WriteWarning(w http.ResponseWriter, status int, message string, data interface{}, errs interface{}) {
	h.WriteJSON(w, status, Envelope{
		Status:  "warning",
		Message: message,
		Data:    data,
		Errors:  errs,
	})
}

// WriteError writes an error envelope.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.WriteJSON(w, status, Envelope{
		Status:  "error",
		Message: message,
	})
}

// HandleServiceError maps domain errors onto the envelope with the right
// HTTP status. Unknown errors become an opaque 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.Logger.Error("service error", "type", appErr.Type, "code", appErr.Code, "message", appErr.Message)
		h.WriteJSON(w, appErr.StatusCode, Envelope{
			Status:  "error",
			Message: appErr.GetDetailedMessage(),
			Errors:  appErr,
		})
		return
	}

	h.Logger.Error("unexpected service error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
