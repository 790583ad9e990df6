package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err)
//  3. Error is mapped via core.MapError to get user-friendly message
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is written as JSON with a status derived from the error

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/capops/quotanorm/internal/core"
	"github.com/capops/quotanorm/internal/pipeline"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action)
// fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusForError derives the HTTP status from the error kind. Pipeline
// validation failures are unprocessable input rather than a bad request
// shape, hence 422.
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, pipeline.ErrEmptyInput),
		errors.Is(err, pipeline.ErrMissingHeaderRow),
		errors.Is(err, pipeline.ErrNoValidRows):
		return http.StatusUnprocessableEntity
	}

	var mce *pipeline.MissingColumnError
	if errors.As(err, &mce) {
		return http.StatusUnprocessableEntity
	}

	if strings.Contains(err.Error(), "input too large") {
		return http.StatusRequestEntityTooLarge
	}

	return http.StatusInternalServerError
}

// respondError logs the technical error server-side and writes the mapped
// user-facing message with a status derived from the error kind.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	s.respondErrorStatus(w, r, err, statusForError(err))
}

// respondErrorStatus is respondError with an explicit status code, for
// handlers that know better than the error-kind mapping (e.g. 400 on a
// missing request part).
func (s *Server) respondErrorStatus(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	// Request ID for correlation
	requestID := middleware.GetReqID(r.Context())

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", requestID,
	)

	respondErrorJSON(w, userMsg, statusCode)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}
