package web

// errors.go maps service errors onto HTTP responses.
//
// Input problems are 400 with an explanatory message. A full import queue is
// 503 with Retry-After. Everything else is 500 with the mapped user message;
// the technical error is only logged.

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/institute/internal/core"
	"github.com/JonMunkholm/institute/internal/logging"
)

// retryAfterSeconds is sent with 503 responses when every import slot is busy.
const retryAfterSeconds = 5

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor returns the HTTP status for err.
func statusFor(err error) int {
	switch {
	case core.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTooManyImports):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err with the request id and writes the mapped response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := core.MapError(err)

	log := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", msg.Code,
		"error", err,
	}
	if status >= http.StatusInternalServerError {
		log.Error("request error", attrs...)
	} else {
		log.Warn("request rejected", attrs...)
	}

	resp := ErrorResponse{
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
	switch status {
	case http.StatusBadRequest:
		// Input errors only carry caller-supplied values and are safe to echo.
		resp.Error = err.Error()
	case http.StatusServiceUnavailable:
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
		resp.Error = msg.Message
	default:
		resp.Message = "Import failed."
		resp.Error = core.FormatUserError(err)
	}

	writeJSON(w, status, resp)
}
