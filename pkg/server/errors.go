package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/reolink-tools/fwcheck/pkg/errors"
	"github.com/reolink-tools/fwcheck/pkg/serializer"
)

// ErrorResponse is the JSON body returned for all error statuses.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, statusCode int,
	code errors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// writeCheckError maps a check failure to an HTTP status by its error code.
func (s *Server) writeCheckError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)
	status := http.StatusInternalServerError
	retryable := false

	switch code {
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidRequest:
		status = http.StatusBadRequest
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
		retryable = true
	case errors.ErrCodeUnavailable:
		status = http.StatusBadGateway
		retryable = true
	}

	s.writeError(w, r, status, code, err.Error(), retryable, nil)
}
