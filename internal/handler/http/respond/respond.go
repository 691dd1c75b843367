// Package respond provides utilities for sending HTTP responses in JSON format.
// It maps classified domain errors to status codes and sanitizes internal failures
// so that store details never reach the client.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"content-api/internal/domain/entity"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	StatusCode int      `json:"statusCode"`
	Error      string   `json:"error"`
	Message    string   `json:"message"`
	IDs        []string `json:"ids,omitempty"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{
		StatusCode: code,
		Error:      http.StatusText(code),
		Message:    err.Error(),
	})
}

// SafeError writes err for client errors (4xx) and a generic message for
// server errors (5xx). Server errors are logged with secrets masked.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	if code < http.StatusInternalServerError {
		Error(w, code, err)
		return
	}

	// 内部エラーはログに出力し、汎用メッセージを返す
	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{
		StatusCode: code,
		Error:      http.StatusText(code),
		Message:    "internal server error",
	})
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(err error) int {
	switch entity.KindOf(err) {
	case entity.KindNotFound:
		return http.StatusNotFound
	case entity.KindConflict:
		return http.StatusConflict
	case entity.KindInvalidReference, entity.KindValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes the response for an error returned by a usecase.
// NotFound responses also list the offending IDs.
func FromError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	code := StatusCode(err)
	if code >= http.StatusInternalServerError {
		SafeError(w, code, err)
		return
	}

	body := ErrorBody{
		StatusCode: code,
		Error:      http.StatusText(code),
		Message:    userMessage(err),
	}
	var e *entity.Error
	if errors.As(err, &e) && e.Kind == entity.KindNotFound {
		body.IDs = e.IDs
	}
	JSON(w, code, body)
}

// userMessage drops the usecase operation prefix from classified errors.
func userMessage(err error) string {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var e *entity.Error
	if errors.As(err, &e) {
		msg := e.Error()
		if e.Op != "" {
			msg = strings.TrimPrefix(msg, e.Op+": ")
		}
		return msg
	}
	return err.Error()
}
