package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"adserve/internal/core/domain"
)

// envelope is the body of every JSON response.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorInfo `json:"error,omitempty"`
}

type errorInfo struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: status < 300, Data: data}); err != nil {
		// encoding should rarely fail; the status is already sent
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func (h *Handler) ok(w http.ResponseWriter, data any) {
	h.writeJSON(w, http.StatusOK, data)
}

func (h *Handler) created(w http.ResponseWriter, data any) {
	h.writeJSON(w, http.StatusCreated, data)
}

func (h *Handler) writeErrorInfo(w http.ResponseWriter, status int, info errorInfo) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Error: &info}); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	h.writeErrorInfo(w, http.StatusBadRequest, errorInfo{Code: "BAD_REQUEST", Message: message})
}

// writeError maps err to a status by its domain kind. Anything that is not
// a client error is logged and answered with a generic message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		h.writeErrorInfo(w, status, errorInfo{Code: "INTERNAL_ERROR", Message: "an unexpected error occurred"})
		return
	}
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	info := errorInfo{Code: "ERROR", Message: err.Error()}
	if de := asDomainError(err); de != nil {
		info.Code = de.Code
		info.Message = de.Message
		info.Details = de.Details
	}
	h.writeErrorInfo(w, status, info)
}

func statusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindAuthentication:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindBudgetExhausted:
		return http.StatusNoContent
	default:
		return http.StatusInternalServerError
	}
}

func asDomainError(err error) *domain.Error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return nil
}
