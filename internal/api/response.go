package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/orgball2608/zex-pages/internal/bulk"
	"github.com/orgball2608/zex-pages/internal/repositories/settings"
	pkgerrors "github.com/orgball2608/zex-pages/pkg/errors"
)

type successResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type errorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

type errorResponse struct {
	Status string       `json:"status"`
	Error  errorPayload `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successResponse{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Status: "error",
		Error:  errorPayload{Code: code, Message: message, RequestID: middleware.GetReqID(r.Context())},
	})
}

func mapError(err error) (int, string) {
	switch {
	case pkgerrors.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, pkgerrors.ErrInvalidInput),
		errors.Is(err, settings.ErrInvalidSettings),
		errors.Is(err, bulk.ErrInvalidTime),
		errors.Is(err, bulk.ErrUnknownStrategy),
		pkgerrors.GetCode(err) == pkgerrors.CodeValidation:
		return http.StatusBadRequest, "invalid_input"
	case pkgerrors.GetCode(err) == pkgerrors.CodeSend, pkgerrors.IsUpstream(err):
		return http.StatusBadGateway, "upstream_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
