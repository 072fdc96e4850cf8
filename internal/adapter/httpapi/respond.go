package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SainteOfficial/autohaus-service/internal/auth"
	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
	"github.com/SainteOfficial/autohaus-service/internal/inventory/draft"
	"github.com/SainteOfficial/autohaus-service/internal/inventory/usecase"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// respondError maps domain errors to status codes. Internal errors are
// logged with detail but answered with a generic message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *draft.ValidationError
	switch {
	case errors.As(err, &verr):
		s.respondJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "required fields are missing",
			Missing: verr.Missing,
		})
	case usecase.IsNotFound(err):
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidVehicleData),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidInquiryData),
		errors.Is(err, usecase.ErrNoFiles),
		errors.Is(err, usecase.ErrTooManyFiles),
		errors.Is(err, usecase.ErrFileTooLarge),
		errors.Is(err, usecase.ErrUnsupportedType):
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrSessionRevoked):
		s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
