package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
)

// submitContact is the public contact form. The created inquiry lands in
// the admin inbox; a notification mail goes out best effort.
func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Subject   string `json:"subject"`
		VehicleID string `json:"vehicleId"`
		Message   string `json:"message"`
	}
	if !s.decodeJSON(w, r, &body) {
		return
	}

	inquiry := &domain.Inquiry{
		Name:      body.Name,
		Email:     body.Email,
		Phone:     body.Phone,
		Subject:   body.Subject,
		VehicleID: body.VehicleID,
		Message:   body.Message,
	}
	if err := s.inquiries.Submit(r.Context(), inquiry); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toInquiryResponse(inquiry))
}

func (s *Server) listInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := s.inquiries.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toInquiryResponses(inquiries))
}

func (s *Server) viewInquiry(w http.ResponseWriter, r *http.Request) {
	inquiry, err := s.inquiries.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toInquiryResponse(inquiry))
}

func (s *Server) replyInquiry(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if !s.decodeJSON(w, r, &body) {
		return
	}
	if err := s.inquiries.Reply(r.Context(), chi.URLParam(r, "id"), body.Message); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) deleteInquiry(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "deletion requires confirm=true"})
		return
	}
	if err := s.inquiries.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}
