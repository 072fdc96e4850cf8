package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const visitorCookie = "visitor_id"

// visitorID identifies the anonymous visitor for favorites. A missing
// cookie gets a fresh random id set on the response.
func (s *Server) visitorID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(visitorCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	visitor := s.visitorID(w, r)
	s.respondJSON(w, http.StatusOK, map[string][]string{
		"favorites": s.favorites.List(r.Context(), visitor),
	})
}

// toggleFavorite flips the vehicle in the visitor's shortlist and reports
// the resulting state.
func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	visitor := s.visitorID(w, r)
	favorite, err := s.favorites.Toggle(r.Context(), visitor, chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"favorite": favorite})
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	visitor := s.visitorID(w, r)
	if err := s.favorites.Remove(r.Context(), visitor, chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}
