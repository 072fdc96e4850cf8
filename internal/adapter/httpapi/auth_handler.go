package httpapi

import (
	"net/http"
)

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// login issues a session token. The response never carries the password
// hash or any server secret.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !s.decodeJSON(w, r, &body) {
		return
	}

	token, user, err := s.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  sessionUser{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		s.respondJSON(w, http.StatusNoContent, nil)
		return
	}
	if err := s.auth.Logout(r.Context(), token); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

// session echoes the signed-in account, resolved by the auth middleware.
func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	user := adminFromContext(r.Context())
	if user == nil {
		s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}
	s.respondJSON(w, http.StatusOK, sessionUser{ID: user.ID, Email: user.Email, Name: user.Name})
}
