package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
)

func (s *Server) listGallery(w http.ResponseWriter, r *http.Request) {
	category := domain.GalleryCategory(r.URL.Query().Get("category"))
	images, err := s.gallery.ListImages(r.Context(), category)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	categories, err := s.gallery.CategoryOptions(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"images":     toGalleryImageResponses(images),
		"categories": categories,
	})
}

func (s *Server) uploadGalleryImages(w http.ResponseWriter, r *http.Request) {
	if s.uploads.Uploading() {
		s.respondJSON(w, http.StatusConflict, errorResponse{Error: "an upload is already in progress"})
		return
	}
	files, applyWatermark, ok := s.parseUploadForm(w, r)
	if !ok {
		return
	}
	category := domain.GalleryCategory(r.FormValue("category"))
	vehicleID := r.FormValue("vehicleId")

	images, result, err := s.gallery.AddImages(r.Context(), files, category, vehicleID, applyWatermark, nil)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := toUploadResponse(result)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"images":   toGalleryImageResponses(images),
		"uploaded": resp.Uploaded,
		"failed":   resp.Failed,
	})
}

func (s *Server) deleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "deletion requires confirm=true"})
		return
	}
	if err := s.gallery.DeleteImages(r.Context(), []string{chi.URLParam(r, "id")}); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

// deleteGalleryImages handles batch deletion; confirm travels in the body
// since DELETE with a body is awkward for some clients.
func (s *Server) deleteGalleryImages(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs     []string `json:"ids"`
		Confirm bool     `json:"confirm"`
	}
	if !s.decodeJSON(w, r, &body) {
		return
	}
	if !body.Confirm {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "deletion requires confirm=true"})
		return
	}
	if len(body.IDs) == 0 {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "no image ids given"})
		return
	}
	if err := s.gallery.DeleteImages(r.Context(), body.IDs); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}
