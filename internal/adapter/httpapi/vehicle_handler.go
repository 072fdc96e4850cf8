package httpapi

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
	"github.com/SainteOfficial/autohaus-service/internal/inventory/draft"
	"github.com/SainteOfficial/autohaus-service/internal/inventory/usecase"
)

func filterFromQuery(r *http.Request) domain.Filter {
	q := r.URL.Query()
	f := domain.Filter{
		Query:    q.Get("query"),
		Brand:    q.Get("brand"),
		FuelType: q.Get("fuelType"),
		Status:   domain.VehicleStatus(q.Get("status")),
		Sort:     domain.SortOrder(q.Get("sort")),
	}
	if v, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil {
		f.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		f.MaxPrice = v
	}
	return f
}

func (s *Server) listVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.vehicles.ListVehicles(r.Context(), filterFromQuery(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toVehicleResponses(vehicles))
}

func (s *Server) getVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := s.vehicles.GetVehicle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toVehicleResponse(vehicle))
}

func (s *Server) filterOptions(w http.ResponseWriter, r *http.Request) {
	brands, fuelTypes, err := s.vehicles.FilterOptions(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string][]string{
		"brands":    brands,
		"fuelTypes": fuelTypes,
	})
}

func (s *Server) createVehicle(w http.ResponseWriter, r *http.Request) {
	var d draft.Draft
	if !s.decodeJSON(w, r, &d) {
		return
	}
	d.ID = ""
	vehicle, err := s.vehicles.SaveDraft(r.Context(), d)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toVehicleResponse(vehicle))
}

func (s *Server) updateVehicle(w http.ResponseWriter, r *http.Request) {
	var d draft.Draft
	if !s.decodeJSON(w, r, &d) {
		return
	}
	d.ID = chi.URLParam(r, "id")
	vehicle, err := s.vehicles.SaveDraft(r.Context(), d)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toVehicleResponse(vehicle))
}

func (s *Server) patchVehicle(w http.ResponseWriter, r *http.Request) {
	var p draft.Patch
	if !s.decodeJSON(w, r, &p) {
		return
	}
	vehicle, err := s.vehicles.PatchVehicle(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toVehicleResponse(vehicle))
}

func (s *Server) updateVehicleStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.VehicleStatus `json:"status"`
	}
	if !s.decodeJSON(w, r, &body) {
		return
	}
	vehicle, err := s.vehicles.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toVehicleResponse(vehicle))
}

// deleteVehicle is destructive and demands confirm=true, mirroring the
// confirmation step in the back-office UI.
func (s *Server) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "deletion requires confirm=true"})
		return
	}
	if err := s.vehicles.DeleteVehicle(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) uploadVehicleImages(w http.ResponseWriter, r *http.Request) {
	if s.uploads.Uploading() {
		s.respondJSON(w, http.StatusConflict, errorResponse{Error: "an upload is already in progress"})
		return
	}
	files, applyWatermark, ok := s.parseUploadForm(w, r)
	if !ok {
		return
	}

	result, err := s.vehicles.AddImages(r.Context(), chi.URLParam(r, "id"), files, applyWatermark, nil)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toUploadResponse(result))
}

// parseUploadForm reads the multipart "images" files and the watermark flag.
func (s *Server) parseUploadForm(w http.ResponseWriter, r *http.Request) ([]usecase.UploadFile, bool, bool) {
	// One extra MiB of headroom for the non-file form fields.
	if err := r.ParseMultipartForm(s.maxUploadBytes + 1<<20); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return nil, false, false
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["images"]
	}
	files := make([]usecase.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable file: " + header.Filename})
			return nil, false, false
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable file: " + header.Filename})
			return nil, false, false
		}
		files = append(files, usecase.UploadFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	applyWatermark := r.FormValue("watermark") == "true"
	return files, applyWatermark, true
}
