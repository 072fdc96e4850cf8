// Package httpapi exposes the dealership service over HTTP: the public
// catalog, gallery, contact form and favorites, plus the JWT-guarded back
// office under /api/admin.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SainteOfficial/autohaus-service/internal/auth"
	"github.com/SainteOfficial/autohaus-service/internal/favorites"
	"github.com/SainteOfficial/autohaus-service/internal/inventory/usecase"
	"github.com/SainteOfficial/autohaus-service/internal/platform/logger"
)

type Server struct {
	vehicles  *usecase.VehicleUsecase
	gallery   *usecase.GalleryUsecase
	inquiries *usecase.InquiryUsecase
	uploads   *usecase.UploadUsecase
	favorites *favorites.Store
	auth      *auth.Service
	logger    *logger.Logger

	maxUploadBytes int64
}

func NewServer(
	vehicles *usecase.VehicleUsecase,
	gallery *usecase.GalleryUsecase,
	inquiries *usecase.InquiryUsecase,
	uploads *usecase.UploadUsecase,
	favs *favorites.Store,
	authService *auth.Service,
	maxUploadBytes int64,
	log *logger.Logger,
) *Server {
	return &Server{
		vehicles:       vehicles,
		gallery:        gallery,
		inquiries:      inquiries,
		uploads:        uploads,
		favorites:      favs,
		auth:           authService,
		maxUploadBytes: maxUploadBytes,
		logger:         log,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.metrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/vehicles", s.listVehicles)
		r.Get("/vehicles/options", s.filterOptions)
		r.Get("/vehicles/{id}", s.getVehicle)
		r.Get("/gallery", s.listGallery)
		r.Post("/contact", s.submitContact)

		r.Get("/favorites", s.listFavorites)
		r.Post("/favorites/{id}", s.toggleFavorite)
		r.Delete("/favorites/{id}", s.removeFavorite)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", s.login)
			r.Post("/logout", s.logout)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Get("/session", s.session)

				r.Post("/vehicles", s.createVehicle)
				r.Put("/vehicles/{id}", s.updateVehicle)
				r.Patch("/vehicles/{id}", s.patchVehicle)
				r.Patch("/vehicles/{id}/status", s.updateVehicleStatus)
				r.Delete("/vehicles/{id}", s.deleteVehicle)
				r.Post("/vehicles/{id}/images", s.uploadVehicleImages)

				r.Get("/gallery", s.listGallery)
				r.Post("/gallery", s.uploadGalleryImages)
				r.Delete("/gallery/{id}", s.deleteGalleryImage)
				r.Post("/gallery/delete", s.deleteGalleryImages)

				r.Get("/inquiries", s.listInquiries)
				r.Get("/inquiries/{id}", s.viewInquiry)
				r.Post("/inquiries/{id}/reply", s.replyInquiry)
				r.Delete("/inquiries/{id}", s.deleteInquiry)
			})
		})
	})

	return r
}
