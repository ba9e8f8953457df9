package httpserver

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/cablemrp/internal/domain"
	"github.com/phenrril/cablemrp/internal/usecase"
)

// maxUploadBytes limita las planillas de catálogo.
const maxUploadBytes = 16 << 20

type Server struct {
	router    chi.Router
	materials *usecase.MaterialsUC
	reels     *usecase.ReelUC
	catalog   *usecase.CatalogUC
	adminKey  string
}

func New(m *usecase.MaterialsUC, rl *usecase.ReelUC, c *usecase.CatalogUC, adminKey string) http.Handler {
	s := &Server{materials: m, reels: rl, catalog: c, adminKey: adminKey, router: chi.NewRouter()}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(Logging)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.routes()
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/materials/item", s.apiMaterialsItem)
		r.Post("/materials/order", s.apiMaterialsOrder)
		r.Get("/reels/recommend", s.apiReelsRecommend)
		r.Get("/reels/categories", s.apiReelCategories)
		r.Get("/compositions/{code}", s.apiCompositionByCode)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Post("/import/compositions", s.handleAdminImportCompositions)
		r.Post("/import/reels", s.handleAdminImportReels)
		r.Delete("/compositions/{code}", s.handleAdminDeactivateComposition)
	})
}

// requireAdmin compara X-Admin-Key en tiempo constante. Sin clave configurada el
// panel queda cerrado.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get("X-Admin-Key")
		if s.adminKey == "" || subtle.ConstantTimeCompare([]byte(got), []byte(s.adminKey)) != 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Logging registra cada request con zerolog.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("req_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("dur", time.Since(start)).
			Msg("http")
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError traduce errores de dominio a códigos HTTP.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "validation", "field": ve.Field, "message": ve.Message})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "validation", "message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "message": err.Error()})
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
	}
}
