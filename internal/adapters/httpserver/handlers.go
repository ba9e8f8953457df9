package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/phenrril/cablemrp/internal/adapters/xlsx"
	"github.com/phenrril/cablemrp/internal/domain"
)

type itemRequest struct {
	Code         string  `json:"code"`
	LengthMeters float64 `json:"length_m"`
}

type orderRequest struct {
	Items []domain.OrderLine `json:"items"`
}

func (s *Server) apiMaterialsItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidationError("body", "json inválido"))
		return
	}
	item, err := s.materials.CalculateForItem(r.Context(), req.Code, req.LengthMeters)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presentItem(*item))
}

func (s *Server) apiMaterialsOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 4<<20)).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidationError("body", "json inválido"))
		return
	}
	sum, err := s.materials.CalculateForOrder(r.Context(), req.Items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presentSummary(*sum))
}

func (s *Server) apiReelsRecommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := strings.TrimSpace(q.Get("length_m"))
	length, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		writeError(w, r, domain.NewValidationError("length_m", "longitud inválida"))
		return
	}
	rec, err := s.reels.RecommendPacking(r.Context(), q.Get("category"), q.Get("gauge"), length)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presentRecommendation(*rec))
}

func (s *Server) apiReelCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.catalog.ReelCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (s *Server) apiCompositionByCode(w http.ResponseWriter, r *http.Request) {
	rec, err := s.catalog.GetComposition(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleAdminImportCompositions(w http.ResponseWriter, r *http.Request) {
	f, ok := uploadedFile(w, r)
	if !ok {
		return
	}
	defer f.Close()

	records, rep, err := xlsx.ParseCompositions(f)
	if err != nil {
		writeError(w, r, domain.NewValidationError("file", err.Error()))
		return
	}
	rep, err = s.catalog.ImportCompositions(r.Context(), records, rep)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleAdminImportReels(w http.ResponseWriter, r *http.Request) {
	f, ok := uploadedFile(w, r)
	if !ok {
		return
	}
	defer f.Close()

	entries, rep, err := xlsx.ParseReels(f)
	if err != nil {
		writeError(w, r, domain.NewValidationError("file", err.Error()))
		return
	}
	rep, err = s.catalog.ImportReels(r.Context(), entries, rep)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleAdminDeactivateComposition(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeactivateComposition(r.Context(), chi.URLParam(r, "code")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// uploadedFile devuelve el campo multipart "file".
func uploadedFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, domain.NewValidationError("file", "multipart inválido"))
		return nil, false
	}
	fh := r.MultipartForm.File["file"]
	if len(fh) == 0 {
		writeError(w, r, domain.NewValidationError("file", "falta el archivo"))
		return nil, false
	}
	f, err := fh[0].Open()
	if err != nil {
		writeError(w, r, domain.NewValidationError("file", "no se pudo abrir el archivo"))
		return nil, false
	}
	return f, true
}
