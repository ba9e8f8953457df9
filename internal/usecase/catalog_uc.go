package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/cablemrp/internal/domain"
)

// CatalogUC mantiene los catálogos de referencia que consume el cálculo.
type CatalogUC struct {
	Compositions domain.CompositionRepo
	Reels        domain.ReelCapacityRepo
}

func (uc *CatalogUC) GetComposition(ctx context.Context, code string) (*domain.CompositionRecord, error) {
	c := domain.NormalizeCode(code)
	if c == "" {
		return nil, domain.NewValidationError("code", "código vacío")
	}
	return uc.Compositions.FindByCode(ctx, c)
}

// ImportCompositions valida y guarda las filas ya parseadas. Las filas inválidas se
// informan en el reporte y no frenan al resto. TotalPerMeter tiene que venir cargado
// (el parser lo calcula cuando la planilla no trae TOTAL): un cero con coeficientes es error.
func (uc *CatalogUC) ImportCompositions(ctx context.Context, records []domain.CompositionRecord, rep *domain.ImportReport) (*domain.ImportReport, error) {
	if rep == nil {
		rep = &domain.ImportReport{}
	}
	if rep.Timestamp.IsZero() {
		rep.Timestamp = time.Now()
	}
	valid := make([]domain.CompositionRecord, 0, len(records))
	for i := range records {
		r := records[i]
		r.Code = domain.NormalizeCode(r.Code)
		if err := r.Validate(); err != nil {
			rep.Rejected++
			rep.Errors = append(rep.Errors, fmt.Sprintf("%s: %v", r.Code, err))
			continue
		}
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		r.Active = true
		valid = append(valid, r)
	}
	if len(valid) > 0 {
		if err := uc.Compositions.SaveAll(ctx, valid); err != nil {
			return rep, fmt.Errorf("guardar composiciones: %w", err)
		}
	}
	rep.Imported += len(valid)
	log.Info().Int("importadas", len(valid)).Int("rechazadas", rep.Rejected).Msg("importación de composiciones")
	return rep, nil
}

func (uc *CatalogUC) ImportReels(ctx context.Context, entries []domain.ReelCapacityEntry, rep *domain.ImportReport) (*domain.ImportReport, error) {
	if rep == nil {
		rep = &domain.ImportReport{}
	}
	if rep.Timestamp.IsZero() {
		rep.Timestamp = time.Now()
	}
	valid := make([]domain.ReelCapacityEntry, 0, len(entries))
	for i := range entries {
		e := entries[i]
		e.Category = domain.NormalizeCategory(e.Category)
		e.Gauge = domain.NormalizeGauge(e.Gauge)
		e.ReelName = strings.TrimSpace(e.ReelName)
		if err := validateReel(e); err != nil {
			rep.Rejected++
			rep.Errors = append(rep.Errors, fmt.Sprintf("%s/%s %s: %v", e.Category, e.Gauge, e.ReelName, err))
			continue
		}
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		valid = append(valid, e)
	}
	if len(valid) > 0 {
		if err := uc.Reels.SaveAll(ctx, valid); err != nil {
			return rep, fmt.Errorf("guardar bobinas: %w", err)
		}
	}
	rep.Imported += len(valid)
	log.Info().Int("importadas", len(valid)).Int("rechazadas", rep.Rejected).Msg("importación de bobinas")
	return rep, nil
}

func validateReel(e domain.ReelCapacityEntry) error {
	switch {
	case e.Category == "":
		return domain.NewValidationError("category", "categoría vacía")
	case e.Gauge == "":
		return domain.NewValidationError("gauge", "bitola vacía")
	case e.ReelName == "":
		return domain.NewValidationError("reel_name", "bobina sin nombre")
	case !(e.CapacityMeters > 0):
		return domain.NewValidationError("capacity_m", fmt.Sprintf("capacidad inválida %v", e.CapacityMeters))
	}
	return nil
}

func (uc *CatalogUC) DeactivateComposition(ctx context.Context, code string) error {
	c := domain.NormalizeCode(code)
	if c == "" {
		return domain.NewValidationError("code", "código vacío")
	}
	if repo, ok := uc.Compositions.(interface {
		Deactivate(context.Context, string) error
	}); ok {
		return repo.Deactivate(ctx, c)
	}
	return errors.New("repo no soporta baja de composiciones")
}

func (uc *CatalogUC) ReelCategories(ctx context.Context) ([]string, error) {
	if repo, ok := uc.Reels.(interface {
		Categories(context.Context) ([]string, error)
	}); ok {
		return repo.Categories(ctx)
	}
	return []string{}, nil
}

// IsNotFound es azúcar para los handlers.
func IsNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
