package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/cablemrp/internal/bom"
	"github.com/phenrril/cablemrp/internal/domain"
)

// MaterialsUC calcula necesidades de materia prima. Lee el catálogo de composiciones
// una sola vez por llamada y resuelve todo en memoria.
type MaterialsUC struct {
	Compositions domain.CompositionRepo
}

func (uc *MaterialsUC) CalculateForItem(ctx context.Context, code string, length float64) (*domain.ResolvedItem, error) {
	if strings.TrimSpace(code) == "" {
		return nil, domain.NewValidationError("code", "código vacío")
	}
	if err := bom.ValidateLength(length); err != nil {
		return nil, err
	}
	resolver, err := uc.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	item, err := bom.CalculateItem(resolver, code, length)
	if err != nil {
		return nil, err
	}
	if !item.Resolved {
		log.Warn().Str("code", code).Msg("código sin composición")
	}
	return &item, nil
}

func (uc *MaterialsUC) CalculateForOrder(ctx context.Context, lines []domain.OrderLine) (*domain.OrderMaterialsSummary, error) {
	if len(lines) == 0 {
		return nil, domain.NewValidationError("items", "pedido sin ítems")
	}
	for i, l := range lines {
		if strings.TrimSpace(l.Code) == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].code", i), "código vacío")
		}
		if err := bom.ValidateLength(l.LengthMeters); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				ve.Field = fmt.Sprintf("items[%d].length_m", i)
			}
			return nil, err
		}
	}

	resolver, err := uc.loadResolver(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ResolvedItem, 0, len(lines))
	for _, l := range lines {
		it, err := bom.CalculateItem(resolver, l.Code, l.LengthMeters)
		if err != nil {
			return nil, err
		}
		if !it.Resolved {
			log.Warn().Str("code", l.Code).Float64("length_m", l.LengthMeters).Msg("código sin composición")
		}
		items = append(items, it)
	}
	summary := bom.Aggregate(items)

	log.Info().
		Int("items", len(items)).
		Int("resueltos", summary.ResolvedCount).
		Int("sin_resolver", summary.UnresolvedCount).
		Float64("neto_kg", summary.TotalNetWeightKg).
		Msg("materiales del pedido calculados")
	return &summary, nil
}

func (uc *MaterialsUC) loadResolver(ctx context.Context) (*bom.Resolver, error) {
	records, err := uc.Compositions.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar composiciones: %w", err)
	}
	return bom.NewResolver(bom.NewIndex(records)), nil
}
