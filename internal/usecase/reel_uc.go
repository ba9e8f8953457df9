package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/phenrril/cablemrp/internal/bom"
	"github.com/phenrril/cablemrp/internal/domain"
)

type ReelUC struct {
	Reels domain.ReelCapacityRepo
}

func (uc *ReelUC) RecommendPacking(ctx context.Context, category, gauge string, length float64) (*domain.ReelRecommendation, error) {
	if strings.TrimSpace(category) == "" {
		return nil, domain.NewValidationError("category", "categoría vacía")
	}
	if strings.TrimSpace(gauge) == "" {
		return nil, domain.NewValidationError("gauge", "bitola vacía")
	}
	if err := bom.ValidateLength(length); err != nil {
		return nil, err
	}
	cat, g := domain.NormalizeCategory(category), domain.NormalizeGauge(gauge)
	entries, err := uc.Reels.ListFor(ctx, cat, g)
	if err != nil {
		return nil, fmt.Errorf("cargar bobinas: %w", err)
	}
	rec, err := bom.RecommendReels(cat, g, length, entries)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
