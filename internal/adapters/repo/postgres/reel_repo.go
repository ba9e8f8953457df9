package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/cablemrp/internal/domain"
)

type ReelCapacityRepo struct{ db *gorm.DB }

func NewReelCapacityRepo(db *gorm.DB) *ReelCapacityRepo {
	return &ReelCapacityRepo{db: db}
}

// ListFor devuelve las bobinas de una (categoría, bitola) en orden de catálogo.
func (r *ReelCapacityRepo) ListFor(ctx context.Context, category, gauge string) ([]domain.ReelCapacityEntry, error) {
	var list []domain.ReelCapacityEntry
	if err := r.db.WithContext(ctx).
		Where("category = ? AND gauge = ?", domain.NormalizeCategory(category), domain.NormalizeGauge(gauge)).
		Order("position asc").Order("reel_name asc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// SaveAll reemplaza el catálogo de cada (categoría, bitola) presente en entries.
// Position sigue el orden recibido dentro de cada par.
func (r *ReelCapacityRepo) SaveAll(ctx context.Context, entries []domain.ReelCapacityEntry) error {
	if len(entries) == 0 {
		return nil
	}
	type key struct{ category, gauge string }
	positions := map[key]int{}
	var keys []key
	for i := range entries {
		e := &entries[i]
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.Category = domain.NormalizeCategory(e.Category)
		e.Gauge = domain.NormalizeGauge(e.Gauge)
		k := key{e.Category, e.Gauge}
		if _, seen := positions[k]; !seen {
			keys = append(keys, k)
		}
		e.Position = positions[k]
		positions[k]++
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			if err := tx.Where("category = ? AND gauge = ?", k.category, k.gauge).
				Delete(&domain.ReelCapacityEntry{}).Error; err != nil {
				return err
			}
		}
		return tx.Create(&entries).Error
	})
}

// Categories lista las categorías con bobinas cargadas.
func (r *ReelCapacityRepo) Categories(ctx context.Context) ([]string, error) {
	cats := []string{}
	if err := r.db.WithContext(ctx).Model(&domain.ReelCapacityEntry{}).
		Distinct("category").Order("category asc").Pluck("category", &cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}
