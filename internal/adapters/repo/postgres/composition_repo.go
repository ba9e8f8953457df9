package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phenrril/cablemrp/internal/domain"
)

type CompositionRepo struct{ db *gorm.DB }

func NewCompositionRepo(db *gorm.DB) *CompositionRepo { return &CompositionRepo{db: db} }

// ListActive trae todo el catálogo activo en una sola consulta. Para un mismo código el
// registro más antiguo queda primero.
func (r *CompositionRepo) ListActive(ctx context.Context) ([]domain.CompositionRecord, error) {
	var list []domain.CompositionRecord
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("code asc").Order("created_at asc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CompositionRepo) FindByCode(ctx context.Context, code string) (*domain.CompositionRecord, error) {
	var c domain.CompositionRecord
	if err := r.db.WithContext(ctx).
		Where("UPPER(code) = ? AND active = ?", domain.NormalizeCode(code), true).
		Order("created_at asc").
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// SaveAll reemplaza por código: los registros activos previos de cada código se desactivan
// y se insertan los nuevos, todo en una transacción.
func (r *CompositionRepo) SaveAll(ctx context.Context, records []domain.CompositionRecord) error {
	if len(records) == 0 {
		return nil
	}
	codes := make([]string, 0, len(records))
	now := time.Now()
	for i := range records {
		if records[i].ID == uuid.Nil {
			records[i].ID = uuid.New()
		}
		records[i].Code = domain.NormalizeCode(records[i].Code)
		if records[i].CreatedAt.IsZero() {
			// conserva el orden del lote como orden de autoridad
			records[i].CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		}
		codes = append(codes, records[i].Code)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.CompositionRecord{}).
			Where("code IN ? AND active = ?", codes, true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(&records, 200).Error
	})
}

// Deactivate da de baja un código sin borrar su historia.
func (r *CompositionRepo) Deactivate(ctx context.Context, code string) error {
	res := r.db.WithContext(ctx).Model(&domain.CompositionRecord{}).
		Where("code = ? AND active = ?", domain.NormalizeCode(code), true).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
