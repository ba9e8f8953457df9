package domain

import "context"

type CompositionRepo interface {
	// ListActive devuelve el catálogo completo en orden de carga; una sola lectura por lote.
	ListActive(ctx context.Context) ([]CompositionRecord, error)
	FindByCode(ctx context.Context, code string) (*CompositionRecord, error)
	SaveAll(ctx context.Context, records []CompositionRecord) error
}

type ReelCapacityRepo interface {
	ListFor(ctx context.Context, category, gauge string) ([]ReelCapacityEntry, error)
	SaveAll(ctx context.Context, entries []ReelCapacityEntry) error
}
