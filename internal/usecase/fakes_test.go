package usecase

import (
	"context"
	"errors"

	"github.com/phenrril/cablemrp/internal/domain"
)

type fakeCompositions struct {
	records   []domain.CompositionRecord
	listCalls int
	saved     []domain.CompositionRecord
	err       error
}

func (f *fakeCompositions) ListActive(ctx context.Context) ([]domain.CompositionRecord, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeCompositions) FindByCode(ctx context.Context, code string) (*domain.CompositionRecord, error) {
	for i := range f.records {
		if f.records[i].Code == code {
			return &f.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCompositions) SaveAll(ctx context.Context, records []domain.CompositionRecord) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, records...)
	return nil
}

type fakeReels struct {
	entries      []domain.ReelCapacityEntry
	lastCategory string
	lastGauge    string
	saved        []domain.ReelCapacityEntry
}

func (f *fakeReels) ListFor(ctx context.Context, category, gauge string) ([]domain.ReelCapacityEntry, error) {
	f.lastCategory, f.lastGauge = category, gauge
	var out []domain.ReelCapacityEntry
	for _, e := range f.entries {
		if e.Category == category && e.Gauge == gauge {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeReels) SaveAll(ctx context.Context, entries []domain.ReelCapacityEntry) error {
	f.saved = append(f.saved, entries...)
	return nil
}

var errBoom = errors.New("boom")
