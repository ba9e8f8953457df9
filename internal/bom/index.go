// Package bom resuelve códigos de cable contra el catálogo de composiciones, calcula
// la masa de cada materia prima para una longitud y elige el embalaje en bobinas.
//
// Todo el paquete es puro: el catálogo se lee una vez por lote en la capa de usecase
// y se pasa ya cargado.
package bom

import (
	"sort"

	"github.com/phenrril/cablemrp/internal/domain"
)

// Index agrupa el catálogo por código normalizado.
type Index struct {
	byCode map[string][]domain.CompositionRecord
	keys   []string
}

// NewIndex construye el índice. Si un código tiene varios registros, el primero
// en el orden recibido es el que vale.
func NewIndex(records []domain.CompositionRecord) *Index {
	idx := &Index{byCode: make(map[string][]domain.CompositionRecord, len(records))}
	for _, r := range records {
		code := domain.NormalizeCode(r.Code)
		if code == "" {
			continue
		}
		if _, ok := idx.byCode[code]; !ok {
			idx.keys = append(idx.keys, code)
		}
		idx.byCode[code] = append(idx.byCode[code], r)
	}
	sort.Strings(idx.keys)
	return idx
}

// Lookup busca por código ya normalizado.
func (i *Index) Lookup(code string) (*domain.CompositionRecord, bool) {
	list, ok := i.byCode[code]
	if !ok || len(list) == 0 {
		return nil, false
	}
	return &list[0], true
}

// Records devuelve todos los registros históricos de un código.
func (i *Index) Records(code string) []domain.CompositionRecord {
	return i.byCode[domain.NormalizeCode(code)]
}

// Keys devuelve los códigos en orden lexicográfico.
func (i *Index) Keys() []string { return i.keys }

func (i *Index) Len() int { return len(i.keys) }
