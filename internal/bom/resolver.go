package bom

import (
	"strings"
	"unicode/utf8"

	"github.com/phenrril/cablemrp/internal/domain"
)

// minPrefixLen es el largo mínimo del código pedido para intentar búsqueda por prefijo.
const minPrefixLen = 3

// Matcher es un paso de la cadena de resolución. code llega normalizado.
type Matcher struct {
	Method domain.MatchMethod
	Match  func(idx *Index, code string) (*domain.CompositionRecord, bool)
}

// DefaultMatchers: exacto, sin sufijo de variante, prefijo. El orden es la regla de precedencia.
var DefaultMatchers = []Matcher{
	{Method: domain.MatchExact, Match: matchExact},
	{Method: domain.MatchSuffix, Match: matchStrippedSuffix},
	{Method: domain.MatchPrefix, Match: matchPrefix},
}

type Resolver struct {
	idx      *Index
	matchers []Matcher
}

func NewResolver(idx *Index) *Resolver {
	return &Resolver{idx: idx, matchers: DefaultMatchers}
}

// Resolve devuelve el primer registro que encuentre algún matcher, y cuál fue.
// Sin resultado devuelve (nil, MatchNone, false); no es un error.
func (r *Resolver) Resolve(requested string) (*domain.CompositionRecord, domain.MatchMethod, bool) {
	code := domain.NormalizeCode(requested)
	if code == "" {
		return nil, domain.MatchNone, false
	}
	for _, m := range r.matchers {
		if rec, ok := m.Match(r.idx, code); ok {
			return rec, m.Method, true
		}
	}
	return nil, domain.MatchNone, false
}

func matchExact(idx *Index, code string) (*domain.CompositionRecord, bool) {
	return idx.Lookup(code)
}

// matchStrippedSuffix quita una letra final de variante (compacto, redondo...).
func matchStrippedSuffix(idx *Index, code string) (*domain.CompositionRecord, bool) {
	last, size := utf8.DecodeLastRuneInString(code)
	if size == 0 || last < 'A' || last > 'Z' {
		return nil, false
	}
	base := code[:len(code)-size]
	if base == "" {
		return nil, false
	}
	return idx.Lookup(base)
}

func matchPrefix(idx *Index, code string) (*domain.CompositionRecord, bool) {
	if utf8.RuneCountInString(code) < minPrefixLen {
		return nil, false
	}
	_, size := utf8.DecodeLastRuneInString(code)
	prefix := code[:len(code)-size]
	for _, k := range idx.Keys() {
		if strings.HasPrefix(k, prefix) {
			return idx.Lookup(k)
		}
	}
	return nil, false
}
