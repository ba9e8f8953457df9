package bom

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/cablemrp/internal/domain"
)

// GrossOverheadFactor es la tara fija de embalaje/bobina sobre el peso neto.
const GrossOverheadFactor = 1.05

// ValidateLength exige una longitud positiva y finita.
func ValidateLength(length float64) error {
	if math.IsNaN(length) || math.IsInf(length, 0) {
		return domain.NewValidationError("length_m", "longitud no numérica")
	}
	if length <= 0 {
		return domain.NewValidationError("length_m", fmt.Sprintf("longitud debe ser positiva, vino %v", length))
	}
	return nil
}

// Calculate convierte una composición resuelta y una longitud en masas absolutas (kg).
func Calculate(rec *domain.CompositionRecord, requested string, length float64, method domain.MatchMethod) (domain.ResolvedItem, error) {
	if err := ValidateLength(length); err != nil {
		return domain.ResolvedItem{}, err
	}
	if rec == nil {
		return Unresolved(requested, length), nil
	}

	materials := emptyMaterials()
	for _, k := range domain.MaterialKinds {
		materials[k] = rec.PerMeter[k] * length
	}
	var warnings []string
	unknown := rec.UnknownKinds()
	for _, k := range unknown {
		materials[k] = rec.PerMeter[k] * length
		warnings = append(warnings, fmt.Sprintf("material desconocido %q en %s", k, rec.Code))
	}
	if len(unknown) > 0 {
		log.Warn().Str("code", rec.Code).Interface("kinds", unknown).Msg("composición con materiales fuera del esquema")
	}

	net := 0.0
	for _, k := range domain.MaterialKinds {
		net += materials[k]
	}
	for _, k := range unknown {
		net += materials[k]
	}

	resolved := rec.Code
	return domain.ResolvedItem{
		RequestedCode: requested,
		ResolvedCode:  &resolved,
		LengthMeters:  length,
		Materials:     materials,
		Pigments:      pigmentTotals(materials),
		NetWeightKg:   net,
		GrossWeightKg: net * GrossOverheadFactor,
		Resolved:      true,
		MatchMethod:   method,
		Warnings:      warnings,
	}, nil
}

// Unresolved es el resultado de un código sin composición: todo en cero.
func Unresolved(requested string, length float64) domain.ResolvedItem {
	return domain.ResolvedItem{
		RequestedCode: requested,
		LengthMeters:  length,
		Materials:     emptyMaterials(),
		Pigments:      emptyPigments(),
		Resolved:      false,
		MatchMethod:   domain.MatchNone,
	}
}

// CalculateItem resuelve y calcula un ítem contra el índice.
func CalculateItem(r *Resolver, code string, length float64) (domain.ResolvedItem, error) {
	if err := ValidateLength(length); err != nil {
		return domain.ResolvedItem{}, err
	}
	rec, method, ok := r.Resolve(code)
	if !ok {
		return Unresolved(code, length), nil
	}
	if method != domain.MatchExact {
		log.Debug().Str("requested", code).Str("resolved", rec.Code).Str("metodo", string(method)).Msg("match aproximado")
	}
	return Calculate(rec, code, length, method)
}

func emptyMaterials() map[domain.MaterialKind]float64 {
	out := make(map[domain.MaterialKind]float64, len(domain.MaterialKinds))
	for _, k := range domain.MaterialKinds {
		out[k] = 0
	}
	return out
}
