package bom

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/cablemrp/internal/domain"
)

// utilizationEpsilon: aprovechamientos que caen en la misma grilla de 1e-9 empatan.
const utilizationEpsilon = 1e-9

// fitEpsilon es la tolerancia relativa para considerar que las bobinas cubren el largo justo.
const fitEpsilon = 1e-9

// MaxReelUnits acota unidades por plan; por encima el plan no se ofrece.
const MaxReelUnits = math.MaxInt32

// PlanFor calcula el plan de un tipo de bobina. capacity debe ser > 0. Devuelve false
// cuando harían falta más de MaxReelUnits bobinas.
func PlanFor(e domain.ReelCapacityEntry, length float64) (domain.ReelPlan, bool) {
	ratio := length / e.CapacityMeters
	if math.IsNaN(ratio) || ratio > MaxReelUnits {
		return domain.ReelPlan{}, false
	}
	units := int(math.Ceil(ratio))
	// 3439.8/191.1 puede dar 18.000000000000004: es un calce justo, no 19 bobinas
	if r := math.Round(ratio); r >= 1 && math.Abs(ratio-r) <= fitEpsilon*r {
		units = int(r)
	}
	if units < 1 {
		units = 1
	}
	total := float64(units) * e.CapacityMeters
	p := domain.ReelPlan{
		ReelName:       e.ReelName,
		CapacityMeters: e.CapacityMeters,
		UnitsNeeded:    units,
	}
	switch {
	case math.Abs(total-length) <= fitEpsilon*length:
		p.TotalCapacity = length
		p.LeftoverMeters = 0
		p.UtilizationPct = 100
		return p, true
	case total < length:
		units++
		total = float64(units) * e.CapacityMeters
		p.UnitsNeeded = units
	}
	p.TotalCapacity = total
	p.LeftoverMeters = total - length
	p.UtilizationPct = length / total * 100
	return p, true
}

// RecommendReels arma un plan por tipo de bobina y elige la mejor opción multi-bobina
// y la mejor bobina única. entries es el catálogo ya filtrado por (category, gauge).
func RecommendReels(category, gauge string, length float64, entries []domain.ReelCapacityEntry) (domain.ReelRecommendation, error) {
	if strings.TrimSpace(category) == "" {
		return domain.ReelRecommendation{}, domain.NewValidationError("category", "categoría vacía")
	}
	if strings.TrimSpace(gauge) == "" {
		return domain.ReelRecommendation{}, domain.NewValidationError("gauge", "bitola vacía")
	}
	if err := ValidateLength(length); err != nil {
		return domain.ReelRecommendation{}, err
	}

	plans := make([]domain.ReelPlan, 0, len(entries))
	tooMany := 0
	for i, e := range entries {
		if e.CapacityMeters <= 0 || math.IsNaN(e.CapacityMeters) || math.IsInf(e.CapacityMeters, 0) {
			continue
		}
		p, ok := PlanFor(e, length)
		if !ok {
			tooMany++
			log.Debug().Str("bobina", e.ReelName).Float64("length_m", length).Msg("plan descartado: demasiadas unidades")
			continue
		}
		p.Position = i
		plans = append(plans, p)
	}
	if len(plans) == 0 && tooMany > 0 {
		return domain.ReelRecommendation{}, domain.NewValidationError("length_m",
			fmt.Sprintf("longitud %v requiere más de %d bobinas", length, MaxReelUnits))
	}
	if len(plans) == 0 {
		return domain.ReelRecommendation{}, fmt.Errorf("bobinas para %s/%s: %w", category, gauge, domain.ErrNotFound)
	}

	sort.SliceStable(plans, func(i, j int) bool { return betterMulti(plans[i], plans[j]) })

	rec := domain.ReelRecommendation{
		Category:     category,
		Gauge:        gauge,
		LengthMeters: length,
		Plans:        plans,
	}
	best := plans[0]
	rec.BestMultiReel = &best

	for i := range plans {
		p := plans[i]
		if p.CapacityMeters < length {
			continue
		}
		if rec.BestSingleReel == nil || betterSingle(p, *rec.BestSingleReel) {
			cp := p
			rec.BestSingleReel = &cp
		}
	}
	return rec, nil
}

// betterMulti: mayor aprovechamiento, menos unidades, nombre, posición en catálogo.
func betterMulti(a, b domain.ReelPlan) bool {
	if ua, ub := utilizationBucket(a.UtilizationPct), utilizationBucket(b.UtilizationPct); ua != ub {
		return ua > ub
	}
	if a.UnitsNeeded != b.UnitsNeeded {
		return a.UnitsNeeded < b.UnitsNeeded
	}
	if a.ReelName != b.ReelName {
		return a.ReelName < b.ReelName
	}
	return a.Position < b.Position
}

// utilizationBucket lleva el aprovechamiento a la grilla de utilizationEpsilon; así el
// empate es transitivo.
func utilizationBucket(pct float64) int64 {
	return int64(math.Round(pct / utilizationEpsilon))
}

// betterSingle: menor capacidad que entre entera, después nombre y posición.
func betterSingle(a, b domain.ReelPlan) bool {
	if a.CapacityMeters != b.CapacityMeters {
		return a.CapacityMeters < b.CapacityMeters
	}
	if a.ReelName != b.ReelName {
		return a.ReelName < b.ReelName
	}
	return a.Position < b.Position
}
