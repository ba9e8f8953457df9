package httpserver

import (
	"github.com/shopspring/decimal"

	"github.com/phenrril/cablemrp/internal/domain"
)

// Los cálculos trabajan en float64; la salida se redondea: kg a 3 decimales, pigmentos a
// 6 (dosis de décimas de gramo por metro) y porcentajes a 2.

func roundKg(v float64) float64      { return decimal.NewFromFloat(v).Round(3).InexactFloat64() }
func roundPigment(v float64) float64 { return decimal.NewFromFloat(v).Round(6).InexactFloat64() }
func roundPct(v float64) float64     { return decimal.NewFromFloat(v).Round(2).InexactFloat64() }

func roundMaterials(m map[domain.MaterialKind]float64) map[domain.MaterialKind]float64 {
	out := make(map[domain.MaterialKind]float64, len(m))
	for k, v := range m {
		if k.IsPigment() {
			out[k] = roundPigment(v)
			continue
		}
		out[k] = roundKg(v)
	}
	return out
}

func roundPigments(m map[domain.PigmentColor]float64) map[domain.PigmentColor]float64 {
	out := make(map[domain.PigmentColor]float64, len(m))
	for k, v := range m {
		out[k] = roundPigment(v)
	}
	return out
}

func presentItem(it domain.ResolvedItem) domain.ResolvedItem {
	it.Materials = roundMaterials(it.Materials)
	it.Pigments = roundPigments(it.Pigments)
	it.NetWeightKg = roundKg(it.NetWeightKg)
	it.GrossWeightKg = roundKg(it.GrossWeightKg)
	return it
}

func presentSummary(s domain.OrderMaterialsSummary) domain.OrderMaterialsSummary {
	s.Materials = roundMaterials(s.Materials)
	s.Pigments = roundPigments(s.Pigments)
	s.TotalNetWeightKg = roundKg(s.TotalNetWeightKg)
	s.TotalGrossWeightKg = roundKg(s.TotalGrossWeightKg)
	s.MassPerKilometer = roundKg(s.MassPerKilometer)
	items := make([]domain.ResolvedItem, len(s.Items))
	for i, it := range s.Items {
		items[i] = presentItem(it)
	}
	s.Items = items
	return s
}

func presentPlan(p domain.ReelPlan) domain.ReelPlan {
	p.UtilizationPct = roundPct(p.UtilizationPct)
	return p
}

func presentRecommendation(rec domain.ReelRecommendation) domain.ReelRecommendation {
	plans := make([]domain.ReelPlan, len(rec.Plans))
	for i, p := range rec.Plans {
		plans[i] = presentPlan(p)
	}
	rec.Plans = plans
	if rec.BestMultiReel != nil {
		p := presentPlan(*rec.BestMultiReel)
		rec.BestMultiReel = &p
	}
	if rec.BestSingleReel != nil {
		p := presentPlan(*rec.BestSingleReel)
		rec.BestSingleReel = &p
	}
	return rec
}
