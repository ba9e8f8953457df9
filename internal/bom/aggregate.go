package bom

import "github.com/phenrril/cablemrp/internal/domain"

// Aggregate suma los ítems de un pedido. La intensidad kg/km sale de los totales,
// no del promedio por ítem.
func Aggregate(items []domain.ResolvedItem) domain.OrderMaterialsSummary {
	s := newSummary()
	for _, it := range items {
		addItem(&s, it)
	}
	s.MassPerKilometer = massPerKilometer(s.TotalNetWeightKg, s.TotalLengthMeters)
	return s
}

// Merge combina dos resúmenes como si se hubieran agregado juntos.
func Merge(a, b domain.OrderMaterialsSummary) domain.OrderMaterialsSummary {
	s := newSummary()
	for _, part := range []domain.OrderMaterialsSummary{a, b} {
		for k, v := range part.Materials {
			s.Materials[k] += v
		}
		for c, v := range part.Pigments {
			s.Pigments[c] += v
		}
		s.TotalLengthMeters += part.TotalLengthMeters
		s.TotalNetWeightKg += part.TotalNetWeightKg
		s.TotalGrossWeightKg += part.TotalGrossWeightKg
		s.ResolvedCount += part.ResolvedCount
		s.UnresolvedCount += part.UnresolvedCount
		s.Items = append(s.Items, part.Items...)
	}
	s.MassPerKilometer = massPerKilometer(s.TotalNetWeightKg, s.TotalLengthMeters)
	return s
}

func addItem(s *domain.OrderMaterialsSummary, it domain.ResolvedItem) {
	for k, v := range it.Materials {
		s.Materials[k] += v
	}
	for c, v := range it.Pigments {
		s.Pigments[c] += v
	}
	s.TotalLengthMeters += it.LengthMeters
	s.TotalNetWeightKg += it.NetWeightKg
	s.TotalGrossWeightKg += it.GrossWeightKg
	if it.Resolved {
		s.ResolvedCount++
	} else {
		s.UnresolvedCount++
	}
	s.Items = append(s.Items, it)
}

func newSummary() domain.OrderMaterialsSummary {
	return domain.OrderMaterialsSummary{
		Materials: emptyMaterials(),
		Pigments:  emptyPigments(),
		Items:     []domain.ResolvedItem{},
	}
}

func massPerKilometer(netKg, lengthM float64) float64 {
	if lengthM <= 0 {
		return 0
	}
	return netKg / lengthM * 1000
}
