package bom

import (
	"fmt"

	"github.com/phenrril/cablemrp/internal/domain"
)

// PigmentBucket une las variantes de base (UV, PVC) de un mismo color.
type PigmentBucket struct {
	Color   domain.PigmentColor
	Sources []domain.MaterialKind
}

// PigmentBuckets debe cubrir cada pigmento de domain.MaterialKinds exactamente una vez.
var PigmentBuckets = []PigmentBucket{
	{Color: domain.ColorBlack, Sources: []domain.MaterialKind{domain.PigUVBlack, domain.PigPVCBlack}},
	{Color: domain.ColorGray, Sources: []domain.MaterialKind{domain.PigUVGray, domain.PigPVCGray}},
	{Color: domain.ColorBlue, Sources: []domain.MaterialKind{domain.PigUVBlue, domain.PigPVCBlue}},
	{Color: domain.ColorYellow, Sources: []domain.MaterialKind{domain.PigUVYellow, domain.PigPVCYellow}},
	{Color: domain.ColorGreen, Sources: []domain.MaterialKind{domain.PigUVGreen, domain.PigPVCGreen}},
	{Color: domain.ColorRed, Sources: []domain.MaterialKind{domain.PigUVRed, domain.PigPVCRed}},
	{Color: domain.ColorWhite, Sources: []domain.MaterialKind{domain.PigUVWhite, domain.PigPVCWhite}},
	{Color: domain.ColorOrange, Sources: []domain.MaterialKind{domain.PigPVCOrange}},
	{Color: domain.ColorBrown, Sources: []domain.MaterialKind{domain.PigPVCBrown}},
}

// CheckPigmentTable valida la tabla contra el esquema de composición.
func CheckPigmentTable(buckets []PigmentBucket) error {
	seen := map[domain.MaterialKind]domain.PigmentColor{}
	for _, b := range buckets {
		if len(b.Sources) == 0 {
			return fmt.Errorf("color %s sin fuentes", b.Color)
		}
		for _, src := range b.Sources {
			if !src.Known() || !src.IsPigment() {
				return fmt.Errorf("color %s: %s no es un pigmento del esquema", b.Color, src)
			}
			if prev, dup := seen[src]; dup {
				return fmt.Errorf("%s asignado a %s y %s", src, prev, b.Color)
			}
			seen[src] = b.Color
		}
	}
	for _, k := range domain.MaterialKinds {
		if !k.IsPigment() {
			continue
		}
		if _, ok := seen[k]; !ok {
			return fmt.Errorf("pigmento %s sin color asignado", k)
		}
	}
	return nil
}

// pigmentTotals colapsa masas por color. Todos los colores aparecen, aunque sea en cero.
func pigmentTotals(materials map[domain.MaterialKind]float64) map[domain.PigmentColor]float64 {
	out := emptyPigments()
	for _, b := range PigmentBuckets {
		for _, src := range b.Sources {
			out[b.Color] += materials[src]
		}
	}
	return out
}

func emptyPigments() map[domain.PigmentColor]float64 {
	out := make(map[domain.PigmentColor]float64, len(PigmentBuckets))
	for _, b := range PigmentBuckets {
		out[b.Color] = 0
	}
	return out
}
