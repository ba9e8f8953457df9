package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaterialKind identifica un coeficiente kg/m de la composición.
type MaterialKind string

const (
	Aluminum       MaterialKind = "aluminum"
	PE             MaterialKind = "pe"
	XLPE           MaterialKind = "xlpe"
	XLPESilane     MaterialKind = "xlpe_silane"
	HEPR           MaterialKind = "hepr"
	PVC            MaterialKind = "pvc"
	PVCMasterbatch MaterialKind = "pvc_masterbatch"

	PigUVBlack  MaterialKind = "pig_uv_black"
	PigUVGray   MaterialKind = "pig_uv_gray"
	PigUVBlue   MaterialKind = "pig_uv_blue"
	PigUVYellow MaterialKind = "pig_uv_yellow"
	PigUVGreen  MaterialKind = "pig_uv_green"
	PigUVRed    MaterialKind = "pig_uv_red"
	PigUVWhite  MaterialKind = "pig_uv_white"

	PigPVCBlack  MaterialKind = "pig_pvc_black"
	PigPVCGray   MaterialKind = "pig_pvc_gray"
	PigPVCBlue   MaterialKind = "pig_pvc_blue"
	PigPVCYellow MaterialKind = "pig_pvc_yellow"
	PigPVCGreen  MaterialKind = "pig_pvc_green"
	PigPVCRed    MaterialKind = "pig_pvc_red"
	PigPVCWhite  MaterialKind = "pig_pvc_white"
	PigPVCOrange MaterialKind = "pig_pvc_orange"
	PigPVCBrown  MaterialKind = "pig_pvc_brown"
)

// MaterialKinds es el esquema completo, en el orden en que se reporta.
var MaterialKinds = []MaterialKind{
	Aluminum, PE, XLPE, XLPESilane, HEPR, PVC, PVCMasterbatch,
	PigUVBlack, PigUVGray, PigUVBlue, PigUVYellow, PigUVGreen, PigUVRed, PigUVWhite,
	PigPVCBlack, PigPVCGray, PigPVCBlue, PigPVCYellow, PigPVCGreen, PigPVCRed, PigPVCWhite, PigPVCOrange, PigPVCBrown,
}

var knownKinds = func() map[MaterialKind]struct{} {
	m := make(map[MaterialKind]struct{}, len(MaterialKinds))
	for _, k := range MaterialKinds {
		m[k] = struct{}{}
	}
	return m
}()

func (k MaterialKind) Known() bool {
	_, ok := knownKinds[k]
	return ok
}

func (k MaterialKind) IsPigment() bool {
	return strings.HasPrefix(string(k), "pig_")
}

// TotalTolerance es la diferencia admitida entre TotalPerMeter y la suma de coeficientes.
const TotalTolerance = 1e-9

type CompositionRecord struct {
	ID            uuid.UUID                `gorm:"type:uuid;primaryKey" json:"id"`
	Code          string                   `gorm:"size:60;index" json:"code"`
	Description   string                   `gorm:"size:255" json:"description"`
	ColorScheme   string                   `gorm:"size:140" json:"color_scheme"`
	Gauge         string                   `gorm:"size:20" json:"gauge"`
	PerMeter      map[MaterialKind]float64 `gorm:"type:jsonb;serializer:json" json:"per_meter"`
	TotalPerMeter float64                  `gorm:"type:double precision;default:0" json:"total_per_meter"`
	Active        bool                     `gorm:"default:true;index" json:"active"`
	CreatedAt     time.Time                `json:"-"`
	UpdatedAt     time.Time                `json:"-"`
}

// NormalizeCode es la forma usada para indexar y comparar códigos.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Sum suma todos los coeficientes declarados.
func (c *CompositionRecord) Sum() float64 {
	total := 0.0
	for _, v := range c.PerMeter {
		total += v
	}
	return total
}

// UnknownKinds devuelve ordenadas las claves que no pertenecen al esquema.
func (c *CompositionRecord) UnknownKinds() []MaterialKind {
	var out []MaterialKind
	for k := range c.PerMeter {
		if !k.Known() {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate controla coeficientes no negativos y que TotalPerMeter coincida con la suma.
func (c *CompositionRecord) Validate() error {
	if NormalizeCode(c.Code) == "" {
		return NewValidationError("code", "código vacío")
	}
	for k, v := range c.PerMeter {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return NewValidationError(string(k), fmt.Sprintf("coeficiente inválido %v", v))
		}
	}
	if sum := c.Sum(); math.Abs(sum-c.TotalPerMeter) > TotalTolerance {
		return NewValidationError("total_per_meter", fmt.Sprintf("total %v no coincide con la suma %v", c.TotalPerMeter, sum))
	}
	return nil
}

// FillTotal recalcula TotalPerMeter desde los coeficientes.
func (c *CompositionRecord) FillTotal() {
	c.TotalPerMeter = c.Sum()
}
