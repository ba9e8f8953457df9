package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReelCapacityEntry es la capacidad de un tipo de bobina para una (categoría, bitola).
type ReelCapacityEntry struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category       string    `gorm:"size:60;index:idx_reel_cat_gauge" json:"category"`
	Gauge          string    `gorm:"size:20;index:idx_reel_cat_gauge" json:"gauge"`
	ReelName       string    `gorm:"size:80" json:"reel_name"`
	CapacityMeters float64   `gorm:"type:double precision" json:"capacity_m"`
	Position       int       `gorm:"default:0" json:"position"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// NormalizeCategory y NormalizeGauge definen la clave de búsqueda del catálogo de bobinas.
func NormalizeCategory(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func NormalizeGauge(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}

type ReelPlan struct {
	ReelName       string  `json:"reel_name"`
	CapacityMeters float64 `json:"capacity_m"`
	UnitsNeeded    int     `json:"units_needed"`
	TotalCapacity  float64 `json:"total_capacity_m"`
	LeftoverMeters float64 `json:"leftover_m"`
	UtilizationPct float64 `json:"utilization_pct"`
	Position       int     `json:"-"`
}

type ReelRecommendation struct {
	Category       string     `json:"category"`
	Gauge          string     `json:"gauge"`
	LengthMeters   float64    `json:"length_m"`
	Plans          []ReelPlan `json:"plans"`
	BestMultiReel  *ReelPlan  `json:"best_multi_reel"`
	BestSingleReel *ReelPlan  `json:"best_single_reel"`
}
