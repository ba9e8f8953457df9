package domain

// PigmentColor agrupa masterbatches del mismo color visible.
type PigmentColor string

const (
	ColorBlack  PigmentColor = "black"
	ColorGray   PigmentColor = "gray"
	ColorBlue   PigmentColor = "blue"
	ColorYellow PigmentColor = "yellow"
	ColorGreen  PigmentColor = "green"
	ColorRed    PigmentColor = "red"
	ColorWhite  PigmentColor = "white"
	ColorOrange PigmentColor = "orange"
	ColorBrown  PigmentColor = "brown"
)

type MatchMethod string

const (
	MatchExact  MatchMethod = "exact"
	MatchSuffix MatchMethod = "suffix"
	MatchPrefix MatchMethod = "prefix"
	MatchNone   MatchMethod = ""
)

// OrderLine es un ítem de pedido tal como lo envía el llamador.
type OrderLine struct {
	Code         string  `json:"code"`
	LengthMeters float64 `json:"length_m"`
}

type ResolvedItem struct {
	RequestedCode string                   `json:"requested_code"`
	ResolvedCode  *string                  `json:"resolved_code"`
	LengthMeters  float64                  `json:"length_m"`
	Materials     map[MaterialKind]float64 `json:"materials"`
	Pigments      map[PigmentColor]float64 `json:"pigments"`
	NetWeightKg   float64                  `json:"net_weight_kg"`
	GrossWeightKg float64                  `json:"gross_weight_kg"`
	Resolved      bool                     `json:"resolved"`
	MatchMethod   MatchMethod              `json:"match_method,omitempty"`
	Warnings      []string                 `json:"warnings,omitempty"`
}

type OrderMaterialsSummary struct {
	Materials          map[MaterialKind]float64 `json:"materials"`
	Pigments           map[PigmentColor]float64 `json:"pigments"`
	TotalLengthMeters  float64                  `json:"total_length_m"`
	TotalNetWeightKg   float64                  `json:"total_net_weight_kg"`
	TotalGrossWeightKg float64                  `json:"total_gross_weight_kg"`
	MassPerKilometer   float64                  `json:"mass_per_km"`
	ResolvedCount      int                      `json:"resolved_count"`
	UnresolvedCount    int                      `json:"unresolved_count"`
	Items              []ResolvedItem           `json:"items"`
}
