package domain

import "time"

// ImportReport resume una importación de catálogo desde planilla.
type ImportReport struct {
	Sheet          string    `json:"sheet"`
	Rows           int       `json:"rows"`
	Imported       int       `json:"imported"`
	Rejected       int       `json:"rejected"`
	UnknownColumns []string  `json:"unknown_columns,omitempty"`
	Errors         []string  `json:"errors,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
