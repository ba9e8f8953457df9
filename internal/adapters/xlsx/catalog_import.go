// Package xlsx lee los catálogos de referencia desde planillas Excel.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/cablemrp/internal/domain"
)

var ErrNoHeader = errors.New("planilla sin fila de encabezado")

// headerSearchRows: el encabezado puede venir debajo de filas de instrucciones.
const headerSearchRows = 10

var compositionAliases = map[string]string{
	"COD":         "code",
	"CODIGO":      "code",
	"CÓDIGO":      "code",
	"CODE":        "code",
	"DESCRICAO":   "description",
	"DESCRIÇÃO":   "description",
	"DESCRIPCION": "description",
	"DESCRIPTION": "description",
	"CORES":       "color_scheme",
	"COLORES":     "color_scheme",
	"COLORS":      "color_scheme",
	"BITOLA":      "gauge",
	"GAUGE":       "gauge",
	"TOTAL":       "total",
	"TOTAL_KG_M":  "total",
}

var reelAliases = map[string]string{
	"CATEGORIA":    "category",
	"CATEGORY":     "category",
	"BITOLA":       "gauge",
	"GAUGE":        "gauge",
	"BOBINA":       "reel",
	"REEL":         "reel",
	"CAPACIDADE":   "capacity",
	"CAPACIDADE_M": "capacity",
	"CAPACITY_M":   "capacity",
}

// ParseCompositions lee la primera hoja. Columnas con nombre de material del esquema
// (aluminum, pe, pig_uv_black...) son coeficientes kg/m. Columnas desconocidas se informan;
// las que empiezan con pig_ se conservan para que el cálculo las advierta. Sin TOTAL
// (columna ausente o celda vacía) el total se calcula; un TOTAL explícito se respeta y se
// valida contra la suma al importar.
func ParseCompositions(r io.Reader) ([]domain.CompositionRecord, *domain.ImportReport, error) {
	sheet, rows, err := readFirstSheet(r)
	if err != nil {
		return nil, nil, err
	}
	rep := &domain.ImportReport{Sheet: sheet, Timestamp: time.Now()}

	hdrRow, cols, err := findHeader(rows, compositionAliases, "code")
	if err != nil {
		return nil, rep, err
	}
	kinds := map[int]domain.MaterialKind{}
	for i, h := range rows[hdrRow] {
		if _, ok := cols[i]; ok {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			continue
		}
		k := domain.MaterialKind(name)
		if !k.Known() {
			rep.UnknownColumns = append(rep.UnknownColumns, h)
			if !k.IsPigment() {
				continue
			}
		}
		kinds[i] = k
	}
	if len(rep.UnknownColumns) > 0 {
		log.Warn().Strs("columnas", rep.UnknownColumns).Msg("columnas fuera del esquema de composición")
	}

	var out []domain.CompositionRecord
	for i := hdrRow + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		rep.Rows++
		rec := domain.CompositionRecord{PerMeter: map[domain.MaterialKind]float64{}}
		var rowErr error
		hasTotal := false
		for c, field := range cols {
			val := cell(row, c)
			switch field {
			case "code":
				rec.Code = domain.NormalizeCode(val)
			case "description":
				rec.Description = val
			case "color_scheme":
				rec.ColorScheme = val
			case "gauge":
				rec.Gauge = domain.NormalizeGauge(val)
			case "total":
				hasTotal = val != ""
				if rec.TotalPerMeter, err = ParseNumber(val); err != nil {
					rowErr = fmt.Errorf("TOTAL: %w", err)
				}
			}
		}
		for c, k := range kinds {
			v, err := ParseNumber(cell(row, c))
			if err != nil {
				rowErr = fmt.Errorf("%s: %w", k, err)
				break
			}
			if v != 0 {
				rec.PerMeter[k] = v
			}
		}
		if !hasTotal {
			rec.FillTotal()
		}
		if rowErr == nil && rec.Code == "" {
			rowErr = errors.New("código vacío")
		}
		if rowErr != nil {
			rep.Rejected++
			rep.Errors = append(rep.Errors, fmt.Sprintf("fila %d: %v", i+1, rowErr))
			continue
		}
		out = append(out, rec)
	}
	return out, rep, nil
}

// ParseReels lee la planilla de capacidades: CATEGORIA, BITOLA, BOBINA, CAPACIDADE_M.
func ParseReels(r io.Reader) ([]domain.ReelCapacityEntry, *domain.ImportReport, error) {
	sheet, rows, err := readFirstSheet(r)
	if err != nil {
		return nil, nil, err
	}
	rep := &domain.ImportReport{Sheet: sheet, Timestamp: time.Now()}

	hdrRow, cols, err := findHeader(rows, reelAliases, "reel")
	if err != nil {
		return nil, rep, err
	}
	for i, h := range rows[hdrRow] {
		if _, ok := cols[i]; !ok && strings.TrimSpace(h) != "" {
			rep.UnknownColumns = append(rep.UnknownColumns, h)
		}
	}

	var out []domain.ReelCapacityEntry
	for i := hdrRow + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		rep.Rows++
		var e domain.ReelCapacityEntry
		var rowErr error
		for c, field := range cols {
			val := cell(row, c)
			switch field {
			case "category":
				e.Category = domain.NormalizeCategory(val)
			case "gauge":
				e.Gauge = domain.NormalizeGauge(val)
			case "reel":
				e.ReelName = val
			case "capacity":
				if e.CapacityMeters, err = ParseNumber(val); err != nil {
					rowErr = fmt.Errorf("CAPACIDADE: %w", err)
				}
			}
		}
		if rowErr != nil {
			rep.Rejected++
			rep.Errors = append(rep.Errors, fmt.Sprintf("fila %d: %v", i+1, rowErr))
			continue
		}
		out = append(out, e)
	}
	return out, rep, nil
}

// ParseNumber acepta "0.35", "0,35" y "1.234,5". Vacío es cero.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, " ", ""))
	if s == "" || s == "-" {
		return 0, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("número inválido %q", s)
	}
	return d.InexactFloat64(), nil
}

func readFirstSheet(r io.Reader) (string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", nil, fmt.Errorf("abrir planilla: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, ErrNoHeader
	}
	// valores guardados, no el texto con formato: "0.00" convertiría 0.00035 en 0
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return "", nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}
	return sheets[0], rows, nil
}

// findHeader busca la primera fila que contenga la columna obligatoria.
func findHeader(rows [][]string, aliases map[string]string, required string) (int, map[int]string, error) {
	for i := 0; i < len(rows) && i < headerSearchRows; i++ {
		cols := map[int]string{}
		for c, h := range rows[i] {
			if field, ok := aliases[strings.ToUpper(strings.TrimSpace(h))]; ok {
				cols[c] = field
			}
		}
		for _, field := range cols {
			if field == required {
				return i, cols, nil
			}
		}
	}
	return 0, nil, ErrNoHeader
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
