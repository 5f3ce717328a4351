// Package tabular lee los reportes del restaurante (CSV o XLSX) como registros tipados
// y escribe las planillas de exportación.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/restaurant-analytics/internal/domain"
)

// table filas crudas de un reporte con su cabecera.
type table struct {
	dataset string
	header  []string
	rows    [][]string
}

// readTable decide el formato por la extensión: .xlsx/.xlsm con excelize, el resto como CSV.
func readTable(dataset, filename string, r io.Reader) (*table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: leer archivo: %w", dataset, err)
	}
	var records [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(data)
	default:
		records, err = readCSV(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dataset, err)
	}
	if len(records) == 0 {
		return nil, &domain.DataIntegrityError{Dataset: dataset, Missing: []string{"(cabecera)"}}
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	return &table{dataset: dataset, header: header, rows: records[1:]}, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()
	return f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
}

// readCSV acepta UTF-8 (con o sin BOM); si el contenido no es UTF-8 válido se decodifica como Windows-1252.
func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var r io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	return records, nil
}

// columns índice de cada columna requerida; DataIntegrityError nombra todas las ausentes.
func (t *table) columns(required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(required))
	var missing []string
	for _, want := range required {
		found := -1
		for i, h := range t.header {
			if strings.EqualFold(h, want) {
				found = i
				break
			}
		}
		if found < 0 {
			missing = append(missing, want)
			continue
		}
		idx[want] = found
	}
	if len(missing) > 0 {
		return nil, &domain.DataIntegrityError{Dataset: t.dataset, Missing: missing}
	}
	return idx, nil
}

// rowReader lee celdas tipadas de una fila y recuerda el primer error.
type rowReader struct {
	t   *table
	idx map[string]int
	row []string
	n   int // fila en el archivo (la cabecera es la 1)
	err error
}

func (t *table) each(idx map[string]int, fn func(r *rowReader)) error {
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		rr := &rowReader{t: t, idx: idx, row: row, n: i + 2}
		fn(rr)
		if rr.err != nil {
			return rr.err
		}
	}
	return nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (r *rowReader) str(col string) string {
	i := r.idx[col]
	if i >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[i])
}

func (r *rowReader) fail(col, val string) {
	if r.err == nil {
		r.err = &domain.DataIntegrityError{Dataset: r.t.dataset, Row: r.n, Column: col, Value: val}
	}
}

// text celda obligatoria no vacía.
func (r *rowReader) text(col string) string {
	v := r.str(col)
	if v == "" {
		r.fail(col, v)
	}
	return v
}

func (r *rowReader) dec(col string) decimal.Decimal {
	v := r.str(col)
	d, err := parseDecimal(v)
	if err != nil {
		r.fail(col, v)
		return decimal.Zero
	}
	return d
}

func (r *rowReader) date(col string) time.Time {
	v := r.str(col)
	t, err := parseDate(v)
	if err != nil {
		r.fail(col, v)
	}
	return t
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(",", "", " ", "", "₹", "", "$", "").Replace(s)
	return decimal.NewFromString(s)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
}

// parseDate prueba los formatos habituales de las planillas; se conserva solo la fecha.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", s)
}
