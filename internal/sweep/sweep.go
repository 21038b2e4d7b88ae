// Package sweep loads the optimization summary table and discovers the
// Best/Avg metric column pairs plotted by the summary command.
package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// PhenotypeColumn is the one column never coerced to a number.
const PhenotypeColumn = "BestStrategyPhenotype"

// Row is one generation of sweep results. Cells holds every non-phenotype
// column; nil marks a value that failed numeric coercion and renders as a
// gap in the corresponding series.
type Row struct {
	Generation int
	Cells      map[string]*float64
	Phenotype  string
}

// Table is the cleaned sweep-results table with source column order kept.
type Table struct {
	Columns []string
	Rows    []Row
}

// MetricPair names one Best/Avg column pairing.
type MetricPair struct {
	Base string
	Best string
	Avg  string
}

// Percent reports whether the metric should be axis-formatted as a
// percentage (rates and returns) rather than a plain scalar.
func (p MetricPair) Percent() bool {
	return strings.Contains(p.Base, "Return") ||
		strings.Contains(p.Base, "WinRate") ||
		strings.Contains(p.Base, "Accuracy")
}

// Load reads and cleans a sweep summary from disk. A missing file is fatal.
func Load(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open sweep summary: %w", err)
	}
	defer file.Close()

	table, err := Read(file)
	if err != nil {
		return Table{}, fmt.Errorf("read sweep summary %s: %w", path, err)
	}
	return table, nil
}

// Read parses a sweep summary CSV. Numeric cells may carry thousands
// separators ("9,297"); cells that still fail coercion become nil. Rows
// whose Generation cannot be parsed are dropped entirely.
func Read(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	genIdx := -1
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
		if columns[i] == "Generation" {
			genIdx = i
		}
	}
	if genIdx < 0 {
		return Table{}, fmt.Errorf("missing required column %q", "Generation")
	}

	table := Table{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read row: %w", err)
		}

		if genIdx >= len(record) {
			continue
		}
		gen, ok := parseGeneration(record[genIdx])
		if !ok {
			continue
		}

		row := Row{Generation: gen, Cells: make(map[string]*float64, len(columns))}
		for i, col := range columns {
			var raw string
			if i < len(record) {
				raw = strings.TrimSpace(record[i])
			}
			if col == PhenotypeColumn {
				row.Phenotype = raw
				continue
			}
			row.Cells[col] = parseNumber(raw)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// DiscoverPairs returns every Best<X>/Avg<X> column pairing in source
// column order, skipping the phenotype column and Best columns without a
// matching Avg sibling.
func (t Table) DiscoverPairs() []MetricPair {
	have := make(map[string]struct{}, len(t.Columns))
	for _, col := range t.Columns {
		have[col] = struct{}{}
	}

	var pairs []MetricPair
	for _, col := range t.Columns {
		if !strings.HasPrefix(col, "Best") || col == PhenotypeColumn {
			continue
		}
		base := strings.TrimPrefix(col, "Best")
		avg := "Avg" + base
		if _, ok := have[avg]; ok {
			pairs = append(pairs, MetricPair{Base: base, Best: col, Avg: avg})
		}
	}
	return pairs
}

// Series extracts (generation, value) points for one column, skipping nil
// cells so gaps never enter a chart series.
func (t Table) Series(column string) (xs, ys []float64) {
	for _, row := range t.Rows {
		v := row.Cells[column]
		if v == nil {
			continue
		}
		xs = append(xs, float64(row.Generation))
		ys = append(ys, *v)
	}
	return xs, ys
}

func parseGeneration(raw string) (int, bool) {
	v := parseNumber(strings.TrimSpace(raw))
	if v == nil {
		return 0, false
	}
	return int(*v), true
}

// parseNumber coerces a cell to a float, eating thousands separators so
// "9,297" parses as 9297. Returns nil for anything non-numeric.
func parseNumber(raw string) *float64 {
	if raw == "" {
		return nil
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
