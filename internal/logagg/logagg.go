// Package logagg extracts sweep observations from free-text run logs and
// aggregates them into a dense (n, depth) matrix of mean metric values.
package logagg

import (
	"regexp"
	"strconv"
)

// Record is one observation scraped from the run log.
type Record struct {
	N      int
	Depth  int
	Metric float64
}

// Key identifies one cell of the aggregate matrix.
type Key struct {
	N     int
	Depth int
}

// triplePattern matches "n: <int>, depth: <int> ... Sharpe: <float>" within
// a single line. The span is non-greedy so unrelated text between two runs
// never merges two triples.
var triplePattern = regexp.MustCompile(`n:\s*(\d+),\s*depth:\s*(\d+).*?Sharpe:\s*(-?[0-9.]+)`)

// Extract scans raw log text for observation triples. Extraction is
// best-effort: malformed matches are skipped and no input ever produces an
// error, only a shorter (possibly empty) result.
func Extract(raw string) []Record {
	matches := triplePattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}

	records := make([]Record, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		depth, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		metric, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			// e.g. "1.2.3" passes the character class but is not a number
			continue
		}
		records = append(records, Record{N: n, Depth: depth, Metric: metric})
	}
	return records
}

// Aggregate groups records by (n, depth) and computes the arithmetic mean of
// each group's metric. The resulting matrix covers the full cross product of
// observed n and depth values; cells without observations hold 0.0.
func Aggregate(records []Record) Matrix {
	if len(records) == 0 {
		return Matrix{}
	}

	sums := make(map[Key]float64)
	counts := make(map[Key]int)
	for _, r := range records {
		k := Key{N: r.N, Depth: r.Depth}
		sums[k] += r.Metric
		counts[k]++
	}

	nSet := make(map[int]struct{})
	depthSet := make(map[int]struct{})
	for k := range sums {
		nSet[k.N] = struct{}{}
		depthSet[k.Depth] = struct{}{}
	}

	m := Matrix{
		NVals:     sortedKeys(nSet),
		DepthVals: sortedKeys(depthSet),
	}
	m.Cells = make([][]float64, len(m.NVals))
	m.Observed = make([][]bool, len(m.NVals))
	for i, n := range m.NVals {
		m.Cells[i] = make([]float64, len(m.DepthVals))
		m.Observed[i] = make([]bool, len(m.DepthVals))
		for j, depth := range m.DepthVals {
			k := Key{N: n, Depth: depth}
			if c := counts[k]; c > 0 {
				m.Cells[i][j] = sums[k] / float64(c)
				m.Observed[i][j] = true
			}
		}
	}
	return m
}
