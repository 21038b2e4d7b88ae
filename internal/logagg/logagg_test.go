package logagg

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"
)

const sampleLog = `
[GEN ] evaluating n: 5, depth: 3 window=120 ... Sharpe: 1.20
noise line without anything useful
[GEN ] evaluating n: 5, depth: 3 window=240 ... Sharpe: 1.40
[GEN ] evaluating n: 5, depth: 4 window=120 ... Sharpe: 0.80
`

func TestExtractTriples(t *testing.T) {
	records := Extract(sampleLog)
	want := []Record{
		{N: 5, Depth: 3, Metric: 1.20},
		{N: 5, Depth: 3, Metric: 1.40},
		{N: 5, Depth: 4, Metric: 0.80},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("extracted %#v, want %#v", records, want)
	}
}

func TestExtractNoMatches(t *testing.T) {
	if got := Extract("nothing of interest here"); got != nil {
		t.Fatalf("expected nil for no matches, got %#v", got)
	}
	if got := Extract(""); got != nil {
		t.Fatalf("expected nil for empty input, got %#v", got)
	}
}

func TestExtractSkipsMalformedNumbers(t *testing.T) {
	raw := "n: 5, depth: 3 Sharpe: 1.2.3\nn: 6, depth: 2 Sharpe: 0.50"
	records := Extract(raw)
	if len(records) != 1 {
		t.Fatalf("expected one valid record, got %#v", records)
	}
	if records[0].N != 6 || records[0].Metric != 0.50 {
		t.Fatalf("wrong surviving record: %#v", records[0])
	}
}

func TestExtractSpanDoesNotCrossLines(t *testing.T) {
	// n/depth on one line and Sharpe on the next must not merge.
	raw := "n: 5, depth: 3 no metric here\nSharpe: 9.99"
	if got := Extract(raw); got != nil {
		t.Fatalf("triple must stay within one line, got %#v", got)
	}
}

func TestExtractNegativeMetric(t *testing.T) {
	records := Extract("n: 2, depth: 7 ... Sharpe: -0.35")
	if len(records) != 1 || records[0].Metric != -0.35 {
		t.Fatalf("negative metric not extracted: %#v", records)
	}
}

func TestAggregateMeansAndShape(t *testing.T) {
	m := Aggregate(Extract(sampleLog))

	if !reflect.DeepEqual(m.NVals, []int{5}) {
		t.Fatalf("rows = %v, want [5]", m.NVals)
	}
	if !reflect.DeepEqual(m.DepthVals, []int{3, 4}) {
		t.Fatalf("cols = %v, want [3 4]", m.DepthVals)
	}

	if v, ok := m.At(5, 3); !ok || math.Abs(v-1.30) > 1e-12 {
		t.Fatalf("cell (5,3) = %v, %v; want 1.30", v, ok)
	}
	if v, ok := m.At(5, 4); !ok || math.Abs(v-0.80) > 1e-12 {
		t.Fatalf("cell (5,4) = %v, %v; want 0.80", v, ok)
	}
}

func TestAggregateCrossProductDefaultFill(t *testing.T) {
	records := []Record{
		{N: 1, Depth: 1, Metric: 2.0},
		{N: 2, Depth: 2, Metric: 4.0},
	}
	m := Aggregate(records)

	if len(m.NVals) != 2 || len(m.DepthVals) != 2 {
		t.Fatalf("shape %dx%d, want 2x2", len(m.NVals), len(m.DepthVals))
	}

	// Unobserved corners hold the 0.0 default but are still defined.
	if v, ok := m.At(1, 2); !ok || v != 0.0 {
		t.Fatalf("cell (1,2) = %v, %v; want default 0.0", v, ok)
	}
	if v, ok := m.At(2, 1); !ok || v != 0.0 {
		t.Fatalf("cell (2,1) = %v, %v; want default 0.0", v, ok)
	}
	if m.Observed[0][1] || m.Observed[1][0] {
		t.Fatal("default-filled cells must not be marked observed")
	}
	if !m.Observed[0][0] || !m.Observed[1][1] {
		t.Fatal("observed cells must be marked observed")
	}
}

func TestAggregateEmpty(t *testing.T) {
	m := Aggregate(nil)
	if !m.Empty() {
		t.Fatalf("aggregate of no records should be empty, got %#v", m)
	}
	if _, ok := m.At(1, 1); ok {
		t.Fatal("empty matrix must not resolve any cell")
	}
}

func TestAggregateIdempotent(t *testing.T) {
	a := Aggregate(Extract(sampleLog))
	b := Aggregate(Extract(sampleLog))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical input must yield identical matrices")
	}
}

func TestWriteTable(t *testing.T) {
	m := Aggregate(Extract(sampleLog))
	var buf bytes.Buffer
	if err := m.WriteTable(&buf); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"n \\ depth", "1.3000", "0.8000"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
}
