package logagg

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// Matrix is the dense aggregate over the cross product of observed n and
// depth values. Rows follow NVals, columns follow DepthVals, both ascending.
// Observed mirrors Cells and reports whether a cell had any records; cells
// without records render as 0.0.
type Matrix struct {
	NVals     []int
	DepthVals []int
	Cells     [][]float64
	Observed  [][]bool
}

// Empty reports whether the matrix has no rows or columns.
func (m Matrix) Empty() bool {
	return len(m.NVals) == 0 || len(m.DepthVals) == 0
}

// At returns the cell value for (n, depth) and whether that pair is part of
// the matrix at all.
func (m Matrix) At(n, depth int) (float64, bool) {
	i := indexOf(m.NVals, n)
	j := indexOf(m.DepthVals, depth)
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Cells[i][j], true
}

// Min and Max return the smallest and largest cell values. Zero for an
// empty matrix.
func (m Matrix) Min() float64 {
	min := 0.0
	first := true
	for _, row := range m.Cells {
		for _, v := range row {
			if first || v < min {
				min = v
				first = false
			}
		}
	}
	return min
}

// Max returns the largest cell value, zero for an empty matrix.
func (m Matrix) Max() float64 {
	max := 0.0
	first := true
	for _, row := range m.Cells {
		for _, v := range row {
			if first || v > max {
				max = v
				first = false
			}
		}
	}
	return max
}

// WriteTable renders the matrix as an aligned text table, the fallback sink
// when no graphical output is requested.
func (m Matrix) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprint(tw, "n \\ depth")
	for _, depth := range m.DepthVals {
		fmt.Fprintf(tw, "\t%d", depth)
	}
	fmt.Fprintln(tw)

	for i, n := range m.NVals {
		fmt.Fprintf(tw, "%d", n)
		for j := range m.DepthVals {
			fmt.Fprintf(tw, "\t%.4f", m.Cells[i][j])
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

func indexOf(vals []int, v int) int {
	for i, x := range vals {
		if x == v {
			return i
		}
	}
	return -1
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
