package render

import "math"

// niceTicks returns at most maxTicks evenly spaced tick values that cover
// [min, max], snapped to 1/2/5 steps so the labels stay readable.
func niceTicks(min, max float64, maxTicks int) []float64 {
	if maxTicks < 2 {
		maxTicks = 2
	}
	if min > max {
		min, max = max, min
	}
	if min == max {
		min, max = min-1, max+1
	}

	step := niceStep((max - min) / float64(maxTicks-1))
	for {
		start := math.Floor(min/step) * step
		end := math.Ceil(max/step) * step
		n := int(math.Round((end-start)/step)) + 1
		if n <= maxTicks {
			ticks := make([]float64, 0, n)
			for i := 0; i < n; i++ {
				ticks = append(ticks, start+float64(i)*step)
			}
			return ticks
		}
		step = niceStep(step * 1.5)
	}
}

// niceStep rounds a raw step up to the nearest 1, 2, or 5 times a power of
// ten.
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag
	switch {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}
