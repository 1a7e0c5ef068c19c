package adjust

import (
	"math"
	"strconv"
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SnapUp moves value to the next multiple of grid hundredths, capped at ceiling.
// With grid 5, 0.42 becomes 0.45 and 0.45 becomes 0.50.
func SnapUp(value float64, grid int, ceiling float64) float64 {
	current := int(math.Round(value * 100))
	if grid <= 0 {
		return math.Min(value, ceiling)
	}
	if current%grid == 0 {
		return math.Min(float64(current+grid)/100, ceiling)
	}
	return math.Min(float64(ceilDiv(current, grid)*grid)/100, ceiling)
}

// SnapDown is the mirror of SnapUp, floored at floor.
func SnapDown(value float64, grid int, floor float64) float64 {
	current := int(math.Round(value * 100))
	if grid <= 0 {
		return math.Max(value, floor)
	}
	if current%grid == 0 {
		return math.Max(float64(current-grid)/100, floor)
	}
	return math.Max(float64(floorDiv(current, grid)*grid)/100, floor)
}

// NextLevel returns the first level above current, or current at the top.
func NextLevel(current float64, levels []float64) float64 {
	for _, level := range levels {
		if level > current {
			return level
		}
	}
	return current
}

// PrevLevel returns the last level below current, or 0 at the bottom.
func PrevLevel(current float64, levels []float64) float64 {
	for i := len(levels) - 1; i >= 0; i-- {
		if levels[i] < current {
			return levels[i]
		}
	}
	return 0
}

// FormatScaled renders value*scale with one decimal unless it is whole.
func FormatScaled(value, scale float64) string {
	scaled := value * scale
	if scaled == math.Trunc(scaled) {
		return strconv.FormatFloat(scaled, 'f', 0, 64)
	}
	return strconv.FormatFloat(scaled, 'f', 1, 64)
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}
	return q
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
