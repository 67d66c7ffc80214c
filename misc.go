package siescene

// A small epsilon value for floating-point comparisons to avoid precision errors.
const epsilon = 1e-9

func clampf(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
