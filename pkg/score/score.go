// Package score turns ranking keys into comparable scores.
package score

// MaxNormalize divides every value by (max + 1), where max is the largest
// value or 0 when there is none above 0. Output keeps the input order.
// For non-negative input each score is below 1, even the maximum.
func MaxNormalize(values []float64) []float64 {
	maxValue := 0.0
	for _, v := range values {
		if v > maxValue {
			maxValue = v
		}
	}

	scores := make([]float64, len(values))
	for i, v := range values {
		scores[i] = v / (maxValue + 1)
	}
	return scores
}

// Population scores populations: larger population, larger score.
// The most populated entry scores max/(max+1), never exactly 1.
func Population(populations []int64) []float64 {
	values := make([]float64, len(populations))
	for i, p := range populations {
		values[i] = float64(p)
	}
	return MaxNormalize(values)
}

// Proximity scores distances: closer, larger score.
// Distance 0 scores 1; the farthest entry scores 1/(max+1), never 0.
func Proximity(distances []float64) []float64 {
	scores := MaxNormalize(distances)
	for i := range scores {
		scores[i] = 1 - scores[i]
	}
	return scores
}
