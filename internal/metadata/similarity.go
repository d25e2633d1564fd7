package metadata

// Jaccard returns the Jaccard index of two token sequences, treated as
// sets: intersection size over union size, in [0,1]. Two empty inputs
// score 0 rather than NaN so that orderings built on it stay total.
func Jaccard(a, b []string) float64 {
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}

	intersection := 0
	for t := range setB {
		if setA[t] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
