package analysis

// SyncOnset scans an order-parameter series and returns the index of the
// first sample from which r stays at or above threshold for the rest of
// the series, or -1 if the swarm never settles.
func SyncOnset(r []float64, threshold float64) int {
	onset := -1
	for i, v := range r {
		if v >= threshold {
			if onset == -1 {
				onset = i
			}
		} else {
			onset = -1
		}
	}
	return onset
}
