package compare

import "sort"

// Rank scores the surviving stores by a composite of normalized price,
// normalized distance, and a preference discount, then sorts ascending by
// score. Exactly the first entry is flagged recommended; ties keep catalog
// order (stable sort), so the result is deterministic.
func Rank(distances []StoreDistance, totals map[string]float64, preferred map[string]bool, cfg *Config) []RankedStore {
	ranked := make([]RankedStore, 0, len(distances))
	if len(distances) == 0 {
		return ranked
	}

	minTotal, maxTotal := totals[distances[0].Store], totals[distances[0].Store]
	minDist, maxDist := distances[0].Distance, distances[0].Distance
	for _, sd := range distances[1:] {
		t := totals[sd.Store]
		if t < minTotal {
			minTotal = t
		}
		if t > maxTotal {
			maxTotal = t
		}
		if sd.Distance < minDist {
			minDist = sd.Distance
		}
		if sd.Distance > maxDist {
			maxDist = sd.Distance
		}
	}

	for _, sd := range distances {
		total := totals[sd.Store]
		score := cfg.PriceWeight*minMax(total, minTotal, maxTotal) +
			cfg.DistanceWeight*minMax(sd.Distance, minDist, maxDist)
		if preferred[sd.Store] {
			score -= cfg.PreferenceBonus
		}
		ranked = append(ranked, RankedStore{
			Store:    sd.Store,
			Total:    total,
			Distance: sd.Distance,
			Score:    score,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})
	ranked[0].Recommended = true

	return ranked
}

// minMax normalizes v into [0, 1] within the candidate set; 0 when all values
// are equal.
func minMax(v, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (v - min) / (max - min)
}
