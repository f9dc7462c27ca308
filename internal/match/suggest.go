package match

import "sort"

// DefaultMinSimilarity is the lowest Similarity a candidate needs to be suggested.
const DefaultMinSimilarity = 0.6

// Suggest returns up to limit names from known that resemble name, best first.
// Ties keep the order of known so results are deterministic.
func Suggest(name string, known []string, limit int) []string {
	type scored struct {
		name  string
		score float64
		pos   int
	}

	var candidates []scored

	for i, k := range known {
		if k == name {
			continue
		}

		s := Similarity(name, k)
		if s >= DefaultMinSimilarity {
			candidates = append(candidates, scored{name: k, score: s, pos: i})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}

		return candidates[i].pos < candidates[j].pos
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}

	return out
}
