package retriever

import (
	"math"

	"github.com/w-h-a/rag/store"
)

// Select applies maximal marginal relevance over scored candidates,
// trading relevance against redundancy with the already selected set.
func Select(results []store.Result, limit int, relevance float64) []store.Result {
	if len(results) <= limit {
		return results
	}

	if relevance < 0 {
		relevance = 0
	} else if relevance > 1 {
		relevance = 1
	}

	selected := make([]store.Result, 0, limit)
	copied := append([]store.Result(nil), results...)

	for len(selected) < limit && len(copied) > 0 {
		bestIdx := -1
		best := math.Inf(-1)

		for i, cand := range copied {
			score := cand.Score
			maxSim := 0.0

			for _, sel := range selected {
				if sim := store.CosineSimilarity(cand.Embedding, sel.Embedding); sim > maxSim {
					maxSim = sim
				}
			}

			current := (relevance * score) - ((1 - relevance) * maxSim) // reward minus redundant

			// pure diversity wants the candidate least like the selected set
			if relevance == 0 && len(selected) > 0 {
				current = -maxSim
			}

			if current > best {
				best = current
				bestIdx = i
			}
		}

		if bestIdx != -1 {
			selected = append(selected, copied[bestIdx])
			copied = append(copied[:bestIdx], copied[bestIdx+1:]...)
		} else {
			break
		}
	}

	return selected
}
