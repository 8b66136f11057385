package stats

import (
	"sort"

	"github.com/verte-zerg/keyquest/internal/model"
)

// SelectWeakLetters returns up to top letters with the lowest accuracy.
// A top of zero or less returns every letter.
func SelectWeakLetters(aggs []model.LetterAggregate, top int) []string {
	if len(aggs) == 0 {
		return nil
	}
	candidates := make([]model.LetterAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Incorrect > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := letterAccuracy(candidates[i])
		aj := letterAccuracy(candidates[j])
		if ai == aj {
			return candidates[i].Letter < candidates[j].Letter
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	out := make([]string, 0, top)
	for i := 0; i < top; i++ {
		out = append(out, candidates[i].Letter)
	}
	return out
}

func letterAccuracy(agg model.LetterAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}
