package stats

import (
	"context"

	"github.com/verte-zerg/keyquest/internal/model"
	"github.com/verte-zerg/keyquest/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Results     []model.ResultAggregate
	Letters     []model.LetterAggregate
	WeakLetters []string
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig, weakTop int) (Report, error) {
	results, err := st.ListResults(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(results) > cfg.Last {
		results = results[len(results)-cfg.Last:]
	}
	ids := make([]int64, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	letters, err := st.ListLetterAggregates(ctx, ids)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Results:     results,
		Letters:     letters,
		WeakLetters: SelectWeakLetters(letters, weakTop),
	}, nil
}
