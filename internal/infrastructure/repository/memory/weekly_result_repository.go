package memory

import (
	"context"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
)

type WeeklyResultRepository struct {
	store *Store
}

func (r *WeeklyResultRepository) List(_ context.Context) ([]weeklyresult.WeeklyResult, error) {
	r.store.mu.RLock()
	out := make([]weeklyresult.WeeklyResult, 0, len(r.store.results))
	for _, item := range r.store.results {
		out = append(out, item.Clone())
	}
	r.store.mu.RUnlock()

	weeklyresult.SortNewestFirst(out)
	return out, nil
}

func (r *WeeklyResultRepository) GetByID(_ context.Context, resultID string) (weeklyresult.WeeklyResult, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.results[resultID]
	if !ok {
		return weeklyresult.WeeklyResult{}, false, nil
	}
	return item.Clone(), true, nil
}
