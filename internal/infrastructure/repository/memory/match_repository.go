package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/goalcrush/fantasy-scoring/internal/domain/match"
)

type MatchRepository struct {
	mu           sync.RWMutex
	matchesByID  map[int64]match.Match
	performances map[int64][]match.PlayerPerformance
}

func NewMatchRepository(matches []match.Match, performances []match.PlayerPerformance) *MatchRepository {
	matchesByID := make(map[int64]match.Match, len(matches))
	for _, item := range matches {
		matchesByID[item.ID] = item
	}

	performancesByMatch := make(map[int64][]match.PlayerPerformance)
	for _, item := range performances {
		performancesByMatch[item.MatchID] = append(performancesByMatch[item.MatchID], item)
	}

	return &MatchRepository{
		matchesByID:  matchesByID,
		performances: performancesByMatch,
	}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matchesByID[matchID]
	return item, ok, nil
}

func (r *MatchRepository) ListPerformancesByMatch(_ context.Context, matchID int64) ([]match.PlayerPerformance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.performances[matchID]
	out := make([]match.PlayerPerformance, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *MatchRepository) ListCompletedBySeason(_ context.Context, seasonID int64) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.matchesByID {
		if item.SeasonID != seasonID || !match.IsCompletedStatus(item.Status) {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpdatePerformance overwrites one stat row, used to simulate an
// upstream correction.
func (r *MatchRepository) UpdatePerformance(updated match.PlayerPerformance) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.performances[updated.MatchID]
	for idx, item := range items {
		if item.ID == updated.ID {
			items[idx] = updated
			return
		}
	}
	r.performances[updated.MatchID] = append(items, updated)
}
