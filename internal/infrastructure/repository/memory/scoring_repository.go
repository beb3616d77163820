package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/goalcrush/fantasy-scoring/internal/domain/scoring"
)

type scoringKey struct {
	selectionID int64
	matchID     int64
}

type ScoringRepository struct {
	mu     sync.RWMutex
	rows   map[scoringKey]scoring.MatchPerformance
	nextID int64
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{
		rows:   make(map[scoringKey]scoring.MatchPerformance),
		nextID: 1,
	}
}

func (r *ScoringRepository) UpsertMatchPerformances(_ context.Context, records []scoring.MatchPerformance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range records {
		key := scoringKey{selectionID: record.SelectionID, matchID: record.MatchID}
		if existing, ok := r.rows[key]; ok {
			record.ID = existing.ID
		} else {
			record.ID = r.nextID
			r.nextID++
		}
		r.rows[key] = record
	}
	return nil
}

func (r *ScoringRepository) ListByMatch(_ context.Context, matchID int64) ([]scoring.MatchPerformance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.MatchPerformance, 0)
	for _, row := range r.rows {
		if row.MatchID != matchID {
			continue
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SelectionID < out[j].SelectionID
	})
	return out, nil
}

func (r *ScoringRepository) SumTotalsBySelections(_ context.Context, selectionIDs []int64) (map[int64]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(selectionIDs))
	for _, id := range selectionIDs {
		wanted[id] = struct{}{}
	}

	out := make(map[int64]int)
	for _, row := range r.rows {
		if _, ok := wanted[row.SelectionID]; !ok {
			continue
		}
		out[row.SelectionID] += row.Breakdown.TotalPoints
	}
	return out, nil
}

// RowCount reports the number of stored rows for assertions.
func (r *ScoringRepository) RowCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rows)
}

// Row returns one stored row by key for assertions.
func (r *ScoringRepository) Row(selectionID, matchID int64) (scoring.MatchPerformance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[scoringKey{selectionID: selectionID, matchID: matchID}]
	return row, ok
}
