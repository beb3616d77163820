package scoring

import "context"

type Repository interface {
	// UpsertMatchPerformances writes every record for one match in a
	// single transaction, keyed on (selection_id, match_id).
	UpsertMatchPerformances(ctx context.Context, records []MatchPerformance) error

	ListByMatch(ctx context.Context, matchID int64) ([]MatchPerformance, error)

	// SumTotalsBySelections returns the summed total points per
	// selection across all of its performance rows. Selections with no
	// rows are absent from the map.
	SumTotalsBySelections(ctx context.Context, selectionIDs []int64) (map[int64]int, error)
}
