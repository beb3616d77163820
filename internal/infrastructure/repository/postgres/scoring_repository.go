package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/goalcrush/fantasy-scoring/internal/domain/scoring"
	qb "github.com/goalcrush/fantasy-scoring/internal/platform/querybuilder"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

// UpsertMatchPerformances writes all records inside one transaction so
// a crash never leaves a match half scored.
func (r *ScoringRepository) UpsertMatchPerformances(ctx context.Context, records []scoring.MatchPerformance) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert match performances: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, record := range records {
		insertModel := matchPerformanceInsertModel{
			SelectionID:      record.SelectionID,
			MatchID:          record.MatchID,
			PlayerID:         record.PlayerID,
			AppearancePoints: record.Breakdown.AppearancePoints,
			GoalPoints:       record.Breakdown.GoalPoints,
			AssistPoints:     record.Breakdown.AssistPoints,
			CleanSheetPoints: record.Breakdown.CleanSheetPoints,
			SavePoints:       record.Breakdown.SavePoints,
			DefensivePoints:  record.Breakdown.DefensivePoints,
			PenaltyPoints:    record.Breakdown.PenaltyPoints,
			CardPoints:       record.Breakdown.CardPoints,
			BonusPoints:      record.Breakdown.BonusPoints,
			TotalPoints:      record.Breakdown.TotalPoints,
			RulesVersion:     record.RulesVersion,
			CalculatedAt:     record.CalculatedAt,
		}
		query, args, err := qb.InsertModel("fantasy_match_performances", insertModel, `ON CONFLICT (selection_id, match_id) WHERE deleted_at IS NULL
DO UPDATE SET
    player_id = EXCLUDED.player_id,
    appearance_points = EXCLUDED.appearance_points,
    goal_points = EXCLUDED.goal_points,
    assist_points = EXCLUDED.assist_points,
    clean_sheet_points = EXCLUDED.clean_sheet_points,
    save_points = EXCLUDED.save_points,
    defensive_points = EXCLUDED.defensive_points,
    penalty_points = EXCLUDED.penalty_points,
    card_points = EXCLUDED.card_points,
    bonus_points = EXCLUDED.bonus_points,
    total_points = EXCLUDED.total_points,
    rules_version = EXCLUDED.rules_version,
    calculated_at = EXCLUDED.calculated_at,
    updated_at = NOW(),
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert match performance query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert match performance selection=%d match=%d: %w", record.SelectionID, record.MatchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert match performances tx: %w", err)
	}
	return nil
}

func (r *ScoringRepository) ListByMatch(ctx context.Context, matchID int64) ([]scoring.MatchPerformance, error) {
	query, args, err := qb.Select("*").
		From("fantasy_match_performances").
		Where(
			qb.Eq("match_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("selection_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match performances query: %w", err)
	}

	var rows []matchPerformanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match performances: %w", err)
	}

	out := make([]scoring.MatchPerformance, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchPerformanceToDomain(row))
	}
	return out, nil
}

func (r *ScoringRepository) SumTotalsBySelections(ctx context.Context, selectionIDs []int64) (map[int64]int, error) {
	if len(selectionIDs) == 0 {
		return map[int64]int{}, nil
	}

	values := make([]any, 0, len(selectionIDs))
	for _, id := range selectionIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("selection_id", "SUM(total_points) AS total").
		From("fantasy_match_performances").
		Where(
			qb.In("selection_id", values),
			qb.IsNull("deleted_at"),
		).
		GroupBy("selection_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build sum selection totals query: %w", err)
	}

	var rows []selectionTotalRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("sum selection totals: %w", err)
	}

	out := make(map[int64]int, len(rows))
	for _, row := range rows {
		out[row.SelectionID] = row.Total
	}
	return out, nil
}

func matchPerformanceToDomain(row matchPerformanceTableModel) scoring.MatchPerformance {
	return scoring.MatchPerformance{
		ID:          row.ID,
		SelectionID: row.SelectionID,
		MatchID:     row.MatchID,
		PlayerID:    row.PlayerID,
		Breakdown: scoring.PointBreakdown{
			AppearancePoints: row.AppearancePoints,
			GoalPoints:       row.GoalPoints,
			AssistPoints:     row.AssistPoints,
			CleanSheetPoints: row.CleanSheetPoints,
			SavePoints:       row.SavePoints,
			DefensivePoints:  row.DefensivePoints,
			PenaltyPoints:    row.PenaltyPoints,
			CardPoints:       row.CardPoints,
			BonusPoints:      row.BonusPoints,
			TotalPoints:      row.TotalPoints,
		},
		RulesVersion: row.RulesVersion,
		CalculatedAt: row.CalculatedAt,
	}
}
