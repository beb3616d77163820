package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/goalcrush/fantasy-scoring/internal/domain/match"
	qb "github.com/goalcrush/fantasy-scoring/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").
		From("matches").
		Where(
			qb.Eq("id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchToDomain(row), true, nil
}

func (r *MatchRepository) ListPerformancesByMatch(ctx context.Context, matchID int64) ([]match.PlayerPerformance, error) {
	query, args, err := qb.Select(
		"id",
		"match_id",
		"player_id",
		"team_id",
		"position",
		"COALESCE(goals, 0) AS goals",
		"COALESCE(assists, 0) AS assists",
		"COALESCE(yellow_cards, 0) AS yellow_cards",
		"COALESCE(red_cards, 0) AS red_cards",
		"COALESCE(minutes_played, 0) AS minutes_played",
		"COALESCE(saves, 0) AS saves",
	).
		From("player_match_performances").
		Where(
			qb.Eq("match_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player performances query: %w", err)
	}

	var rows []playerPerformanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player performances: %w", err)
	}

	out := make([]match.PlayerPerformance, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.PlayerPerformance{
			ID:            row.ID,
			MatchID:       row.MatchID,
			PlayerID:      row.PlayerID,
			TeamID:        row.TeamID,
			Position:      row.Position,
			Goals:         row.Goals,
			Assists:       row.Assists,
			YellowCards:   row.YellowCards,
			RedCards:      row.RedCards,
			MinutesPlayed: row.MinutesPlayed,
			Saves:         row.Saves,
		})
	}
	return out, nil
}

func (r *MatchRepository) ListCompletedBySeason(ctx context.Context, seasonID int64) ([]match.Match, error) {
	query, args, err := qb.Select("*").
		From("matches").
		Where(
			qb.Eq("season_id", seasonID),
			qb.In("UPPER(status)", completedStatusValues()),
			qb.IsNull("deleted_at"),
		).
		OrderBy("played_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list completed matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list completed matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchToDomain(row))
	}
	return out, nil
}

// completedStatusValues builds the SQL filter values from the domain
// status list so the query and match.IsCompletedStatus accept the same
// set. Column is compared through UPPER to mirror NormalizeStatus.
func completedStatusValues() []any {
	statuses := match.CompletedStatuses()
	out := make([]any, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, status)
	}
	return out
}

func matchToDomain(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.ID,
		SeasonID:   row.SeasonID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
		Status:     match.NormalizeStatus(row.Status),
		PlayedAt:   row.PlayedAt,
	}
}
