package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/goalcrush/fantasy-scoring/internal/domain/fantasy"
	qb "github.com/goalcrush/fantasy-scoring/internal/platform/querybuilder"
)

type FantasyRepository struct {
	db *sqlx.DB
}

func NewFantasyRepository(db *sqlx.DB) *FantasyRepository {
	return &FantasyRepository{db: db}
}

func (r *FantasyRepository) ListActiveSeasonsBySeason(ctx context.Context, seasonID int64) ([]fantasy.Season, error) {
	query, args, err := qb.Select("*").
		From("fantasy_seasons").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active fantasy seasons query: %w", err)
	}

	var rows []fantasySeasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active fantasy seasons: %w", err)
	}

	out := make([]fantasy.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, fantasy.Season{
			ID:       row.ID,
			SeasonID: row.SeasonID,
			Name:     row.Name,
			IsActive: row.IsActive,
			LockDate: row.LockDate,
		})
	}
	return out, nil
}

func (r *FantasyRepository) ListTeamsBySeason(ctx context.Context, fantasySeasonID int64) ([]fantasy.Team, error) {
	query, args, err := qb.Select("*").
		From("fantasy_teams").
		Where(
			qb.Eq("fantasy_season_id", fantasySeasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fantasy teams query: %w", err)
	}

	var rows []fantasyTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fantasy teams: %w", err)
	}

	out := make([]fantasy.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, fantasy.Team{
			ID:              row.ID,
			FantasySeasonID: row.FantasySeasonID,
			UserID:          row.UserID,
			Name:            row.Name,
			TotalPoints:     row.TotalPoints,
			CreatedAt:       row.CreatedAt,
		})
	}
	return out, nil
}

func (r *FantasyRepository) ListSelectionsBySeason(ctx context.Context, fantasySeasonID int64) ([]fantasy.PlayerSelection, error) {
	query, args, err := qb.Select("*").
		From("fantasy_player_selections").
		Where(
			qb.Expr("fantasy_team_id IN (SELECT id FROM fantasy_teams WHERE fantasy_season_id = ? AND deleted_at IS NULL)", fantasySeasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list selections query: %w", err)
	}

	var rows []playerSelectionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}

	out := make([]fantasy.PlayerSelection, 0, len(rows))
	for _, row := range rows {
		out = append(out, fantasy.PlayerSelection{
			ID:            row.ID,
			FantasyTeamID: row.FantasyTeamID,
			PlayerID:      row.PlayerID,
			Position:      row.Position,
			PointsEarned:  row.PointsEarned,
		})
	}
	return out, nil
}

func (r *FantasyRepository) UpdateSelectionPoints(ctx context.Context, selectionID int64, pointsEarned int) error {
	query, args, err := qb.Update("fantasy_player_selections").
		Set("points_earned", pointsEarned).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", selectionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update selection points query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update selection points: %w", err)
	}
	return nil
}

func (r *FantasyRepository) UpdateTeamTotalPoints(ctx context.Context, teamID int64, totalPoints int) error {
	query, args, err := qb.Update("fantasy_teams").
		Set("total_points", totalPoints).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team total points query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team total points: %w", err)
	}
	return nil
}
