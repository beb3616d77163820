package fantasy

import "context"

type Repository interface {
	// ListActiveSeasonsBySeason returns the active fantasy seasons
	// linked to one real-world season.
	ListActiveSeasonsBySeason(ctx context.Context, seasonID int64) ([]Season, error)

	ListTeamsBySeason(ctx context.Context, fantasySeasonID int64) ([]Team, error)
	ListSelectionsBySeason(ctx context.Context, fantasySeasonID int64) ([]PlayerSelection, error)

	UpdateSelectionPoints(ctx context.Context, selectionID int64, pointsEarned int) error
	UpdateTeamTotalPoints(ctx context.Context, teamID int64, totalPoints int) error
}
