package match

import "context"

type Repository interface {
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	ListPerformancesByMatch(ctx context.Context, matchID int64) ([]PlayerPerformance, error)
	ListCompletedBySeason(ctx context.Context, seasonID int64) ([]Match, error)
}
