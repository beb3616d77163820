// Package cache wraps repositories with a TTL read-through cache.
// Every decorator delegates to the next repository on miss and
// invalidates the affected keys on writes.
package cache

import (
	"context"
	"strconv"

	"github.com/goalcrush/fantasy-scoring/internal/domain/fantasy"
	basecache "github.com/goalcrush/fantasy-scoring/internal/platform/cache"
)

type cachedSeasonList struct {
	seasons []fantasy.Season
}

type cachedTeamList struct {
	teams []fantasy.Team
}

type cachedSelectionList struct {
	selections []fantasy.PlayerSelection
}

type FantasyRepository struct {
	next  fantasy.Repository
	cache *basecache.Store
}

func NewFantasyRepository(next fantasy.Repository, store *basecache.Store) *FantasyRepository {
	return &FantasyRepository{
		next:  next,
		cache: store,
	}
}

func activeSeasonsKey(seasonID int64) string {
	return "fantasy:active-seasons:season:" + strconv.FormatInt(seasonID, 10)
}

func teamsKey(fantasySeasonID int64) string {
	return "fantasy:teams:fantasy-season:" + strconv.FormatInt(fantasySeasonID, 10)
}

func selectionsKey(fantasySeasonID int64) string {
	return "fantasy:selections:fantasy-season:" + strconv.FormatInt(fantasySeasonID, 10)
}

func (r *FantasyRepository) ListActiveSeasonsBySeason(ctx context.Context, seasonID int64) ([]fantasy.Season, error) {
	value, err := r.cache.GetOrLoad(ctx, activeSeasonsKey(seasonID), func(ctx context.Context) (any, error) {
		seasons, err := r.next.ListActiveSeasonsBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return cachedSeasonList{seasons: seasons}, nil
	})
	if err != nil {
		return nil, err
	}

	cached, ok := value.(cachedSeasonList)
	if !ok {
		return r.next.ListActiveSeasonsBySeason(ctx, seasonID)
	}
	out := make([]fantasy.Season, len(cached.seasons))
	copy(out, cached.seasons)
	return out, nil
}

func (r *FantasyRepository) ListTeamsBySeason(ctx context.Context, fantasySeasonID int64) ([]fantasy.Team, error) {
	value, err := r.cache.GetOrLoad(ctx, teamsKey(fantasySeasonID), func(ctx context.Context) (any, error) {
		teams, err := r.next.ListTeamsBySeason(ctx, fantasySeasonID)
		if err != nil {
			return nil, err
		}
		return cachedTeamList{teams: teams}, nil
	})
	if err != nil {
		return nil, err
	}

	cached, ok := value.(cachedTeamList)
	if !ok {
		return r.next.ListTeamsBySeason(ctx, fantasySeasonID)
	}
	out := make([]fantasy.Team, len(cached.teams))
	copy(out, cached.teams)
	return out, nil
}

func (r *FantasyRepository) ListSelectionsBySeason(ctx context.Context, fantasySeasonID int64) ([]fantasy.PlayerSelection, error) {
	value, err := r.cache.GetOrLoad(ctx, selectionsKey(fantasySeasonID), func(ctx context.Context) (any, error) {
		selections, err := r.next.ListSelectionsBySeason(ctx, fantasySeasonID)
		if err != nil {
			return nil, err
		}
		return cachedSelectionList{selections: selections}, nil
	})
	if err != nil {
		return nil, err
	}

	cached, ok := value.(cachedSelectionList)
	if !ok {
		return r.next.ListSelectionsBySeason(ctx, fantasySeasonID)
	}
	out := make([]fantasy.PlayerSelection, len(cached.selections))
	copy(out, cached.selections)
	return out, nil
}

// UpdateSelectionPoints drops every cached selection list because the
// season owning the selection is unknown at this layer.
func (r *FantasyRepository) UpdateSelectionPoints(ctx context.Context, selectionID int64, pointsEarned int) error {
	if err := r.next.UpdateSelectionPoints(ctx, selectionID, pointsEarned); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "fantasy:selections:")
	return nil
}

func (r *FantasyRepository) UpdateTeamTotalPoints(ctx context.Context, teamID int64, totalPoints int) error {
	if err := r.next.UpdateTeamTotalPoints(ctx, teamID, totalPoints); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "fantasy:teams:")
	return nil
}
