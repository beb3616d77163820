package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/goalcrush/fantasy-scoring/internal/domain/fantasy"
)

type FantasyRepository struct {
	mu         sync.RWMutex
	seasons    map[int64]fantasy.Season
	teams      map[int64]fantasy.Team
	selections map[int64]fantasy.PlayerSelection
}

func NewFantasyRepository(seasons []fantasy.Season, teams []fantasy.Team, selections []fantasy.PlayerSelection) *FantasyRepository {
	seasonsByID := make(map[int64]fantasy.Season, len(seasons))
	for _, item := range seasons {
		seasonsByID[item.ID] = item
	}
	teamsByID := make(map[int64]fantasy.Team, len(teams))
	for _, item := range teams {
		teamsByID[item.ID] = item
	}
	selectionsByID := make(map[int64]fantasy.PlayerSelection, len(selections))
	for _, item := range selections {
		selectionsByID[item.ID] = item
	}

	return &FantasyRepository{
		seasons:    seasonsByID,
		teams:      teamsByID,
		selections: selectionsByID,
	}
}

func (r *FantasyRepository) ListActiveSeasonsBySeason(_ context.Context, seasonID int64) ([]fantasy.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Season, 0)
	for _, item := range r.seasons {
		if item.SeasonID != seasonID || !item.IsActive {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *FantasyRepository) ListTeamsBySeason(_ context.Context, fantasySeasonID int64) ([]fantasy.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Team, 0)
	for _, item := range r.teams {
		if item.FantasySeasonID != fantasySeasonID {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *FantasyRepository) ListSelectionsBySeason(_ context.Context, fantasySeasonID int64) ([]fantasy.PlayerSelection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teamIDs := make(map[int64]struct{})
	for _, team := range r.teams {
		if team.FantasySeasonID == fantasySeasonID {
			teamIDs[team.ID] = struct{}{}
		}
	}

	out := make([]fantasy.PlayerSelection, 0)
	for _, item := range r.selections {
		if _, ok := teamIDs[item.FantasyTeamID]; !ok {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *FantasyRepository) UpdateSelectionPoints(_ context.Context, selectionID int64, pointsEarned int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.selections[selectionID]
	if !ok {
		return nil
	}
	item.PointsEarned = pointsEarned
	r.selections[selectionID] = item
	return nil
}

func (r *FantasyRepository) UpdateTeamTotalPoints(_ context.Context, teamID int64, totalPoints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.teams[teamID]
	if !ok {
		return nil
	}
	item.TotalPoints = totalPoints
	r.teams[teamID] = item
	return nil
}

// AddSeason registers another fantasy season after construction.
func (r *FantasyRepository) AddSeason(season fantasy.Season) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seasons[season.ID] = season
}

// Team returns one team by id for assertions.
func (r *FantasyRepository) Team(teamID int64) (fantasy.Team, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok
}

// Selection returns one selection by id for assertions.
func (r *FantasyRepository) Selection(selectionID int64) (fantasy.PlayerSelection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.selections[selectionID]
	return item, ok
}
