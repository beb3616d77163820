package usecase

import (
	"context"
	"fmt"

	"github.com/goalcrush/fantasy-scoring/internal/domain/fantasy"
	"github.com/goalcrush/fantasy-scoring/internal/domain/scoring"
)

// TeamTotalService recomputes the derived point totals. It is the
// only writer of fantasy_player_selections.points_earned and
// fantasy_teams.total_points; any other writer would cause drift.
type TeamTotalService struct {
	fantasyRepo fantasy.Repository
	scoringRepo scoring.Repository
}

func NewTeamTotalService(fantasyRepo fantasy.Repository, scoringRepo scoring.Repository) *TeamTotalService {
	return &TeamTotalService{
		fantasyRepo: fantasyRepo,
		scoringRepo: scoringRepo,
	}
}

// RecomputeTeamTotals rebuilds every selection's points_earned and
// every team's total_points for the given fantasy seasons from the
// committed performance rows. Wholesale recomputation, never an
// increment, so it is safe to re-run at any time.
func (s *TeamTotalService) RecomputeTeamTotals(ctx context.Context, fantasySeasonIDs []int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamTotalService.RecomputeTeamTotals")
	defer span.End()

	for _, fantasySeasonID := range fantasySeasonIDs {
		if fantasySeasonID <= 0 {
			return fmt.Errorf("%w: fantasy season id must be greater than zero", ErrInvalidInput)
		}
		if err := s.recomputeSeason(ctx, fantasySeasonID); err != nil {
			return err
		}
	}
	return nil
}

func (s *TeamTotalService) recomputeSeason(ctx context.Context, fantasySeasonID int64) error {
	teams, err := s.fantasyRepo.ListTeamsBySeason(ctx, fantasySeasonID)
	if err != nil {
		return fmt.Errorf("list fantasy teams fantasy_season=%d: %w", fantasySeasonID, err)
	}
	selections, err := s.fantasyRepo.ListSelectionsBySeason(ctx, fantasySeasonID)
	if err != nil {
		return fmt.Errorf("list selections fantasy_season=%d: %w", fantasySeasonID, err)
	}

	selectionIDs := make([]int64, 0, len(selections))
	for _, selection := range selections {
		selectionIDs = append(selectionIDs, selection.ID)
	}

	sums := map[int64]int{}
	if len(selectionIDs) > 0 {
		sums, err = s.scoringRepo.SumTotalsBySelections(ctx, selectionIDs)
		if err != nil {
			return fmt.Errorf("sum selection totals fantasy_season=%d: %w", fantasySeasonID, err)
		}
	}

	totalByTeam := make(map[int64]int, len(teams))
	for _, selection := range selections {
		points := sums[selection.ID]
		if err := s.fantasyRepo.UpdateSelectionPoints(ctx, selection.ID, points); err != nil {
			return fmt.Errorf("update selection points selection=%d: %w", selection.ID, err)
		}
		totalByTeam[selection.FantasyTeamID] += points
	}

	for _, team := range teams {
		if err := s.fantasyRepo.UpdateTeamTotalPoints(ctx, team.ID, totalByTeam[team.ID]); err != nil {
			return fmt.Errorf("update team total points team=%d: %w", team.ID, err)
		}
	}

	return nil
}
