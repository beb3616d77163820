package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goalcrush/fantasy-scoring/internal/domain/fantasy"
	"github.com/goalcrush/fantasy-scoring/internal/domain/match"
	"github.com/goalcrush/fantasy-scoring/internal/domain/scoring"
	"github.com/goalcrush/fantasy-scoring/internal/platform/resilience"
)

// starterMinutesThreshold stands in for lineup data: who actually
// started a match is not tracked upstream, so a player on the pitch
// for at least an hour is treated as a starter. Changing the
// threshold would change historical scores.
const starterMinutesThreshold = 60

// MatchScoredEvent is the payload handed to the outbound publisher
// after a match has been scored and totals recomputed.
type MatchScoredEvent struct {
	MatchID               int64   `json:"match_id"`
	SeasonID              int64   `json:"season_id"`
	PerformancesProcessed int     `json:"performances_processed"`
	FantasySeasonIDs      []int64 `json:"fantasy_season_ids"`
	RulesVersion          string  `json:"rules_version"`
	ScoredAt              string  `json:"scored_at"`
}

// MatchScoredPublisher notifies downstream consumers that a match has
// been (re)scored. Implementations must be safe for concurrent use.
type MatchScoredPublisher interface {
	PublishMatchScored(ctx context.Context, event MatchScoredEvent) error
}

type MatchScoreResult struct {
	MatchID               int64 `json:"match_id"`
	PlayersEvaluated      int   `json:"players_evaluated"`
	PerformancesProcessed int   `json:"performances_processed"`
	FantasySeasonsTouched int   `json:"fantasy_seasons_touched"`
}

type MatchScoringService struct {
	matchRepo   match.Repository
	fantasyRepo fantasy.Repository
	scoringRepo scoring.Repository
	totals      *TeamTotalService
	publisher   MatchScoredPublisher
	rules       scoring.RuleSet
	now         func() time.Time
	scoreFlight resilience.SingleFlight
}

func NewMatchScoringService(
	matchRepo match.Repository,
	fantasyRepo fantasy.Repository,
	scoringRepo scoring.Repository,
	totals *TeamTotalService,
	publisher MatchScoredPublisher,
	rules scoring.RuleSet,
) *MatchScoringService {
	return &MatchScoringService{
		matchRepo:   matchRepo,
		fantasyRepo: fantasyRepo,
		scoringRepo: scoringRepo,
		totals:      totals,
		publisher:   publisher,
		rules:       rules,
		now:         time.Now,
	}
}

// Rules returns the ruleset this service scores with.
func (s *MatchScoringService) Rules() scoring.RuleSet {
	return s.rules
}

// ScoreMatch computes and persists fantasy points for every selection
// affected by one completed match. Re-running with unchanged inputs is
// a no-op beyond overwriting rows with identical values; concurrent
// calls for the same match share one execution.
func (s *MatchScoringService) ScoreMatch(ctx context.Context, matchID int64) (MatchScoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchScoringService.ScoreMatch")
	defer span.End()

	if matchID <= 0 {
		return MatchScoreResult{}, fmt.Errorf("%w: match id must be greater than zero", ErrInvalidInput)
	}

	key := "scoring:match:" + strconv.FormatInt(matchID, 10)
	value, err, _ := s.scoreFlight.Do(key, func() (any, error) {
		return s.scoreMatchOnce(ctx, matchID)
	})
	if err != nil {
		return MatchScoreResult{}, err
	}

	result, ok := value.(MatchScoreResult)
	if !ok {
		return MatchScoreResult{}, fmt.Errorf("unexpected scoring result type %T", value)
	}
	return result, nil
}

func (s *MatchScoringService) scoreMatchOnce(ctx context.Context, matchID int64) (MatchScoreResult, error) {
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MatchScoreResult{}, fmt.Errorf("get match id=%d: %w", matchID, err)
	}
	if !exists {
		return MatchScoreResult{}, fmt.Errorf("%w: match id=%d", ErrNotFound, matchID)
	}
	if m.HomeTeamID == nil || m.AwayTeamID == nil {
		return MatchScoreResult{}, fmt.Errorf("%w: match id=%d has a missing team reference", ErrNotFound, matchID)
	}
	if !m.HasFullResult() {
		return MatchScoreResult{}, fmt.Errorf("%w: match id=%d result is incomplete", ErrInvalidInput, matchID)
	}

	homeData, awayData, ok := m.TeamData()
	if !ok {
		return MatchScoreResult{}, fmt.Errorf("%w: match id=%d result is incomplete", ErrInvalidInput, matchID)
	}

	performances, err := s.matchRepo.ListPerformancesByMatch(ctx, matchID)
	if err != nil {
		return MatchScoreResult{}, fmt.Errorf("list performances match=%d: %w", matchID, err)
	}

	seasons, err := s.fantasyRepo.ListActiveSeasonsBySeason(ctx, m.SeasonID)
	if err != nil {
		return MatchScoreResult{}, fmt.Errorf("list active fantasy seasons season=%d: %w", m.SeasonID, err)
	}

	result := MatchScoreResult{
		MatchID:               matchID,
		PlayersEvaluated:      len(performances),
		FantasySeasonsTouched: len(seasons),
	}
	if len(seasons) == 0 {
		return result, nil
	}

	breakdowns := make(map[int64]scoring.PointBreakdown, len(performances))
	for _, perf := range performances {
		teamData := match.TeamMatchData{}
		if perf.TeamID != nil {
			switch *perf.TeamID {
			case homeData.TeamID:
				teamData = homeData
			case awayData.TeamID:
				teamData = awayData
			}
		}

		input := scoring.PerformanceInput{
			Goals:         perf.Goals,
			Assists:       perf.Assists,
			YellowCards:   perf.YellowCards,
			RedCards:      perf.RedCards,
			MinutesPlayed: perf.MinutesPlayed,
			Saves:         perf.Saves,
			Position:      perf.Position,
		}
		teamCtx := scoring.TeamContext{
			GoalsConceded: teamData.GoalsConceded,
			IsCleanSheet:  teamData.IsCleanSheet,
		}
		isStarter := perf.MinutesPlayed >= starterMinutesThreshold
		breakdowns[perf.PlayerID] = scoring.CalculatePoints(input, teamCtx, isStarter, s.rules)
	}

	calculatedAt := s.now().UTC()
	records := make([]scoring.MatchPerformance, 0, len(breakdowns))
	for _, season := range seasons {
		selections, err := s.fantasyRepo.ListSelectionsBySeason(ctx, season.ID)
		if err != nil {
			return MatchScoreResult{}, fmt.Errorf("list selections fantasy_season=%d: %w", season.ID, err)
		}
		for _, selection := range selections {
			breakdown, played := breakdowns[selection.PlayerID]
			if !played {
				continue
			}
			records = append(records, scoring.MatchPerformance{
				SelectionID:  selection.ID,
				MatchID:      matchID,
				PlayerID:     selection.PlayerID,
				Breakdown:    breakdown,
				RulesVersion: s.rules.Version,
				CalculatedAt: calculatedAt,
			})
		}
	}

	if len(records) > 0 {
		if err := s.scoringRepo.UpsertMatchPerformances(ctx, records); err != nil {
			return MatchScoreResult{}, fmt.Errorf("upsert match performances match=%d: %w", matchID, err)
		}
	}
	result.PerformancesProcessed = len(records)

	seasonIDs := make([]int64, 0, len(seasons))
	for _, season := range seasons {
		seasonIDs = append(seasonIDs, season.ID)
	}
	if err := s.totals.RecomputeTeamTotals(ctx, seasonIDs); err != nil {
		return MatchScoreResult{}, fmt.Errorf("recompute team totals match=%d: %w", matchID, err)
	}

	s.publishMatchScored(ctx, m, result, seasonIDs, calculatedAt)

	return result, nil
}

// publishMatchScored is best effort. The publisher reports its own
// failures; scoring never fails because a webhook did.
func (s *MatchScoringService) publishMatchScored(
	ctx context.Context,
	m match.Match,
	result MatchScoreResult,
	seasonIDs []int64,
	calculatedAt time.Time,
) {
	if s.publisher == nil {
		return
	}

	_ = s.publisher.PublishMatchScored(ctx, MatchScoredEvent{
		MatchID:               m.ID,
		SeasonID:              m.SeasonID,
		PerformancesProcessed: result.PerformancesProcessed,
		FantasySeasonIDs:      seasonIDs,
		RulesVersion:          s.rules.Version,
		ScoredAt:              calculatedAt.Format(time.RFC3339),
	})
}

// ListMatchPerformances returns the persisted breakdown rows for one
// match.
func (s *MatchScoringService) ListMatchPerformances(ctx context.Context, matchID int64) ([]scoring.MatchPerformance, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchScoringService.ListMatchPerformances")
	defer span.End()

	if matchID <= 0 {
		return nil, fmt.Errorf("%w: match id must be greater than zero", ErrInvalidInput)
	}

	_, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match id=%d: %w", matchID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: match id=%d", ErrNotFound, matchID)
	}

	rows, err := s.scoringRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match performances match=%d: %w", matchID, err)
	}
	return rows, nil
}
