package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/goalcrush/fantasy-scoring/internal/domain/match"
)

const (
	recalcStatusSuccess = "success"
	recalcStatusFailed  = "failed"
	recalcStatusSkipped = "skipped"
)

// maxRecalcWorkers bounds bulk fan-out so a backfill cannot saturate
// the shared store. Matches within one season always run sequentially.
const maxRecalcWorkers = 4

// MatchScorer is the slice of MatchScoringService the driver needs.
type MatchScorer interface {
	ScoreMatch(ctx context.Context, matchID int64) (MatchScoreResult, error)
}

type MatchRecalcResult struct {
	MatchID               int64  `json:"match_id"`
	Status                string `json:"status"`
	PerformancesProcessed int    `json:"performances_processed"`
	DurationMs            int64  `json:"duration_ms"`
	Message               string `json:"message,omitempty"`
}

type SeasonRecalcResult struct {
	SeasonID         int64               `json:"season_id"`
	MatchesProcessed int                 `json:"matches_processed"`
	FailedCount      int                 `json:"failed_count"`
	Matches          []MatchRecalcResult `json:"matches"`
}

type BulkRecalcInput struct {
	SeasonIDs  []int64
	MaxWorkers int
}

type SeasonRecalcTaskResult struct {
	SeasonID         int64  `json:"season_id"`
	Status           string `json:"status"`
	MatchesProcessed int    `json:"matches_processed"`
	FailedMatches    int    `json:"failed_matches"`
	DurationMs       int64  `json:"duration_ms"`
	Message          string `json:"message,omitempty"`
}

type BulkRecalcResult struct {
	SeasonCount  int                      `json:"season_count"`
	SuccessCount int                      `json:"success_count"`
	FailedCount  int                      `json:"failed_count"`
	SkippedCount int                      `json:"skipped_count"`
	WorkerCount  int                      `json:"worker_count"`
	Seasons      []SeasonRecalcTaskResult `json:"seasons"`
}

// SeasonRecalcService re-scores every completed match of a real-world
// season, used for backfill after stat corrections.
type SeasonRecalcService struct {
	matchRepo match.Repository
	scorer    MatchScorer
}

func NewSeasonRecalcService(matchRepo match.Repository, scorer MatchScorer) *SeasonRecalcService {
	return &SeasonRecalcService{
		matchRepo: matchRepo,
		scorer:    scorer,
	}
}

// RecalculateSeason scores each completed match of the season in turn.
// Matches fail in isolation: one poisoned match is recorded and the
// rest of the batch still runs. Cancellation is honored between
// matches, never mid-match.
func (s *SeasonRecalcService) RecalculateSeason(ctx context.Context, seasonID int64) (SeasonRecalcResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonRecalcService.RecalculateSeason")
	defer span.End()

	if seasonID <= 0 {
		return SeasonRecalcResult{}, fmt.Errorf("%w: season id must be greater than zero", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListCompletedBySeason(ctx, seasonID)
	if err != nil {
		return SeasonRecalcResult{}, fmt.Errorf("list completed matches season=%d: %w", seasonID, err)
	}

	result := SeasonRecalcResult{
		SeasonID: seasonID,
		Matches:  make([]MatchRecalcResult, 0, len(matches)),
	}

	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("season recalculation cancelled season=%d: %w", seasonID, err)
		}

		start := time.Now()
		row := MatchRecalcResult{MatchID: m.ID}

		scoreResult, err := s.scorer.ScoreMatch(ctx, m.ID)
		row.DurationMs = time.Since(start).Milliseconds()
		if err != nil {
			row.Status = recalcStatusFailed
			row.Message = err.Error()
			result.FailedCount++
		} else {
			row.Status = recalcStatusSuccess
			row.PerformancesProcessed = scoreResult.PerformancesProcessed
			result.MatchesProcessed++
		}

		result.Matches = append(result.Matches, row)
	}

	return result, nil
}

// RecalculateSeasons runs season recalculations concurrently across
// seasons with a bounded worker pool.
func (s *SeasonRecalcService) RecalculateSeasons(ctx context.Context, input BulkRecalcInput) (BulkRecalcResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonRecalcService.RecalculateSeasons")
	defer span.End()

	seasonIDs, err := normalizeRecalcSeasonIDs(input.SeasonIDs)
	if err != nil {
		return BulkRecalcResult{}, err
	}

	workerCount := normalizeRecalcWorkerCount(input.MaxWorkers, len(seasonIDs))
	result := BulkRecalcResult{
		SeasonCount: len(seasonIDs),
		WorkerCount: workerCount,
		Seasons:     make([]SeasonRecalcTaskResult, 0, len(seasonIDs)),
	}
	if len(seasonIDs) == 0 {
		return result, nil
	}

	rows := make(chan SeasonRecalcTaskResult, len(seasonIDs))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BulkRecalcResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, seasonID := range seasonIDs {
		seasonID := seasonID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := SeasonRecalcTaskResult{SeasonID: seasonID}

			seasonResult, err := s.RecalculateSeason(ctx, seasonID)
			row.DurationMs = time.Since(start).Milliseconds()
			switch {
			case err != nil:
				row.Status = recalcStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			case len(seasonResult.Matches) == 0:
				row.Status = recalcStatusSkipped
				row.Message = "no completed matches in season"
				skippedCount.Add(1)
			default:
				row.Status = recalcStatusSuccess
				row.MatchesProcessed = seasonResult.MatchesProcessed
				row.FailedMatches = seasonResult.FailedCount
				successCount.Add(1)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return BulkRecalcResult{}, fmt.Errorf("submit season to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Seasons = append(result.Seasons, row)
	}
	sort.SliceStable(result.Seasons, func(i, j int) bool {
		return result.Seasons[i].SeasonID < result.Seasons[j].SeasonID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	return result, nil
}

func normalizeRecalcSeasonIDs(input []int64) ([]int64, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("%w: season_ids is required", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(input))
	out := make([]int64, 0, len(input))
	for _, seasonID := range input {
		if seasonID <= 0 {
			return nil, fmt.Errorf("%w: season ids must be greater than zero", ErrInvalidInput)
		}
		if _, exists := seen[seasonID]; exists {
			continue
		}
		seen[seasonID] = struct{}{}
		out = append(out, seasonID)
	}
	return out, nil
}

func normalizeRecalcWorkerCount(value int, seasonCount int) int {
	if seasonCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > maxRecalcWorkers {
		value = maxRecalcWorkers
	}
	if value > seasonCount {
		value = seasonCount
	}
	return value
}
