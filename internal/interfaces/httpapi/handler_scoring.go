package httpapi

import (
	"fmt"
	"net/http"

	"github.com/goalcrush/fantasy-scoring/internal/usecase"
)

// ScoreMatch computes and persists fantasy points for one completed
// match. Repeated calls converge on the same stored rows.
func (h *Handler) ScoreMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreMatch")
	defer span.End()

	if h.scoringService == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	matchID, err := pathValueInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.ScoreMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "score match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListMatchPerformances(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPerformances")
	defer span.End()

	if h.scoringService == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	matchID, err := pathValueInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	records, err := h.scoringService.ListMatchPerformances(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match performances failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchPerformanceDTO, 0, len(records))
	for _, record := range records {
		items = append(items, matchPerformanceToDTO(record))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// RecalculateSeason re-scores every completed match of one season.
func (h *Handler) RecalculateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateSeason")
	defer span.End()

	if h.recalcService == nil {
		writeError(ctx, w, fmt.Errorf("%w: recalculation service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	seasonID, err := pathValueInt64(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recalcService.RecalculateSeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "recalculate season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type bulkRecalcRequest struct {
	SeasonIDs  []int64 `json:"season_ids" validate:"required,min=1,dive,gt=0"`
	MaxWorkers int     `json:"max_workers" validate:"omitempty,gte=1,lte=32"`
}

// RecalculateSeasons fans season recalculations out over a bounded
// worker pool.
func (h *Handler) RecalculateSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateSeasons")
	defer span.End()

	if h.recalcService == nil {
		writeError(ctx, w, fmt.Errorf("%w: recalculation service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req bulkRecalcRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recalcService.RecalculateSeasons(ctx, usecase.BulkRecalcInput{
		SeasonIDs:  req.SeasonIDs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "bulk recalculation failed", "season_ids", req.SeasonIDs, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
