package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/goalcrush/fantasy-scoring/internal/domain/scoring"
	"github.com/goalcrush/fantasy-scoring/internal/platform/logging"
	"github.com/goalcrush/fantasy-scoring/internal/usecase"
)

type Handler struct {
	scoringService *usecase.MatchScoringService
	recalcService  *usecase.SeasonRecalcService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	scoringService *usecase.MatchScoringService,
	recalcService *usecase.SeasonRecalcService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scoringService: scoringService,
		recalcService:  recalcService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetRules exposes the active point table so clients can render how
// scores were produced.
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRules")
	defer span.End()

	if h.scoringService == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ruleSetToDTO(h.scoringService.Rules()))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathValueInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func decodeJSONBody(r *http.Request, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type ruleSetDTO struct {
	Version       string `json:"version"`
	EffectiveDate string `json:"effective_date"`
	Appearance    struct {
		Played       int `json:"played"`
		StarterBonus int `json:"starter_bonus"`
	} `json:"appearance"`
	Attack struct {
		Goal                          int `json:"goal"`
		Assist                        int `json:"assist"`
		MultipleGoalContributionBonus int `json:"multiple_goal_contribution_bonus"`
	} `json:"attack"`
	Defense struct {
		CleanSheet             int `json:"clean_sheet"`
		GoalkeeperSavePerTwo   int `json:"goalkeeper_save_per_two"`
		ImportantBlockOrTackle int `json:"important_block_or_tackle"`
	} `json:"defense"`
	Deductions struct {
		YellowCard    int `json:"yellow_card"`
		RedCard       int `json:"red_card"`
		OwnGoal       int `json:"own_goal"`
		MissedPenalty int `json:"missed_penalty"`
	} `json:"deductions"`
}

func ruleSetToDTO(rules scoring.RuleSet) ruleSetDTO {
	var dto ruleSetDTO
	dto.Version = rules.Version
	dto.EffectiveDate = rules.EffectiveDate.Format(time.RFC3339)
	dto.Appearance.Played = rules.Appearance.Played
	dto.Appearance.StarterBonus = rules.Appearance.StarterBonus
	dto.Attack.Goal = rules.Attack.Goal
	dto.Attack.Assist = rules.Attack.Assist
	dto.Attack.MultipleGoalContributionBonus = rules.Attack.MultipleGoalContributionBonus
	dto.Defense.CleanSheet = rules.Defense.CleanSheet
	dto.Defense.GoalkeeperSavePerTwo = rules.Defense.GoalkeeperSavePerTwo
	dto.Defense.ImportantBlockOrTackle = rules.Defense.ImportantBlockOrTackle
	dto.Deductions.YellowCard = rules.Deductions.YellowCard
	dto.Deductions.RedCard = rules.Deductions.RedCard
	dto.Deductions.OwnGoal = rules.Deductions.OwnGoal
	dto.Deductions.MissedPenalty = rules.Deductions.MissedPenalty
	return dto
}

type matchPerformanceDTO struct {
	ID               int64  `json:"id"`
	SelectionID      int64  `json:"selection_id"`
	MatchID          int64  `json:"match_id"`
	PlayerID         int64  `json:"player_id"`
	AppearancePoints int    `json:"appearance_points"`
	GoalPoints       int    `json:"goal_points"`
	AssistPoints     int    `json:"assist_points"`
	CleanSheetPoints int    `json:"clean_sheet_points"`
	SavePoints       int    `json:"save_points"`
	DefensivePoints  int    `json:"defensive_points"`
	PenaltyPoints    int    `json:"penalty_points"`
	CardPoints       int    `json:"card_points"`
	BonusPoints      int    `json:"bonus_points"`
	TotalPoints      int    `json:"total_points"`
	RulesVersion     string `json:"rules_version"`
	CalculatedAt     string `json:"calculated_at"`
}

func matchPerformanceToDTO(record scoring.MatchPerformance) matchPerformanceDTO {
	return matchPerformanceDTO{
		ID:               record.ID,
		SelectionID:      record.SelectionID,
		MatchID:          record.MatchID,
		PlayerID:         record.PlayerID,
		AppearancePoints: record.Breakdown.AppearancePoints,
		GoalPoints:       record.Breakdown.GoalPoints,
		AssistPoints:     record.Breakdown.AssistPoints,
		CleanSheetPoints: record.Breakdown.CleanSheetPoints,
		SavePoints:       record.Breakdown.SavePoints,
		DefensivePoints:  record.Breakdown.DefensivePoints,
		PenaltyPoints:    record.Breakdown.PenaltyPoints,
		CardPoints:       record.Breakdown.CardPoints,
		BonusPoints:      record.Breakdown.BonusPoints,
		TotalPoints:      record.Breakdown.TotalPoints,
		RulesVersion:     record.RulesVersion,
		CalculatedAt:     record.CalculatedAt.Format(time.RFC3339),
	}
}
