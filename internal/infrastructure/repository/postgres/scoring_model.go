package postgres

import "time"

type matchPerformanceTableModel struct {
	ID               int64      `db:"id"`
	SelectionID      int64      `db:"selection_id"`
	MatchID          int64      `db:"match_id"`
	PlayerID         int64      `db:"player_id"`
	AppearancePoints int        `db:"appearance_points"`
	GoalPoints       int        `db:"goal_points"`
	AssistPoints     int        `db:"assist_points"`
	CleanSheetPoints int        `db:"clean_sheet_points"`
	SavePoints       int        `db:"save_points"`
	DefensivePoints  int        `db:"defensive_points"`
	PenaltyPoints    int        `db:"penalty_points"`
	CardPoints       int        `db:"card_points"`
	BonusPoints      int        `db:"bonus_points"`
	TotalPoints      int        `db:"total_points"`
	RulesVersion     string     `db:"rules_version"`
	CalculatedAt     time.Time  `db:"calculated_at"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}

type matchPerformanceInsertModel struct {
	SelectionID      int64     `db:"selection_id"`
	MatchID          int64     `db:"match_id"`
	PlayerID         int64     `db:"player_id"`
	AppearancePoints int       `db:"appearance_points"`
	GoalPoints       int       `db:"goal_points"`
	AssistPoints     int       `db:"assist_points"`
	CleanSheetPoints int       `db:"clean_sheet_points"`
	SavePoints       int       `db:"save_points"`
	DefensivePoints  int       `db:"defensive_points"`
	PenaltyPoints    int       `db:"penalty_points"`
	CardPoints       int       `db:"card_points"`
	BonusPoints      int       `db:"bonus_points"`
	TotalPoints      int       `db:"total_points"`
	RulesVersion     string    `db:"rules_version"`
	CalculatedAt     time.Time `db:"calculated_at"`
}

type selectionTotalRow struct {
	SelectionID int64 `db:"selection_id"`
	Total       int   `db:"total"`
}
