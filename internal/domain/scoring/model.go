package scoring

import "time"

// MatchPerformance is the persisted scoring record for one fantasy
// selection in one match. Exactly one row exists per
// (SelectionID, MatchID); rescoring overwrites it in place.
type MatchPerformance struct {
	ID           int64
	SelectionID  int64
	MatchID      int64
	PlayerID     int64
	Breakdown    PointBreakdown
	RulesVersion string
	CalculatedAt time.Time
}
