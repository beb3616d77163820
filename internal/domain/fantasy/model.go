package fantasy

import "time"

// Season is one month-long fantasy competition window tied to a
// real-world season. Scoring only applies while IsActive is set.
type Season struct {
	ID       int64
	SeasonID int64
	Name     string
	IsActive bool
	LockDate time.Time
}

// Team is one user's entry in a fantasy season. TotalPoints is a
// derived value recomputed wholesale from its selections.
type Team struct {
	ID              int64
	FantasySeasonID int64
	UserID          string
	Name            string
	TotalPoints     int
	CreatedAt       time.Time
}

// PlayerSelection is one chosen player on a fantasy team.
// PointsEarned is derived from the selection's match performance rows.
type PlayerSelection struct {
	ID            int64
	FantasyTeamID int64
	PlayerID      int64
	Position      string
	PointsEarned  int
}
