package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

// Match is one real-world fixture. Scores stay nil until the result
// has been entered, so pointer fields distinguish 0-0 from "no result".
type Match struct {
	ID         int64
	SeasonID   int64
	HomeTeamID *int64
	AwayTeamID *int64
	HomeScore  *int
	AwayScore  *int
	Status     string
	PlayedAt   *time.Time
}

// PlayerPerformance is one player's raw stat line for one match,
// produced by the match-entry flows upstream of this service.
type PlayerPerformance struct {
	ID            int64
	MatchID       int64
	PlayerID      int64
	TeamID        *int64
	Position      *string
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	MinutesPlayed int
	Saves         int
}

// TeamMatchData is derived per (team, match) from the two final
// scores and never persisted.
type TeamMatchData struct {
	TeamID        int64
	GoalsConceded int
	IsCleanSheet  bool
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// CompletedStatuses lists every stored status value that marks a match
// as finished. Rows written before the vocabulary settled on COMPLETED
// carry FINISHED or FT. Persistence-layer filters must accept the same
// set, so they build their queries from this list.
func CompletedStatuses() []string {
	return []string{StatusCompleted, "FINISHED", "FT"}
}

func IsCompletedStatus(status string) bool {
	normalized := NormalizeStatus(status)
	for _, completed := range CompletedStatuses() {
		if normalized == completed {
			return true
		}
	}
	return false
}

// HasFullResult reports whether both final scores are present. A match
// missing either score cannot be scored.
func (m Match) HasFullResult() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// TeamData derives the per-team result rows for a completed match.
// Each team concedes the opponent's final score; a clean sheet means
// conceding zero.
func (m Match) TeamData() (home, away TeamMatchData, ok bool) {
	if m.HomeTeamID == nil || m.AwayTeamID == nil || !m.HasFullResult() {
		return TeamMatchData{}, TeamMatchData{}, false
	}

	home = TeamMatchData{
		TeamID:        *m.HomeTeamID,
		GoalsConceded: *m.AwayScore,
		IsCleanSheet:  *m.AwayScore == 0,
	}
	away = TeamMatchData{
		TeamID:        *m.AwayTeamID,
		GoalsConceded: *m.HomeScore,
		IsCleanSheet:  *m.HomeScore == 0,
	}
	return home, away, true
}
