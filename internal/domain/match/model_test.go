package match

import "testing"

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestTeamDataDerivesConcededFromOpponent(t *testing.T) {
	t.Parallel()

	m := Match{
		ID:         10,
		HomeTeamID: int64Ptr(1),
		AwayTeamID: int64Ptr(2),
		HomeScore:  intPtr(3),
		AwayScore:  intPtr(0),
	}

	home, away, ok := m.TeamData()
	if !ok {
		t.Fatalf("expected team data for a complete result")
	}
	if home.GoalsConceded != 0 || !home.IsCleanSheet {
		t.Fatalf("home team data: got conceded=%d cleanSheet=%v want conceded=0 cleanSheet=true", home.GoalsConceded, home.IsCleanSheet)
	}
	if away.GoalsConceded != 3 || away.IsCleanSheet {
		t.Fatalf("away team data: got conceded=%d cleanSheet=%v want conceded=3 cleanSheet=false", away.GoalsConceded, away.IsCleanSheet)
	}
}

func TestTeamDataMissingScoreOrTeam(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		m    Match
	}{
		{name: "missing away score", m: Match{HomeTeamID: int64Ptr(1), AwayTeamID: int64Ptr(2), HomeScore: intPtr(1)}},
		{name: "missing home score", m: Match{HomeTeamID: int64Ptr(1), AwayTeamID: int64Ptr(2), AwayScore: intPtr(1)}},
		{name: "missing home team", m: Match{AwayTeamID: int64Ptr(2), HomeScore: intPtr(1), AwayScore: intPtr(1)}},
		{name: "missing away team", m: Match{HomeTeamID: int64Ptr(1), HomeScore: intPtr(1), AwayScore: intPtr(1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, _, ok := tc.m.TeamData(); ok {
				t.Fatalf("expected no team data")
			}
		})
	}
}

func TestIsCompletedStatus(t *testing.T) {
	t.Parallel()

	completed := []string{"COMPLETED", "completed", " ft ", "FINISHED"}
	for _, status := range completed {
		if !IsCompletedStatus(status) {
			t.Fatalf("status %q should be completed", status)
		}
	}

	notCompleted := []string{"", "SCHEDULED", "LIVE", "CANCELLED", "POSTPONED"}
	for _, status := range notCompleted {
		if IsCompletedStatus(status) {
			t.Fatalf("status %q should not be completed", status)
		}
	}
}

func TestCompletedStatusesAgreeWithHelper(t *testing.T) {
	t.Parallel()

	statuses := CompletedStatuses()
	if len(statuses) == 0 {
		t.Fatal("completed status list is empty")
	}
	for _, status := range statuses {
		if status != NormalizeStatus(status) {
			t.Fatalf("status %q is not in normalized form", status)
		}
		if !IsCompletedStatus(status) {
			t.Fatalf("status %q from the list is rejected by IsCompletedStatus", status)
		}
	}
}
