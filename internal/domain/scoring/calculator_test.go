package scoring

import "testing"

func strPtr(v string) *string {
	return &v
}

func testRules() RuleSet {
	rules := DefaultRuleSet()
	rules.Version = "test"
	return rules
}

func TestCalculatePointsForwardScenario(t *testing.T) {
	t.Parallel()

	perf := PerformanceInput{
		Goals:         2,
		Assists:       1,
		YellowCards:   1,
		MinutesPlayed: 70,
		Position:      strPtr("FW"),
	}
	team := TeamContext{GoalsConceded: 1, IsCleanSheet: false}

	out := CalculatePoints(perf, team, true, testRules())

	if out.AppearancePoints != 3 {
		t.Fatalf("appearance points: got=%d want=%d", out.AppearancePoints, 3)
	}
	if out.GoalPoints != 8 {
		t.Fatalf("goal points: got=%d want=%d", out.GoalPoints, 8)
	}
	if out.AssistPoints != 2 {
		t.Fatalf("assist points: got=%d want=%d", out.AssistPoints, 2)
	}
	if out.BonusPoints != 1 {
		t.Fatalf("bonus points: got=%d want=%d", out.BonusPoints, 1)
	}
	if out.CleanSheetPoints != 0 {
		t.Fatalf("clean sheet points: got=%d want=%d", out.CleanSheetPoints, 0)
	}
	if out.CardPoints != -1 {
		t.Fatalf("card points: got=%d want=%d", out.CardPoints, -1)
	}
	if out.TotalPoints != 13 {
		t.Fatalf("total points: got=%d want=%d", out.TotalPoints, 13)
	}
}

func TestCalculatePointsGoalkeeperScenario(t *testing.T) {
	t.Parallel()

	perf := PerformanceInput{
		Saves:         5,
		MinutesPlayed: 90,
		Position:      strPtr("GK"),
	}
	team := TeamContext{GoalsConceded: 0, IsCleanSheet: true}

	out := CalculatePoints(perf, team, true, testRules())

	if out.AppearancePoints != 3 {
		t.Fatalf("appearance points: got=%d want=%d", out.AppearancePoints, 3)
	}
	if out.CleanSheetPoints != 3 {
		t.Fatalf("clean sheet points: got=%d want=%d", out.CleanSheetPoints, 3)
	}
	if out.SavePoints != 2 {
		t.Fatalf("save points: got=%d want=%d", out.SavePoints, 2)
	}
	if out.TotalPoints != 8 {
		t.Fatalf("total points: got=%d want=%d", out.TotalPoints, 8)
	}
}

func TestCalculatePointsZeroMinutes(t *testing.T) {
	t.Parallel()

	perf := PerformanceInput{MinutesPlayed: 0}

	out := CalculatePoints(perf, TeamContext{}, true, testRules())
	if out.AppearancePoints != 0 {
		t.Fatalf("appearance points for zero minutes: got=%d want=%d", out.AppearancePoints, 0)
	}
	if out.TotalPoints != 0 {
		t.Fatalf("total points for zero minutes: got=%d want=%d", out.TotalPoints, 0)
	}
}

func TestCalculatePointsSubstituteAppearance(t *testing.T) {
	t.Parallel()

	perf := PerformanceInput{MinutesPlayed: 15}

	out := CalculatePoints(perf, TeamContext{}, false, testRules())
	if out.AppearancePoints != testRules().Appearance.Played {
		t.Fatalf("substitute appearance points: got=%d want=%d", out.AppearancePoints, testRules().Appearance.Played)
	}
}

func TestCalculatePointsSaveLadder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		saves int
		want  int
	}{
		{saves: 0, want: 0},
		{saves: 1, want: 0},
		{saves: 2, want: 1},
		{saves: 3, want: 1},
		{saves: 4, want: 2},
		{saves: 9, want: 4},
	}

	for _, tc := range cases {
		perf := PerformanceInput{MinutesPlayed: 90, Saves: tc.saves}
		out := CalculatePoints(perf, TeamContext{}, false, testRules())
		if out.SavePoints != tc.want {
			t.Fatalf("save points for saves=%d: got=%d want=%d", tc.saves, out.SavePoints, tc.want)
		}
	}
}

func TestCalculatePointsBonusBoundary(t *testing.T) {
	t.Parallel()

	cases := []struct {
		goals   int
		assists int
		want    int
	}{
		{goals: 0, assists: 0, want: 0},
		{goals: 1, assists: 0, want: 0},
		{goals: 0, assists: 1, want: 0},
		{goals: 1, assists: 1, want: 1},
		{goals: 2, assists: 0, want: 1},
		{goals: 4, assists: 3, want: 1},
	}

	for _, tc := range cases {
		perf := PerformanceInput{MinutesPlayed: 90, Goals: tc.goals, Assists: tc.assists}
		out := CalculatePoints(perf, TeamContext{}, false, testRules())
		if out.BonusPoints != tc.want {
			t.Fatalf("bonus points for goals=%d assists=%d: got=%d want=%d", tc.goals, tc.assists, out.BonusPoints, tc.want)
		}
	}
}

func TestCalculatePointsCleanSheetPositions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		position *string
		want     bool
	}{
		{name: "goalkeeper", position: strPtr("GK"), want: true},
		{name: "lowercase centre back", position: strPtr("cb"), want: true},
		{name: "wing back", position: strPtr("lwb"), want: true},
		{name: "padded label", position: strPtr(" rb "), want: true},
		{name: "forward", position: strPtr("FW"), want: false},
		{name: "midfielder", position: strPtr("CM"), want: false},
		{name: "empty", position: strPtr(""), want: false},
		{name: "unset", position: nil, want: false},
	}

	team := TeamContext{GoalsConceded: 0, IsCleanSheet: true}
	rules := testRules()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			perf := PerformanceInput{MinutesPlayed: 90, Position: tc.position}
			out := CalculatePoints(perf, team, false, rules)

			want := 0
			if tc.want {
				want = rules.Defense.CleanSheet
			}
			if out.CleanSheetPoints != want {
				t.Fatalf("clean sheet points: got=%d want=%d", out.CleanSheetPoints, want)
			}
		})
	}
}

func TestCalculatePointsNoCleanSheetCredit(t *testing.T) {
	t.Parallel()

	perf := PerformanceInput{MinutesPlayed: 90, Position: strPtr("CB")}
	team := TeamContext{GoalsConceded: 2, IsCleanSheet: false}

	out := CalculatePoints(perf, team, false, testRules())
	if out.CleanSheetPoints != 0 {
		t.Fatalf("clean sheet points without clean sheet: got=%d want=%d", out.CleanSheetPoints, 0)
	}
}

func TestCalculatePointsCardsNeverPositive(t *testing.T) {
	t.Parallel()

	cases := []struct {
		yellow int
		red    int
		want   int
	}{
		{yellow: 0, red: 0, want: 0},
		{yellow: 1, red: 0, want: -1},
		{yellow: 2, red: 0, want: -2},
		{yellow: 0, red: 1, want: -3},
		{yellow: 1, red: 1, want: -4},
	}

	for _, tc := range cases {
		perf := PerformanceInput{MinutesPlayed: 90, YellowCards: tc.yellow, RedCards: tc.red}
		out := CalculatePoints(perf, TeamContext{}, false, testRules())
		if out.CardPoints != tc.want {
			t.Fatalf("card points for yellow=%d red=%d: got=%d want=%d", tc.yellow, tc.red, out.CardPoints, tc.want)
		}
		if out.CardPoints > 0 {
			t.Fatalf("card points must not be positive: got=%d", out.CardPoints)
		}
	}
}

func TestCalculatePointsTotalMatchesSubtotals(t *testing.T) {
	t.Parallel()

	inputs := []PerformanceInput{
		{Goals: 3, Assists: 2, MinutesPlayed: 90, Position: strPtr("FW")},
		{Saves: 7, MinutesPlayed: 90, Position: strPtr("GK")},
		{YellowCards: 2, RedCards: 1, MinutesPlayed: 45, Position: strPtr("CM")},
		{Assists: 1, MinutesPlayed: 61, Position: strPtr("LWB")},
		{},
	}

	team := TeamContext{GoalsConceded: 0, IsCleanSheet: true}
	for idx, perf := range inputs {
		out := CalculatePoints(perf, team, perf.MinutesPlayed >= 60, testRules())
		sum := out.AppearancePoints + out.GoalPoints + out.AssistPoints +
			out.CleanSheetPoints + out.SavePoints + out.DefensivePoints +
			out.PenaltyPoints + out.CardPoints + out.BonusPoints
		if out.TotalPoints != sum {
			t.Fatalf("input %d: total points: got=%d want=%d", idx, out.TotalPoints, sum)
		}
	}
}

func TestCalculatePointsReservedFieldsStayZero(t *testing.T) {
	t.Parallel()

	perf := PerformanceInput{Goals: 2, Saves: 4, MinutesPlayed: 90, Position: strPtr("CB")}
	out := CalculatePoints(perf, TeamContext{IsCleanSheet: true}, true, testRules())

	if out.DefensivePoints != 0 {
		t.Fatalf("defensive points: got=%d want=%d", out.DefensivePoints, 0)
	}
	if out.PenaltyPoints != 0 {
		t.Fatalf("penalty points: got=%d want=%d", out.PenaltyPoints, 0)
	}
}
