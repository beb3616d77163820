package scoring

// PerformanceInput is one player's raw stat line for one match. Absent
// database columns are coerced to zero before this struct is built, so
// the calculator never deals with missing values.
type PerformanceInput struct {
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	MinutesPlayed int
	Saves         int
	Position      *string
}

// TeamContext is the player's team result for the match.
type TeamContext struct {
	GoalsConceded int
	IsCleanSheet  bool
}

// PointBreakdown carries the per-category sub-totals for one
// (selection, match) pair. DefensivePoints and PenaltyPoints are
// reserved fields kept at zero until the upstream data exists.
type PointBreakdown struct {
	AppearancePoints int
	GoalPoints       int
	AssistPoints     int
	CleanSheetPoints int
	SavePoints       int
	DefensivePoints  int
	PenaltyPoints    int
	CardPoints       int
	BonusPoints      int
	TotalPoints      int
}

// CalculatePoints maps one stat line to a point breakdown. Pure and
// total: it performs no I/O and never fails.
func CalculatePoints(perf PerformanceInput, team TeamContext, isStarter bool, rules RuleSet) PointBreakdown {
	out := PointBreakdown{}

	if perf.MinutesPlayed > 0 {
		out.AppearancePoints = rules.Appearance.Played
		if isStarter {
			out.AppearancePoints += rules.Appearance.StarterBonus
		}
	}

	if perf.Goals > 0 {
		out.GoalPoints = perf.Goals * rules.Attack.Goal
	}
	if perf.Goals+perf.Assists >= 2 {
		out.BonusPoints = rules.Attack.MultipleGoalContributionBonus
	}
	if perf.Assists > 0 {
		out.AssistPoints = perf.Assists * rules.Attack.Assist
	}

	if team.IsCleanSheet && IsDefensivePosition(perf.Position) {
		out.CleanSheetPoints = rules.Defense.CleanSheet
	}

	// Saves count in pairs; a leftover single save earns nothing.
	out.SavePoints = perf.Saves / 2 * rules.Defense.GoalkeeperSavePerTwo

	out.CardPoints = perf.YellowCards*rules.Deductions.YellowCard +
		perf.RedCards*rules.Deductions.RedCard

	out.TotalPoints = out.AppearancePoints +
		out.GoalPoints +
		out.AssistPoints +
		out.CleanSheetPoints +
		out.SavePoints +
		out.DefensivePoints +
		out.PenaltyPoints +
		out.CardPoints +
		out.BonusPoints

	return out
}
