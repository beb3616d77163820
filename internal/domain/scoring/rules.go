package scoring

import (
	"fmt"
	"strings"
	"time"
)

// RuleSet is a versioned point table. It is passed by value and never
// mutated; a rule change ships as a new version so historical scores
// stay reproducible.
type RuleSet struct {
	Version       string
	EffectiveDate time.Time
	Appearance    AppearanceRules
	Attack        AttackRules
	Defense       DefenseRules
	Deductions    DeductionRules
}

type AppearanceRules struct {
	Played       int
	StarterBonus int
}

type AttackRules struct {
	Goal                          int
	Assist                        int
	MultipleGoalContributionBonus int
}

type DefenseRules struct {
	CleanSheet             int
	GoalkeeperSavePerTwo   int
	ImportantBlockOrTackle int
}

type DeductionRules struct {
	YellowCard    int
	RedCard       int
	OwnGoal       int
	MissedPenalty int
}

// DefaultRuleSet returns the ruleset currently in effect.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Version:       "1.0.0",
		EffectiveDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		Appearance: AppearanceRules{
			Played:       2,
			StarterBonus: 1,
		},
		Attack: AttackRules{
			Goal:                          4,
			Assist:                        2,
			MultipleGoalContributionBonus: 1,
		},
		Defense: DefenseRules{
			CleanSheet:           3,
			GoalkeeperSavePerTwo: 1,
			// Block/tackle events are not captured upstream yet.
			ImportantBlockOrTackle: 0,
		},
		Deductions: DeductionRules{
			YellowCard:    -1,
			RedCard:       -3,
			OwnGoal:       -2,
			MissedPenalty: -2,
		},
	}
}

// Validate rejects rulesets that would break scoring invariants.
// Deductions must never add points.
func (r RuleSet) Validate() error {
	if strings.TrimSpace(r.Version) == "" {
		return fmt.Errorf("ruleset version is required")
	}
	if r.EffectiveDate.IsZero() {
		return fmt.Errorf("ruleset effective date is required")
	}
	if r.Deductions.YellowCard > 0 {
		return fmt.Errorf("yellow card rule must not be positive: %d", r.Deductions.YellowCard)
	}
	if r.Deductions.RedCard > 0 {
		return fmt.Errorf("red card rule must not be positive: %d", r.Deductions.RedCard)
	}
	if r.Deductions.OwnGoal > 0 {
		return fmt.Errorf("own goal rule must not be positive: %d", r.Deductions.OwnGoal)
	}
	if r.Deductions.MissedPenalty > 0 {
		return fmt.Errorf("missed penalty rule must not be positive: %d", r.Deductions.MissedPenalty)
	}
	return nil
}

var defensivePositions = map[string]struct{}{
	"GK":  {},
	"CB":  {},
	"LB":  {},
	"RB":  {},
	"LWB": {},
	"RWB": {},
}

// IsDefensivePosition reports whether a position label earns clean
// sheet credit. The comparison is case-insensitive; an unset position
// never qualifies.
func IsDefensivePosition(position *string) bool {
	if position == nil {
		return false
	}
	normalized := strings.ToUpper(strings.TrimSpace(*position))
	if normalized == "" {
		return false
	}
	_, ok := defensivePositions[normalized]
	return ok
}
