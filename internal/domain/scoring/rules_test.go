package scoring

import (
	"testing"
	"time"
)

func TestDefaultRuleSetIsValid(t *testing.T) {
	t.Parallel()

	if err := DefaultRuleSet().Validate(); err != nil {
		t.Fatalf("default ruleset should validate: %v", err)
	}
}

func TestValidateRejectsPositiveDeductions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*RuleSet)
	}{
		{name: "yellow card", mutate: func(r *RuleSet) { r.Deductions.YellowCard = 1 }},
		{name: "red card", mutate: func(r *RuleSet) { r.Deductions.RedCard = 2 }},
		{name: "own goal", mutate: func(r *RuleSet) { r.Deductions.OwnGoal = 1 }},
		{name: "missed penalty", mutate: func(r *RuleSet) { r.Deductions.MissedPenalty = 1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rules := DefaultRuleSet()
			tc.mutate(&rules)
			if err := rules.Validate(); err == nil {
				t.Fatalf("expected validation error for positive %s rule", tc.name)
			}
		})
	}
}

func TestValidateRequiresVersionAndDate(t *testing.T) {
	t.Parallel()

	rules := DefaultRuleSet()
	rules.Version = "  "
	if err := rules.Validate(); err == nil {
		t.Fatalf("expected validation error for blank version")
	}

	rules = DefaultRuleSet()
	rules.EffectiveDate = time.Time{}
	if err := rules.Validate(); err == nil {
		t.Fatalf("expected validation error for zero effective date")
	}
}
