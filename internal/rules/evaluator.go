package rules

import "github.com/aquamind/aquamind/internal/types"

// Readings is the input to one rule evaluation: finalized physical-unit
// values plus the combined burst stability score.
type Readings struct {
	TDSPPM       float64
	TurbidityNTU float64
	TemperatureC float64
	Stability    float64
}

func (r Readings) value(p Parameter) float64 {
	switch p {
	case ParamTDS:
		return r.TDSPPM
	case ParamTurbidity:
		return r.TurbidityNTU
	case ParamTemperature:
		return r.TemperatureC
	case ParamStability:
		return r.Stability
	}
	return 0
}

// Triggered records one matched rule together with the value that tripped it.
type Triggered struct {
	Rule  Rule
	Value float64
}

// Evaluation is the outcome of checking all rules against one reading set.
type Evaluation struct {
	// Verdict is the verdict of the highest-priority matched rule, or SAFE
	// when nothing matched.
	Verdict types.Verdict

	PrimaryAction      string
	PrimaryExplanation string

	// AllActions lists matched rules' actions in first-seen order, with
	// exact-string duplicates removed.
	AllActions []string

	// Triggered preserves the table order of matched rules, which is
	// descending priority with definition order breaking ties.
	Triggered []Triggered

	RulesChecked int
}

// Evaluate checks every rule in the table against the readings. The rules
// engine is independent of the composite score and may disagree with it;
// both verdicts are surfaced to the caller unreconciled.
func (e *Engine) Evaluate(r Readings) Evaluation {
	var triggered []Triggered
	for _, rule := range e.rules {
		value := r.value(rule.Parameter)
		if rule.matches(value) {
			triggered = append(triggered, Triggered{Rule: rule, Value: value})
		}
	}

	eval := Evaluation{
		Verdict:            types.VerdictSafe,
		PrimaryAction:      "Water appears safe for consumption.",
		PrimaryExplanation: "All parameters within acceptable limits.",
		Triggered:          triggered,
		RulesChecked:       len(e.rules),
	}

	if len(triggered) > 0 {
		primary := triggered[0].Rule
		eval.Verdict = primary.Verdict
		eval.PrimaryAction = primary.Action
		eval.PrimaryExplanation = primary.Explanation
	}

	seen := make(map[string]bool)
	for _, t := range triggered {
		if !seen[t.Rule.Action] {
			eval.AllActions = append(eval.AllActions, t.Rule.Action)
			seen[t.Rule.Action] = true
		}
	}

	return eval
}
