package rules

import (
	"testing"

	"github.com/aquamind/aquamind/internal/types"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name          string
		readings      Readings
		wantVerdict   types.Verdict
		wantPrimary   string
		wantTriggered int
	}{
		{
			name:          "clean readings trigger nothing",
			readings:      Readings{TDSPPM: 150, TurbidityNTU: 0.5, TemperatureC: 25, Stability: 95},
			wantVerdict:   types.VerdictSafe,
			wantPrimary:   "Water appears safe for consumption.",
			wantTriggered: 0,
		},
		{
			name:          "heavily contaminated water",
			readings:      Readings{TDSPPM: 1200, TurbidityNTU: 15, TemperatureC: 32, Stability: 60},
			wantVerdict:   types.VerdictUnsafe,
			wantPrimary:   "DO NOT DRINK. Use multi-stage filtration + boiling for 10 minutes.",
			wantTriggered: 6,
		},
		{
			name:          "unstable sensor wins over water quality",
			readings:      Readings{TDSPPM: 300, TurbidityNTU: 3, TemperatureC: 25, Stability: 30},
			wantVerdict:   types.VerdictError,
			wantPrimary:   "Clean sensor probe with soft cloth and retry. Do not trust this reading.",
			wantTriggered: 3,
		},
		{
			name:          "borderline tds only",
			readings:      Readings{TDSPPM: 500, TurbidityNTU: 0.2, TemperatureC: 22, Stability: 98},
			wantVerdict:   types.VerdictCaution,
			wantPrimary:   "RO filter recommended for long-term use. Can be consumed occasionally.",
			wantTriggered: 1,
		},
		{
			name:          "cold water advisory",
			readings:      Readings{TDSPPM: 100, TurbidityNTU: 0.3, TemperatureC: 5, Stability: 99},
			wantVerdict:   types.VerdictCaution,
			wantPrimary:   "Allow water to reach room temperature for accurate testing.",
			wantTriggered: 1,
		},
	}

	engine := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := engine.Evaluate(tt.readings)

			if eval.Verdict != tt.wantVerdict {
				t.Errorf("verdict: expected %s, got %s", tt.wantVerdict, eval.Verdict)
			}
			if eval.PrimaryAction != tt.wantPrimary {
				t.Errorf("primary action: expected %q, got %q", tt.wantPrimary, eval.PrimaryAction)
			}
			if len(eval.Triggered) != tt.wantTriggered {
				t.Errorf("triggered: expected %d rules, got %d", tt.wantTriggered, len(eval.Triggered))
			}
			if eval.RulesChecked != 9 {
				t.Errorf("expected 9 rules checked, got %d", eval.RulesChecked)
			}
		})
	}
}

func TestEvaluateTriggeredOrderAndValues(t *testing.T) {
	engine := NewEngine()
	eval := engine.Evaluate(Readings{TDSPPM: 1200, TurbidityNTU: 15, TemperatureC: 32, Stability: 60})

	if len(eval.Triggered) == 0 {
		t.Fatal("expected triggered rules")
	}
	// The primary rule is the first triggered entry.
	if eval.PrimaryAction != eval.Triggered[0].Rule.Action {
		t.Errorf("primary action %q does not match first triggered rule %s",
			eval.PrimaryAction, eval.Triggered[0].Rule.ID)
	}
	for i := 1; i < len(eval.Triggered); i++ {
		if eval.Triggered[i].Rule.Priority > eval.Triggered[i-1].Rule.Priority {
			t.Errorf("triggered rules out of priority order at index %d", i)
		}
	}
	// Each entry carries the reading that tripped it.
	for _, trig := range eval.Triggered {
		if trig.Rule.Parameter == ParamTurbidity && trig.Value != 15 {
			t.Errorf("expected turbidity value 15, got %.1f", trig.Value)
		}
	}
}

func TestEvaluateDeduplicatesActions(t *testing.T) {
	// Two rules sharing an action string must surface it once.
	shared := "Boil water for at least 5 minutes before consumption."
	custom := Rule{
		ID:         "TURB_DUP",
		Parameter:  ParamTurbidity,
		Comparator: CompGTE,
		Threshold:  4.0,
		Verdict:    types.VerdictUnsafe,
		Priority:   7,
		Action:     shared,
	}
	engine := NewEngine(custom)
	eval := engine.Evaluate(Readings{TDSPPM: 100, TurbidityNTU: 6, TemperatureC: 25, Stability: 95})

	count := 0
	for _, action := range eval.AllActions {
		if action == shared {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected shared action once, got %d occurrences", count)
	}
	if len(eval.Triggered) != 3 {
		t.Errorf("expected 3 triggered rules (TURB_HIGH, TURB_DUP, TURB_ELEVATED), got %d", len(eval.Triggered))
	}
}

func TestAdviceFor(t *testing.T) {
	tests := []struct {
		verdict   types.Verdict
		wantColor string
	}{
		{types.VerdictSafe, "green"},
		{types.VerdictCaution, "yellow"},
		{types.VerdictUnsafe, "red"},
		{types.VerdictError, "gray"},
		{types.Verdict("BOGUS"), "gray"},
	}
	for _, tt := range tests {
		advice := AdviceFor(tt.verdict)
		if advice.Color != tt.wantColor {
			t.Errorf("%s: expected color %s, got %s", tt.verdict, tt.wantColor, advice.Color)
		}
		if advice.Short == "" || advice.Long == "" || len(advice.Precautions) == 0 {
			t.Errorf("%s: incomplete advice bundle %+v", tt.verdict, advice)
		}
	}
}
