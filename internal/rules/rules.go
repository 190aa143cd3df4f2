// Package rules implements the offline safety rules engine. It evaluates
// finalized readings against a fixed, priority-ordered table of BIS IS:10500
// derived thresholds and produces a verdict with ranked remedial actions,
// independently of the composite score.
package rules

import (
	"sort"

	"github.com/aquamind/aquamind/internal/types"
)

// Parameter identifies the reading a rule applies to.
type Parameter int

const (
	ParamTDS Parameter = iota
	ParamTurbidity
	ParamTemperature
	ParamStability
)

// String returns the wire name of the parameter.
func (p Parameter) String() string {
	switch p {
	case ParamTDS:
		return "tds_ppm"
	case ParamTurbidity:
		return "turbidity_ntu"
	case ParamTemperature:
		return "temperature_c"
	case ParamStability:
		return "stability_score"
	}
	return "unknown"
}

// Comparator is the closed set of rule comparison operators.
type Comparator int

const (
	CompGT Comparator = iota
	CompGTE
	CompLT
	CompLTE
	CompRange
)

// Rule is a single immutable safety rule.
type Rule struct {
	ID           string
	Name         string
	Parameter    Parameter
	Comparator   Comparator
	Threshold    float64
	ThresholdMax float64 // upper bound for CompRange, inclusive
	Verdict      types.Verdict
	Priority     int // 1-10, higher wins
	Action       string
	Explanation  string
}

// matches evaluates the rule's comparator against a reading value.
func (r Rule) matches(value float64) bool {
	switch r.Comparator {
	case CompGT:
		return value > r.Threshold
	case CompGTE:
		return value >= r.Threshold
	case CompLT:
		return value < r.Threshold
	case CompLTE:
		return value <= r.Threshold
	case CompRange:
		max := r.ThresholdMax
		if max == 0 {
			max = r.Threshold
		}
		return value >= r.Threshold && value <= max
	}
	return false
}

// defaultRules is the built-in table, based on BIS IS:10500:2012.
// Definition order is the tie-break between rules of equal priority.
func defaultRules() []Rule {
	return []Rule{
		{
			ID:          "TURB_CRITICAL",
			Name:        "Critical Turbidity",
			Parameter:   ParamTurbidity,
			Comparator:  CompGTE,
			Threshold:   10.0,
			Verdict:     types.VerdictUnsafe,
			Priority:    10,
			Action:      "DO NOT DRINK. Use multi-stage filtration + boiling for 10 minutes.",
			Explanation: "Very high turbidity indicates sediment, microbes, or contamination.",
		},
		{
			ID:          "STABILITY_FAIL",
			Name:        "Sensor Unstable",
			Parameter:   ParamStability,
			Comparator:  CompLT,
			Threshold:   50.0,
			Verdict:     types.VerdictError,
			Priority:    10,
			Action:      "Clean sensor probe with soft cloth and retry. Do not trust this reading.",
			Explanation: "Sensor readings are inconsistent. This could indicate probe fouling.",
		},
		{
			ID:          "TURB_HIGH",
			Name:        "High Turbidity",
			Parameter:   ParamTurbidity,
			Comparator:  CompGTE,
			Threshold:   5.0,
			Verdict:     types.VerdictUnsafe,
			Priority:    8,
			Action:      "Boil water for at least 5 minutes before consumption.",
			Explanation: "Turbidity above 5 NTU exceeds BIS permissible limit. Risk of pathogens.",
		},
		{
			ID:          "TDS_VERY_HIGH",
			Name:        "Very High TDS",
			Parameter:   ParamTDS,
			Comparator:  CompGTE,
			Threshold:   1000.0,
			Verdict:     types.VerdictUnsafe,
			Priority:    8,
			Action:      "Use RO purifier. Not suitable for regular drinking.",
			Explanation: "TDS above 1000 ppm indicates heavy mineral content. May cause health issues.",
		},
		{
			ID:          "TDS_HIGH",
			Name:        "High TDS",
			Parameter:   ParamTDS,
			Comparator:  CompGTE,
			Threshold:   500.0,
			Verdict:     types.VerdictCaution,
			Priority:    6,
			Action:      "RO filter recommended for long-term use. Can be consumed occasionally.",
			Explanation: "TDS above 500 ppm exceeds BIS acceptable limit. Taste may be affected.",
		},
		{
			ID:          "TURB_ELEVATED",
			Name:        "Elevated Turbidity",
			Parameter:   ParamTurbidity,
			Comparator:  CompGTE,
			Threshold:   1.0,
			Verdict:     types.VerdictCaution,
			Priority:    5,
			Action:      "Use sediment filter or let water settle before use.",
			Explanation: "Turbidity above 1 NTU exceeds BIS acceptable limit.",
		},
		{
			ID:          "STABILITY_LOW",
			Name:        "Low Stability",
			Parameter:   ParamStability,
			Comparator:  CompLT,
			Threshold:   70.0,
			Verdict:     types.VerdictCaution,
			Priority:    5,
			Action:      "Wait 30 seconds and test again for more accurate reading.",
			Explanation: "Sensor readings have some variation. Results may not be fully reliable.",
		},
		{
			ID:          "TEMP_HIGH",
			Name:        "High Temperature",
			Parameter:   ParamTemperature,
			Comparator:  CompGTE,
			Threshold:   35.0,
			Verdict:     types.VerdictCaution,
			Priority:    3,
			Action:      "Cool water before testing. Warm water may affect sensor accuracy.",
			Explanation: "Water temperature is high. TDS readings may be elevated.",
		},
		{
			ID:          "TEMP_LOW",
			Name:        "Low Temperature",
			Parameter:   ParamTemperature,
			Comparator:  CompLT,
			Threshold:   10.0,
			Verdict:     types.VerdictCaution,
			Priority:    3,
			Action:      "Allow water to reach room temperature for accurate testing.",
			Explanation: "Cold water may affect sensor calibration.",
		},
	}
}

// Engine evaluates readings against the sorted rule table. The table is
// read-only after construction.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine from the default table plus any custom rules.
// Rules are sorted once, by descending priority; the stable sort preserves
// definition order between equal priorities.
func NewEngine(custom ...Rule) *Engine {
	table := append(defaultRules(), custom...)
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Priority > table[j].Priority
	})
	return &Engine{rules: table}
}

// Rules returns the sorted rule table.
func (e *Engine) Rules() []Rule {
	return e.rules
}
