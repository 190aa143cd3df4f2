package trust

import (
	"math"
	"time"

	"github.com/aquamind/aquamind/internal/types"
)

// strictModeSuffix is appended to CAUTION messages under strict profiles.
const strictModeSuffix = " (Strict Mode: Consider treatment)"

// ScoreInput carries one cycle's finalized readings into the calculator.
// Month drives the seasonal weight lookup; callers pass the current calendar
// month so seasonal behavior stays deterministic under test.
type ScoreInput struct {
	TDSPPM       float64
	TurbidityNTU float64
	Stability    float64
	TemperatureC float64
	Month        time.Month
}

// ScoreResult is the composite water-quality index and verdict.
type ScoreResult struct {
	Score         float64
	Verdict       types.Verdict
	Message       string
	Breakdown     types.ScoreBreakdown
	SeasonalAlert string
	Profile       string
	StrictMode    bool
}

// ComputeScore fuses the readings, their stability, and the active region
// profile into a 0-100 composite score and verdict. It is a pure function of
// its inputs and the given profile handle.
//
// Temperature is informational only: it is excluded from the weighted fusion,
// so the TDS and turbidity weights are renormalized to sum to 1 after the
// seasonal modifiers are applied. Risk contributions saturate at 100 no
// matter how far a reading exceeds the unsafe threshold.
func ComputeScore(active *ActiveProfile, in ScoreInput) ScoreResult {
	thresholds := active.Thresholds()
	weights := active.Weights()
	seasonal := active.SeasonalModifier(in.Month)

	wTDS := weights.TDS * seasonal.TDSModifier
	wTurb := weights.Turbidity * seasonal.TurbModifier
	totalWeight := wTDS + wTurb
	wTDS /= totalWeight
	wTurb /= totalWeight

	tdsRisk := math.Min(100, in.TDSPPM/thresholds.TDSUnsafe*100)
	turbRisk := math.Min(100, in.TurbidityNTU/thresholds.TurbUnsafe*100)

	// A completely unstable reading (stability 0) costs 50 points outright.
	stabilityPenalty := (100 - in.Stability) * 0.5

	score := 100 - tdsRisk*wTDS - turbRisk*wTurb - stabilityPenalty
	score = clamp(round1(score), 0, 100)

	// Verdict order matters: instability overrides the numeric score
	// entirely, even a perfect one.
	var verdict types.Verdict
	var message string
	switch {
	case in.Stability < 50:
		verdict = types.VerdictError
		message = "Sensor unstable - clean probe and retry"
	case score >= 80:
		verdict = types.VerdictSafe
		message = "Water appears safe for consumption"
	case score >= 50:
		verdict = types.VerdictCaution
		message = "Water quality marginal - treatment recommended"
	default:
		verdict = types.VerdictUnsafe
		message = "Water unsafe - do not consume without treatment"
	}

	if active.StrictMode() && verdict == types.VerdictCaution {
		message += strictModeSuffix
	}

	return ScoreResult{
		Score:   score,
		Verdict: verdict,
		Message: message,
		Breakdown: types.ScoreBreakdown{
			TDSRisk:          round1(tdsRisk),
			TurbRisk:         round1(turbRisk),
			StabilityPenalty: round1(stabilityPenalty),
			TDSWeight:        round2(wTDS),
			TurbWeight:       round2(wTurb),
		},
		SeasonalAlert: seasonal.Alert,
		Profile:       active.Info().Name,
		StrictMode:    active.StrictMode(),
	}
}
