// Package analysis sequences one analysis cycle: burst acquisition, trend
// tracking, composite scoring and rule evaluation, merged into a single
// result record. The engine owns no algorithmic logic of its own.
package analysis

import (
	"math"
	"time"

	"github.com/aquamind/aquamind/internal/rules"
	"github.com/aquamind/aquamind/internal/sensors"
	"github.com/aquamind/aquamind/internal/trust"
	"github.com/aquamind/aquamind/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine coordinates the trust pipeline and the rules engine over the
// sensor manager. All calls are sequential; nothing here is safe for
// concurrent use.
type Engine struct {
	sensors  *sensors.Manager
	acquirer *trust.Acquirer
	tracker  *trust.Tracker
	store    *trust.Store
	active   *trust.ActiveProfile
	rules    *rules.Engine
	logger   *zap.SugaredLogger

	// now is injectable so seasonal behavior is deterministic under test.
	now func() time.Time

	lastRecord *types.AnalysisRecord
	cycleCount int
}

// New creates an engine with default acquisition and tracking parameters.
// The active profile starts at the store's default.
func New(mgr *sensors.Manager, store *trust.Store, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		sensors:  mgr,
		acquirer: trust.NewAcquirer(trust.DefaultAcquireParams()),
		tracker:  trust.NewTracker(trust.DefaultWindowSize),
		store:    store,
		active:   store.Default(),
		rules:    rules.NewEngine(),
		logger:   logger,
		now:      time.Now,
	}
}

// SetAcquireParams replaces the burst protocol parameters, e.g. to shorten
// delays for bench runs.
func (e *Engine) SetAcquireParams(params trust.AcquireParams) {
	e.acquirer = trust.NewAcquirer(params)
}

// SetClock replaces the time source used for timestamps and the seasonal
// month lookup.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// SetProfile switches the active region profile. Unknown names are a no-op
// returning false; the previous profile is retained. A successful switch
// replaces the profile handle atomically and clears the trend histories.
func (e *Engine) SetProfile(name string) bool {
	active, ok := e.store.Select(name)
	if !ok {
		e.logger.Warnf("profile %q not found, available: %v", name, e.store.List())
		return false
	}
	e.active = active
	e.tracker.Clear()
	e.logger.Infof("profile set to %s", active.Info().Name)
	return true
}

// ActiveProfile returns the current profile handle.
func (e *Engine) ActiveProfile() *trust.ActiveProfile {
	return e.active
}

// Profiles returns the available profile codes.
func (e *Engine) Profiles() []string {
	return e.store.List()
}

// LastRecord returns the most recent analysis record, or nil before the
// first cycle.
func (e *Engine) LastRecord() *types.AnalysisRecord {
	return e.lastRecord
}

// CycleCount returns the number of completed analysis cycles.
func (e *Engine) CycleCount() int {
	return e.cycleCount
}

// AnalyzeOnce performs one complete water analysis. It always produces a
// fully-populated record: instability and degraded configuration surface as
// verdicts and fallbacks, never as failures.
func (e *Engine) AnalyzeOnce() *types.AnalysisRecord {
	e.logger.Info("starting water analysis")

	tdsBurst := e.acquirer.ReadWithValidation(e.sensors.ReadTDSPPM)
	turbBurst := e.acquirer.ReadWithValidation(e.sensors.ReadTurbidityNTU)

	// A single read suffices for temperature; it is informational only.
	temperature := e.sensors.ReadTemperatureC()

	overallStability := round1((tdsBurst.Stability + turbBurst.Stability) / 2)

	e.tracker.AddReading(types.ChannelTDS, tdsBurst.Mean)
	e.tracker.AddReading(types.ChannelTurbidity, turbBurst.Mean)
	e.tracker.AddReading(types.ChannelTemperature, temperature)

	now := e.now()
	score := trust.ComputeScore(e.active, trust.ScoreInput{
		TDSPPM:       tdsBurst.Mean,
		TurbidityNTU: turbBurst.Mean,
		Stability:    overallStability,
		TemperatureC: temperature,
		Month:        now.Month(),
	})

	readings := types.Readings{
		TDSPPM:       round1(tdsBurst.Mean),
		TurbidityNTU: round2(turbBurst.Mean),
		TemperatureC: temperature,
	}

	eval := e.rules.Evaluate(rules.Readings{
		TDSPPM:       readings.TDSPPM,
		TurbidityNTU: readings.TurbidityNTU,
		TemperatureC: readings.TemperatureC,
		Stability:    overallStability,
	})

	if eval.Verdict != score.Verdict {
		e.logger.Warnf("verdict disagreement: score says %s, rules say %s", score.Verdict, eval.Verdict)
	}

	record := &types.AnalysisRecord{
		ID:        uuid.New().String(),
		Timestamp: now,
		Readings:  readings,
		Stability: types.Stability{
			TDS:     tdsBurst.Stability,
			Turb:    turbBurst.Stability,
			Overall: overallStability,
		},
		Trends: types.Trends{
			TDS:       e.tracker.Trend(types.ChannelTDS),
			Turbidity: e.tracker.Trend(types.ChannelTurbidity),
		},
		JalScore:       score.Score,
		Verdict:        score.Verdict,
		VerdictMessage: score.Message,
		Breakdown:      score.Breakdown,
		Profile:        score.Profile,
		SeasonalAlert:  score.SeasonalAlert,
		StrictMode:     score.StrictMode,
		SimulationMode: e.sensors.SimulationMode(),
		Rules: types.RuleSummary{
			Verdict:        eval.Verdict,
			TriggeredCount: len(eval.Triggered),
			Actions:        eval.AllActions,
			PrimaryAction:  eval.PrimaryAction,
		},
		RawData: types.RawBursts{
			TDSBursts:  roundAll(tdsBurst.BurstMeans, 1),
			TurbBursts: roundAll(turbBurst.BurstMeans, 2),
		},
	}

	e.lastRecord = record
	e.cycleCount++

	e.logger.Infof("analysis complete: score=%.1f verdict=%s (tds=%.1f ppm, turb=%.2f NTU, temp=%.1f C, stability=%.1f)",
		record.JalScore, record.Verdict, readings.TDSPPM, readings.TurbidityNTU, temperature, overallStability)

	return record
}

// SetScenario switches the simulation scenario on the sensor manager.
func (e *Engine) SetScenario(name string) error {
	return e.sensors.SetScenario(name)
}

// ClearHistory resets the trend tracker, for explicit operator resets.
func (e *Engine) ClearHistory() {
	e.tracker.Clear()
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func roundAll(vs []float64, places int) []float64 {
	scale := math.Pow(10, float64(places))
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = math.Round(v*scale) / scale
	}
	return out
}
