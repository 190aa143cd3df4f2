package analysis

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aquamind/aquamind/internal/sensors"
	"github.com/aquamind/aquamind/internal/trust"
	"github.com/aquamind/aquamind/internal/types"
	"github.com/aquamind/aquamind/pkg/config"
	"go.uber.org/zap"
)

// steadyDevice returns fixed ADC counts, giving perfectly stable bursts.
type steadyDevice struct {
	tdsCounts  float64
	turbCounts float64
	tempC      float64
}

func (d *steadyDevice) ReadRaw(channel types.Channel) (float64, error) {
	switch channel {
	case types.ChannelTDS:
		return d.tdsCounts, nil
	case types.ChannelTurbidity:
		return d.turbCounts, nil
	default:
		return d.tempC, nil
	}
}

func (d *steadyDevice) ButtonPressed() bool { return false }
func (d *steadyDevice) Close() error        { return nil }

func newTestEngine(t *testing.T, store *trust.Store) *Engine {
	t.Helper()
	logger := zap.NewNop().Sugar()

	// 153.45 counts is exactly 150 ppm; 25.575 counts is exactly 0.5 NTU.
	dev := &steadyDevice{tdsCounts: 153.45, turbCounts: 25.575, tempC: 25}
	mgr := sensors.NewManager(dev, true, filepath.Join(t.TempDir(), "calibration.json"), logger)

	engine := New(mgr, store, logger)
	engine.SetAcquireParams(trust.AcquireParams{Bursts: 3, SamplesPerBurst: 5})
	engine.SetClock(func() time.Time {
		return time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)
	})
	return engine
}

func TestAnalyzeOnce(t *testing.T) {
	engine := newTestEngine(t, trust.NewStore(nil))
	record := engine.AnalyzeOnce()

	if record.ID == "" {
		t.Error("expected a record id")
	}
	if record.Timestamp != time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC) {
		t.Errorf("expected injected clock timestamp, got %s", record.Timestamp)
	}
	if !record.SimulationMode {
		t.Error("expected simulation mode flagged")
	}

	want := types.Readings{TDSPPM: 150, TurbidityNTU: 0.5, TemperatureC: 25}
	if record.Readings != want {
		t.Errorf("readings: expected %+v, got %+v", want, record.Readings)
	}

	// A constant signal yields perfect stability on both burst channels.
	if record.Stability.Overall != 100 || record.Stability.TDS != 100 || record.Stability.Turb != 100 {
		t.Errorf("expected perfect stability, got %+v", record.Stability)
	}

	if record.Verdict != types.VerdictSafe {
		t.Errorf("expected SAFE score verdict, got %s (%s)", record.Verdict, record.VerdictMessage)
	}
	if record.Rules.Verdict != types.VerdictSafe {
		t.Errorf("expected SAFE rules verdict, got %s", record.Rules.Verdict)
	}
	if record.Rules.TriggeredCount != 0 {
		t.Errorf("expected no triggered rules, got %d", record.Rules.TriggeredCount)
	}

	if len(record.RawData.TDSBursts) != 3 || len(record.RawData.TurbBursts) != 3 {
		t.Errorf("expected 3 burst means per channel, got %+v", record.RawData)
	}

	if engine.LastRecord() != record {
		t.Error("expected record retained as last result")
	}
	if engine.CycleCount() != 1 {
		t.Errorf("expected cycle count 1, got %d", engine.CycleCount())
	}
}

func TestAnalyzeOnceTrendsAcrossCycles(t *testing.T) {
	engine := newTestEngine(t, trust.NewStore(nil))

	var record *types.AnalysisRecord
	for i := 0; i < 3; i++ {
		record = engine.AnalyzeOnce()
	}

	if record.Trends.TDS.SampleCount != 3 {
		t.Errorf("expected 3 tracked samples, got %d", record.Trends.TDS.SampleCount)
	}
	if record.Trends.TDS.Direction != types.TrendStable {
		t.Errorf("expected stable trend on constant signal, got %s", record.Trends.TDS.Direction)
	}
	if engine.CycleCount() != 3 {
		t.Errorf("expected cycle count 3, got %d", engine.CycleCount())
	}
}

func TestSetProfile(t *testing.T) {
	store := trust.NewStore(&config.ConfigData{
		DefaultProfile: "ALPHA",
		Profiles: map[string]config.RegionProfile{
			"ALPHA": {Name: "Alpha Region"},
			"BETA":  {Name: "Beta Region"},
		},
	})
	engine := newTestEngine(t, store)

	if engine.ActiveProfile().Info().Name != "Alpha Region" {
		t.Fatalf("expected default profile active, got %s", engine.ActiveProfile().Info().Name)
	}

	// An unknown region keeps the current profile.
	if engine.SetProfile("GAMMA") {
		t.Error("expected unknown profile selection to fail")
	}
	if engine.ActiveProfile().Info().Name != "Alpha Region" {
		t.Errorf("expected profile retained on failure, got %s", engine.ActiveProfile().Info().Name)
	}

	// A successful switch clears the trend histories.
	engine.AnalyzeOnce()
	engine.AnalyzeOnce()
	engine.AnalyzeOnce()
	if !engine.SetProfile("beta") {
		t.Fatal("expected case-insensitive profile switch to succeed")
	}
	record := engine.AnalyzeOnce()
	if record.Profile != "Beta Region" {
		t.Errorf("expected record under new profile, got %s", record.Profile)
	}
	if record.Trends.TDS.SampleCount != 1 {
		t.Errorf("expected trend history cleared on switch, got %d samples", record.Trends.TDS.SampleCount)
	}
}

func TestClearHistory(t *testing.T) {
	engine := newTestEngine(t, trust.NewStore(nil))

	engine.AnalyzeOnce()
	engine.AnalyzeOnce()
	engine.ClearHistory()

	record := engine.AnalyzeOnce()
	if record.Trends.TDS.SampleCount != 1 {
		t.Errorf("expected fresh history after clear, got %d samples", record.Trends.TDS.SampleCount)
	}
}

func TestProfilesList(t *testing.T) {
	store := trust.NewStore(&config.ConfigData{
		Profiles: map[string]config.RegionProfile{
			"ZETA":  {},
			"ALPHA": {},
		},
	})
	engine := newTestEngine(t, store)

	profiles := engine.Profiles()
	if len(profiles) != 2 || profiles[0] != "ALPHA" || profiles[1] != "ZETA" {
		t.Errorf("expected sorted profile codes, got %v", profiles)
	}
}
