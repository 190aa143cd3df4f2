package sensors

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/aquamind/aquamind/internal/types"
	"go.uber.org/zap"
)

// DefaultScenario is used when no scenario is requested.
const DefaultScenario = "tap_water"

// scenarioParams drives the simulated noise model. Stability scales the
// extra drift term: lower stability means noisier, less repeatable bursts.
type scenarioParams struct {
	TDSBase   float64
	TDSNoise  float64
	TurbBase  float64
	TurbNoise float64
	TempBase  float64
	TempNoise float64
	Stability float64
}

var scenarios = map[string]scenarioParams{
	"clean_water":  {TDSBase: 150, TDSNoise: 10, TurbBase: 0.5, TurbNoise: 0.2, TempBase: 25, TempNoise: 0.5, Stability: 0.95},
	"tap_water":    {TDSBase: 350, TDSNoise: 25, TurbBase: 1.5, TurbNoise: 0.5, TempBase: 28, TempNoise: 1, Stability: 0.85},
	"dirty_water":  {TDSBase: 650, TDSNoise: 50, TurbBase: 8, TurbNoise: 2, TempBase: 30, TempNoise: 2, Stability: 0.70},
	"contaminated": {TDSBase: 900, TDSNoise: 100, TurbBase: 15, TurbNoise: 5, TempBase: 32, TempNoise: 3, Stability: 0.50},
	"sensor_error": {TDSBase: 500, TDSNoise: 200, TurbBase: 5, TurbNoise: 4, TempBase: 25, TempNoise: 10, Stability: 0.20},
}

// Scenarios returns the available simulation scenario names, sorted.
func Scenarios() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Simulated generates realistic noisy readings without hardware.
type Simulated struct {
	mu     sync.Mutex
	params scenarioParams
	name   string
	rng    *rand.Rand
	button bool
	logger *zap.SugaredLogger
}

// NewSimulated creates a simulated device with the named scenario. An
// unknown or empty scenario falls back to tap_water.
func NewSimulated(scenario string, logger *zap.SugaredLogger) *Simulated {
	s := &Simulated{
		rng:    rand.New(rand.NewSource(rand.Int63())),
		logger: logger,
	}
	s.SetScenario(scenario)
	return s
}

// SetScenario switches the noise model. Unknown names fall back to the
// default scenario.
func (s *Simulated) SetScenario(scenario string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	params, ok := scenarios[scenario]
	if !ok {
		if scenario != "" {
			s.logger.Warnf("unknown scenario %q, using %s", scenario, DefaultScenario)
		}
		scenario = DefaultScenario
		params = scenarios[scenario]
	}
	s.name = scenario
	s.params = params
}

// Scenario returns the active scenario name.
func (s *Simulated) Scenario() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// ReadRaw synthesizes one reading: ADC counts for the analog channels,
// degrees Celsius for temperature.
func (s *Simulated) ReadRaw(channel types.Channel) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.params
	switch channel {
	case types.ChannelTDS:
		value := s.noisy(p.TDSBase, p.TDSNoise, p.Stability)
		return clampCounts(value / 1000 * ADCMax), nil
	case types.ChannelTurbidity:
		value := s.noisy(p.TurbBase, p.TurbNoise, p.Stability)
		return clampCounts(value / 20 * ADCMax), nil
	case types.ChannelTemperature:
		return p.TempBase + s.rng.NormFloat64()*p.TempNoise, nil
	}
	return 0, fmt.Errorf("unknown channel %v", channel)
}

// noisy adds gaussian noise plus an instability drift term.
func (s *Simulated) noisy(base, noise, stability float64) float64 {
	drift := s.rng.NormFloat64() * noise * (1 - stability)
	return base + s.rng.NormFloat64()*noise + drift
}

// PressButton latches a simulated calibration-button press.
func (s *Simulated) PressButton() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.button = true
}

// ButtonPressed reports and clears the latched button state.
func (s *Simulated) ButtonPressed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	pressed := s.button
	s.button = false
	return pressed
}

// Close is a no-op for the simulated device.
func (s *Simulated) Close() error {
	return nil
}

func clampCounts(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > ADCMax {
		return ADCMax
	}
	return float64(int(v))
}
