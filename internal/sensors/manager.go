package sensors

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/aquamind/aquamind/internal/types"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// calibrationSamples is the number of raw reads averaged per calibration.
const calibrationSamples = 10

// calibration holds the persisted per-sensor offsets.
type calibration struct {
	TDSOffset  float64 `json:"tds_offset"`
	TurbOffset float64 `json:"turb_offset"`
}

// Manager converts raw device readings to physical units, applying
// calibration offsets and sanitizing values before they reach the scoring
// pipeline. Converted readings are clamped at zero; a non-finite value from
// a driver is replaced with zero and logged, so downstream statistics never
// see NaN or Inf.
type Manager struct {
	dev       Device
	simulated bool
	calibPath string
	calib     calibration
	logger    *zap.SugaredLogger
}

// NewManager wraps a device. calibPath names the JSON calibration file; it
// is loaded if present and rewritten on calibration.
func NewManager(dev Device, simulated bool, calibPath string, logger *zap.SugaredLogger) *Manager {
	m := &Manager{dev: dev, simulated: simulated, calibPath: calibPath, logger: logger}
	m.loadCalibration()
	return m
}

// SimulationMode reports whether the underlying device is simulated.
func (m *Manager) SimulationMode() bool {
	return m.simulated
}

// SetScenario switches the simulation scenario. It has no effect in
// hardware mode.
func (m *Manager) SetScenario(scenario string) error {
	sim, ok := m.dev.(*Simulated)
	if !ok {
		return fmt.Errorf("cannot change scenario in hardware mode")
	}
	sim.SetScenario(scenario)
	return nil
}

func (m *Manager) readRaw(channel types.Channel) float64 {
	raw, err := m.dev.ReadRaw(channel)
	if err != nil {
		m.logger.Warnf("%s read failed: %v", channel, err)
		return 0
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		m.logger.Warnf("%s returned non-finite value, substituting 0", channel)
		return 0
	}
	return raw
}

// ReadTDSPPM returns the TDS reading in parts per million.
func (m *Manager) ReadTDSPPM() float64 {
	ppm := m.readRaw(types.ChannelTDS)*TDSPPMPerCount + m.calib.TDSOffset
	return math.Max(0, round(ppm, 1))
}

// ReadTurbidityNTU returns the turbidity reading in NTU.
func (m *Manager) ReadTurbidityNTU() float64 {
	ntu := m.readRaw(types.ChannelTurbidity)*TurbNTUPerCount + m.calib.TurbOffset
	return math.Max(0, round(ntu, 2))
}

// ReadTemperatureC returns the water temperature in degrees Celsius.
func (m *Manager) ReadTemperatureC() float64 {
	return round(m.readRaw(types.ChannelTemperature), 1)
}

// ButtonPressed reports the calibration-button state.
func (m *Manager) ButtonPressed() bool {
	return m.dev.ButtonPressed()
}

// CalibrateTDS computes a new TDS offset from a solution of known ppm by
// averaging raw reads, then persists it.
func (m *Manager) CalibrateTDS(knownPPM float64) (float64, error) {
	avg := m.averageRaw(types.ChannelTDS)
	m.calib.TDSOffset = knownPPM - avg*TDSPPMPerCount
	m.logger.Infof("TDS calibrated: offset = %.1f ppm", m.calib.TDSOffset)
	return m.calib.TDSOffset, m.saveCalibration()
}

// CalibrateTurbidity computes a new turbidity offset from a solution of
// known NTU (0 for clear water), then persists it.
func (m *Manager) CalibrateTurbidity(knownNTU float64) (float64, error) {
	avg := m.averageRaw(types.ChannelTurbidity)
	m.calib.TurbOffset = knownNTU - avg*TurbNTUPerCount
	m.logger.Infof("turbidity calibrated: offset = %.2f NTU", m.calib.TurbOffset)
	return m.calib.TurbOffset, m.saveCalibration()
}

func (m *Manager) averageRaw(channel types.Channel) float64 {
	readings := make([]float64, calibrationSamples)
	for i := range readings {
		readings[i] = m.readRaw(channel)
	}
	return stat.Mean(readings, nil)
}

func (m *Manager) loadCalibration() {
	if m.calibPath == "" {
		return
	}
	data, err := os.ReadFile(m.calibPath)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warnf("could not read calibration file %s: %v", m.calibPath, err)
		}
		return
	}
	if err := json.Unmarshal(data, &m.calib); err != nil {
		m.logger.Warnf("could not parse calibration file %s: %v", m.calibPath, err)
		m.calib = calibration{}
	}
}

func (m *Manager) saveCalibration() error {
	if m.calibPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(m.calib, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.calibPath, data, 0o644); err != nil {
		return fmt.Errorf("could not write calibration file %s: %w", m.calibPath, err)
	}
	return nil
}

// Close releases the underlying device.
func (m *Manager) Close() error {
	return m.dev.Close()
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
