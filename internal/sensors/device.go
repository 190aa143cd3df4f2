// Package sensors provides the hardware abstraction layer for the TDS,
// turbidity and temperature probes, with a simulated driver for running
// without hardware and a serial/TCP gateway driver for the real ADC board.
package sensors

import "github.com/aquamind/aquamind/internal/types"

// ADC range of the gateway board's converter.
const (
	ADCMax = 1023

	// Physical-unit conversion for the analog channels: the full ADC range
	// maps to 0-1000 ppm for TDS and 0-20 NTU for turbidity.
	TDSPPMPerCount  = 1000.0 / 1023.0
	TurbNTUPerCount = 20.0 / 1023.0
)

// Device is the sensor capability interface. Exactly one variant is selected
// at startup; callers never switch drivers per call.
//
// ReadRaw returns ADC counts (0-1023) for the TDS and turbidity channels and
// degrees Celsius for the temperature channel, which is digital.
type Device interface {
	ReadRaw(channel types.Channel) (float64, error)
	ButtonPressed() bool
	Close() error
}
