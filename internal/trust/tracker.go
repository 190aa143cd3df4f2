package trust

import (
	"math"

	"github.com/aquamind/aquamind/internal/types"
	"gonum.org/v1/gonum/stat"
)

// DefaultWindowSize is the number of recent burst means kept per channel.
const DefaultWindowSize = 10

// Thresholds for trend classification.
const (
	// slopeStableLimit is the absolute OLS slope below which a trend is
	// considered flat.
	slopeStableLimit = 0.5

	// cvStableLimit is the coefficient-of-variation percentage below which
	// a channel is considered stable.
	cvStableLimit = 15.0
)

// Tracker maintains a bounded rolling history of burst means per channel and
// derives drift direction and variation. It is mutated only by the
// orchestrator's sequential calls.
type Tracker struct {
	windowSize int
	history    map[types.Channel][]float64
}

// NewTracker creates a Tracker. A non-positive window size selects the
// default.
func NewTracker(windowSize int) *Tracker {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &Tracker{
		windowSize: windowSize,
		history: map[types.Channel][]float64{
			types.ChannelTDS:         {},
			types.ChannelTurbidity:   {},
			types.ChannelTemperature: {},
		},
	}
}

// AddReading appends a burst mean to the channel's history, evicting the
// oldest entry once the window is full. Untracked channels are ignored.
func (t *Tracker) AddReading(channel types.Channel, value float64) {
	hist, ok := t.history[channel]
	if !ok {
		return
	}
	hist = append(hist, value)
	if len(hist) > t.windowSize {
		hist = hist[1:]
	}
	t.history[channel] = hist
}

// Trend analyzes the channel's rolling window. Direction is unknown until at
// least three samples have been recorded.
func (t *Tracker) Trend(channel types.Channel) types.TrendReport {
	hist := t.history[channel]
	if len(hist) < 3 {
		return types.TrendReport{
			Direction:   types.TrendUnknown,
			Stable:      true,
			SampleCount: len(hist),
		}
	}

	xs := make([]float64, len(hist))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, hist, nil, false)

	direction := types.TrendStable
	switch {
	case math.Abs(slope) < slopeStableLimit:
		direction = types.TrendStable
	case slope > 0:
		direction = types.TrendRising
	default:
		direction = types.TrendFalling
	}

	// A zero mean forces cv to 0 rather than dividing by zero.
	mean := stat.Mean(hist, nil)
	cv := 0.0
	if mean != 0 {
		cv = stat.PopStdDev(hist, nil) / math.Abs(mean) * 100
	}

	return types.TrendReport{
		Direction:   direction,
		Magnitude:   round2(math.Abs(slope)),
		CVPercent:   round1(cv),
		Stable:      cv < cvStableLimit,
		SampleCount: len(hist),
	}
}

// Clear resets all channel histories to empty. Called on profile switches
// and explicit resets only.
func (t *Tracker) Clear() {
	for channel := range t.history {
		t.history[channel] = []float64{}
	}
}
