// Package trust implements the scoring pipeline: burst acquisition with a
// derived stability score, rolling trend tracking, region-profile selection,
// and the composite water-quality score.
package trust

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Accessor returns one sensor reading in physical units per invocation.
type Accessor func() float64

// AcquireParams configures the burst-sampling protocol.
type AcquireParams struct {
	// Bursts is the number of burst readings taken per acquisition.
	Bursts int

	// SamplesPerBurst is the number of raw samples averaged into one burst.
	SamplesPerBurst int

	// BurstDelay separates consecutive bursts.
	BurstDelay time.Duration

	// SampleDelay separates consecutive samples within a burst.
	SampleDelay time.Duration
}

// DefaultAcquireParams returns the standard burst protocol parameters.
func DefaultAcquireParams() AcquireParams {
	return AcquireParams{
		Bursts:          3,
		SamplesPerBurst: 5,
		BurstDelay:      200 * time.Millisecond,
		SampleDelay:     10 * time.Millisecond,
	}
}

// BurstResult is the outcome of one burst acquisition.
type BurstResult struct {
	// Mean is the noise-reduced reading: the average of the burst means.
	Mean float64

	// Stability is a 0-100 confidence score derived from burst-to-burst
	// variance. 100 means the bursts agreed exactly.
	Stability float64

	// BurstMeans holds the individual burst means, in acquisition order.
	BurstMeans []float64
}

// Acquirer runs the burst-sampling protocol over a scalar sensor accessor.
type Acquirer struct {
	params AcquireParams
}

// NewAcquirer creates an Acquirer. Non-positive burst or sample counts are
// replaced with the defaults.
func NewAcquirer(params AcquireParams) *Acquirer {
	defaults := DefaultAcquireParams()
	if params.Bursts <= 0 {
		params.Bursts = defaults.Bursts
	}
	if params.SamplesPerBurst <= 0 {
		params.SamplesPerBurst = defaults.SamplesPerBurst
	}
	return &Acquirer{params: params}
}

// ReadWithValidation takes burst samples from the accessor and derives the
// stability score. The acquisition runs to completion: sampling blocks for
// the configured inter-sample and inter-burst delays and is not preempted.
//
// With fewer than two bursts, or an overall mean of exactly zero, no
// meaningful variance exists and stability is fixed at 100.
func (a *Acquirer) ReadWithValidation(accessor Accessor) BurstResult {
	burstMeans := make([]float64, 0, a.params.Bursts)

	samples := make([]float64, a.params.SamplesPerBurst)
	for i := 0; i < a.params.Bursts; i++ {
		for j := 0; j < a.params.SamplesPerBurst; j++ {
			samples[j] = accessor()
			if a.params.SampleDelay > 0 {
				time.Sleep(a.params.SampleDelay)
			}
		}
		burstMeans = append(burstMeans, stat.Mean(samples, nil))

		if i < a.params.Bursts-1 && a.params.BurstDelay > 0 {
			time.Sleep(a.params.BurstDelay)
		}
	}

	overallMean := stat.Mean(burstMeans, nil)

	if len(burstMeans) < 2 || overallMean == 0 {
		return BurstResult{Mean: overallMean, Stability: 100, BurstMeans: burstMeans}
	}

	// 5x penalty factor: 10% burst-to-burst variation collapses the
	// stability score to roughly 50.
	stdDev := stat.PopStdDev(burstMeans, nil)
	variationPercent := stdDev / overallMean * 100
	stability := clamp(round1(100-variationPercent*5), 0, 100)

	return BurstResult{Mean: overallMean, Stability: stability, BurstMeans: burstMeans}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
