package trust

import (
	"math"
	"testing"
)

// scriptedAccessor returns the given values in order, repeating the last one
// once exhausted.
func scriptedAccessor(values ...float64) Accessor {
	i := 0
	return func() float64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}

func fastParams(bursts, samplesPerBurst int) AcquireParams {
	return AcquireParams{Bursts: bursts, SamplesPerBurst: samplesPerBurst}
}

func TestReadWithValidation(t *testing.T) {
	tests := []struct {
		name          string
		params        AcquireParams
		values        []float64
		wantMean      float64
		wantStability float64
		epsilon       float64
	}{
		{
			name:          "constant signal is fully stable",
			params:        fastParams(3, 5),
			values:        []float64{100},
			wantMean:      100,
			wantStability: 100,
			epsilon:       1e-9,
		},
		{
			name:          "single burst cannot compute variance",
			params:        fastParams(1, 5),
			values:        []float64{42, 44, 46, 44, 42},
			wantMean:      43.6,
			wantStability: 100,
			epsilon:       1e-9,
		},
		{
			name:          "zero mean degenerate guard",
			params:        fastParams(3, 1),
			values:        []float64{0},
			wantMean:      0,
			wantStability: 100,
			epsilon:       1e-9,
		},
		{
			// Burst means 90, 100, 110: population std dev 8.165 on a
			// mean of 100 is 8.165% variation, a 40.8 point penalty.
			name:          "noisy bursts are penalized",
			params:        fastParams(3, 1),
			values:        []float64{90, 100, 110},
			wantMean:      100,
			wantStability: 59.2,
			epsilon:       0.05,
		},
		{
			name:          "extreme variation clamps to zero",
			params:        fastParams(3, 1),
			values:        []float64{1, 100, 1000},
			wantMean:      367,
			wantStability: 0,
			epsilon:       0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewAcquirer(tt.params).ReadWithValidation(scriptedAccessor(tt.values...))

			if math.Abs(result.Mean-tt.wantMean) > tt.epsilon {
				t.Errorf("mean: expected %.3f, got %.3f", tt.wantMean, result.Mean)
			}
			if math.Abs(result.Stability-tt.wantStability) > tt.epsilon {
				t.Errorf("stability: expected %.1f, got %.1f", tt.wantStability, result.Stability)
			}
			if len(result.BurstMeans) != tt.params.Bursts {
				t.Errorf("expected %d burst means, got %d", tt.params.Bursts, len(result.BurstMeans))
			}
		})
	}
}

func TestReadWithValidationBurstMeans(t *testing.T) {
	// Two bursts of two samples each: means 10 and 20.
	acq := NewAcquirer(fastParams(2, 2))
	result := acq.ReadWithValidation(scriptedAccessor(8, 12, 18, 22))

	want := []float64{10, 20}
	for i, m := range result.BurstMeans {
		if math.Abs(m-want[i]) > 1e-9 {
			t.Errorf("burst %d: expected %.1f, got %.1f", i, want[i], m)
		}
	}
	if math.Abs(result.Mean-15) > 1e-9 {
		t.Errorf("expected overall mean 15, got %.3f", result.Mean)
	}
}

func TestNewAcquirerDefaults(t *testing.T) {
	acq := NewAcquirer(AcquireParams{})
	defaults := DefaultAcquireParams()
	if acq.params.Bursts != defaults.Bursts || acq.params.SamplesPerBurst != defaults.SamplesPerBurst {
		t.Errorf("expected default burst counts, got %+v", acq.params)
	}
}

func TestStabilityNeverExceedsBounds(t *testing.T) {
	for _, values := range [][]float64{
		{1, 2, 3},
		{0.001, 1000, 0.001},
		{5, 5, 5.0001},
	} {
		result := NewAcquirer(fastParams(3, 1)).ReadWithValidation(scriptedAccessor(values...))
		if result.Stability < 0 || result.Stability > 100 {
			t.Errorf("stability %.2f out of [0,100] for %v", result.Stability, values)
		}
	}
}
