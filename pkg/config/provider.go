// Package config loads region-profile configuration for the analyzer.
//
// A region profile bundles the sensor weights, thresholds, seasonal
// adjustments and strict-mode flag that adapt scoring to local water
// conditions. Profiles are keyed by an uppercase region code and can be
// loaded from a YAML file or a read-only SQLite database.
package config

// RegionProfile is one named configuration bundle. Weight, threshold and
// strict-mode fields are pointers so that an omitted field can fall back to
// the analyzer's documented defaults instead of a zero value.
type RegionProfile struct {
	Name               string
	Zone               string
	Description        string
	CommonContaminants []string
	TDSWeight          *float64
	TurbWeight         *float64
	TempWeight         *float64
	StrictMode         *bool
	Thresholds         *ThresholdsData
	Seasonal           []SeasonalRule
}

// ThresholdsData holds the per-region scoring thresholds. The block is
// either fully specified or omitted as a whole.
type ThresholdsData struct {
	TDSSafe     float64
	TDSCaution  float64
	TDSUnsafe   float64
	TurbSafe    float64
	TurbCaution float64
	TurbUnsafe  float64
}

// SeasonalRule adjusts scoring weights during the listed calendar months
// (1-12). Rules are ordered; the first rule matching the current month wins.
// Modifiers default to 1.0 when omitted from the source.
type SeasonalRule struct {
	Season             string
	Months             []int
	TDSWeightModifier  float64
	TurbWeightModifier float64
	Alert              string
}

// ConfigData is the loaded profile table.
type ConfigData struct {
	DefaultProfile string
	Profiles       map[string]RegionProfile
}

// Provider is the interface for configuration backends.
type Provider interface {
	// LoadConfig loads the complete profile table.
	LoadConfig() (*ConfigData, error)

	// Close releases any resources held by the provider.
	Close() error
}
