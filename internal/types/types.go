// Package types defines the shared data structures used across the analyzer.
package types

import "time"

// Channel identifies a physical sensor channel.
type Channel int

const (
	ChannelTDS Channel = iota
	ChannelTurbidity
	ChannelTemperature
)

// String returns the channel name used in logs and history keys.
func (c Channel) String() string {
	switch c {
	case ChannelTDS:
		return "tds"
	case ChannelTurbidity:
		return "turbidity"
	case ChannelTemperature:
		return "temperature"
	}
	return "unknown"
}

// Verdict is the closed water-safety classification assigned independently
// by the score calculator and the rules engine.
type Verdict string

const (
	VerdictSafe    Verdict = "SAFE"
	VerdictCaution Verdict = "CAUTION"
	VerdictUnsafe  Verdict = "UNSAFE"
	VerdictError   Verdict = "ERROR"
)

// TrendDirection describes the direction of a channel's rolling trend.
type TrendDirection string

const (
	TrendUnknown TrendDirection = "unknown"
	TrendStable  TrendDirection = "stable"
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
)

// TrendReport summarizes the rolling window for one channel.
// Direction is unknown until the window holds at least three samples.
type TrendReport struct {
	Direction   TrendDirection `json:"direction" msgpack:"direction"`
	Magnitude   float64        `json:"magnitude" msgpack:"magnitude"`
	CVPercent   float64        `json:"cv_percent" msgpack:"cv_percent"`
	Stable      bool           `json:"stable" msgpack:"stable"`
	SampleCount int            `json:"samples" msgpack:"samples"`
}

// ScoreBreakdown details how the composite score was assembled.
type ScoreBreakdown struct {
	TDSRisk          float64 `json:"tds_risk" msgpack:"tds_risk"`
	TurbRisk         float64 `json:"turb_risk" msgpack:"turb_risk"`
	StabilityPenalty float64 `json:"stability_penalty" msgpack:"stability_penalty"`
	TDSWeight        float64 `json:"tds_weight" msgpack:"tds_weight"`
	TurbWeight       float64 `json:"turb_weight" msgpack:"turb_weight"`
}

// Readings holds the converted physical-unit measurements for one cycle.
type Readings struct {
	TDSPPM       float64 `json:"tds_ppm" msgpack:"tds_ppm"`
	TurbidityNTU float64 `json:"turbidity_ntu" msgpack:"turbidity_ntu"`
	TemperatureC float64 `json:"temperature_c" msgpack:"temperature_c"`
}

// Stability holds the per-channel and combined burst stability scores.
type Stability struct {
	TDS     float64 `json:"tds" msgpack:"tds"`
	Turb    float64 `json:"turb" msgpack:"turb"`
	Overall float64 `json:"overall" msgpack:"overall"`
}

// Trends carries the tracked trend reports for the burst-sampled channels.
type Trends struct {
	TDS       TrendReport `json:"tds" msgpack:"tds"`
	Turbidity TrendReport `json:"turbidity" msgpack:"turbidity"`
}

// RuleSummary is the rules-engine contribution to the merged record.
// Its verdict is independent of the composite-score verdict and the two
// may disagree; no reconciliation is performed.
type RuleSummary struct {
	Verdict        Verdict  `json:"verdict" msgpack:"verdict"`
	TriggeredCount int      `json:"triggered_count" msgpack:"triggered_count"`
	Actions        []string `json:"actions" msgpack:"actions"`
	PrimaryAction  string   `json:"primary_action" msgpack:"primary_action"`
}

// RawBursts preserves the individual burst means for diagnostics.
type RawBursts struct {
	TDSBursts  []float64 `json:"tds_bursts" msgpack:"tds_bursts"`
	TurbBursts []float64 `json:"turb_bursts" msgpack:"turb_bursts"`
}

// AnalysisRecord is the flat, fully-populated result of one analysis cycle,
// serializable for the companion-app link.
type AnalysisRecord struct {
	ID             string         `json:"id" msgpack:"id"`
	Timestamp      time.Time      `json:"timestamp" msgpack:"timestamp"`
	Readings       Readings       `json:"readings" msgpack:"readings"`
	Stability      Stability      `json:"stability" msgpack:"stability"`
	Trends         Trends         `json:"trends" msgpack:"trends"`
	JalScore       float64        `json:"jal_score" msgpack:"jal_score"`
	Verdict        Verdict        `json:"verdict" msgpack:"verdict"`
	VerdictMessage string         `json:"verdict_message" msgpack:"verdict_message"`
	Breakdown      ScoreBreakdown `json:"breakdown" msgpack:"breakdown"`
	Profile        string         `json:"profile" msgpack:"profile"`
	SeasonalAlert  string         `json:"seasonal_alert" msgpack:"seasonal_alert"`
	StrictMode     bool           `json:"strict_mode" msgpack:"strict_mode"`
	SimulationMode bool           `json:"simulation_mode" msgpack:"simulation_mode"`
	Rules          RuleSummary    `json:"rules" msgpack:"rules"`
	RawData        RawBursts      `json:"raw_data" msgpack:"raw_data"`
}
