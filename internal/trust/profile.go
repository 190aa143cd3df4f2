package trust

import (
	"sort"
	"strings"
	"time"

	"github.com/aquamind/aquamind/pkg/config"
)

// Documented defaults applied when a loaded profile omits a field, and used
// wholesale when no profile table could be loaded.
const (
	DefaultTDSWeight  = 0.5
	DefaultTurbWeight = 0.4
	DefaultTempWeight = 0.1

	DefaultTDSSafe     = 300
	DefaultTDSCaution  = 500
	DefaultTDSUnsafe   = 900
	DefaultTurbSafe    = 1
	DefaultTurbCaution = 5
	DefaultTurbUnsafe  = 10
)

// Weights are the resolved per-parameter scoring weights. The sum is
// arbitrary; the score calculator renormalizes.
type Weights struct {
	TDS         float64
	Turbidity   float64
	Temperature float64
}

// Thresholds are the resolved per-region scoring thresholds.
type Thresholds struct {
	TDSSafe     float64
	TDSCaution  float64
	TDSUnsafe   float64
	TurbSafe    float64
	TurbCaution float64
	TurbUnsafe  float64
}

// SeasonalModifier is the seasonal weight adjustment for a given month.
// The neutral modifier (1.0, 1.0, no alert) applies outside any season.
type SeasonalModifier struct {
	Season       string
	TDSModifier  float64
	TurbModifier float64
	Alert        string
}

// ProfileInfo describes the active profile for display and result records.
type ProfileInfo struct {
	Code               string
	Name               string
	Zone               string
	Description        string
	CommonContaminants []string
}

// Store holds the loaded region-profile table. Selection produces immutable
// ActiveProfile handles; the table itself is never mutated after load.
type Store struct {
	defaultProfile string
	profiles       map[string]config.RegionProfile
}

// NewStore creates a Store over loaded configuration data. A nil ConfigData
// yields an empty table where every selection fails and Default falls back
// to the built-in defaults.
func NewStore(data *config.ConfigData) *Store {
	s := &Store{profiles: map[string]config.RegionProfile{}}
	if data != nil {
		s.defaultProfile = strings.ToUpper(data.DefaultProfile)
		for code, p := range data.Profiles {
			s.profiles[strings.ToUpper(code)] = p
		}
	}
	return s
}

// Select returns a new active-profile handle for the named region, or
// (nil, false) when the region is unknown. Callers keep their previous
// handle on failure; nothing is mutated.
func (s *Store) Select(name string) (*ActiveProfile, bool) {
	code := strings.ToUpper(name)
	p, ok := s.profiles[code]
	if !ok {
		return nil, false
	}
	return &ActiveProfile{code: code, profile: p}, true
}

// Default returns the table's default profile, or a handle over built-in
// defaults when the table is empty or names an unknown default.
func (s *Store) Default() *ActiveProfile {
	if active, ok := s.Select(s.defaultProfile); ok {
		return active
	}
	return &ActiveProfile{code: "DEFAULT", profile: config.RegionProfile{Name: "Built-in defaults"}}
}

// List returns the available profile codes in sorted order.
func (s *Store) List() []string {
	codes := make([]string, 0, len(s.profiles))
	for code := range s.profiles {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ActiveProfile is an immutable snapshot of one selected region profile.
// Switching profiles replaces the handle; it never mutates in place.
type ActiveProfile struct {
	code    string
	profile config.RegionProfile
}

// Weights returns the profile's sensor weights, with documented defaults for
// omitted fields.
func (a *ActiveProfile) Weights() Weights {
	w := Weights{
		TDS:         DefaultTDSWeight,
		Turbidity:   DefaultTurbWeight,
		Temperature: DefaultTempWeight,
	}
	if a.profile.TDSWeight != nil {
		w.TDS = *a.profile.TDSWeight
	}
	if a.profile.TurbWeight != nil {
		w.Turbidity = *a.profile.TurbWeight
	}
	if a.profile.TempWeight != nil {
		w.Temperature = *a.profile.TempWeight
	}
	return w
}

// Thresholds returns the profile's thresholds, or the documented defaults
// when the profile omits the block.
func (a *ActiveProfile) Thresholds() Thresholds {
	if t := a.profile.Thresholds; t != nil {
		return Thresholds{
			TDSSafe:     t.TDSSafe,
			TDSCaution:  t.TDSCaution,
			TDSUnsafe:   t.TDSUnsafe,
			TurbSafe:    t.TurbSafe,
			TurbCaution: t.TurbCaution,
			TurbUnsafe:  t.TurbUnsafe,
		}
	}
	return Thresholds{
		TDSSafe:     DefaultTDSSafe,
		TDSCaution:  DefaultTDSCaution,
		TDSUnsafe:   DefaultTDSUnsafe,
		TurbSafe:    DefaultTurbSafe,
		TurbCaution: DefaultTurbCaution,
		TurbUnsafe:  DefaultTurbUnsafe,
	}
}

// SeasonalModifier scans the profile's seasonal rules for the first one
// whose month set contains the given calendar month. List order is the
// tie-break; no match yields the neutral modifier.
func (a *ActiveProfile) SeasonalModifier(month time.Month) SeasonalModifier {
	for _, rule := range a.profile.Seasonal {
		for _, m := range rule.Months {
			if time.Month(m) == month {
				return SeasonalModifier{
					Season:       rule.Season,
					TDSModifier:  rule.TDSWeightModifier,
					TurbModifier: rule.TurbWeightModifier,
					Alert:        rule.Alert,
				}
			}
		}
	}
	return SeasonalModifier{Season: "normal", TDSModifier: 1.0, TurbModifier: 1.0}
}

// StrictMode reports whether the profile requests strict advisories.
// Defaults to true when unspecified.
func (a *ActiveProfile) StrictMode() bool {
	if a.profile.StrictMode != nil {
		return *a.profile.StrictMode
	}
	return true
}

// Info returns display metadata for the profile.
func (a *ActiveProfile) Info() ProfileInfo {
	name := a.profile.Name
	if name == "" {
		name = a.code
	}
	return ProfileInfo{
		Code:               a.code,
		Name:               name,
		Zone:               a.profile.Zone,
		Description:        a.profile.Description,
		CommonContaminants: a.profile.CommonContaminants,
	}
}
