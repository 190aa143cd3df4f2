package trust

import (
	"reflect"
	"testing"
	"time"

	"github.com/aquamind/aquamind/pkg/config"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func testConfigData() *config.ConfigData {
	return &config.ConfigData{
		DefaultProfile: "jabalpur",
		Profiles: map[string]config.RegionProfile{
			"jabalpur": {
				Name:               "Jabalpur, Madhya Pradesh",
				Zone:               "Central",
				CommonContaminants: []string{"hardness", "iron"},
				TDSWeight:          floatPtr(0.6),
				TurbWeight:         floatPtr(0.3),
				TempWeight:         floatPtr(0.1),
				StrictMode:         boolPtr(false),
				Thresholds: &config.ThresholdsData{
					TDSSafe: 300, TDSCaution: 500, TDSUnsafe: 900,
					TurbSafe: 1, TurbCaution: 5, TurbUnsafe: 10,
				},
				Seasonal: []config.SeasonalRule{
					{
						Season:             "monsoon",
						Months:             []int{6, 7, 8, 9},
						TDSWeightModifier:  1.0,
						TurbWeightModifier: 1.3,
						Alert:              "Monsoon season: elevated turbidity risk.",
					},
					{
						Season:             "summer",
						Months:             []int{4, 5},
						TDSWeightModifier:  1.1,
						TurbWeightModifier: 1.0,
						Alert:              "Summer season: concentrated dissolved solids.",
					},
				},
			},
			"DELHI": {
				Name: "Delhi NCR",
				Zone: "North",
			},
		},
	}
}

func TestStoreSelect(t *testing.T) {
	store := NewStore(testConfigData())

	if _, ok := store.Select("ATLANTIS"); ok {
		t.Error("expected unknown region to fail selection")
	}

	// Lookup is case-insensitive on both sides.
	active, ok := store.Select("Jabalpur")
	if !ok {
		t.Fatal("expected mixed-case selection to succeed")
	}
	if active.Info().Code != "JABALPUR" {
		t.Errorf("expected normalized code JABALPUR, got %s", active.Info().Code)
	}
}

func TestStoreDefault(t *testing.T) {
	store := NewStore(testConfigData())
	active := store.Default()
	if active.Info().Name != "Jabalpur, Madhya Pradesh" {
		t.Errorf("expected configured default profile, got %s", active.Info().Name)
	}
}

func TestStoreDefaultFallback(t *testing.T) {
	for _, data := range []*config.ConfigData{nil, {}, {DefaultProfile: "MISSING"}} {
		active := NewStore(data).Default()
		info := active.Info()
		if info.Code != "DEFAULT" || info.Name != "Built-in defaults" {
			t.Errorf("expected built-in fallback, got %+v", info)
		}
		if active.Weights() != (Weights{TDS: DefaultTDSWeight, Turbidity: DefaultTurbWeight, Temperature: DefaultTempWeight}) {
			t.Errorf("expected default weights, got %+v", active.Weights())
		}
		if !active.StrictMode() {
			t.Error("expected strict mode on by default")
		}
	}
}

func TestStoreList(t *testing.T) {
	store := NewStore(testConfigData())
	want := []string{"DELHI", "JABALPUR"}
	if got := store.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected sorted codes %v, got %v", want, got)
	}
}

func TestActiveProfileResolution(t *testing.T) {
	store := NewStore(testConfigData())

	full, _ := store.Select("JABALPUR")
	if w := full.Weights(); w.TDS != 0.6 || w.Turbidity != 0.3 || w.Temperature != 0.1 {
		t.Errorf("expected configured weights, got %+v", w)
	}
	if th := full.Thresholds(); th.TDSUnsafe != 900 || th.TurbUnsafe != 10 {
		t.Errorf("expected configured thresholds, got %+v", th)
	}
	if full.StrictMode() {
		t.Error("expected strict mode off for JABALPUR test fixture")
	}

	// DELHI omits every optional field and must resolve to the defaults.
	minimal, _ := store.Select("DELHI")
	if w := minimal.Weights(); w.TDS != DefaultTDSWeight || w.Turbidity != DefaultTurbWeight {
		t.Errorf("expected default weights, got %+v", w)
	}
	if th := minimal.Thresholds(); th.TDSSafe != DefaultTDSSafe || th.TurbCaution != DefaultTurbCaution {
		t.Errorf("expected default thresholds, got %+v", th)
	}
	if !minimal.StrictMode() {
		t.Error("expected strict mode to default on")
	}
}

func TestSeasonalModifier(t *testing.T) {
	store := NewStore(testConfigData())
	active, _ := store.Select("JABALPUR")

	tests := []struct {
		month      time.Month
		wantSeason string
		wantTDS    float64
		wantTurb   float64
	}{
		{time.July, "monsoon", 1.0, 1.3},
		{time.April, "summer", 1.1, 1.0},
		{time.January, "normal", 1.0, 1.0},
	}
	for _, tt := range tests {
		mod := active.SeasonalModifier(tt.month)
		if mod.Season != tt.wantSeason || mod.TDSModifier != tt.wantTDS || mod.TurbModifier != tt.wantTurb {
			t.Errorf("month %s: expected %s %.1f/%.1f, got %s %.1f/%.1f",
				tt.month, tt.wantSeason, tt.wantTDS, tt.wantTurb,
				mod.Season, mod.TDSModifier, mod.TurbModifier)
		}
	}

	if mod := active.SeasonalModifier(time.January); mod.Alert != "" {
		t.Errorf("expected no alert outside any season, got %q", mod.Alert)
	}
}

func TestInfoFallsBackToCode(t *testing.T) {
	store := NewStore(&config.ConfigData{
		Profiles: map[string]config.RegionProfile{"NAMELESS": {}},
	})
	active, _ := store.Select("NAMELESS")
	if active.Info().Name != "NAMELESS" {
		t.Errorf("expected code as display name, got %s", active.Info().Name)
	}
}
