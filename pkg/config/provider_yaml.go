package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements Provider for YAML profile files.
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider.
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{filename: filename}
}

// LoadConfig loads the complete profile table from the YAML file.
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig struct {
		DefaultProfile string                 `yaml:"default_profile,omitempty"`
		Profiles       map[string]profileYAML `yaml:"profiles"`
	}

	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, fmt.Errorf("error parsing profiles file %s: %w", y.filename, err)
	}

	config := &ConfigData{
		DefaultProfile: yamlConfig.DefaultProfile,
		Profiles:       make(map[string]RegionProfile, len(yamlConfig.Profiles)),
	}

	for code, p := range yamlConfig.Profiles {
		config.Profiles[code] = p.toRegionProfile()
	}

	return config, nil
}

// Close is a no-op for the YAML provider.
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with tags for parsing the profiles file format.
type profileYAML struct {
	Name               string          `yaml:"name,omitempty"`
	Zone               string          `yaml:"zone,omitempty"`
	Description        string          `yaml:"description,omitempty"`
	CommonContaminants []string        `yaml:"common_contaminants,omitempty"`
	TDSWeight          *float64        `yaml:"tds_weight,omitempty"`
	TurbWeight         *float64        `yaml:"turb_weight,omitempty"`
	TempWeight         *float64        `yaml:"temp_weight,omitempty"`
	StrictMode         *bool           `yaml:"strict_mode,omitempty"`
	Thresholds         *thresholdsYAML `yaml:"thresholds,omitempty"`
	Seasonal           []seasonalYAML  `yaml:"seasonal_adjustments,omitempty"`
}

type thresholdsYAML struct {
	TDSSafe     float64 `yaml:"tds_safe"`
	TDSCaution  float64 `yaml:"tds_caution"`
	TDSUnsafe   float64 `yaml:"tds_unsafe"`
	TurbSafe    float64 `yaml:"turb_safe"`
	TurbCaution float64 `yaml:"turb_caution"`
	TurbUnsafe  float64 `yaml:"turb_unsafe"`
}

type seasonalYAML struct {
	Season             string   `yaml:"season,omitempty"`
	Months             []int    `yaml:"months"`
	TDSWeightModifier  *float64 `yaml:"tds_weight_modifier,omitempty"`
	TurbWeightModifier *float64 `yaml:"turb_weight_modifier,omitempty"`
	Alert              string   `yaml:"alert,omitempty"`
}

func (p profileYAML) toRegionProfile() RegionProfile {
	profile := RegionProfile{
		Name:               p.Name,
		Zone:               p.Zone,
		Description:        p.Description,
		CommonContaminants: p.CommonContaminants,
		TDSWeight:          p.TDSWeight,
		TurbWeight:         p.TurbWeight,
		TempWeight:         p.TempWeight,
		StrictMode:         p.StrictMode,
	}

	if p.Thresholds != nil {
		profile.Thresholds = &ThresholdsData{
			TDSSafe:     p.Thresholds.TDSSafe,
			TDSCaution:  p.Thresholds.TDSCaution,
			TDSUnsafe:   p.Thresholds.TDSUnsafe,
			TurbSafe:    p.Thresholds.TurbSafe,
			TurbCaution: p.Thresholds.TurbCaution,
			TurbUnsafe:  p.Thresholds.TurbUnsafe,
		}
	}

	for _, s := range p.Seasonal {
		rule := SeasonalRule{
			Season:             s.Season,
			Months:             s.Months,
			TDSWeightModifier:  1.0,
			TurbWeightModifier: 1.0,
			Alert:              s.Alert,
		}
		if s.TDSWeightModifier != nil {
			rule.TDSWeightModifier = *s.TDSWeightModifier
		}
		if s.TurbWeightModifier != nil {
			rule.TurbWeightModifier = *s.TurbWeightModifier
		}
		profile.Seasonal = append(profile.Seasonal, rule)
	}

	return profile
}
