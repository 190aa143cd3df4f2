package config

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements Provider for SQLite profile databases.
//
// Expected schema:
//
//	settings(key TEXT PRIMARY KEY, value TEXT)            -- key 'default_profile'
//	profiles(code TEXT PRIMARY KEY, name TEXT, zone TEXT,
//	         description TEXT, contaminants TEXT,
//	         tds_weight REAL, turb_weight REAL, temp_weight REAL,
//	         strict_mode INTEGER,
//	         tds_safe REAL, tds_caution REAL, tds_unsafe REAL,
//	         turb_safe REAL, turb_caution REAL, turb_unsafe REAL)
//	seasonal_rules(profile_code TEXT, seq INTEGER, season TEXT,
//	               months TEXT, tds_weight_modifier REAL,
//	               turb_weight_modifier REAL, alert TEXT)
//
// Contaminant and month lists are comma-separated. The threshold block is
// treated as present only when all six columns are non-NULL.
type SQLiteProvider struct {
	db *sql.DB
}

// NewSQLiteProvider opens a profile database.
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening profile database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to profile database: %w", err)
	}

	return &SQLiteProvider{db: db}, nil
}

// LoadConfig loads the complete profile table from the database.
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{Profiles: make(map[string]RegionProfile)}

	var defaultProfile sql.NullString
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'default_profile'`).Scan(&defaultProfile)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("error reading settings: %w", err)
	}
	if defaultProfile.Valid {
		config.DefaultProfile = defaultProfile.String
	}

	if err := s.loadProfiles(config); err != nil {
		return nil, err
	}
	if err := s.loadSeasonalRules(config); err != nil {
		return nil, err
	}

	return config, nil
}

func (s *SQLiteProvider) loadProfiles(config *ConfigData) error {
	rows, err := s.db.Query(
		`SELECT code, name, zone, description, contaminants,
		        tds_weight, turb_weight, temp_weight, strict_mode,
		        tds_safe, tds_caution, tds_unsafe,
		        turb_safe, turb_caution, turb_unsafe
		 FROM profiles`)
	if err != nil {
		return fmt.Errorf("error querying profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			code                               string
			name, zone, description, contams   sql.NullString
			tdsW, turbW, tempW                 sql.NullFloat64
			strict                             sql.NullBool
			tdsSafe, tdsCaution, tdsUnsafe     sql.NullFloat64
			turbSafe, turbCaution, turbUnsafe  sql.NullFloat64
		)

		err := rows.Scan(&code, &name, &zone, &description, &contams,
			&tdsW, &turbW, &tempW, &strict,
			&tdsSafe, &tdsCaution, &tdsUnsafe,
			&turbSafe, &turbCaution, &turbUnsafe)
		if err != nil {
			return fmt.Errorf("error scanning profile row: %w", err)
		}

		profile := RegionProfile{
			Name:               name.String,
			Zone:               zone.String,
			Description:        description.String,
			CommonContaminants: splitList(contams.String),
			TDSWeight:          nullableFloat(tdsW),
			TurbWeight:         nullableFloat(turbW),
			TempWeight:         nullableFloat(tempW),
		}
		if strict.Valid {
			v := strict.Bool
			profile.StrictMode = &v
		}
		if tdsSafe.Valid && tdsCaution.Valid && tdsUnsafe.Valid &&
			turbSafe.Valid && turbCaution.Valid && turbUnsafe.Valid {
			profile.Thresholds = &ThresholdsData{
				TDSSafe:     tdsSafe.Float64,
				TDSCaution:  tdsCaution.Float64,
				TDSUnsafe:   tdsUnsafe.Float64,
				TurbSafe:    turbSafe.Float64,
				TurbCaution: turbCaution.Float64,
				TurbUnsafe:  turbUnsafe.Float64,
			}
		}

		config.Profiles[code] = profile
	}

	return rows.Err()
}

func (s *SQLiteProvider) loadSeasonalRules(config *ConfigData) error {
	rows, err := s.db.Query(
		`SELECT profile_code, season, months,
		        tds_weight_modifier, turb_weight_modifier, alert
		 FROM seasonal_rules
		 ORDER BY profile_code, seq`)
	if err != nil {
		return fmt.Errorf("error querying seasonal rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			code, season, months string
			tdsMod, turbMod      sql.NullFloat64
			alert                sql.NullString
		)

		if err := rows.Scan(&code, &season, &months, &tdsMod, &turbMod, &alert); err != nil {
			return fmt.Errorf("error scanning seasonal rule row: %w", err)
		}

		profile, ok := config.Profiles[code]
		if !ok {
			continue
		}

		rule := SeasonalRule{
			Season:             season,
			Months:             parseMonths(months),
			TDSWeightModifier:  1.0,
			TurbWeightModifier: 1.0,
			Alert:              alert.String,
		}
		if tdsMod.Valid {
			rule.TDSWeightModifier = tdsMod.Float64
		}
		if turbMod.Valid {
			rule.TurbWeightModifier = turbMod.Float64
		}

		profile.Seasonal = append(profile.Seasonal, rule)
		config.Profiles[code] = profile
	}

	return rows.Err()
}

// Close closes the database connection.
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseMonths(v string) []int {
	var months []int
	for _, p := range strings.Split(v, ",") {
		m, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || m < 1 || m > 12 {
			continue
		}
		months = append(months, m)
	}
	return months
}
