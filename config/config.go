package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// TableConfig holds the default table rules handed to new sessions. A
// session may override any of these at creation; out-of-range values are
// clamped by the engine.
type TableConfig struct {
	DeckCount             int `json:"deck_count"`
	PenetrationPercent    int `json:"penetration_percent"`
	BurnCards             int `json:"burn_cards"`
	MaxSplits             int `json:"max_splits"`
	BetSpread             int `json:"bet_spread"`
	StartingBankrollUnits int `json:"starting_bankroll_units"`
}

// SessionsConfig holds session-lifecycle parameters.
type SessionsConfig struct {
	// TTLMin is how long an idle session survives before the sweep evicts it.
	TTLMin int `json:"ttl_min"`
	// SweepIntervalSec is how often the eviction sweep runs.
	SweepIntervalSec int `json:"sweep_interval_sec"`
	// MaxPerUser caps concurrent sessions for one authenticated user.
	MaxPerUser int `json:"max_per_user"`
}

// Config holds all configurable server parameters.
type Config struct {
	WSPort          int    `json:"ws_port"`
	NeonAuthBaseURL string `json:"neon_auth_base_url"`
	DatabaseURL     string `json:"-"` // env only, never from config.json

	Table    TableConfig    `json:"table"`
	Sessions SessionsConfig `json:"sessions"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		WSPort: 8080,
		Table: TableConfig{
			DeckCount:             6,
			PenetrationPercent:    75,
			BurnCards:             1,
			MaxSplits:             3,
			BetSpread:             8,
			StartingBankrollUnits: 100,
		},
		Sessions: SessionsConfig{
			TTLMin:           30,
			SweepIntervalSec: 60,
			MaxPerUser:       4,
		},
	}
}

// Load reads configuration from an optional config.json file,
// then applies environment variable overrides. Fields not set
// in either source retain their default values.
func Load() *Config {
	cfg := Defaults()

	// Try to load from config.json
	if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			log.Printf("Warning: failed to parse config.json: %v", err)
		}
	}

	// Environment variable overrides
	overrideInt(&cfg.WSPort, "WS_PORT")
	overrideString(&cfg.NeonAuthBaseURL, "NEON_AUTH_BASE_URL")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideInt(&cfg.Table.DeckCount, "TABLE_DECK_COUNT")
	overrideInt(&cfg.Table.PenetrationPercent, "TABLE_PENETRATION_PERCENT")
	overrideInt(&cfg.Table.BurnCards, "TABLE_BURN_CARDS")
	overrideInt(&cfg.Table.MaxSplits, "TABLE_MAX_SPLITS")
	overrideInt(&cfg.Table.BetSpread, "TABLE_BET_SPREAD")
	overrideInt(&cfg.Table.StartingBankrollUnits, "TABLE_STARTING_BANKROLL_UNITS")
	overrideInt(&cfg.Sessions.TTLMin, "SESSION_TTL_MIN")
	overrideInt(&cfg.Sessions.SweepIntervalSec, "SESSION_SWEEP_INTERVAL_SEC")
	overrideInt(&cfg.Sessions.MaxPerUser, "SESSION_MAX_PER_USER")

	return cfg
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
