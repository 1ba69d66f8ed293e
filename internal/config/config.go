package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string   `mapstructure:"PORT"`
	Env               string   `mapstructure:"ENV"`
	DatabaseURL       string   `mapstructure:"DATABASE_URL"`
	DBMaxConns        int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns        int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS      float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int      `mapstructure:"RATE_LIMIT_BURST"`
	ScorerCommand     string   `mapstructure:"SCORER_COMMAND"`
	ScorerScript      string   `mapstructure:"SCORER_SCRIPT"`
	ScorerTimeoutSecs int      `mapstructure:"SCORER_TIMEOUT_SECS"`
	ScorerMaxProcs    int      `mapstructure:"SCORER_MAX_PROCS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("SCORER_COMMAND", "python3")
	v.SetDefault("SCORER_SCRIPT", "./ml/predict.py")
	v.SetDefault("SCORER_TIMEOUT_SECS", 30)
	v.SetDefault("SCORER_MAX_PROCS", 4)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("SCORER_COMMAND")
	v.BindEnv("SCORER_SCRIPT")
	v.BindEnv("SCORER_TIMEOUT_SECS")
	v.BindEnv("SCORER_MAX_PROCS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ScorerTimeout returns the bounded wait applied to each scoring
// subprocess invocation.
func (c *Config) ScorerTimeout() time.Duration {
	return time.Duration(c.ScorerTimeoutSecs) * time.Second
}

// Validate checks that the configuration is safe to run with.
func (c *Config) Validate() error {
	if c.ScorerCommand == "" {
		return fmt.Errorf("SCORER_COMMAND must not be empty")
	}
	if c.ScorerTimeoutSecs <= 0 {
		return fmt.Errorf("SCORER_TIMEOUT_SECS must be positive, got %d", c.ScorerTimeoutSecs)
	}
	if c.ScorerMaxProcs <= 0 {
		return fmt.Errorf("SCORER_MAX_PROCS must be positive, got %d", c.ScorerMaxProcs)
	}
	if c.DBMaxConns > 0 && c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}
