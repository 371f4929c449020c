package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=liqrisk
//	LOG_LEVEL=info
//	RATE_LIMIT_REQUESTS=60
//	ENGINE_SIMULATIONS=1000
//	ENGINE_SEED=42
//	TICKERS=AAPL,MSFT,RELIANCE.NS
type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Engine    EngineConfig
	Tickers   []string // default universe for ingestion; never read by the engine
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// LogConfig configures the zerolog global logger.
type LogConfig struct {
	Level  string
	Pretty bool
}

// RateLimitConfig bounds requests per client IP within a fixed window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// EngineConfig carries the defaults of every liquidation run. Request
// parameters override them per call.
//
// Fields:
//   - ImpactK: square-root impact coefficient k.
//   - ADVWindow, VolWindow: rolling windows (trading days) for ADV and volatility.
//   - Simulations: default Monte Carlo path count; MaxSimulations caps requests.
//   - Seed: default Monte Carlo seed.
//   - Workers: goroutine limit for paths and sweeps (0 = NumCPU).
//   - Eta, RiskAversion, HorizonDays: Almgren–Chriss defaults.
//   - MaxHorizonDays: longest trajectory or Monte Carlo schedule a request may ask for.
//   - SweepMin, SweepMax, SweepSteps: participation-rate sweep range.
//   - ParticipationRate: default cap as a fraction of ADV.
type EngineConfig struct {
	ImpactK           float64
	ADVWindow         int
	VolWindow         int
	Simulations       int
	MaxSimulations    int
	Seed              uint64
	Workers           int
	Eta               float64
	RiskAversion      float64
	HorizonDays       int
	MaxHorizonDays    int
	SweepMin          float64
	SweepMax          float64
	SweepSteps        int
	ParticipationRate float64
	Confidence        float64
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or engine settings are out of range,
//     validateConfig() terminates the app with a descriptive log message.
func LoadConfig() {
	setDefaults()

	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   viper.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Engine: EngineConfig{
			ImpactK:           viper.GetFloat64("ENGINE_IMPACT_K"),
			ADVWindow:         viper.GetInt("ENGINE_ADV_WINDOW"),
			VolWindow:         viper.GetInt("ENGINE_VOL_WINDOW"),
			Simulations:       viper.GetInt("ENGINE_SIMULATIONS"),
			MaxSimulations:    viper.GetInt("ENGINE_MAX_SIMULATIONS"),
			Seed:              viper.GetUint64("ENGINE_SEED"),
			Workers:           viper.GetInt("ENGINE_WORKERS"),
			Eta:               viper.GetFloat64("ENGINE_ETA"),
			RiskAversion:      viper.GetFloat64("ENGINE_RISK_AVERSION"),
			HorizonDays:       viper.GetInt("ENGINE_HORIZON_DAYS"),
			MaxHorizonDays:    viper.GetInt("ENGINE_MAX_HORIZON_DAYS"),
			SweepMin:          viper.GetFloat64("ENGINE_SWEEP_MIN"),
			SweepMax:          viper.GetFloat64("ENGINE_SWEEP_MAX"),
			SweepSteps:        viper.GetInt("ENGINE_SWEEP_STEPS"),
			ParticipationRate: viper.GetFloat64("ENGINE_PARTICIPATION_RATE"),
			Confidence:        viper.GetFloat64("ENGINE_CONFIDENCE"),
		},
		Tickers: splitList(viper.GetString("TICKERS")),
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "liqrisk")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	viper.SetDefault("RATE_LIMIT_REQUESTS", 60)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	viper.SetDefault("ENGINE_IMPACT_K", 1.0)
	viper.SetDefault("ENGINE_ADV_WINDOW", 30)
	viper.SetDefault("ENGINE_VOL_WINDOW", 30)
	viper.SetDefault("ENGINE_SIMULATIONS", 1000)
	viper.SetDefault("ENGINE_MAX_SIMULATIONS", 20000)
	viper.SetDefault("ENGINE_SEED", 42)
	viper.SetDefault("ENGINE_WORKERS", 0)
	viper.SetDefault("ENGINE_ETA", 1.0)
	viper.SetDefault("ENGINE_RISK_AVERSION", 0.0)
	viper.SetDefault("ENGINE_HORIZON_DAYS", 10)
	viper.SetDefault("ENGINE_MAX_HORIZON_DAYS", 1000)
	viper.SetDefault("ENGINE_SWEEP_MIN", 0.05)
	viper.SetDefault("ENGINE_SWEEP_MAX", 0.40)
	viper.SetDefault("ENGINE_SWEEP_STEPS", 10)
	viper.SetDefault("ENGINE_PARTICIPATION_RATE", 0.10)
	viper.SetDefault("ENGINE_CONFIDENCE", 0.95)

	viper.SetDefault("TICKERS", "")
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateConfig ensures required variables are present and engine settings
// are usable, terminating the application otherwise.
func validateConfig() {
	if problems := checkConfig(AppConfig); len(problems) > 0 {
		log.Fatalf("Invalid configuration: %v\n", problems)
	}
}

// checkConfig lists every missing or out-of-range variable of c.
func checkConfig(c Config) []string {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if c.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}

	e := c.Engine
	if e.ADVWindow < 1 {
		missing = append(missing, "ENGINE_ADV_WINDOW")
	}
	if e.VolWindow < 2 {
		missing = append(missing, "ENGINE_VOL_WINDOW")
	}
	if e.Simulations < 1 {
		missing = append(missing, "ENGINE_SIMULATIONS")
	}
	if e.MaxSimulations < e.Simulations {
		missing = append(missing, "ENGINE_MAX_SIMULATIONS")
	}
	if e.Eta <= 0 {
		missing = append(missing, "ENGINE_ETA")
	}
	if e.HorizonDays < 1 {
		missing = append(missing, "ENGINE_HORIZON_DAYS")
	}
	if e.MaxHorizonDays < e.HorizonDays {
		missing = append(missing, "ENGINE_MAX_HORIZON_DAYS")
	}
	if e.SweepSteps < 1 || e.SweepMin <= 0 || e.SweepMax < e.SweepMin {
		missing = append(missing, "ENGINE_SWEEP_*")
	}
	if e.ParticipationRate <= 0 {
		missing = append(missing, "ENGINE_PARTICIPATION_RATE")
	}
	if e.Confidence <= 0 || e.Confidence >= 1 {
		missing = append(missing, "ENGINE_CONFIDENCE")
	}

	return missing
}
