package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/ackslab/rck/roster"
	"github.com/joho/godotenv"
)

// The environment variables read by LoadConfig.
const (
	EnvSeed         = "RCK_SEED"
	EnvIdleMovement = "RCK_IDLE_MOVEMENT"
	EnvTraceFile    = "RCK_TRACE_FILE"
	EnvRecordDB     = "RCK_RECORD_DB"
	EnvMonitorPort  = "RCK_MONITOR_PORT"
	EnvLogLimit     = "RCK_LOG_LIMIT"
)

// Config collects the settings of a game.
type Config struct {
	// Seed of the dice. Zero picks a seed from the wall clock.
	Seed int64

	// IdleMovement is the movement waited for by entities that chose no
	// action.
	IdleMovement float64

	// TraceFile receives a dump of the event queue on every change if set.
	TraceFile string

	// RecordDB is the SQLite file the run is recorded in if set.
	RecordDB string

	// MonitorPort is the port of the HTTP monitor. Zero disables it.
	MonitorPort int

	// LogLimit is the number of narrative lines kept in memory.
	LogLimit int
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		IdleMovement: roster.DefaultIdleMovement,
		LogLimit:     200,
	}
}

// LoadConfig loads the .env files given, or ./.env if it exists when none
// is given, into the environment and reads the configuration from it.
// Variables already set in the environment take precedence over the files.
func LoadConfig(paths ...string) (Config, error) {
	if len(paths) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			paths = []string{".env"}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("stat .env: %w", err)
		}
	}

	if len(paths) > 0 {
		if err := godotenv.Load(paths...); err != nil {
			return Config{}, fmt.Errorf("load env files %v: %w", paths, err)
		}
	}

	return ConfigFromEnv()
}

// ConfigFromEnv reads the configuration from the environment on top of the
// defaults.
func ConfigFromEnv() (Config, error) {
	c := DefaultConfig()

	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}

	if v, ok := os.LookupEnv(EnvIdleMovement); ok {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvIdleMovement, err)
		}

		if m <= 0 {
			return Config{}, fmt.Errorf("%s must be positive, got %v",
				EnvIdleMovement, m)
		}
		c.IdleMovement = m
	}

	if v, ok := os.LookupEnv(EnvMonitorPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvMonitorPort, err)
		}
		c.MonitorPort = port
	}

	if v, ok := os.LookupEnv(EnvLogLimit); ok {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvLogLimit, err)
		}
		c.LogLimit = limit
	}

	c.TraceFile = os.Getenv(EnvTraceFile)
	c.RecordDB = os.Getenv(EnvRecordDB)

	return c, nil
}
