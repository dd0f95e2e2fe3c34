// Package config loads nanobench settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/cyberinferno/nanokit/bench"
)

// Config holds the benchmark command settings.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Iterations     int      `env:"BENCH_ITERATIONS" envDefault:"100000"`
	Warmup         int      `env:"BENCH_WARMUP" envDefault:"1000"`
	Threshold      float64  `env:"BENCH_THRESHOLD" envDefault:"0.10"`
	Workloads      []string `env:"BENCH_WORKLOADS" envSeparator:","`
	UpdateBaseline bool     `env:"UPDATE_BASELINE" envDefault:"false"`

	// CPUProfile names a file that receives a pprof CPU profile of the run.
	CPUProfile string `env:"BENCH_CPUPROFILE"`

	BaselinePrefix string        `env:"BASELINE_PREFIX" envDefault:"nanobench"`
	BaselineTTL    time.Duration `env:"BASELINE_TTL" envDefault:"720h"`

	// Redis configuration; an empty address keeps baselines in memory.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadEnv loads the file named by ENV_FILE into the environment. Without
// ENV_FILE it loads .env if present; a missing default file is not an error.
func LoadEnv() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		return godotenv.Load(envFile)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// New parses the environment into a Config and validates it.
//
// Returns:
//   - The parsed configuration
//   - An error if a variable cannot be parsed or a value is out of range
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("BENCH_ITERATIONS must be >= 1, got %d", c.Iterations)
	}

	if c.Warmup < 0 {
		return fmt.Errorf("BENCH_WARMUP must be >= 0, got %d", c.Warmup)
	}

	if c.Threshold < 0 {
		return fmt.Errorf("BENCH_THRESHOLD must be >= 0, got %v", c.Threshold)
	}

	if c.BaselinePrefix == "" {
		return errors.New("BASELINE_PREFIX must not be empty")
	}

	return nil
}

// BenchOptions converts the configuration into runner options.
func (c *Config) BenchOptions() bench.Options {
	return bench.Options{
		Iterations:     c.Iterations,
		Warmup:         c.Warmup,
		Threshold:      c.Threshold,
		KeyPrefix:      c.BaselinePrefix,
		BaselineTTL:    c.BaselineTTL,
		UpdateBaseline: c.UpdateBaseline,
	}
}
