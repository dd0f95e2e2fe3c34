package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100000, cfg.Iterations)
	assert.Equal(t, 1000, cfg.Warmup)
	assert.InDelta(t, 0.10, cfg.Threshold, 1e-12)
	assert.Empty(t, cfg.Workloads)
	assert.False(t, cfg.UpdateBaseline)
	assert.Equal(t, "nanobench", cfg.BaselinePrefix)
	assert.Equal(t, 720*time.Hour, cfg.BaselineTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Empty(t, cfg.CPUProfile)
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BENCH_ITERATIONS", "500")
	t.Setenv("BENCH_WARMUP", "0")
	t.Setenv("BENCH_THRESHOLD", "0.25")
	t.Setenv("BENCH_WORKLOADS", "concat2,bitwidth-int8")
	t.Setenv("UPDATE_BASELINE", "true")
	t.Setenv("BASELINE_PREFIX", "ci")
	t.Setenv("BASELINE_TTL", "1h")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("BENCH_CPUPROFILE", "cpu.pprof")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "cpu.pprof", cfg.CPUProfile)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"concat2", "bitwidth-int8"}, cfg.Workloads)
	assert.True(t, cfg.UpdateBaseline)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)

	opts := cfg.BenchOptions()
	assert.Equal(t, 500, opts.Iterations)
	assert.Equal(t, 0, opts.Warmup)
	assert.InDelta(t, 0.25, opts.Threshold, 1e-12)
	assert.Equal(t, "ci", opts.KeyPrefix)
	assert.Equal(t, time.Hour, opts.BaselineTTL)
	assert.True(t, opts.UpdateBaseline)
}

func TestNew_Invalid(t *testing.T) {
	t.Run("unparsable number", func(t *testing.T) {
		t.Setenv("BENCH_ITERATIONS", "many")
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("zero iterations", func(t *testing.T) {
		t.Setenv("BENCH_ITERATIONS", "0")
		_, err := New()
		assert.ErrorContains(t, err, "BENCH_ITERATIONS")
	})

	t.Run("negative warmup", func(t *testing.T) {
		t.Setenv("BENCH_WARMUP", "-1")
		_, err := New()
		assert.ErrorContains(t, err, "BENCH_WARMUP")
	})

	t.Run("negative threshold", func(t *testing.T) {
		t.Setenv("BENCH_THRESHOLD", "-0.5")
		_, err := New()
		assert.ErrorContains(t, err, "BENCH_THRESHOLD")
	})

	t.Run("empty prefix", func(t *testing.T) {
		cfg := &Config{Iterations: 1}
		assert.ErrorContains(t, cfg.Validate(), "BASELINE_PREFIX")
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("loads ENV_FILE", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bench.env")
		require.NoError(t, os.WriteFile(path, []byte("NANOKIT_TEST_VALUE=from-file\n"), 0o644))
		t.Setenv("ENV_FILE", path)
		t.Setenv("NANOKIT_TEST_VALUE", "")
		require.NoError(t, os.Unsetenv("NANOKIT_TEST_VALUE"))

		require.NoError(t, LoadEnv())
		assert.Equal(t, "from-file", os.Getenv("NANOKIT_TEST_VALUE"))
	})

	t.Run("missing ENV_FILE is an error", func(t *testing.T) {
		t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, LoadEnv())
	})

	t.Run("missing default file is ignored", func(t *testing.T) {
		t.Setenv("ENV_FILE", "")
		// Equivalent of t.Chdir (Go 1.24+) for older toolchains.
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(wd) })
		assert.NoError(t, LoadEnv())
	})
}
