// Command nanobench times the nanokit sample workloads and compares each one
// against its stored baseline. It exits with status 1 when a workload
// regressed beyond BENCH_THRESHOLD.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/cyberinferno/nanokit/bench"
	"github.com/cyberinferno/nanokit/cacher"
	"github.com/cyberinferno/nanokit/config"
	"github.com/cyberinferno/nanokit/logger"
)

const serviceName = "nanobench"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func newStore(cfg *config.Config) (cacher.Cacher[bench.Result], func() error) {
	if cfg.RedisAddr == "" {
		return cacher.NewMemoryCacher[bench.Result](cache.NoExpiration, 10*time.Minute), func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return cacher.NewRedisCacher[bench.Result](client), client.Close
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	list := fs.Bool("list", false, "Print the available workloads and exit")
	reset := fs.Bool("reset", false, "Delete stored baselines and exit")
	cpuProfile := fs.String("cpuprofile", "", "Write a CPU profile of the run to `file` (overrides BENCH_CPUPROFILE)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(stderr, "failed to load env file: %v\n", err)
		return 2
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return 2
	}

	if *cpuProfile != "" {
		cfg.CPUProfile = *cpuProfile
	}

	log := logger.NewConsoleLogger(stderr, serviceName, logger.ParseLevel(cfg.LogLevel))

	registry, err := bench.NewRegistry(bench.DefaultWorkloads()...)
	if err != nil {
		log.Error("failed to register workloads", logger.Field{Key: "error", Value: err.Error()})
		return 1
	}

	if *list {
		for _, name := range registry.Names() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	store, closeStore := newStore(cfg)
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close baseline store", logger.Field{Key: "error", Value: err.Error()})
		}
	}()

	runner := bench.NewRunner(log, store, cfg.BenchOptions())

	if *reset {
		n, err := runner.ResetBaselines(ctx)
		if err != nil {
			log.Error("reset failed", logger.Field{Key: "error", Value: err.Error()})
			return 1
		}
		fmt.Fprintf(stdout, "deleted %d baselines\n", n)
		return 0
	}

	stopProfile, err := startCPUProfile(cfg.CPUProfile)
	if err != nil {
		log.Error("failed to start cpu profile", logger.Field{Key: "error", Value: err.Error()})
		return 1
	}

	reports, err := runner.RunAll(ctx, registry, cfg.Workloads)
	if perr := stopProfile(); perr != nil {
		log.Warn("failed to write cpu profile", logger.Field{Key: "error", Value: perr.Error()})
	}
	for _, rep := range reports {
		fmt.Fprintln(stdout, formatReport(rep))
	}
	if err != nil {
		log.Error("benchmark run failed", logger.Field{Key: "error", Value: err.Error()})
		return 1
	}

	for _, rep := range reports {
		if rep.Regressed {
			return 1
		}
	}

	return 0
}

func formatReport(rep bench.Report) string {
	status := "ok"
	switch {
	case rep.NewBaseline:
		status = "baseline"
	case rep.Regressed:
		status = "REGRESSED"
	}

	return fmt.Sprintf("%-20s %12.2f ns/op %+8.2f%%  %s",
		rep.Result.Workload, rep.Result.NsPerOp, rep.Delta*100, status)
}
