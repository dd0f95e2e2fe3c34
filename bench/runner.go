package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/cyberinferno/nanokit/cacher"
	"github.com/cyberinferno/nanokit/concat"
	"github.com/cyberinferno/nanokit/idgenerator"
	"github.com/cyberinferno/nanokit/logger"
	"github.com/cyberinferno/nanokit/perfmonitor"
)

// Options controls how the Runner measures workloads and treats baselines.
type Options struct {
	Iterations     int
	Warmup         int
	Threshold      float64
	KeyPrefix      string
	BaselineTTL    time.Duration
	UpdateBaseline bool
}

// DefaultOptions returns the settings used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		Iterations:  100000,
		Warmup:      1000,
		Threshold:   0.10,
		KeyPrefix:   "nanobench",
		BaselineTTL: 30 * 24 * time.Hour,
	}
}

// Result is one timed execution of a workload.
type Result struct {
	RunID      uint32        `json:"run_id"`
	Workload   string        `json:"workload"`
	Iterations int           `json:"iterations"`
	Total      time.Duration `json:"total"`
	NsPerOp    float64       `json:"ns_per_op"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Report pairs a Result with the baseline it was compared to.
type Report struct {
	Result   Result
	Baseline Result

	// NewBaseline is set when Result became the stored baseline.
	NewBaseline bool

	// Delta is the relative change in ns/op against the baseline; positive is slower.
	Delta float64

	// Regressed is set when Delta exceeds the configured threshold.
	Regressed bool
}

// Runner times workloads and keeps their baselines in a cache.
type Runner struct {
	log   logger.Logger
	store cacher.Cacher[Result]
	opts  Options
	ids   *idgenerator.IdGenerator
}

// NewRunner creates a Runner.
//
// Parameters:
//   - log: Logger receiving one entry per run
//   - store: Baseline storage
//   - opts: Measurement options; Iterations below 1 is raised to 1
//
// Returns:
//   - A new Runner
func NewRunner(log logger.Logger, store cacher.Cacher[Result], opts Options) *Runner {
	if opts.Iterations < 1 {
		opts.Iterations = 1
	}

	if opts.Warmup < 0 {
		opts.Warmup = 0
	}

	return &Runner{
		log:   log,
		store: store,
		opts:  opts,
		ids:   idgenerator.NewIdGenerator(0),
	}
}

// BaselineKey returns the cache key holding the baseline for a workload.
func (r *Runner) BaselineKey(workload string) string {
	return concat.Concat3(r.opts.KeyPrefix, ":", workload)
}

// Run checks w, times Options.Iterations calls of w.Fn after the warmup, and
// compares the outcome with the stored baseline. The first run of a workload,
// or any run with UpdateBaseline set, becomes the new baseline.
//
// Parameters:
//   - ctx: Context for cancellation; checked before the run starts
//   - w: The workload to run
//
// Returns:
//   - The report for this run
//   - An error if the workload check fails or the baseline store fails
func (r *Runner) Run(ctx context.Context, w Workload) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	if w.Check != nil {
		if err := w.Check(); err != nil {
			return Report{}, fmt.Errorf("workload %s: %w", w.Name, err)
		}
	}

	res := r.measure(w)
	log := r.log.With(logger.Field{Key: "workload", Value: w.Name}, logger.Field{Key: "run_id", Value: res.RunID})

	report, err := r.compare(ctx, res)
	if err != nil {
		log.Error("baseline comparison failed", logger.Field{Key: "error", Value: err.Error()})
		return Report{}, err
	}

	fields := []logger.Field{
		{Key: "iterations", Value: res.Iterations},
		{Key: "ns_per_op", Value: res.NsPerOp},
		{Key: "baseline_ns_per_op", Value: report.Baseline.NsPerOp},
		{Key: "delta", Value: report.Delta},
		{Key: "new_baseline", Value: report.NewBaseline},
	}
	if report.Regressed {
		log.Warn("workload regressed", fields...)
	} else {
		log.Info("workload finished", fields...)
	}

	return report, nil
}

func (r *Runner) measure(w Workload) Result {
	for i := 0; i < r.opts.Warmup; i++ {
		w.Fn()
	}

	pm := perfmonitor.NewPerformanceMonitor()
	pm.Start()
	for i := 0; i < r.opts.Iterations; i++ {
		w.Fn()
	}
	pm.Stop()

	total := pm.Elapsed()
	return Result{
		RunID:      r.ids.Id(),
		Workload:   w.Name,
		Iterations: r.opts.Iterations,
		Total:      total,
		NsPerOp:    float64(total.Nanoseconds()) / float64(r.opts.Iterations),
		Timestamp:  time.Now().UTC(),
	}
}

func (r *Runner) compare(ctx context.Context, res Result) (Report, error) {
	key := r.BaselineKey(res.Workload)

	if r.opts.UpdateBaseline {
		if err := r.store.Set(ctx, key, res, r.opts.BaselineTTL); err != nil {
			return Report{}, fmt.Errorf("failed to store baseline for %s: %w", res.Workload, err)
		}

		return Report{Result: res, Baseline: res, NewBaseline: true}, nil
	}

	stored := false
	base, err := r.store.GetOrFetch(ctx, key, r.opts.BaselineTTL, func(ctx context.Context) (Result, error) {
		stored = true
		return res, nil
	})
	if err != nil {
		return Report{}, fmt.Errorf("failed to load baseline for %s: %w", res.Workload, err)
	}

	report := Report{Result: res, Baseline: base, NewBaseline: stored}
	if !stored && base.NsPerOp > 0 {
		report.Delta = (res.NsPerOp - base.NsPerOp) / base.NsPerOp
		report.Regressed = report.Delta > r.opts.Threshold
	}

	return report, nil
}

// RunAll runs the named workloads from reg in the order given. When names is
// empty it runs every registered workload in sorted name order. All names are
// resolved before anything runs. It stops at the first error or when ctx is
// cancelled, returning the reports gathered so far.
//
// Parameters:
//   - ctx: Context for cancellation
//   - reg: Registry to resolve names against
//   - names: Workload names to run; empty means all
//
// Returns:
//   - One report per completed workload
//   - ErrUnknownWorkload for an unregistered name, or the first run error
func (r *Runner) RunAll(ctx context.Context, reg *Registry, names []string) ([]Report, error) {
	if len(names) == 0 {
		names = reg.Names()
	}

	workloads := make([]Workload, 0, len(names))
	for _, name := range names {
		w, ok := reg.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownWorkload, name)
		}
		workloads = append(workloads, w)
	}

	reports := make([]Report, 0, len(workloads))
	for _, w := range workloads {
		report, err := r.Run(ctx, w)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// ResetBaselines deletes every baseline under the runner's key prefix.
//
// Returns:
//   - The number of baselines removed
//   - An error if the store fails
func (r *Runner) ResetBaselines(ctx context.Context) (int, error) {
	n, err := r.store.DeleteByPrefix(ctx, concat.Concat2(r.opts.KeyPrefix, ":"))
	if err != nil {
		return n, fmt.Errorf("failed to reset baselines: %w", err)
	}

	r.log.Info("baselines reset", logger.Field{Key: "deleted", Value: n})
	return n, nil
}
