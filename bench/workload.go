// Package bench runs named sample workloads under timing instrumentation and
// compares each run against a stored baseline to flag regressions.
package bench

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cyberinferno/nanokit/safemap"
)

var (
	// ErrDuplicateWorkload is returned when registering a name twice.
	ErrDuplicateWorkload = errors.New("workload already registered")

	// ErrUnknownWorkload is returned when running a name that was never registered.
	ErrUnknownWorkload = errors.New("unknown workload")

	// ErrCheckFailed is returned when a workload's self-check does not hold.
	ErrCheckFailed = errors.New("workload check failed")
)

// Workload is a named unit of work timed by the Runner.
type Workload struct {
	// Name identifies the workload and its baseline.
	Name string

	// Fn is called once per iteration.
	Fn func()

	// Check, when set, verifies the workload's output before it is timed.
	Check func() error
}

// Registry is a concurrency-safe set of workloads keyed by name.
type Registry struct {
	m *safemap.SafeMap[string, Workload]
}

// NewRegistry returns an empty Registry, optionally pre-filled.
//
// Parameters:
//   - workloads: Workloads to register immediately
//
// Returns:
//   - The registry, or an error if a workload is invalid or duplicated
func NewRegistry(workloads ...Workload) (*Registry, error) {
	r := &Registry{m: safemap.NewSafeMap[string, Workload]()}
	for _, w := range workloads {
		if err := r.Register(w); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register adds w to the registry.
//
// Parameters:
//   - w: The workload to add; Name must be non-empty and Fn non-nil
//
// Returns:
//   - ErrDuplicateWorkload if the name is taken, or an error for an invalid workload
func (r *Registry) Register(w Workload) error {
	if w.Name == "" {
		return errors.New("workload name must not be empty")
	}

	if w.Fn == nil {
		return fmt.Errorf("workload %s has no function", w.Name)
	}

	if _, loaded := r.m.LoadOrStore(w.Name, w); loaded {
		return fmt.Errorf("%w: %s", ErrDuplicateWorkload, w.Name)
	}

	return nil
}

// Lookup returns the workload registered under name.
func (r *Registry) Lookup(name string) (Workload, bool) {
	return r.m.Load(name)
}

// Names returns the registered workload names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.m.Len())
	r.m.Range(func(name string, _ Workload) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)

	return names
}

// Len returns the number of registered workloads.
func (r *Registry) Len() int {
	return r.m.Len()
}
