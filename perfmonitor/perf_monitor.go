// Package perfmonitor provides a simple stopwatch for timing a section of code.
package perfmonitor

import (
	"sync"
	"time"
)

// PerformanceMonitor measures the wall-clock time between Start and Stop.
// It is safe for concurrent use, although a single measurement is normally
// driven by one goroutine.
type PerformanceMonitor struct {
	mu        sync.Mutex
	startTime time.Time
	endTime   time.Time
}

// NewPerformanceMonitor creates a PerformanceMonitor with no recorded times.
//
// Returns:
//   - A new PerformanceMonitor instance
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{}
}

// Start records the current time as the start of a new measurement. Any
// earlier start and end times are discarded, so Elapsed reports 0 until the
// next Stop.
func (p *PerformanceMonitor) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startTime = time.Now()
	p.endTime = time.Time{}
}

// Stop records the current time as the end of the measurement. It has no
// effect if Start has not been called since construction or the last Reset.
func (p *PerformanceMonitor) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.startTime.IsZero() {
		return
	}

	p.endTime = time.Now()
}

// Reset clears the recorded start and end times.
func (p *PerformanceMonitor) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startTime = time.Time{}
	p.endTime = time.Time{}
}

// Elapsed returns the duration between Start and Stop.
//
// Returns:
//   - The measured duration, or 0 if either Start or Stop has not been recorded
func (p *PerformanceMonitor) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.startTime.IsZero() || p.endTime.IsZero() {
		return 0
	}

	return p.endTime.Sub(p.startTime)
}

// ElapsedMilliseconds returns Elapsed as fractional milliseconds.
//
// Returns:
//   - The measured duration in milliseconds, or 0 if not measured
func (p *PerformanceMonitor) ElapsedMilliseconds() float64 {
	return float64(p.Elapsed()) / float64(time.Millisecond)
}
