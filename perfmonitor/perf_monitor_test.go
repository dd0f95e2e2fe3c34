package perfmonitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor()

	assert.NotNil(t, pm)
	assert.True(t, pm.startTime.IsZero())
	assert.True(t, pm.endTime.IsZero())
	assert.Equal(t, time.Duration(0), pm.Elapsed())
}

func TestStartStop(t *testing.T) {
	t.Run("start sets only the start time", func(t *testing.T) {
		pm := NewPerformanceMonitor()
		pm.Start()

		assert.False(t, pm.startTime.IsZero())
		assert.True(t, pm.endTime.IsZero())
	})

	t.Run("stop without start is ignored", func(t *testing.T) {
		pm := NewPerformanceMonitor()
		pm.Stop()

		assert.True(t, pm.endTime.IsZero())
		assert.Equal(t, 0.0, pm.ElapsedMilliseconds())
	})

	t.Run("stop after reset is ignored", func(t *testing.T) {
		pm := NewPerformanceMonitor()
		pm.Start()
		pm.Reset()
		pm.Stop()

		assert.True(t, pm.startTime.IsZero())
		assert.True(t, pm.endTime.IsZero())
	})

	t.Run("repeated stop extends the measurement", func(t *testing.T) {
		pm := NewPerformanceMonitor()
		pm.Start()
		time.Sleep(5 * time.Millisecond)
		pm.Stop()
		first := pm.Elapsed()

		time.Sleep(5 * time.Millisecond)
		pm.Stop()

		assert.Greater(t, pm.Elapsed(), first)
	})

	t.Run("restart without stop reports zero", func(t *testing.T) {
		pm := NewPerformanceMonitor()
		pm.Start()
		pm.Stop()
		time.Sleep(5 * time.Millisecond)
		pm.Start()

		assert.True(t, pm.endTime.IsZero())
		assert.Equal(t, time.Duration(0), pm.Elapsed())

		pm.Stop()
		assert.GreaterOrEqual(t, pm.Elapsed(), time.Duration(0))
	})
}

func TestElapsed(t *testing.T) {
	t.Run("zero until stopped", func(t *testing.T) {
		pm := NewPerformanceMonitor()
		pm.Start()

		assert.Equal(t, time.Duration(0), pm.Elapsed())
		assert.Equal(t, 0.0, pm.ElapsedMilliseconds())
	})

	t.Run("measures the sleep", func(t *testing.T) {
		pm := NewPerformanceMonitor()
		pm.Start()
		time.Sleep(20 * time.Millisecond)
		pm.Stop()

		assert.GreaterOrEqual(t, pm.Elapsed(), 20*time.Millisecond)
		assert.GreaterOrEqual(t, pm.ElapsedMilliseconds(), 20.0)
		assert.Less(t, pm.ElapsedMilliseconds(), 1000.0)
	})

	t.Run("milliseconds agree with duration", func(t *testing.T) {
		pm := NewPerformanceMonitor()
		pm.Start()
		time.Sleep(time.Millisecond)
		pm.Stop()

		assert.InDelta(t, float64(pm.Elapsed())/1e6, pm.ElapsedMilliseconds(), 1e-9)
	})
}

func TestReset(t *testing.T) {
	t.Run("clears a finished measurement", func(t *testing.T) {
		pm := NewPerformanceMonitor()
		pm.Start()
		pm.Stop()
		pm.Reset()

		assert.True(t, pm.startTime.IsZero())
		assert.True(t, pm.endTime.IsZero())
		assert.Equal(t, 0.0, pm.ElapsedMilliseconds())
	})

	t.Run("allows reuse", func(t *testing.T) {
		pm := NewPerformanceMonitor()
		pm.Start()
		time.Sleep(10 * time.Millisecond)
		pm.Stop()
		pm.Reset()

		pm.Start()
		time.Sleep(time.Millisecond)
		pm.Stop()

		assert.GreaterOrEqual(t, pm.Elapsed(), time.Millisecond)
	})

	t.Run("multiple resets are safe", func(t *testing.T) {
		pm := NewPerformanceMonitor()
		pm.Reset()
		pm.Reset()

		assert.True(t, pm.startTime.IsZero())
	})
}

func TestPerformanceMonitor_Concurrent(t *testing.T) {
	pm := NewPerformanceMonitor()
	var wg sync.WaitGroup
	wg.Add(30)
	for i := 0; i < 10; i++ {
		go func() { defer wg.Done(); pm.Start() }()
		go func() { defer wg.Done(); pm.Stop() }()
		go func() { defer wg.Done(); _ = pm.Elapsed() }()
	}
	wg.Wait()

	assert.False(t, pm.startTime.IsZero())
}
