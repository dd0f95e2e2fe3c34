package bench

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop() {}

func TestRegistry(t *testing.T) {
	t.Run("register and lookup", func(t *testing.T) {
		reg, err := NewRegistry(Workload{Name: "b", Fn: noop}, Workload{Name: "a", Fn: noop})
		require.NoError(t, err)

		w, ok := reg.Lookup("a")
		assert.True(t, ok)
		assert.Equal(t, "a", w.Name)

		_, ok = reg.Lookup("missing")
		assert.False(t, ok)
	})

	t.Run("names are sorted", func(t *testing.T) {
		reg, err := NewRegistry(Workload{Name: "c", Fn: noop}, Workload{Name: "a", Fn: noop}, Workload{Name: "b", Fn: noop})
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, reg.Names())
		assert.Equal(t, 3, reg.Len())
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		reg, err := NewRegistry(Workload{Name: "a", Fn: noop})
		require.NoError(t, err)

		assert.ErrorIs(t, reg.Register(Workload{Name: "a", Fn: noop}), ErrDuplicateWorkload)
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("invalid workloads are rejected", func(t *testing.T) {
		reg, err := NewRegistry()
		require.NoError(t, err)

		assert.Error(t, reg.Register(Workload{Fn: noop}))
		assert.Error(t, reg.Register(Workload{Name: "nofn"}))
		assert.Equal(t, 0, reg.Len())

		_, err = NewRegistry(Workload{Name: "x", Fn: noop}, Workload{Name: "x", Fn: noop})
		assert.ErrorIs(t, err, ErrDuplicateWorkload)
	})

	t.Run("concurrent registration of one name succeeds once", func(t *testing.T) {
		reg, err := NewRegistry()
		require.NoError(t, err)

		var ok atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if reg.Register(Workload{Name: "shared", Fn: noop}) == nil {
					ok.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), ok.Load())
		assert.Equal(t, []string{"shared"}, reg.Names())
	})
}

func TestDefaultWorkloads(t *testing.T) {
	workloads := DefaultWorkloads()

	reg, err := NewRegistry(workloads...)
	require.NoError(t, err)
	assert.Equal(t, len(workloads), reg.Len())

	for _, name := range []string{"concat2", "concat5", "concat5-unchecked", "bitwidth-int8", "bitwidth-uint128"} {
		_, ok := reg.Lookup(name)
		assert.True(t, ok, "missing workload %s", name)
	}

	for _, w := range workloads {
		t.Run(w.Name, func(t *testing.T) {
			require.NotNil(t, w.Check)
			assert.NoError(t, w.Check())
			assert.NotPanics(t, w.Fn)
		})
	}
}

func TestDefaultWorkloads_Outputs(t *testing.T) {
	byName := map[string]Workload{}
	for _, w := range DefaultWorkloads() {
		byName[w.Name] = w
	}

	byName["concat4"].Fn()
	assert.Equal(t, "The quick brown fox", stringSink)

	byName["concat5"].Fn()
	assert.Equal(t, "Hello, beautiful world!", stringSink)

	byName["concat2-unchecked"].Fn()
	assert.Equal(t, "Hello, ", stringSink)

	intSink = 0
	byName["bitwidth-int8"].Fn()
	// 0, 1, -1, 127, -128, 42
	assert.Equal(t, 0+1+8+7+8+6, intSink)
}

func TestExpect(t *testing.T) {
	assert.NoError(t, expect("a", "a"))
	assert.ErrorIs(t, expect("a", "b"), ErrCheckFailed)
	assert.NoError(t, expectBits(3, 3))
	assert.ErrorIs(t, expectBits(3, 4), ErrCheckFailed)
}
