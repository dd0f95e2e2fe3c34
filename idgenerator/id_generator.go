// Package idgenerator hands out sequential uint32 identifiers. The benchmark
// runner numbers its runs with it.
package idgenerator

import "sync/atomic"

// IdGenerator returns increasing uint32 IDs and is safe for concurrent use.
// The first Id is one past the start value, so a start of 0 leaves 0 free
// to mean "no run".
type IdGenerator struct {
	id atomic.Uint32
}

// NewIdGenerator creates an IdGenerator whose first Id is startValue+1.
//
// Parameters:
//   - startValue: Value the counter starts at
//
// Returns:
//   - A new IdGenerator instance
func NewIdGenerator(startValue uint32) *IdGenerator {
	gen := &IdGenerator{}
	gen.id.Store(startValue)
	return gen
}

// Id atomically advances the counter and returns the new value. The counter
// wraps to 0 after math.MaxUint32.
//
// Returns:
//   - The next uint32 ID
func (g *IdGenerator) Id() uint32 {
	return g.id.Add(1)
}

