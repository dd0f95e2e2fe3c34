// Package bitwidth computes the minimum number of bits required to store an
// integer value in its own fixed-width two's-complement representation.
package bitwidth

import (
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Integer is the set of fixed-width integer types BitsNeeded accepts,
// including named types whose underlying type is an integer.
type Integer interface {
	constraints.Integer
}

// BitsNeeder is implemented by values that know how many bits they occupy.
// It is satisfied by the 128-bit types in this package, for which no native Go
// integer exists.
type BitsNeeder interface {
	// BitsNeeded returns the minimum number of bits required to store the
	// value, in the range [0, width of the type].
	BitsNeeded() int
}

// Width returns the size of T in bits.
func Width[T Integer]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// BitsNeeded returns the minimum number of bits required to store v, defined
// as the bit width of T minus the number of leading zero bits in v's
// two's-complement pattern.
//
// For unsigned values this is 0 for zero and floor(log2(v))+1 otherwise.
// Signed values are not converted to their magnitude: any negative value has
// its top bit set and therefore needs the full width of T.
//
// Examples:
//   - BitsNeeded(uint8(0)) == 0
//   - BitsNeeded(uint16(1023)) == 10
//   - BitsNeeded(uint16(1024)) == 11
//   - BitsNeeded(int8(127)) == 7
//   - BitsNeeded(int8(-1)) == 8
//
// Parameters:
//   - v: The value to measure
//
// Returns:
//   - The number of significant bits of v, between 0 and Width[T]()
func BitsNeeded[T Integer](v T) int {
	w := Width[T]()

	// Drop the sign extension a conversion to uint64 adds for negative values
	// narrower than 64 bits.
	pattern := uint64(v) & (^uint64(0) >> (64 - w))
	return bits.Len64(pattern)
}
