package bitwidth

import "math/bits"

// Uint128 is an unsigned 128-bit integer split into its high and low halves.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Int128 is a signed 128-bit two's-complement integer. Hi carries the sign bit.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Uint128From64 widens v to 128 bits.
func Uint128From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Int128From64 sign-extends v to 128 bits.
func Int128From64(v int64) Int128 {
	return Int128{Hi: v >> 63, Lo: uint64(v)}
}

// BitsNeeded implements BitsNeeder.
func (u Uint128) BitsNeeded() int {
	return len128(u.Hi, u.Lo)
}

// BitsNeeded implements BitsNeeder. Negative values always need 128 bits.
func (i Int128) BitsNeeded() int {
	return len128(uint64(i.Hi), i.Lo)
}

func len128(hi, lo uint64) int {
	if hi != 0 {
		return 64 + bits.Len64(hi)
	}

	return bits.Len64(lo)
}
