// Package concat provides fixed-arity string concatenation that builds the
// result in a single allocation sized exactly to the combined input length.
//
// Two flavours are offered for every arity from two to five inputs. ConcatN
// checks that the summed length is representable and panics with
// ErrLengthOverflow otherwise. ConcatNUnchecked trusts the caller to
// guarantee that precondition and skips the check unless the package is
// built with the concatdebug build tag.
package concat

import (
	"errors"
	"math"
	"unsafe"
)

// Text is the set of types accepted as concatenation input: anything whose
// underlying type is a string or a byte slice.
type Text interface {
	~string | ~[]byte
}

// MaxLen is the largest combined length a concatenation may produce.
const MaxLen = math.MaxInt

// ErrLengthOverflow is the panic value raised when the combined input length
// exceeds MaxLen.
var ErrLengthOverflow = errors.New("concat: combined length overflows maximum allocation size")

// checkedLen sums lengths, panicking with ErrLengthOverflow instead of
// wrapping around.
func checkedLen(lengths ...int) int {
	total := 0
	for _, n := range lengths {
		if n > MaxLen-total {
			panic(ErrLengthOverflow)
		}

		total += n
	}

	return total
}

// toString exposes a fully populated buffer as a string without copying it.
// buf must not be written to or retained after the call.
func toString(buf []byte) string {
	return unsafe.String(unsafe.SliceData(buf), len(buf))
}

// Concat2 returns a new string holding a followed by b. The result is built in
// exactly one allocation and shares no memory with either input.
//
// Parameters:
//   - a: The leading text
//   - b: The trailing text
//
// Returns:
//   - The concatenation of a and b
//
// Concat2 panics with ErrLengthOverflow if len(a)+len(b) exceeds MaxLen.
func Concat2[A, B Text](a A, b B) string {
	return join2(checkedLen(len(a), len(b)), a, b)
}

// Concat3 returns a new string holding a, b and c in order. See Concat2.
func Concat3[A, B, C Text](a A, b B, c C) string {
	return join3(checkedLen(len(a), len(b), len(c)), a, b, c)
}

// Concat4 returns a new string holding a, b, c and d in order. See Concat2.
func Concat4[A, B, C, D Text](a A, b B, c C, d D) string {
	return join4(checkedLen(len(a), len(b), len(c), len(d)), a, b, c, d)
}

// Concat5 returns a new string holding a, b, c, d and e in order. See Concat2.
func Concat5[A, B, C, D, E Text](a A, b B, c C, d D, e E) string {
	return join5(checkedLen(len(a), len(b), len(c), len(d), len(e)), a, b, c, d, e)
}

func join2[A, B Text](total int, a A, b B) string {
	if total == 0 {
		return ""
	}

	buf := make([]byte, total)
	i := copy(buf, a)
	copy(buf[i:], b)

	return toString(buf)
}

func join3[A, B, C Text](total int, a A, b B, c C) string {
	if total == 0 {
		return ""
	}

	buf := make([]byte, total)
	i := copy(buf, a)
	i += copy(buf[i:], b)
	copy(buf[i:], c)

	return toString(buf)
}

func join4[A, B, C, D Text](total int, a A, b B, c C, d D) string {
	if total == 0 {
		return ""
	}

	buf := make([]byte, total)
	i := copy(buf, a)
	i += copy(buf[i:], b)
	i += copy(buf[i:], c)
	copy(buf[i:], d)

	return toString(buf)
}

func join5[A, B, C, D, E Text](total int, a A, b B, c C, d D, e E) string {
	if total == 0 {
		return ""
	}

	buf := make([]byte, total)
	i := copy(buf, a)
	i += copy(buf[i:], b)
	i += copy(buf[i:], c)
	i += copy(buf[i:], d)
	copy(buf[i:], e)

	return toString(buf)
}
