package bench

import (
	"fmt"

	"github.com/cyberinferno/nanokit/bitwidth"
	"github.com/cyberinferno/nanokit/concat"
)

// Sinks keep workload results reachable so calls are not optimised away.
var (
	stringSink string
	intSink    int
)

var (
	words   = [5]string{"Hello", ", ", "beautiful", " world", "!"}
	fox     = [4]string{"The", " quick", " brown", " fox"}
	int8s   = []int8{0, 1, -1, 127, -128, 42}
	uint16s = []uint16{0, 1, 255, 256, 1023, 1024, 65535}
	int64s  = []int64{0, 1, -1, 1 << 40, -(1 << 40), 9223372036854775807}
	wides   = []bitwidth.Uint128{{}, {Lo: 1}, {Hi: 1}, {Hi: ^uint64(0), Lo: ^uint64(0)}}
)

func expect(got, want string) error {
	if got != want {
		return fmt.Errorf("%w: got %q, want %q", ErrCheckFailed, got, want)
	}

	return nil
}

func expectBits(got, want int) error {
	if got != want {
		return fmt.Errorf("%w: got %d bits, want %d", ErrCheckFailed, got, want)
	}

	return nil
}

func concatWorkloads() []Workload {
	return []Workload{
		{
			Name:  "concat2",
			Fn:    func() { stringSink = concat.Concat2(words[0], words[1]) },
			Check: func() error { return expect(concat.Concat2("Hello, ", "world!"), "Hello, world!") },
		},
		{
			Name:  "concat3",
			Fn:    func() { stringSink = concat.Concat3(words[0], words[1], words[2]) },
			Check: func() error { return expect(concat.Concat3("Hello, ", "beautiful ", "world!"), "Hello, beautiful world!") },
		},
		{
			Name:  "concat4",
			Fn:    func() { stringSink = concat.Concat4(fox[0], fox[1], fox[2], fox[3]) },
			Check: func() error { return expect(concat.Concat4(fox[0], fox[1], fox[2], fox[3]), "The quick brown fox") },
		},
		{
			Name: "concat5",
			Fn:   func() { stringSink = concat.Concat5(words[0], words[1], words[2], words[3], words[4]) },
			Check: func() error {
				return expect(concat.Concat5(words[0], words[1], words[2], words[3], words[4]), "Hello, beautiful world!")
			},
		},
		{
			Name:  "concat2-unchecked",
			Fn:    func() { stringSink = concat.Concat2Unchecked(words[0], words[1]) },
			Check: func() error { return expect(concat.Concat2Unchecked("A", "B"), "AB") },
		},
		{
			Name:  "concat3-unchecked",
			Fn:    func() { stringSink = concat.Concat3Unchecked(words[0], words[1], words[2]) },
			Check: func() error { return expect(concat.Concat3Unchecked("A", "B", "C"), "ABC") },
		},
		{
			Name:  "concat4-unchecked",
			Fn:    func() { stringSink = concat.Concat4Unchecked(fox[0], fox[1], fox[2], fox[3]) },
			Check: func() error { return expect(concat.Concat4Unchecked(fox[0], fox[1], fox[2], fox[3]), "The quick brown fox") },
		},
		{
			Name: "concat5-unchecked",
			Fn:   func() { stringSink = concat.Concat5Unchecked(words[0], words[1], words[2], words[3], words[4]) },
			Check: func() error {
				return expect(concat.Concat5Unchecked("A", "B", "C", "D", "E"), "ABCDE")
			},
		},
	}
}

func bitwidthWorkloads() []Workload {
	return []Workload{
		{
			Name: "bitwidth-int8",
			Fn: func() {
				for _, v := range int8s {
					intSink += bitwidth.BitsNeeded(v)
				}
			},
			Check: func() error { return expectBits(bitwidth.BitsNeeded(int8(-128)), 8) },
		},
		{
			Name: "bitwidth-uint16",
			Fn: func() {
				for _, v := range uint16s {
					intSink += bitwidth.BitsNeeded(v)
				}
			},
			Check: func() error { return expectBits(bitwidth.BitsNeeded(uint16(256)), 9) },
		},
		{
			Name: "bitwidth-int64",
			Fn: func() {
				for _, v := range int64s {
					intSink += bitwidth.BitsNeeded(v)
				}
			},
			Check: func() error { return expectBits(bitwidth.BitsNeeded(int64(9223372036854775807)), 63) },
		},
		{
			Name: "bitwidth-uint128",
			Fn: func() {
				for _, v := range wides {
					intSink += v.BitsNeeded()
				}
			},
			Check: func() error { return expectBits(bitwidth.Uint128{Hi: 1}.BitsNeeded(), 65) },
		},
	}
}

// DefaultWorkloads returns the built-in sample workloads covering every
// concatenation arity in both flavours and bit width over several integer
// widths.
func DefaultWorkloads() []Workload {
	return append(concatWorkloads(), bitwidthWorkloads()...)
}
