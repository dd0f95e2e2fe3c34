package concat

// Concat2Unchecked returns the same result as Concat2 without verifying that
// the combined length fits in MaxLen.
//
// The caller must guarantee len(a)+len(b) <= MaxLen. Breaking that guarantee
// is undefined behaviour: the result may be truncated or the call may panic
// inside the runtime. It is not a recoverable error. Builds tagged
// concatdebug assert the precondition and panic with ErrLengthOverflow.
//
// Parameters:
//   - a: The leading text
//   - b: The trailing text
//
// Returns:
//   - The concatenation of a and b
func Concat2Unchecked[A, B Text](a A, b B) string {
	if debugChecks {
		return Concat2(a, b)
	}

	return join2(len(a)+len(b), a, b)
}

// Concat3Unchecked is Concat3 with the length precondition left to the
// caller. See Concat2Unchecked.
func Concat3Unchecked[A, B, C Text](a A, b B, c C) string {
	if debugChecks {
		return Concat3(a, b, c)
	}

	return join3(len(a)+len(b)+len(c), a, b, c)
}

// Concat4Unchecked is Concat4 with the length precondition left to the
// caller. See Concat2Unchecked.
func Concat4Unchecked[A, B, C, D Text](a A, b B, c C, d D) string {
	if debugChecks {
		return Concat4(a, b, c, d)
	}

	return join4(len(a)+len(b)+len(c)+len(d), a, b, c, d)
}

// Concat5Unchecked is Concat5 with the length precondition left to the
// caller. See Concat2Unchecked.
func Concat5Unchecked[A, B, C, D, E Text](a A, b B, c C, d D, e E) string {
	if debugChecks {
		return Concat5(a, b, c, d, e)
	}

	return join5(len(a)+len(b)+len(c)+len(d)+len(e), a, b, c, d, e)
}
