package segchain

import "fmt"

// InvalidArgumentError reports a null pointer where one isn't permitted, a
// non-positive dimension, stride < width, an out-of-range index, or an
// unsupported pixel type. It corresponds to spec error kind InvalidArgument.
type InvalidArgumentError string

func (e InvalidArgumentError) Error() string {
	return "segchain: invalid argument: " + string(e)
}

// OutOfMemoryError reports an allocation failure inside a builder. No
// function in this package returns it: Go reports a runtime allocation
// failure as a fatal error, not a recoverable one. It corresponds to spec
// error kind OutOfMemory.
type OutOfMemoryError string

func (e OutOfMemoryError) Error() string {
	return "segchain: out of memory: " + string(e)
}

// singularError is reported internally by the linear regression and the
// shear fitter. It never crosses the public API: per the propagation policy
// in spec.md §7, a singular regression or a non-converging shear fit causes
// the offending chain to be silently dropped from the pool, not surfaced to
// the caller.
type singularError string

func (e singularError) Error() string {
	return "segchain: singular regression: " + string(e)
}

// unexpectedError corresponds to spec error kind Unexpected: an assertion
// failure (chain-length mismatch during reconstruction, parent-count
// inconsistency) that must never fire on valid input. Encountering one
// panics rather than returning an error, matching the teacher's own use of
// panic("unreachable") for provably-dead switch defaults.
type unexpectedError string

func (e unexpectedError) Error() string {
	return "segchain: unexpected internal state: " + string(e)
}

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(unexpectedError(fmt.Sprintf(format, args...)))
	}
}
