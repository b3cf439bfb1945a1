// Package assert provides assertion functions for tests.
//
// This is an internal package that exists so test files do not need to pull
// in a testing framework: every helper here is a thin wrapper around an
// ==, go-cmp, regexp or errors check that reports through the test's own
// Fatalf.
package assert

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/go-cmp/cmp"
)

type miniTB interface {
	Helper()
	Fatalf(string, ...any)
}

func formatSuffix(msgFormat string, args ...any) string {
	if msgFormat == "" {
		return ""
	}
	return " - " + fmt.Sprintf(msgFormat, args...)
}

// Equal asserts that two comparable values are equal.
func Equal(tb miniTB, want, got any) {
	tb.Helper()
	Equalf(tb, want, got, "")
}

// Equalf asserts that two comparable values are equal, with a message.
func Equalf(tb miniTB, want, got any, msgFormat string, args ...any) {
	tb.Helper()
	if got != want {
		tb.Fatalf("got %v; want %v%s", got, want, formatSuffix(msgFormat, args...))
	}
}

// DeepEqual asserts that two values are deeply equal, reporting a
// field-level diff on mismatch.
func DeepEqual(tb miniTB, want, got any) {
	tb.Helper()
	DeepEqualf(tb, want, got, "")
}

// DeepEqualf asserts that two values are deeply equal, with a message.
func DeepEqualf(tb miniTB, want, got any, msgFormat string, args ...any) {
	tb.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		tb.Fatalf("mismatch (-want +got):\n%s%s", diff, formatSuffix(msgFormat, args...))
	}
}

// ErrorMatches asserts that an error's message matches a regular expression.
func ErrorMatches(tb miniTB, pattern string, err error) {
	tb.Helper()
	if err == nil {
		tb.Fatalf("got nil; want error matching %q", pattern)
		return
	}
	re, reErr := regexp.Compile(pattern)
	if reErr != nil {
		tb.Fatalf("invalid regexp %q: %v", pattern, reErr)
		return
	}
	if !re.MatchString(err.Error()) {
		tb.Fatalf("error %q does not match %q", err.Error(), pattern)
	}
}

// ErrorIs asserts errors.Is(got, want).
func ErrorIs(tb miniTB, got, want error) {
	tb.Helper()
	if !errors.Is(got, want) {
		tb.Fatalf("got %#v; want %#v", got, want)
	}
}

// ErrorAs asserts errors.As(err, target).
func ErrorAs(tb miniTB, err error, target any) {
	tb.Helper()
	if !errors.As(err, target) {
		tb.Fatalf("got %#v; want assignable to %T", err, target)
	}
}

// NoError asserts that an error is nil.
func NoError(tb miniTB, err error) {
	tb.Helper()
	NoErrorf(tb, err, "")
}

// NoErrorf asserts that an error is nil, with a message.
func NoErrorf(tb miniTB, err error, msgFormat string, args ...any) {
	tb.Helper()
	if err != nil {
		tb.Fatalf("unexpected error: %v%s", err, formatSuffix(msgFormat, args...))
	}
}

// True asserts that a value is true.
func True(tb miniTB, got bool) {
	tb.Helper()
	if !got {
		tb.Fatalf("got false; want true")
	}
}

// False asserts that a value is false.
func False(tb miniTB, got bool) {
	tb.Helper()
	if got {
		tb.Fatalf("got true; want false")
	}
}
