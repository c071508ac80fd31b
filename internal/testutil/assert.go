// Package testutil holds assertions and match fixtures shared by the
// chessmatch-go tests. Assertions report through t.Errorf so a test keeps
// going after a mismatch; fixtures stop the test with t.Fatalf.
package testutil

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertEqual compares got against want with cmp.Diff. Trailing arguments
// are an optional printf-style context message.
func AssertEqual(t *testing.T, got, want any, msgAndArgs ...any) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		report(t, msgAndArgs, "mismatch (-want +got):\n%s", diff)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		report(t, msgAndArgs, "unexpected error: %v", err)
	}
}

// AssertError fails if err is nil.
func AssertError(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	if err == nil {
		report(t, msgAndArgs, "expected error but got nil")
	}
}

// AssertErrorIs fails unless errors.Is(err, target). Move and board errors
// match both their kind and their reason.
func AssertErrorIs(t *testing.T, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !errors.Is(err, target) {
		report(t, msgAndArgs, "error %v does not match %v", err, target)
	}
}

// AssertContains fails if substr is not in got.
func AssertContains(t *testing.T, got, substr string, msgAndArgs ...any) {
	t.Helper()
	if !strings.Contains(got, substr) {
		report(t, msgAndArgs, "%q does not contain %q", got, substr)
	}
}

// AssertNotContains fails if substr is in got.
func AssertNotContains(t *testing.T, got, substr string, msgAndArgs ...any) {
	t.Helper()
	if strings.Contains(got, substr) {
		report(t, msgAndArgs, "%q should not contain %q", got, substr)
	}
}

// AssertTrue fails if condition is false.
func AssertTrue(t *testing.T, condition bool, msgAndArgs ...any) {
	t.Helper()
	if !condition {
		report(t, msgAndArgs, "expected true but got false")
	}
}

// AssertFalse fails if condition is true.
func AssertFalse(t *testing.T, condition bool, msgAndArgs ...any) {
	t.Helper()
	if condition {
		report(t, msgAndArgs, "expected false but got true")
	}
}

// AssertNil fails if got is neither untyped nil nor a nil pointer, slice,
// map, channel, func or interface. A captured-piece return such as
// (*chess.Piece)(nil) counts as nil.
func AssertNil(t *testing.T, got any, msgAndArgs ...any) {
	t.Helper()
	if !isNil(got) {
		report(t, msgAndArgs, "expected nil but got %v", got)
	}
}

// AssertNotNil is the inverse of AssertNil.
func AssertNotNil(t *testing.T, got any, msgAndArgs ...any) {
	t.Helper()
	if isNil(got) {
		report(t, msgAndArgs, "expected non-nil value but got nil")
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// report fails the test with the failure text, prefixed by the caller's
// context message when one was given.
func report(t *testing.T, msgAndArgs []any, format string, args ...any) {
	t.Helper()
	failure := fmt.Sprintf(format, args...)
	if msg := formatMessage(msgAndArgs...); msg != "" {
		failure = msg + ": " + failure
	}
	t.Error(failure)
}

// formatMessage renders the optional context arguments. A leading string is
// used as a format for the rest.
func formatMessage(msgAndArgs ...any) string {
	switch {
	case len(msgAndArgs) == 0:
		return ""
	case len(msgAndArgs) == 1:
		return fmt.Sprint(msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprint(msgAndArgs[0])
}
