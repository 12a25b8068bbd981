package testing

import (
	"reflect"
	"testing"
)

// AssertSuccess asserts that error did not occur.
func AssertSuccess(t testing.TB, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

// AssertEqual asserts that values are deeply equal.
func AssertEqual[T any](t testing.TB, a, b T) {
	t.Helper()

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected '%v' to be equal to '%v'", a, b)
	}
}

// AssertTrue asserts a condition.
func AssertTrue(t testing.TB, ok bool) {
	t.Helper()

	if !ok {
		t.Fatalf("expected condition to be true")
	}
}
