package droidlink

import "testing"

// assertBytesEqual fails the test when the two byte slices differ.
func assertBytesEqual(t *testing.T, expected, actual []byte) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("expected %d bytes % 02X, got %d bytes % 02X",
			len(expected), expected, len(actual), actual)
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Fatalf("byte %d differs: expected % 02X, got % 02X", i, expected, actual)
		}
	}
}

// assertWithin fails the test when actual is more than tolerance away from
// expected. Remapped packet fields round-trip within one unit.
func assertWithin(t *testing.T, expected, actual, tolerance int) {
	t.Helper()
	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		t.Fatalf("expected %d within ±%d, got %d", expected, tolerance, actual)
	}
}
