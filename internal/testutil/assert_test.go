package testutil

import (
	"errors"
	"fmt"
	"testing"
)

// Failure paths cannot be observed without a fake *testing.T, so these
// cover the passing paths and the message formatting.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "e4", "e4")
	AssertEqual(t, [][]string{{"r", "."}, {".", "R"}}, [][]string{{"r", "."}, {".", "R"}})
	AssertEqual(t, map[string][]string{"a1": {"a2"}}, map[string][]string{"a1": {"a2"}}, "legal map")
}

func TestAssertSameElements_Success(t *testing.T) {
	AssertSameElements(t, []string{"e2e4", "d2d4"}, []string{"d2d4", "e2e4"})
	AssertSameElements(t, nil, []string{})
}

func TestAssertSubset_Success(t *testing.T) {
	AssertSubset(t, []string{"a1"}, []string{"a1", "b1"})
	AssertSubset(t, nil, []string{"a1"})
}

func TestAssertErrorIs_Success(t *testing.T) {
	base := errors.New("base")
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", base), base)
	AssertErrorIs(t, base, base, "direct %s", "match")
}

func TestAssertBool_Success(t *testing.T) {
	AssertNoError(t, nil)
	AssertTrue(t, len("a10") == 3)
	AssertFalse(t, len("a1") == 3, "short coordinate")
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"move %s", "e2e4"}, "move e2e4"},
		{"format multiple", []interface{}{"%s %d", "ply", 3}, "ply 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
