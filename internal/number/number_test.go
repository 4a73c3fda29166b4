package number

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIntegers(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"-0", 0},
		{"1", 1},
		{"42", 42},
		{"-7", -7},
		{"9223372036854775807", 9223372036854775807},
		{"-9223372036854775808", -9223372036854775808},
		{"10  ", 10}, // trailing whitespace is fine
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, ok := Parse([]byte(tt.input), false)
			require.True(t, ok)
			require.True(t, n.IsInt)
			require.Equal(t, tt.want, n.Int)
		})
	}
}

func TestParseDoubles(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0.5", 0.5},
		{"-0.25", -0.25},
		{"1e3", 1000},
		{"1E3", 1000},
		{"2.5e-2", 0.025},
		{"1e+2", 100},
		// Too large for int64, still a valid double.
		{"9223372036854775808", 9223372036854775808},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, ok := Parse([]byte(tt.input), false)
			require.True(t, ok)
			require.False(t, n.IsInt)
			require.Equal(t, tt.want, n.Float)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []string{
		"",
		"-",
		"00",
		"01",
		"-01",
		"0.5.3",
		"1.2.3",
		".5",
		"1.",
		"1e",
		"1e+",
		"five",
		"0x10",
		"1 2",
		"12abc",
		"true",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, ok := Parse([]byte(input), false)
			require.False(t, ok)
		})
	}
}

func TestParseStopAtNext(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  int64
	}{
		{"3,", true, 3},
		{"3]", true, 3},
		{"3}", true, 3},
		{"3 # comment", true, 3},
		{"3 // comment", true, 3},
		{"3 /* comment */", true, 3},
		{"3 abc", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, ok := Parse([]byte(tt.input), true)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.True(t, n.IsInt)
				require.Equal(t, tt.want, n.Int)
			}
		})
	}
}

func TestParseStrictWithoutStopAtNext(t *testing.T) {
	// Without stop-at-next the punctuators are trailing garbage.
	for _, input := range []string{"3,", "3]", "3}"} {
		_, ok := Parse([]byte(input), false)
		require.False(t, ok, "input %q", input)
	}
}

func TestStartsWith(t *testing.T) {
	require.True(t, StartsWith([]byte("10")))
	require.True(t, StartsWith([]byte("-3.5")))
	require.True(t, StartsWith([]byte("2e8,")))
	require.False(t, StartsWith([]byte("10 eggs")))
	require.False(t, StartsWith([]byte("v1.0")))
	require.False(t, StartsWith([]byte("05")))
}
