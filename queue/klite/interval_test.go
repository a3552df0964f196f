// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package klite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{"milliseconds", "500ms", 500 * time.Millisecond},
		{"seconds", "30s", 30 * time.Second},
		{"minutes", "5m", 5 * time.Minute},
		{"zero", "0s", 0},
		{"multi-digit", "1234ms", 1234 * time.Millisecond},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseInterval(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseInterval_RejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "ms", "5", "5h", "5 s", "-5s", "5.5s", "s5"} {
		t.Run(input, func(t *testing.T) {
			_, err := parseInterval(input)
			require.ErrorIs(t, err, ErrBadInterval)
		})
	}
}
