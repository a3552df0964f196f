// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package klite

import (
	"errors"
	"fmt"
	"time"
)

// ErrBadInterval is returned when a dispatcher interval string does not
// match the grammar ^\d+(ms|s|m)$.
var ErrBadInterval = errors.New("klite: invalid interval")

// parseInterval is a small state machine over the grammar
// <digits><unit>, unit ∈ {ms, s, m}. It intentionally avoids regexp: the
// grammar is small enough that a manual scan is clearer and avoids pulling
// in the regexp engine for a handful of fixed suffixes.
func parseInterval(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrBadInterval, s)
	}

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadInterval, s)
	}

	digits := s[:i]
	unit := s[i:]

	var n int64
	for _, r := range digits {
		n = n*10 + int64(r-'0')
	}

	var scale time.Duration
	switch unit {
	case "ms":
		scale = time.Millisecond
	case "s":
		scale = time.Second
	case "m":
		scale = time.Minute
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadInterval, s)
	}

	return time.Duration(n) * scale, nil
}
