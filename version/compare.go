// Package version compares dotted version strings.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Parse reads up to three dot-separated numeric components. Missing components are zero.
func Parse(s string) ([3]int, error) {
	var v [3]int

	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(s), "v"), ".")
	if len(parts) == 0 || len(parts) > 3 || parts[0] == "" {
		return v, fmt.Errorf("invalid version %q", s)
	}

	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return v, fmt.Errorf("invalid version %q: component %q", s, p)
		}
		v[i] = n
	}

	return v, nil
}

// Compare performs a component-wise comparison between two version strings.
// Returns 1 if a > b, -1 if a < b, and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := Parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := Parse(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range lo.Zip2(av[:], bv[:]) {
		if pair.A > pair.B {
			return 1, nil
		}

		if pair.A < pair.B {
			return -1, nil
		}
	}

	return 0, nil
}
