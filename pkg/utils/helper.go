package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePositiveInt parses a path or query parameter that must be a
// positive integer. Anything else is reported as an error, never a
// panic further down.
func ParsePositiveInt(value string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("must be a positive integer, got %q", value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be a positive integer, got %q", value)
	}
	return n, nil
}
