// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ID parses a positive numeric id.
func ID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// IDs parses ids given as separate arguments or comma-separated lists.
func IDs(args []string) ([]int64, error) {
	var out []int64
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := ID(part)
			if err != nil {
				return nil, err
			}
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("at least one id is required")
	}
	return out, nil
}

// Enum maps a word to its value, case-insensitively. The error lists the
// accepted words in the order given.
func Enum[T any](s string, words []string, values []T) (T, error) {
	for i, w := range words {
		if strings.EqualFold(strings.TrimSpace(s), w) {
			return values[i], nil
		}
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q (want one of: %s)", s, strings.Join(words, ", "))
}

// Bool parses yes/no style booleans.
func Bool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "on":
		return true, nil
	case "false", "no", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
