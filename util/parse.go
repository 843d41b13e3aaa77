package util

import (
	"strconv"
	"strings"
)

var sizeUnits = []struct {
	suffix     string
	multiplier int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize parses a human-readable size such as "1MB", "512KB", "2 GB" or
// "1024" into bytes. Empty, malformed and negative sizes yield defaultBytes.
func ParseSize(s string, defaultBytes int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultBytes
	}

	multiplier := int64(1)
	for _, u := range sizeUnits {
		if strings.HasSuffix(s, u.suffix) {
			multiplier = u.multiplier
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return defaultBytes
	}
	return n * multiplier
}

// MaskSecret keeps the first visiblePrefix bytes of s and hides the rest.
// Secrets no longer than visiblePrefix are hidden entirely, and an empty
// secret renders as "" so unset tokens stay recognizable in logs.
func MaskSecret(s string, visiblePrefix int) string {
	if s == "" {
		return ""
	}
	if visiblePrefix < 0 || len(s) <= visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}
