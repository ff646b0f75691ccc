package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMinutesOfDay converts an "HH:MM" (or "HH:MM:SS") time-of-day string
// into minutes from midnight.
func ParseMinutesOfDay(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

// FormatMinutesOfDay renders minutes from midnight as "HH:MM".
func FormatMinutesOfDay(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
