package services

import (
	"math"
	"strconv"
	"strings"
)

// ParseManualHours interprets free-text numeric input for a manual-hours
// override. Empty, unparseable or non-finite input means "no override" (nil):
// interactive edits must degrade silently, never fail.
func ParseManualHours(text string) *float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
