// Package ageband parses free-text age-group labels as found in CDC
// WONDER mortality exports ("Under 1 year", "15-24 years", "85+ years",
// "Not Stated") into numeric age bounds.
package ageband

import (
	"regexp"
	"strconv"
	"strings"
)

// openEndedWidth is added to the lower bound of an open-ended band
// ("85+ years") to approximate an upper bound with the same width as
// the preceding decade bands. It is an approximation, not a true
// maximum age.
const openEndedWidth = 9

var (
	plusRe  = regexp.MustCompile(`(\d+)\+`)
	rangeRe = regexp.MustCompile(`(\d+)[-–](\d+)`)
	numRe   = regexp.MustCompile(`(\d+)`)
)

// ParseMin extracts the minimum age from an age-group label. The
// second return value is false when the label carries no usable bound
// ("Not Stated", "Unknown", or no digits at all).
func ParseMin(label string) (int, bool) {
	s := strings.ToLower(label)

	if strings.Contains(s, "under") {
		return 0, true
	}
	if strings.Contains(s, "not") || strings.Contains(s, "unknown") {
		return 0, false
	}
	if m := plusRe.FindStringSubmatch(s); m != nil {
		return mustInt(m[1]), true
	}
	if m := rangeRe.FindStringSubmatch(s); m != nil {
		return mustInt(m[1]), true
	}
	if m := numRe.FindStringSubmatch(s); m != nil {
		return mustInt(m[1]), true
	}
	return 0, false
}

// ParseMax extracts the maximum age from an age-group label. Note that
// it tries the range pattern before the plus pattern, the reverse of
// ParseMin; a label matching both patterns can therefore yield bounds
// keyed to different parts of the label. That asymmetry is kept
// deliberately so derived columns stay comparable with the historical
// dataset.
func ParseMax(label string) (int, bool) {
	s := strings.ToLower(label)

	if strings.Contains(s, "under") {
		return 1, true
	}
	if strings.Contains(s, "not") || strings.Contains(s, "unknown") {
		return 0, false
	}
	if m := rangeRe.FindStringSubmatch(s); m != nil {
		return mustInt(m[2]), true
	}
	if m := plusRe.FindStringSubmatch(s); m != nil {
		return mustInt(m[1]) + openEndedWidth, true
	}
	if m := numRe.FindStringSubmatch(s); m != nil {
		return mustInt(m[1]), true
	}
	return 0, false
}

// mustInt converts a digits-only regexp capture. The patterns above
// guarantee the input is numeric.
func mustInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
