// Package version implements the three-segment numeric version
// comparison used for update decisions. Segments beyond
// major.minor.patch are ignored, missing segments count as zero, and
// leading non-digit characters in a segment (e.g. "v1") are stripped
// before parsing.
package version

import (
	"strconv"
	"strings"
)

// segments parses up to three numeric segments from a version string.
func segments(v string) [3]int {
	var out [3]int
	parts := strings.Split(v, ".")
	for i := 0; i < 3 && i < len(parts); i++ {
		out[i] = parseSegment(parts[i])
	}
	return out
}

func parseSegment(s string) int {
	start := 0
	for start < len(s) && (s[start] < '0' || s[start] > '9') {
		start++
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0
	}
	return n
}

// Compare orders two version strings numerically. It returns -1 when a
// is older than b, 0 when equal, and 1 when newer.
func Compare(a, b string) int {
	as, bs := segments(a), segments(b)
	for i := 0; i < 3; i++ {
		switch {
		case as[i] < bs[i]:
			return -1
		case as[i] > bs[i]:
			return 1
		}
	}
	return 0
}

// IsNewer reports whether available is strictly newer than current.
func IsNewer(current, available string) bool {
	return Compare(current, available) < 0
}

// IsMajorUpgrade reports whether the available version's leading
// numeric segment is strictly greater than the current one. Versions
// without a parseable leading segment never count as major.
func IsMajorUpgrade(current, available string) bool {
	c, okc := leadingSegment(current)
	a, oka := leadingSegment(available)
	return okc && oka && a > c
}

func leadingSegment(v string) (int, bool) {
	first, _, _ := strings.Cut(v, ".")
	n, err := strconv.Atoi(first)
	if err != nil {
		return 0, false
	}
	return n, true
}
