// Package tle fetches two-line element sets from CelesTrak-style plain-text
// sources. Retrieval walks an ordered fallback chain: the requested URL, an
// alternate group query retried after an access-denied response from the
// legacy stations list, and finally an element set baked into the binary for
// the default satellite. Successful results are cached for the life of the
// process; orbital elements are refreshed per run, not per request.
package tle

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced by TLE acquisition.
var (
	// ErrFetch reports a transport failure or non-success HTTP status.
	ErrFetch = errors.New("TLE fetch failed")

	// ErrNotFound reports a satellite missing from a successfully fetched
	// document. It is always surfaced; the fallback chain never recovers it.
	ErrNotFound = errors.New("TLE not found")
)

// Elements is a named two-line element set. The element lines are opaque to
// this package and are passed through to the propagation layer verbatim.
type Elements struct {
	Name  string `json:"name"`
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// Parse scans a plain-text TLE document for a 3-line record whose name line
// matches name case-insensitively and whose element lines carry the "1 " and
// "2 " markers. The first matching record wins.
func Parse(name, text, sourceURL string) (Elements, error) {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	target := strings.ToLower(strings.TrimSpace(name))
	for i := 0; i+2 < len(lines); i++ {
		satName := lines[i]
		line1 := lines[i+1]
		line2 := lines[i+2]
		if strings.ToLower(satName) == target &&
			strings.HasPrefix(line1, "1 ") &&
			strings.HasPrefix(line2, "2 ") {
			return Elements{Name: satName, Line1: line1, Line2: line2}, nil
		}
	}

	return Elements{}, fmt.Errorf("%w: %q in %s", ErrNotFound, name, sourceURL)
}
