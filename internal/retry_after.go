// internal/retry_after.go
// -----------------------
// Helpers for interpreting retry hints on throttled responses. Servers send
// Retry-After either as delay seconds ("120") or as an HTTP date; both forms
// are reduced to a wait duration relative to a supplied clock reading.
package internal

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseRetryAfter converts a Retry-After header value into a wait duration
// relative to now. It returns 0 for empty, malformed, or already-elapsed
// values, which callers treat as "no hint".
func ParseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if wait := at.Sub(now); wait > 0 {
			return wait
		}
	}
	return 0
}
