package util

import "time"

// Contains reports whether arr holds target.
func Contains(arr []string, target string) bool {
	for _, a := range arr {
		if a == target {
			return true
		}
	}
	return false
}

// Truncate cuts s to at most max bytes. Ledger payloads keep free text short.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// NowISO returns the current UTC time in RFC 3339 form, the timestamp format
// used inside block payloads and execution records.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NowUnixFloat returns the current time as fractional unix seconds, the
// format of block timestamps.
func NowUnixFloat() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
