package ai

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The provider reports most failures only through the error text, so errors
// are classified by substring.
var (
	rateLimitMarkers       = []string{"429", "quota", "Too Many Requests"}
	serviceDisabledMarkers = []string{"SERVICE_DISABLED"}

	retryInPattern = regexp.MustCompile(`retry in (\d+(?:\.\d+)?)`)
)

// IsRateLimit reports whether err signals a rate limit or exhausted quota.
// These failures are transient and worth retrying.
func IsRateLimit(err error) bool {
	return containsAny(err, rateLimitMarkers)
}

// IsServiceDisabled reports whether the provider API is disabled for the
// configured project. This never resolves by retrying.
func IsServiceDisabled(err error) bool {
	return containsAny(err, serviceDisabledMarkers)
}

// SuggestedDelay extracts a server suggested wait ("... retry in 12.5s") from
// the error text. ok is false when none is present or it is zero.
func SuggestedDelay(err error) (d time.Duration, ok bool) {
	if err == nil {
		return 0, false
	}
	m := retryInPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, false
	}
	seconds, perr := strconv.ParseFloat(m[1], 64)
	if perr != nil || seconds <= 0 {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}

func containsAny(err error, markers []string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, m := range markers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
