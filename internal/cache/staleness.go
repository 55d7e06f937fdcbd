package cache

import (
	"time"

	"github.com/dustin/go-humanize"
)

// StalenessPolicy flags a cache whose age in days has reached the
// configured threshold. A zero threshold disables the check entirely.
type StalenessPolicy struct {
	MaxAgeDays int
}

func (policy StalenessPolicy) IsStale(cachedAt time.Time) bool {
	if policy.MaxAgeDays <= 0 || cachedAt.IsZero() {
		return false
	}
	return time.Since(cachedAt) >= time.Duration(policy.MaxAgeDays)*24*time.Hour
}

// Describe renders the cache age for display, e.g. "3 days ago".
func (policy StalenessPolicy) Describe(cachedAt time.Time) string {
	if cachedAt.IsZero() {
		return "never scanned"
	}
	return humanize.Time(cachedAt)
}
