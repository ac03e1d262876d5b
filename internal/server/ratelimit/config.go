// Defines rate limit tiers and routing rules.

package ratelimit

import (
	"net/http"
	"time"
)

// Tier is a named rate limit class. A nil Limiter means unlimited.
type Tier struct {
	Name    string
	Limiter *Limiter
}

// Config holds the limiters for each tier.
type Config struct {
	Read  Tier
	Write Tier
}

// NewConfig creates the read and write tiers from requests per minute per
// client IP. A zero rate disables the tier.
func NewConfig(readPerMin, writePerMin int) *Config {
	return &Config{
		Read:  newTier("read", readPerMin, max(readPerMin/6, 1)),
		Write: newTier("write", writePerMin, max(writePerMin/6, 1)),
	}
}

func newTier(name string, perMin, burst int) Tier {
	t := Tier{Name: name}
	if perMin > 0 {
		t.Limiter = NewLimiter(perMin, time.Minute, burst)
	}
	return t
}

// Match returns the tier for a request. Returns nil for requests that are not
// rate limited.
func (c *Config) Match(method, path string) *Tier {
	if c == nil || path == "/api/health" {
		return nil
	}
	var t *Tier
	switch method {
	case http.MethodGet, http.MethodHead:
		t = &c.Read
	default:
		t = &c.Write
	}
	if t.Limiter == nil {
		return nil
	}
	return t
}

// Close stops all limiter cleanup goroutines.
func (c *Config) Close() {
	if c == nil {
		return
	}
	for _, t := range []*Tier{&c.Read, &c.Write} {
		if t.Limiter != nil {
			t.Limiter.Close()
		}
	}
}
