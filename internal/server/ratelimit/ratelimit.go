// Package ratelimit enforces per-client, per-endpoint request quotas.
// Each client+endpoint pair gets a token bucket: the endpoint's burst is the
// bucket capacity and its limit/window sets the refill rate, so short bursts
// are absorbed while the sustained rate stays bounded.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// bucketIdleTTL is how long an untouched bucket survives before eviction.
const bucketIdleTTL = time.Hour

// Info describes the rate limit state reported alongside a decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds limiter-wide settings. Endpoints without a matching
// EndpointConfig fall back to the default limit and window.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastUsed   time.Time
}

// take refills the bucket for elapsed time, then consumes one token when
// available. It reports the decision, the whole tokens left and when the
// bucket will be full again.
func (b *bucket) take(now time.Time) (allowed bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = math.Min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastRefill = now
	b.lastUsed = now

	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	}

	remaining = int(b.tokens)
	reset = now
	if b.tokens < b.capacity {
		deficit := b.capacity - b.tokens
		reset = now.Add(time.Duration(deficit / b.refillRate * float64(time.Second)))
	}
	return allowed, remaining, reset
}

// Limiter tracks one token bucket per client+endpoint pair and evicts idle
// buckets in the background.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config
	stop    chan struct{}
}

// NewLimiter creates a limiter. A nil config enables limiting with the
// default quota and no per-endpoint overrides.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.stop = make(chan struct{})
		go l.evictLoop(config.CleanupInterval)
	}
	return l
}

// Allow decides whether a request from clientID against the given path and
// method may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if endpoint == nil {
		endpoint = &EndpointConfig{Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
	}
	if endpoint.Limit <= 0 {
		// Unlimited endpoint, e.g. the health check.
		return true, Info{Allowed: true}
	}

	b := l.bucket(clientID+" "+method+" "+path, endpoint)
	allowed, remaining, reset := b.take(time.Now())

	info := Info{
		Allowed:   allowed,
		Limit:     endpoint.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		if wait := time.Until(reset); wait > 0 {
			info.RetryAfter = wait
		}
	}
	return allowed, info
}

// bucket returns the bucket for key, creating it on first use.
func (l *Limiter) bucket(key string, endpoint *EndpointConfig) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}

	capacity := endpoint.Burst
	if capacity <= 0 {
		capacity = endpoint.Limit
	}
	now := time.Now()
	b := &bucket{
		capacity:   float64(capacity),
		refillRate: float64(endpoint.Limit) / endpoint.Window.Seconds(),
		tokens:     float64(capacity),
		lastRefill: now,
		lastUsed:   now,
	}
	l.buckets[key] = b
	return b
}

func (l *Limiter) evictLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-bucketIdleTTL))
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets last used before the cutoff.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		b.mu.Lock()
		idle := b.lastUsed.Before(cutoff)
		b.mu.Unlock()
		if idle {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the background eviction goroutine.
func (l *Limiter) Stop() {
	if l.stop != nil {
		close(l.stop)
	}
}
