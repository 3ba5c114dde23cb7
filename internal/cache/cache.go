// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/reelreads/reelreads/internal/metrics"
)

// Config holds cache behavior configuration. TTLs maps namespace to entry
// lifetime; namespaces without an explicit TTL use DefaultTTL.
type Config struct {
	TTLs       map[string]time.Duration
	DefaultTTL time.Duration
}

// Cache is the expiring namespaced cache over a Store backend.
//
// Reads never fail: absent, expired, and corrupt entries are all reported
// as a miss, and expired/corrupt slots are deleted as a side effect.
// Writes that fail are logged and swallowed; failing to cache a value must
// never fail the caller's request. Safe for concurrent use.
type Cache struct {
	store      Store
	ttls       map[string]time.Duration
	defaultTTL time.Duration
	logger     zerolog.Logger

	statsMu sync.Mutex
	stats   map[string]*NamespaceStats

	// now is swappable for expiry tests.
	now func() time.Time
}

// NamespaceStats tracks per-namespace cache effectiveness.
type NamespaceStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	SelfHeals int64 `json:"self_heals"`
}

// New creates a cache over the given store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(store Store, cfg Config, logger zerolog.Logger) *Cache {
	defaultTTL := cfg.DefaultTTL
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &Cache{
		store:      store,
		ttls:       cfg.TTLs,
		defaultTTL: defaultTTL,
		logger:     logger.With().Str("component", "cache").Logger(),
		stats:      make(map[string]*NamespaceStats),
		now:        time.Now,
	}
}

// TTL returns the configured entry lifetime for a namespace.
func (c *Cache) TTL(namespace string) time.Duration {
	if ttl, ok := c.ttls[namespace]; ok && ttl > 0 {
		return ttl
	}
	return c.defaultTTL
}

// Get retrieves the value stored under (namespace, key).
//
// Returns (value, true) only for a present, well-formed, unexpired entry.
// Every other condition is a miss, and expired or corrupt slots are
// deleted before returning so they cannot be observed twice.
func (c *Cache) Get(ctx context.Context, namespace, key string) ([]byte, bool) {
	data, err := c.store.Read(ctx, namespace, key)
	if errors.Is(err, ErrNotFound) {
		c.miss(namespace)
		return nil, false
	}
	if err != nil {
		// Unreadable slot: treat like corruption and heal it.
		c.logger.Warn().Err(err).Str("namespace", namespace).Str("key", key).
			Msg("unreadable cache slot, deleting")
		c.heal(ctx, namespace, key)
		c.miss(namespace)
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn().Err(err).Str("namespace", namespace).Str("key", key).
			Msg("corrupt cache slot, deleting")
		c.heal(ctx, namespace, key)
		c.miss(namespace)
		return nil, false
	}
	if err := entry.validate(namespace); err != nil {
		c.logger.Warn().Err(err).Str("namespace", namespace).Str("key", key).
			Msg("invalid cache entry, deleting")
		c.heal(ctx, namespace, key)
		c.miss(namespace)
		return nil, false
	}

	if entry.expired(c.now()) {
		c.logger.Debug().Str("namespace", namespace).Str("key", key).
			Time("expired_at", entry.ExpiresAt).Msg("expired cache entry, deleting")
		c.evict(ctx, namespace, key)
		c.miss(namespace)
		return nil, false
	}

	c.hit(namespace)
	return entry.Value, true
}

// Set stores value under (namespace, key) with the namespace TTL, fully
// replacing any existing entry. Failures are logged and swallowed.
func (c *Cache) Set(ctx context.Context, namespace, key string, value []byte) {
	c.SetWithTTL(ctx, namespace, key, value, c.TTL(namespace))
}

// SetWithTTL stores value with an explicit TTL.
func (c *Cache) SetWithTTL(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) {
	now := c.now()
	entry := Entry{
		Namespace: namespace,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Value:     value,
	}
	data, err := json.Marshal(&entry)
	if err != nil {
		c.setError(namespace, key, err)
		return
	}
	if err := c.store.Write(ctx, namespace, key, data, ttl); err != nil {
		c.setError(namespace, key, err)
	}
}

// SetJSON marshals value and stores it under (namespace, key).
func (c *Cache) SetJSON(ctx context.Context, namespace, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.setError(namespace, key, err)
		return
	}
	c.Set(ctx, namespace, key, data)
}

// GetJSON retrieves and unmarshals the value stored under (namespace, key)
// into out. An undecodable value is treated as a corrupt slot.
func (c *Cache) GetJSON(ctx context.Context, namespace, key string, out interface{}) bool {
	data, ok := c.Get(ctx, namespace, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn().Err(err).Str("namespace", namespace).Str("key", key).
			Msg("undecodable cache value, deleting")
		c.heal(ctx, namespace, key)
		return false
	}
	return true
}

// Invalidate explicitly removes an entry ahead of its expiry.
func (c *Cache) Invalidate(ctx context.Context, namespace, key string) {
	c.evict(ctx, namespace, key)
}

// Clear removes every entry in the namespace (all namespaces when empty).
func (c *Cache) Clear(ctx context.Context, namespace string) error {
	return c.store.Clear(ctx, namespace)
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}

// Stats returns a snapshot of per-namespace counters.
func (c *Cache) Stats() map[string]NamespaceStats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	out := make(map[string]NamespaceStats, len(c.stats))
	for ns, s := range c.stats {
		out[ns] = *s
	}
	return out
}

func (c *Cache) nsStats(namespace string) *NamespaceStats {
	s, ok := c.stats[namespace]
	if !ok {
		s = &NamespaceStats{}
		c.stats[namespace] = s
	}
	return s
}

func (c *Cache) hit(namespace string) {
	c.statsMu.Lock()
	c.nsStats(namespace).Hits++
	c.statsMu.Unlock()
	metrics.CacheHits.WithLabelValues(namespace).Inc()
}

func (c *Cache) miss(namespace string) {
	c.statsMu.Lock()
	c.nsStats(namespace).Misses++
	c.statsMu.Unlock()
	metrics.CacheMisses.WithLabelValues(namespace).Inc()
}

// evict removes a slot for expiry or explicit invalidation.
func (c *Cache) evict(ctx context.Context, namespace, key string) {
	if err := c.store.Delete(ctx, namespace, key); err != nil {
		c.logger.Warn().Err(err).Str("namespace", namespace).Str("key", key).
			Msg("failed to delete cache slot")
	}
	c.statsMu.Lock()
	c.nsStats(namespace).Evictions++
	c.statsMu.Unlock()
	metrics.CacheEvictions.WithLabelValues(namespace).Inc()
}

// heal removes a corrupt slot.
func (c *Cache) heal(ctx context.Context, namespace, key string) {
	if err := c.store.Delete(ctx, namespace, key); err != nil {
		c.logger.Warn().Err(err).Str("namespace", namespace).Str("key", key).
			Msg("failed to delete corrupt cache slot")
	}
	c.statsMu.Lock()
	c.nsStats(namespace).SelfHeals++
	c.statsMu.Unlock()
	metrics.CacheSelfHeals.WithLabelValues(namespace).Inc()
}

func (c *Cache) setError(namespace, key string, err error) {
	c.logger.Error().Err(err).Str("namespace", namespace).Str("key", key).
		Msg("cache write failed")
	metrics.CacheSetErrors.WithLabelValues(namespace).Inc()
}
