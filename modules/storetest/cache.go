package storetest

import (
	"context"
	"sync"
	"time"

	"meteocal/core/constants"
)

// Cache is an in-memory cache.Cache. TTLs are ignored.
type Cache struct {
	mu        sync.Mutex
	attempts  map[string]int
	blacklist map[string]time.Duration
	values    map[string][]byte
	Gets      int
	Sets      int
}

func NewCache() *Cache {
	return &Cache{
		attempts:  map[string]int{},
		blacklist: map[string]time.Duration{},
		values:    map[string][]byte{},
	}
}

func (c *Cache) IsLoginBlocked(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts[key] >= constants.MaxLoginAttempts, nil
}

func (c *Cache) IncrementLoginAttempt(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts[key]++
	return nil
}

func (c *Cache) Expire(context.Context, string, time.Duration) error {
	return nil
}

func (c *Cache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.attempts, key)
	return nil
}

func (c *Cache) Attempts(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts[key]
}

func (c *Cache) AddToTokenBlacklist(_ context.Context, token string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blacklist[token] = ttl
	return nil
}

func (c *Cache) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.blacklist[token]
	return ok, nil
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sets++
	c.values[key] = value
	return nil
}
