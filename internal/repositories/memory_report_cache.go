package repositories

import (
	"context"
	"sync"
	"time"

	"call-insights/internal/models"
)

// MemoryReportCache is an in-process ReportCache with TTL expiry and hit/miss stats
type MemoryReportCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	hits    int64
	misses  int64

	stop     chan struct{}
	stopOnce sync.Once
}

type cacheEntry struct {
	report    models.AnalysisReport
	clientID  string
	expiresAt time.Time
}

// CacheStats summarizes cache effectiveness
type CacheStats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Size    int     `json:"size"`
	HitRate float64 `json:"hit_rate"`
}

// NewMemoryReportCache creates a cache and starts its cleanup goroutine.
// Call Close to stop the goroutine.
func NewMemoryReportCache(ttl time.Duration) *MemoryReportCache {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	cache := &MemoryReportCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}

	// Start cleanup goroutine
	go cache.cleanupLoop(time.Minute)

	return cache
}

func (c *MemoryReportCache) Get(ctx context.Context, key ReportKey) (*models.AnalysisReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key.String()]
	if !exists || time.Now().After(entry.expiresAt) {
		c.misses++
		return nil, ErrCacheMiss
	}

	c.hits++
	report := entry.report
	return &report, nil
}

func (c *MemoryReportCache) Set(ctx context.Context, key ReportKey, report *models.AnalysisReport) error {
	if report == nil {
		return NewRepositoryError("set_report", key.String(), nil, "report is nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key.String()] = &cacheEntry{
		report:    *report,
		clientID:  key.ClientID,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

func (c *MemoryReportCache) Invalidate(ctx context.Context, clientID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if clientID == "" || entry.clientID == clientID {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Stats returns the hit/miss counters and current size
func (c *MemoryReportCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	hitRate := float64(0)
	total := c.hits + c.misses
	if total > 0 {
		hitRate = float64(c.hits) / float64(total) * 100
	}

	return CacheStats{
		Hits:    c.hits,
		Misses:  c.misses,
		Size:    len(c.entries),
		HitRate: hitRate,
	}
}

// Close stops the cleanup goroutine
func (c *MemoryReportCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *MemoryReportCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryReportCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
