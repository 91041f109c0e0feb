package artifact

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// cacheState tracks the resolution lifecycle: empty -> resolving -> ready on
// success, resolving -> empty on failure so a later Get retries, ready ->
// empty on invalidation.
type cacheState int

const (
	stateEmpty cacheState = iota
	stateResolving
	stateReady
)

// Cache holds the single currently-active resolved model. One mutex guards
// the lazy check-and-set, so at most one resolution is ever in flight and
// readers observe either the fully-old or fully-new artifact, never a partial
// one. Callers that already hold a *Loaded keep serving through a reload.
type Cache struct {
	mu       sync.Mutex
	state    cacheState
	loaded   *Loaded
	stale    *Loaded
	lastPath string

	resolver *Resolver
	logger   *zap.Logger

	loadAttempts atomic.Int64
	loadCounter  *prometheus.CounterVec
	activeGauge  prometheus.Gauge
}

// NewCache creates a cache over a resolver.
func NewCache(resolver *Resolver, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{resolver: resolver, logger: logger}
}

// WithMetrics wires the load-attempt counter (status label) and active-model gauge.
func (c *Cache) WithMetrics(loadCounter *prometheus.CounterVec, activeGauge prometheus.Gauge) *Cache {
	c.loadCounter = loadCounter
	c.activeGauge = activeGauge
	return c
}

// Get returns the cached artifact, resolving lazily on first call or after
// invalidation. Ready is the only state served without disk I/O.
func (c *Cache) Get(ctx context.Context) (*Loaded, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateReady {
		return c.loaded, nil
	}
	return c.resolveLocked(ctx)
}

// Invalidate clears the cache, forcing the next Get to re-resolve. The
// previous artifact is retained: if re-resolution lands on the same storage
// path, deserialization is skipped.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateReady {
		return
	}
	c.stale = c.loaded
	c.loaded = nil
	c.state = stateEmpty
	if c.activeGauge != nil {
		c.activeGauge.Dec()
	}
}

// Reload forces a full fresh resolution: the previous path and artifact are
// forgotten so even an unchanged location is re-read from disk.
func (c *Cache) Reload(ctx context.Context) (*Loaded, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateReady && c.activeGauge != nil {
		c.activeGauge.Dec()
	}
	c.loaded = nil
	c.stale = nil
	c.lastPath = ""
	c.state = stateEmpty

	return c.resolveLocked(ctx)
}

// LoadAttempts reports how many underlying artifact loads were performed.
func (c *Cache) LoadAttempts() int64 {
	return c.loadAttempts.Load()
}

// must hold c.mu
func (c *Cache) resolveLocked(ctx context.Context) (*Loaded, error) {
	c.state = stateResolving

	path, err := c.resolver.FindCandidate()
	if err != nil {
		c.state = stateEmpty
		c.countLoad("error")
		c.logger.Error("model resolution failed", zap.Error(err))
		return nil, err
	}

	// Unchanged storage path after a plain invalidation: the retained
	// artifact is still the one on disk, skip the load and smoke test.
	if path == c.lastPath && c.stale != nil {
		c.loaded = c.stale
		c.stale = nil
		c.state = stateReady
		if c.activeGauge != nil {
			c.activeGauge.Inc()
		}
		c.logger.Debug("storage path unchanged, reusing resolved model", zap.String("path", path))
		return c.loaded, nil
	}

	c.loadAttempts.Add(1)
	loaded, err := c.resolver.LoadPath(ctx, path)
	if err != nil {
		c.state = stateEmpty
		c.countLoad("error")
		c.logger.Error("model load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	c.loaded = loaded
	c.stale = nil
	c.lastPath = loaded.Path
	c.state = stateReady
	c.countLoad("success")
	if c.activeGauge != nil {
		c.activeGauge.Inc()
	}
	return loaded, nil
}

func (c *Cache) countLoad(status string) {
	if c.loadCounter != nil {
		c.loadCounter.WithLabelValues(status).Inc()
	}
}
