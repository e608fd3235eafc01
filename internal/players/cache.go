package players

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/sleeper"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL = 7 * 24 * time.Hour
	flightKey  = "players"
)

// Source fetches the full player payload
type Source interface {
	GetAllPlayers(ctx context.Context, sport string) (map[string]sleeper.Player, error)
}

// Cache keeps the latest player snapshot in memory and reloads it once it is older than the TTL.
// Concurrent loads share a single upstream request.
type Cache struct {
	source Source
	sport  string
	ttl    time.Duration
	logger *logrus.Logger
	now    func() time.Time

	mu        sync.RWMutex
	snapshot  *Snapshot
	expiresAt time.Time

	flight singleflight.Group
}

// NewCache creates a player cache over source
func NewCache(source Source, ttl time.Duration, logger *logrus.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		source: source,
		sport:  sleeper.DefaultSport,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Snapshot returns the cached directory, loading it first when empty or expired
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap, ok := c.cached(); ok {
		return snap, nil
	}
	return c.load(ctx, false)
}

// Refresh reloads the directory regardless of its age
func (c *Cache) Refresh(ctx context.Context) (*Snapshot, error) {
	return c.load(ctx, true)
}

func (c *Cache) cached() (*Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil || !c.expiresAt.After(c.now()) {
		return nil, false
	}
	return c.snapshot, true
}

func (c *Cache) load(ctx context.Context, force bool) (*Snapshot, error) {
	// The shared load must not die with whichever caller happened to start it.
	loadCtx := context.WithoutCancel(ctx)

	ch := c.flight.DoChan(flightKey, func() (interface{}, error) {
		if !force {
			if snap, ok := c.cached(); ok {
				return snap, nil
			}
		}

		start := c.now()
		payload, err := c.source.GetAllPlayers(loadCtx, c.sport)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load player directory")
		}
		snap := NewSnapshot(payload, start)

		c.mu.Lock()
		c.snapshot = snap
		c.expiresAt = start.Add(c.ttl)
		c.mu.Unlock()

		c.logger.WithFields(logrus.Fields{
			"players":  snap.Len(),
			"duration": c.now().Sub(start).String(),
		}).Info("Player directory loaded")

		return snap, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			c.logger.WithError(res.Err).Warn("Player directory load failed")
			if stale := c.stale(); stale != nil && !force {
				return stale, nil
			}
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

// stale returns the last loaded snapshot even when expired
func (c *Cache) stale() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}
