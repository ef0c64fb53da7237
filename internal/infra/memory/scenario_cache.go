package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"portal-learning/internal/domain"
)

// ScenarioLoader fetches the scenario catalog from a backing store.
type ScenarioLoader interface {
	LoadScenarios(ctx context.Context) ([]domain.Scenario, error)
}

// ScenarioCache caches the full catalog with a TTL to avoid repeated DB
// scans. The catalog is small and read as a whole, so a single entry with an
// ID index covers both list and lookup.
type ScenarioCache struct {
	loader ScenarioLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	scenarios []domain.Scenario
	byID      map[int64]domain.Scenario
	expiresAt time.Time
}

func NewScenarioCache(loader ScenarioLoader, ttl time.Duration) *ScenarioCache {
	return &ScenarioCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		byID:   make(map[int64]domain.Scenario),
	}
}

// WithClock is test-only for deterministic expiry.
func (c *ScenarioCache) WithClock(now func() time.Time) *ScenarioCache {
	c.clock = now
	return c
}

func (c *ScenarioCache) ListScenarios(ctx context.Context) ([]domain.Scenario, error) {
	scenarios, _, err := c.catalog(ctx)
	return scenarios, err
}

func (c *ScenarioCache) GetScenario(ctx context.Context, id int64) (domain.Scenario, error) {
	_, byID, err := c.catalog(ctx)
	if err != nil {
		return domain.Scenario{}, err
	}
	scenario, ok := byID[id]
	if !ok {
		return domain.Scenario{}, domain.ErrScenarioNotFound
	}
	return scenario, nil
}

func (c *ScenarioCache) catalog(ctx context.Context) ([]domain.Scenario, map[int64]domain.Scenario, error) {
	now := c.clock()

	c.mu.RLock()
	if c.scenarios != nil && c.expiresAt.After(now) {
		scenarios, byID := c.scenarios, c.byID
		c.mu.RUnlock()
		return scenarios, byID, nil
	}
	c.mu.RUnlock()

	_, err, _ := c.sf.Do("catalog", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.scenarios != nil && c.expiresAt.After(now) {
			c.mu.RUnlock()
			return nil, nil
		}
		c.mu.RUnlock()

		scenarios, err := c.loader.LoadScenarios(ctx)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]domain.Scenario, len(scenarios))
		for _, s := range scenarios {
			byID[s.ID] = s
		}

		c.mu.Lock()
		c.scenarios = scenarios
		c.byID = byID
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		return nil, nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scenarios, c.byID, nil
}

func (c *ScenarioCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StaticScenarioLoader serves a fixed catalog (useful for tests/demos and the
// no-database serve mode).
type StaticScenarioLoader struct {
	scenarios []domain.Scenario
}

func NewStaticScenarioLoader(scenarios []domain.Scenario) *StaticScenarioLoader {
	return &StaticScenarioLoader{scenarios: scenarios}
}

func (l *StaticScenarioLoader) LoadScenarios(_ context.Context) ([]domain.Scenario, error) {
	out := make([]domain.Scenario, len(l.scenarios))
	copy(out, l.scenarios)
	return out, nil
}
