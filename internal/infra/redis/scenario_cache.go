package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"portal-learning/internal/domain"
	"portal-learning/internal/infra/memory"
)

const catalogKey = "scenarios:catalog"

// ScenarioCache caches the scenario catalog in Redis (one hash, field per
// scenario ID, JSON value) and falls back to a loader on cache miss.
type ScenarioCache struct {
	client *redis.Client
	loader memory.ScenarioLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewScenarioCache(client *redis.Client, loader memory.ScenarioLoader, ttl time.Duration) *ScenarioCache {
	return &ScenarioCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *ScenarioCache) ListScenarios(ctx context.Context) ([]domain.Scenario, error) {
	fields, err := c.client.HGetAll(ctx, catalogKey).Result()
	if err == nil && len(fields) > 0 {
		return decodeCatalog(fields)
	}
	return c.fill(ctx)
}

func (c *ScenarioCache) GetScenario(ctx context.Context, id int64) (domain.Scenario, error) {
	raw, err := c.client.HGet(ctx, catalogKey, strconv.FormatInt(id, 10)).Result()
	if err == nil {
		var scenario domain.Scenario
		if err := json.Unmarshal([]byte(raw), &scenario); err == nil {
			return scenario, nil
		}
	}

	scenarios, err := c.fill(ctx)
	if err != nil {
		return domain.Scenario{}, err
	}
	for _, scenario := range scenarios {
		if scenario.ID == id {
			return scenario, nil
		}
	}
	return domain.Scenario{}, domain.ErrScenarioNotFound
}

// fill loads the catalog from the backing store and writes it through to
// Redis. Singleflight collapses concurrent misses into one load.
func (c *ScenarioCache) fill(ctx context.Context) ([]domain.Scenario, error) {
	result, err, _ := c.sf.Do(catalogKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		fields, err := c.client.HGetAll(ctx, catalogKey).Result()
		if err == nil && len(fields) > 0 {
			return decodeCatalog(fields)
		}

		scenarios, err := c.loader.LoadScenarios(ctx)
		if err != nil {
			return nil, err
		}

		pipe := c.client.Pipeline()
		for _, scenario := range scenarios {
			data, err := json.Marshal(scenario)
			if err != nil {
				return nil, err
			}
			pipe.HSet(ctx, catalogKey, strconv.FormatInt(scenario.ID, 10), data)
		}
		if ttl := c.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, catalogKey, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return scenarios, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Scenario), nil
}

func decodeCatalog(fields map[string]string) ([]domain.Scenario, error) {
	scenarios := make([]domain.Scenario, 0, len(fields))
	for _, raw := range fields {
		var scenario domain.Scenario
		if err := json.Unmarshal([]byte(raw), &scenario); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

func (c *ScenarioCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
