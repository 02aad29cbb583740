package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory sorted-set store. Any func field overrides
// the default behavior.
type MockRedisClient struct {
	ExistFunc               func(ctx context.Context, key string) (bool, error)
	DelFunc                 func(ctx context.Context, key ...string) error
	SetFunc                 func(ctx context.Context, key, value string, expiration time.Duration) error
	GetDelFunc              func(ctx context.Context, key string) (string, error)
	ZAddFunc                func(ctx context.Context, key string, z redis.Z) error
	ZIncrByFunc             func(ctx context.Context, key string, incr int64, member string) error
	ZRevRangeWithScoresFunc func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	ZRevRankFunc            func(ctx context.Context, key string, member string) (uint64, error)

	mutex  sync.Mutex
	sets   map[string]map[string]float64
	values map[string]string
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, ok := m.sets[key]
	return ok, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, k := range key {
		delete(m.sets, k)
		delete(m.values, k)
	}

	return nil
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.values == nil {
		m.values = make(map[string]string)
	}

	m.values[key] = value
	return nil
}

func (m *MockRedisClient) GetDel(ctx context.Context, key string) (string, error) {
	if m.GetDelFunc != nil {
		return m.GetDelFunc(ctx, key)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	value, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}

	delete(m.values, key)
	return value, nil
}

func (m *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	if m.ZAddFunc != nil {
		return m.ZAddFunc(ctx, key, z)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.set(key)[z.Member.(string)] = z.Score
	return nil
}

func (m *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	if m.ZIncrByFunc != nil {
		return m.ZIncrByFunc(ctx, key, incr, member)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.set(key)[member] += float64(incr)
	return nil
}

func (m *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	if m.ZRevRangeWithScoresFunc != nil {
		return m.ZRevRangeWithScoresFunc(ctx, key, offset, limit)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	all := m.sorted(key)
	if offset >= len(all) {
		return nil, nil
	}

	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}

	return all, nil
}

func (m *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	if m.ZRevRankFunc != nil {
		return m.ZRevRankFunc(ctx, key, member)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, z := range m.sorted(key) {
		if z.Member == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

func (m *MockRedisClient) set(key string) map[string]float64 {
	if m.sets == nil {
		m.sets = make(map[string]map[string]float64)
	}

	if m.sets[key] == nil {
		m.sets[key] = make(map[string]float64)
	}

	return m.sets[key]
}

func (m *MockRedisClient) sorted(key string) []redis.Z {
	var all []redis.Z
	for member, score := range m.sets[key] {
		all = append(all, redis.Z{Member: member, Score: score})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}

		return all[i].Member.(string) > all[j].Member.(string)
	})

	return all
}
