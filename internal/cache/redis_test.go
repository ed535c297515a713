package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func setupTestRedis(t *testing.T) *RedisCache {
	mr := miniredis.RunT(t)

	config := DefaultCacheConfig()
	config.Addr = mr.Addr()

	cache, err := NewRedisCache(config)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	return cache
}

func TestDefaultCacheConfig(t *testing.T) {
	config := DefaultCacheConfig()

	if config.Addr != "localhost:6379" {
		t.Errorf("Expected Addr to be localhost:6379, got %s", config.Addr)
	}
	if config.PoolSize != 10 {
		t.Errorf("Expected PoolSize to be 10, got %d", config.PoolSize)
	}
	if config.DialTimeout != 5*time.Second {
		t.Errorf("Expected DialTimeout to be 5s, got %v", config.DialTimeout)
	}
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestRedis(t)

	type entry struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := cache.Set("key", entry{Name: "test", Count: 3}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got entry
	if err := cache.Get("key", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "test" || got.Count != 3 {
		t.Errorf("Got %+v, want {test 3}", got)
	}
}

func TestGetMiss(t *testing.T) {
	cache := setupTestRedis(t)

	var dest string
	if err := cache.Get("missing", &dest); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	cache := setupTestRedis(t)

	cache.Set("key", "value", time.Minute)
	if err := cache.Delete("key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var dest string
	if err := cache.Get("key", &dest); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestDeletePattern(t *testing.T) {
	cache := setupTestRedis(t)

	cache.Set("owner_tasks:a", "one", time.Minute)
	cache.Set("owner_tasks:b", "two", time.Minute)
	cache.Set("other:c", "three", time.Minute)

	if err := cache.DeletePattern("owner_tasks:*"); err != nil {
		t.Fatalf("DeletePattern failed: %v", err)
	}

	var dest string
	if err := cache.Get("owner_tasks:a", &dest); err != ErrCacheMiss {
		t.Errorf("Expected owner_tasks:a to be deleted, got %v", err)
	}
	if err := cache.Get("other:c", &dest); err != nil {
		t.Errorf("Expected other:c to survive, got %v", err)
	}
}
