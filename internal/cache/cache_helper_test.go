package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedRecord struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "evaluation:"), server
}

func TestCacheHelper_SetAndGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	record := cachedRecord{ID: 1, Name: "committee"}
	if err := helper.Set(ctx, "id:1", record, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var got cachedRecord
	if err := helper.Get(ctx, "id:1", &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != record {
		t.Fatalf("expected %+v, got %+v", record, got)
	}
}

func TestCacheHelper_GetMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var got cachedRecord
	err := helper.Get(context.Background(), "id:404", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	helper.Set(ctx, "id:1", cachedRecord{ID: 1}, time.Minute)
	helper.Set(ctx, "id:2", cachedRecord{ID: 2}, time.Minute)

	if err := helper.Delete(ctx, "id:1", "id:2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, err := helper.Exists(ctx, "id:1")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Fatal("key id:1 should be gone")
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, server := newTestHelper(t)
	ctx := context.Background()

	helper.Set(ctx, "student:1:list", cachedRecord{ID: 1}, time.Minute)
	helper.Set(ctx, "student:1:detail", cachedRecord{ID: 1}, time.Minute)
	helper.Set(ctx, "student:2:list", cachedRecord{ID: 2}, time.Minute)

	if err := helper.InvalidatePattern(ctx, "student:1:*"); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}

	if server.Exists("evaluation:student:1:list") || server.Exists("evaluation:student:1:detail") {
		t.Fatal("student 1 keys should be invalidated")
	}
	if !server.Exists("evaluation:student:2:list") {
		t.Fatal("student 2 keys must survive")
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	fetches := 0
	fetch := func() (interface{}, error) {
		fetches++
		return cachedRecord{ID: 7, Name: "fetched"}, nil
	}

	var got cachedRecord
	if err := helper.CacheOrExecute(ctx, "id:7", &got, time.Minute, fetch); err != nil {
		t.Fatalf("cache-or-execute failed: %v", err)
	}
	if got.ID != 7 || fetches != 1 {
		t.Fatalf("expected one fetch for id 7, got %+v after %d fetches", got, fetches)
	}

	// Seed the cache synchronously and confirm the second read skips the
	// fetch function.
	if err := helper.Set(ctx, "id:7", got, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	var again cachedRecord
	if err := helper.CacheOrExecute(ctx, "id:7", &again, time.Minute, fetch); err != nil {
		t.Fatalf("cache-or-execute failed: %v", err)
	}
	if fetches != 1 {
		t.Fatalf("expected cached read, fetch ran %d times", fetches)
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "evaluation:")
	ctx := context.Background()

	if err := helper.Set(ctx, "id:1", cachedRecord{ID: 1}, time.Minute); err != nil {
		t.Fatalf("set with nil client should be a no-op: %v", err)
	}

	var got cachedRecord
	if err := helper.Get(ctx, "id:1", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Fatalf("expected ErrCacheNotAvailable, got %v", err)
	}

	// The fetch path still works without a cache.
	if err := helper.CacheOrExecute(ctx, "id:1", &got, time.Minute, func() (interface{}, error) {
		return cachedRecord{ID: 1, Name: "direct"}, nil
	}); err != nil {
		t.Fatalf("cache-or-execute without cache failed: %v", err)
	}
	if got.Name != "direct" {
		t.Fatalf("expected fetched value, got %+v", got)
	}
}

func TestInvalidateEvaluationCache(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	cm := NewCacheManager(client)
	ctx := context.Background()

	cm.Evaluation.Set(ctx, "id:5", cachedRecord{ID: 5}, time.Minute)
	cm.Evaluation.Set(ctx, "details:5", cachedRecord{ID: 5}, time.Minute)
	cm.Evaluation.Set(ctx, "student:3:sem:6", cachedRecord{ID: 5}, time.Minute)
	cm.Evaluation.Set(ctx, "id:6", cachedRecord{ID: 6}, time.Minute)

	InvalidateEvaluationCache(ctx, cm, 5, 3)

	if server.Exists("evaluation:id:5") || server.Exists("evaluation:details:5") || server.Exists("evaluation:student:3:sem:6") {
		t.Fatal("evaluation 5 keys should be invalidated")
	}
	if !server.Exists("evaluation:id:6") {
		t.Fatal("unrelated evaluation keys must survive")
	}
}
