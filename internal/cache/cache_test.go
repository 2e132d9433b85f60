package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/omdb/internal/config"
	"github.com/lepinkainen/omdb/internal/testutil"
)

type TestData struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func setupTestCache(t *testing.T) *CacheDB {
	t.Helper()

	testutil.ResetConfig(t)
	env := testutil.NewTestEnv(t)

	cache, err := NewCacheDB(env.Path("cache.db"))
	if err != nil {
		t.Fatalf("Failed to create cache database: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })

	for _, schema := range AllCacheSchemas {
		if err := cache.CreateTable(schema); err != nil {
			t.Fatalf("Failed to create table: %v", err)
		}
	}

	viper.Set(config.KeyCacheEnabled, true)
	viper.Set(config.KeyCacheTTL, "1h")

	return cache
}

func withGlobalCache(t *testing.T, cache *CacheDB) {
	t.Helper()

	globalMu.Lock()
	oldCache, oldErr := globalCache, globalCacheErr
	globalCache, globalCacheErr = cache, nil
	globalMu.Unlock()

	t.Cleanup(func() {
		globalMu.Lock()
		globalCache, globalCacheErr = oldCache, oldErr
		globalMu.Unlock()
	})
}

func withClock(t *testing.T, at time.Time) {
	t.Helper()

	original := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = original })
}

func TestGetOrFetch_CacheHit(t *testing.T) {
	cache := setupTestCache(t)
	withGlobalCache(t, cache)

	if err := cache.Set(LookupsTable, "i=tt0172495", `{"id":1,"name":"Gladiator"}`); err != nil {
		t.Fatalf("Failed to pre-populate cache: %v", err)
	}

	fetchCalled := false
	result, fromCache, err := GetOrFetch(LookupsTable, "i=tt0172495", func() (TestData, error) {
		fetchCalled = true
		return TestData{}, nil
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !fromCache {
		t.Error("Expected fromCache to be true")
	}
	if fetchCalled {
		t.Error("Expected fetch function not to be called")
	}
	if result != (TestData{ID: 1, Name: "Gladiator"}) {
		t.Errorf("Unexpected result %+v", result)
	}
}

func TestGetOrFetch_CacheMissStoresResult(t *testing.T) {
	cache := setupTestCache(t)
	withGlobalCache(t, cache)

	calls := 0
	fetch := func() (TestData, error) {
		calls++
		return TestData{ID: 2, Name: "Gladiator"}, nil
	}

	if _, fromCache, err := GetOrFetch(SearchesTable, "s=gladiator", fetch); err != nil || fromCache {
		t.Fatalf("Expected fresh fetch, got fromCache=%v err=%v", fromCache, err)
	}
	result, fromCache, err := GetOrFetch(SearchesTable, "s=gladiator", fetch)
	if err != nil || !fromCache {
		t.Fatalf("Expected cache hit, got fromCache=%v err=%v", fromCache, err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 fetch, got %d", calls)
	}
	if result.ID != 2 {
		t.Errorf("Unexpected result %+v", result)
	}
}

func TestGetOrFetch_ErrorsAreNotCached(t *testing.T) {
	cache := setupTestCache(t)
	withGlobalCache(t, cache)

	fetchErr := errors.New("Movie not found!")
	_, _, err := GetOrFetch(LookupsTable, "i=tt0000000", func() (*TestData, error) {
		return nil, fetchErr
	})
	if !errors.Is(err, fetchErr) {
		t.Fatalf("Expected fetch error, got %v", err)
	}

	if _, found, _ := cache.Get(LookupsTable, "i=tt0000000", time.Hour); found {
		t.Error("Expected failed fetch not to be cached")
	}
}

func TestGetOrFetch_Disabled(t *testing.T) {
	cache := setupTestCache(t)
	withGlobalCache(t, cache)
	viper.Set(config.KeyCacheEnabled, false)

	calls := 0
	for range 2 {
		if _, fromCache, err := GetOrFetch(LookupsTable, "i=tt1", func() (TestData, error) {
			calls++
			return TestData{ID: 1}, nil
		}); err != nil || fromCache {
			t.Fatalf("Expected direct fetch, got fromCache=%v err=%v", fromCache, err)
		}
	}
	if calls != 2 {
		t.Errorf("Expected 2 fetches with caching disabled, got %d", calls)
	}
}

func TestGet_Expired(t *testing.T) {
	cache := setupTestCache(t)

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	withClock(t, start)
	if err := cache.Set(LookupsTable, "key", "data"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	withClock(t, start.Add(30*time.Minute))
	if _, found, err := cache.Get(LookupsTable, "key", time.Hour); err != nil || !found {
		t.Fatalf("Expected fresh entry, got found=%v err=%v", found, err)
	}

	withClock(t, start.Add(2*time.Hour))
	if _, found, err := cache.Get(LookupsTable, "key", time.Hour); err != nil || found {
		t.Fatalf("Expected expired entry, got found=%v err=%v", found, err)
	}
}

func TestInvalidTableName(t *testing.T) {
	cache := setupTestCache(t)

	if err := cache.Set("titles; DROP TABLE lookup_cache", "key", "data"); err == nil {
		t.Error("Expected invalid table name to be rejected")
	}
	if _, _, err := cache.Get("steam_cache", "key", time.Hour); err == nil {
		t.Error("Expected unknown table name to be rejected")
	}
}

func TestClearExpiredAndClearAll(t *testing.T) {
	cache := setupTestCache(t)

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	withClock(t, start)
	_ = cache.Set(LookupsTable, "old", "data")
	_ = cache.Set(SearchesTable, "old", "data")

	withClock(t, start.Add(48*time.Hour))
	_ = cache.Set(LookupsTable, "new", "data")

	removed, err := cache.ClearExpired(24 * time.Hour)
	if err != nil {
		t.Fatalf("ClearExpired failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 expired entries removed, got %d", removed)
	}

	removed, err = cache.ClearAll()
	if err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 entry removed, got %d", removed)
	}
}

func TestTTL(t *testing.T) {
	testutil.ResetConfig(t)

	if got := TTL(); got != DefaultCacheTTL {
		t.Errorf("Expected default TTL, got %s", got)
	}
	viper.Set(config.KeyCacheTTL, "12h")
	if got := TTL(); got != 12*time.Hour {
		t.Errorf("Expected 12h, got %s", got)
	}
	viper.Set(config.KeyCacheTTL, "soon")
	if got := TTL(); got != DefaultCacheTTL {
		t.Errorf("Expected default TTL for invalid value, got %s", got)
	}
}

func TestGetGlobalCache_OpensConfiguredPath(t *testing.T) {
	testutil.ResetConfig(t)
	env := testutil.NewTestEnv(t)
	viper.Set(config.KeyCacheDB, env.Path("global.db"))

	_ = ResetGlobalCache()
	t.Cleanup(func() { _ = ResetGlobalCache() })

	cache, err := GetGlobalCache()
	if err != nil {
		t.Fatalf("GetGlobalCache failed: %v", err)
	}
	if cache.Path() != env.Path("global.db") {
		t.Errorf("Unexpected cache path %s", cache.Path())
	}
	if !env.FileExists("global.db") {
		t.Error("Expected cache database to be created")
	}
}

func TestGetOrFetch_UnopenableCacheConcurrent(t *testing.T) {
	testutil.ResetConfig(t)
	env := testutil.NewTestEnv(t)
	viper.Set(config.KeyCacheEnabled, true)
	viper.Set(config.KeyCacheDB, env.Path("missing", "sub", "cache.db"))

	_ = ResetGlobalCache()
	t.Cleanup(func() { _ = ResetGlobalCache() })

	var wg sync.WaitGroup
	errs := make(chan error, 8*50)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				result, fromCache, err := GetOrFetch(LookupsTable, "key", func() (*TestData, error) {
					return &TestData{ID: i, Name: "direct"}, nil
				})
				switch {
				case err != nil:
					errs <- err
				case fromCache:
					errs <- errors.New("unexpected cache hit")
				case result == nil || result.Name != "direct":
					errs <- errors.New("fetch result was not returned")
				}

				if cache, err := GetGlobalCache(); err == nil || cache != nil {
					errs <- errors.New("expected unopenable cache to keep failing")
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatal(err)
	}
}

func TestResetGlobalCache_RetriesAfterFailure(t *testing.T) {
	testutil.ResetConfig(t)
	env := testutil.NewTestEnv(t)
	viper.Set(config.KeyCacheDB, env.Path("missing", "cache.db"))

	_ = ResetGlobalCache()
	t.Cleanup(func() { _ = ResetGlobalCache() })

	if _, err := GetGlobalCache(); err == nil {
		t.Fatal("Expected error opening cache in a missing directory")
	}

	viper.Set(config.KeyCacheDB, env.Path("cache.db"))
	if _, err := GetGlobalCache(); err == nil {
		t.Fatal("Expected failure to be remembered until reset")
	}

	if err := ResetGlobalCache(); err != nil {
		t.Fatalf("ResetGlobalCache failed: %v", err)
	}
	cache, err := GetGlobalCache()
	if err != nil {
		t.Fatalf("GetGlobalCache after reset failed: %v", err)
	}
	if cache.Path() != env.Path("cache.db") {
		t.Errorf("Unexpected cache path %s", cache.Path())
	}
}
