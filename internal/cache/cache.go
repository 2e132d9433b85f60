// Package cache keeps OMDb responses in a local SQLite database so repeated
// lookups do not spend API quota.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/viper"
	_ "modernc.org/sqlite"

	"github.com/lepinkainen/omdb/internal/config"
)

// DefaultCacheTTL is the default time-to-live for cached entries (30 days)
const DefaultCacheTTL = 720 * time.Hour

// FetchFunc represents a function that fetches data from the service
type FetchFunc[T any] func() (T, error)

// CacheDB manages the SQLite database connection for caching
type CacheDB struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

var (
	globalMu       sync.Mutex
	globalCache    *CacheDB
	globalCacheErr error

	now = time.Now
)

// ResetGlobalCache closes the current global cache and resets the singleton
// so the next call to GetGlobalCache opens the configured database again.
func ResetGlobalCache() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	var err error
	if globalCache != nil {
		err = globalCache.Close()
	}
	globalCache = nil
	globalCacheErr = nil
	return err
}

// GetGlobalCache returns the singleton cache database instance. A failed
// open is remembered until ResetGlobalCache.
func GetGlobalCache() (*CacheDB, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalCache != nil || globalCacheErr != nil {
		return globalCache, globalCacheErr
	}

	dbPath := viper.GetString(config.KeyCacheDB)
	if dbPath == "" {
		dbPath = config.DefaultCacheDB
	}
	cache, err := openCache(dbPath)
	if err != nil {
		globalCacheErr = err
		return nil, err
	}
	globalCache = cache
	return globalCache, nil
}

func openCache(dbPath string) (*CacheDB, error) {
	cache, err := NewCacheDB(dbPath)
	if err != nil {
		return nil, err
	}
	for _, schema := range AllCacheSchemas {
		if err := cache.CreateTable(schema); err != nil {
			closeErr := cache.Close()
			return nil, errors.Join(fmt.Errorf("failed to create cache table: %w", err), closeErr)
		}
	}
	return cache, nil
}

// NewCacheDB creates a new CacheDB instance and opens the database connection
func NewCacheDB(dbPath string) (*CacheDB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	return &CacheDB{
		db:   db,
		path: dbPath,
	}, nil
}

// Path returns the database file the cache was opened on.
func (c *CacheDB) Path() string {
	return c.path
}

// CreateTable creates a table using the provided schema
func (c *CacheDB) CreateTable(schema string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Close closes the database connection
func (c *CacheDB) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func validateTableName(tableName string) error {
	if !ValidCacheTableNames[tableName] {
		return fmt.Errorf("invalid cache table name: %s", tableName)
	}
	return nil
}

// TTL returns cache.ttl, falling back to DefaultCacheTTL when it is unset or
// invalid.
func TTL() time.Duration {
	ttlStr := viper.GetString(config.KeyCacheTTL)
	if ttlStr == "" {
		return DefaultCacheTTL
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		slog.Warn("Invalid cache TTL, using default", "ttl", ttlStr, "error", err)
		return DefaultCacheTTL
	}
	return ttl
}

// GetOrFetch returns the cached value for cacheKey, or calls fetchFunc and
// caches its result. Caching is skipped entirely when cache.enabled is off,
// and a cache that cannot be opened falls back to fetching directly. Fetch
// errors are returned unchanged and never cached.
func GetOrFetch[T any](tableName, cacheKey string, fetchFunc FetchFunc[T]) (T, bool, error) {
	if !viper.GetBool(config.KeyCacheEnabled) {
		data, err := fetchFunc()
		return data, false, err
	}

	cache, err := GetGlobalCache()
	if err != nil {
		slog.Warn("Failed to initialize cache, fetching directly", "error", err)
		data, fetchErr := fetchFunc()
		return data, false, fetchErr
	}

	cached, fromCache, err := cache.Get(tableName, cacheKey, TTL())
	if err != nil {
		slog.Warn("Failed to read cache", "table", tableName, "key", cacheKey, "error", err)
	}
	if fromCache {
		var result T
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			slog.Debug("Cache hit", "table", tableName, "key", cacheKey)
			return result, true, nil
		}
		slog.Warn("Failed to unmarshal cached data, will refetch", "table", tableName, "key", cacheKey, "error", err)
	}

	slog.Debug("Cache miss, fetching data", "table", tableName, "key", cacheKey)
	data, err := fetchFunc()
	if err != nil {
		return data, false, err
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Warn("Failed to marshal data for caching", "table", tableName, "key", cacheKey, "error", err)
		return data, false, nil
	}
	if err := cache.Set(tableName, cacheKey, string(jsonData)); err != nil {
		slog.Warn("Failed to cache data", "table", tableName, "key", cacheKey, "error", err)
	}

	return data, false, nil
}

// Get retrieves a cached value from the specified table
// Returns the cached data, whether it was from cache, and any error
func (c *CacheDB) Get(tableName, key string, ttl time.Duration) (string, bool, error) {
	if err := validateTableName(tableName); err != nil {
		return "", false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	query := fmt.Sprintf(`SELECT data, cached_at FROM %s WHERE cache_key = ?`, tableName)

	var data string
	var cachedAt int64
	err := c.db.QueryRow(query, key).Scan(&data, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query cache: %w", err)
	}

	age := now().Sub(time.Unix(cachedAt, 0))
	if age > ttl {
		slog.Debug("Cache expired", "table", tableName, "key", key, "age", age)
		return "", false, nil
	}

	return data, true, nil
}

// Set stores a value in the cache
func (c *CacheDB) Set(tableName, key, data string) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	query := fmt.Sprintf(`INSERT OR REPLACE INTO %s (cache_key, data, cached_at) VALUES (?, ?, ?)`, tableName)
	if _, err := c.db.Exec(query, key, data, now().Unix()); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// ClearExpired removes entries older than ttl from every cache table and
// returns how many were removed.
func (c *CacheDB) ClearExpired(ttl time.Duration) (int64, error) {
	cutoff := now().Add(-ttl).Unix()
	return c.deleteWhere("WHERE cached_at < ?", cutoff)
}

// ClearAll removes every entry from every cache table and returns how many
// were removed.
func (c *CacheDB) ClearAll() (int64, error) {
	return c.deleteWhere("")
}

func (c *CacheDB) deleteWhere(where string, args ...any) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for tableName := range ValidCacheTableNames {
		result, err := c.db.Exec(fmt.Sprintf("DELETE FROM %s %s", tableName, where), args...)
		if err != nil {
			return total, fmt.Errorf("failed to delete cache entries: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("failed to get rows affected: %w", err)
		}
		slog.Debug("Cache table cleared", "table", tableName, "rows_deleted", rows)
		total += rows
	}
	return total, nil
}
