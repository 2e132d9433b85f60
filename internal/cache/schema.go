package cache

// SQL schemas for cache tables.
// All cache tables use "cache_key" as the primary key column and store
// cached_at as Unix seconds.

// Cache table names.
const (
	LookupsTable  = "lookup_cache"
	SearchesTable = "search_cache"
)

// LookupCacheSchema holds movies, series, seasons and episodes keyed by their
// request query.
const LookupCacheSchema = `
CREATE TABLE IF NOT EXISTS lookup_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lookup_cached_at ON lookup_cache(cached_at);
`

// SearchCacheSchema holds search result pages keyed by their request query.
const SearchCacheSchema = `
CREATE TABLE IF NOT EXISTS search_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_search_cached_at ON search_cache(cached_at);
`

// AllCacheSchemas is created when the global cache is opened.
var AllCacheSchemas = []string{
	LookupCacheSchema,
	SearchCacheSchema,
}

// ValidCacheTableNames whitelists the tables queries may be built for.
var ValidCacheTableNames = map[string]bool{
	LookupsTable:  true,
	SearchesTable: true,
}
