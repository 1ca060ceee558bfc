package cidrtrie

// Config holds the tunables New reads to build an Engine. A zero-value
// Config disables both caches and uses the default log interval; call
// DefaultConfig or pass a Config populated from it to pick the defaults CIDARTHAConfig documents (cache_size.py's
// check_cache_size / batch_insert_log_interval), adapted here into a
// plain Go struct in the teacher's own plain-struct style.
type Config struct {
	// LookupCacheSize bounds the canonical-bytes-to-bool Contains cache.
	// Zero disables caching. Defaults to cache.DefaultCapacity.
	LookupCacheSize int

	// PrefixCacheSize bounds the CIDR-text-to-parsed-prefix cache used by
	// Insert/Remove. Zero disables this secondary cache.
	PrefixCacheSize int

	// BatchLogInterval is the fraction of a BatchInsert's total entries
	// between progress log lines (e.g. 0.05 logs roughly every 5%). Values
	// outside (0, 1] are replaced by 0.05, which DefaultConfig also sets.
	BatchLogInterval float64
}

// DefaultConfig returns the Config New uses when given nil: a 4096-entry
// lookup cache, an 8192-entry prefix cache, and batch-insert progress
// logging every 5% of entries, matching CIDARTHAConfig's defaults.
func DefaultConfig() *Config {
	return &Config{
		LookupCacheSize:  4096,
		PrefixCacheSize:  8192,
		BatchLogInterval: 0.05,
	}
}

func (c *Config) normalized() *Config {
	if c == nil {
		return DefaultConfig()
	}
	out := *c
	if out.BatchLogInterval <= 0 || out.BatchLogInterval > 1 {
		out.BatchLogInterval = 0.05
	}
	return &out
}
