// Package cache provides a thread-safe, capacity-bounded set of keys that
// expire after a per-key TTL.
//
// It backs the in-memory webhook replay guard: a delivery id is claimed once
// and every further claim inside the TTL fails. When the cache is full the
// least recently claimed key is evicted, so memory stays bounded even under a
// flood of unique ids.
//
// # Usage
//
//	seen := cache.NewExpiringSet[string](10_000)
//
//	if !seen.Claim("msg_123", 5*time.Minute) {
//		// duplicate within the window
//	}
//
// Expired entries are removed lazily on access and when the set is full.
package cache
