// Package cache stores fetched source documents so repeated verify
// runs against the same sources do not re-fetch them.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by the memory, disk, and
// layered implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DocumentKey derives the cache key for a source URL.
func DocumentKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "citelens:doc:v1:" + hex.EncodeToString(sum[:])
}
