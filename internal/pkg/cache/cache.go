package cache

import (
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned on a cache miss. Any other error indicates a failure of the
// cache store itself; callers are expected to degrade to recomputation instead of failing.
var ErrNotFound = errors.New("cache: key not found")

// Store is the TTL key-value surface services consume. The redis-backed Set is the
// production implementation; Memory is an in-process substitute used in tests.
type Store[T any] interface {
	Get(key string, dest *T) error
	Set(key string, value T, expire time.Duration) error
	MutexGetSet(key string, dest *T, valueFunc func() (T, error), expire time.Duration) (bool, error)
	Delete(key string) error
	Flush() error
}

var client *redis.Client

// Initialize wires the package to a redis client. Must be called before any NewSet-created
// cache is used; model/cache.Initialize does this from the fx graph.
func Initialize(c *redis.Client) {
	client = c
}
