package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// NewMemory creates an in-process Store backed by go-cache. It carries the same semantics
// as the redis Set and is the collaborator substitute used in tests.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{
		c: gocache.New(gocache.NoExpiration, time.Minute*10),
	}
}

type Memory[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	c *gocache.Cache
}

var _ Store[any] = (*Memory[any])(nil)

func (c *Memory[T]) Get(key string, dest *T) error {
	result, ok := c.c.Get(key)
	if !ok {
		return ErrNotFound
	}
	*dest = result.(T)
	return nil
}

func (c *Memory[T]) Set(key string, value T, expire time.Duration) error {
	c.c.Set(key, value, expire)
	return nil
}

func (c *Memory[T]) MutexGetSet(key string, dest *T, valueFunc func() (T, error), expire time.Duration) (bool, error) {
	err := c.Get(key, dest)
	if err == nil {
		return false, nil
	}
	// onwards, cache key does not exist

	return true, c.slowMutexGetSet(key, dest, valueFunc, expire)
}

func (c *Memory[T]) slowMutexGetSet(key string, dest *T, valueFunc func() (T, error), expire time.Duration) error {
	c.m.Lock()
	defer c.m.Unlock()
	err := c.Get(key, dest)
	if err == nil {
		return nil
	}

	value, err := valueFunc()
	if err != nil {
		return err
	}

	if err := c.Set(key, value, expire); err != nil {
		return err
	}

	*dest = value

	return nil
}

func (c *Memory[T]) Delete(key string) error {
	c.c.Delete(key)
	return nil
}

func (c *Memory[T]) Flush() error {
	c.c.Flush()
	return nil
}
