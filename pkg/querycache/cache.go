// Package querycache is a typed client-side query cache with optimistic
// mutation helpers.
//
// Values are stored per Key. Fetch loads a key through a fetcher, sharing one
// call between concurrent readers. Mutations follow one protocol: cancel
// in-flight fetches for the touched keys, snapshot them, apply a speculative
// change, call the server, then either merge the server response or restore
// the snapshot, and finally invalidate the keys so the next read refetches.
//
// Cached values are treated as immutable. Every transform in this package
// builds a new value instead of editing the cached one in place, which is what
// keeps snapshots valid.
package querycache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrCanceled is returned by Fetch when the fetch was canceled with Cancel
// before it completed.
var ErrCanceled = errors.New("querycache: fetch canceled")

// Key identifies a cached query, e.g. Key{"notes", spaceID}.
type Key []string

// String returns the canonical form used as the map key. Each element is
// length-prefixed, so no element content can collide with another split.
func (k Key) String() string {
	var b strings.Builder
	for _, e := range k {
		b.WriteString(strconv.Itoa(len(e)))
		b.WriteByte(':')
		b.WriteString(e)
	}
	return b.String()
}

// HasPrefix reports whether k starts with every element of prefix.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Fetcher loads the authoritative value of a key.
type Fetcher[T any] func(ctx context.Context) (T, error)

type entry struct {
	key       Key
	value     any
	has       bool
	stale     bool
	updatedAt time.Time

	// gen changes whenever the value is written or the in-flight fetch is
	// abandoned; a fetch only stores its result if gen is unchanged.
	gen    uint64
	cancel context.CancelFunc
}

// Cache holds query results. The zero value is not usable; call New.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group

	staleTime time.Duration
	now       func() time.Time
}

// New creates a cache. Values older than staleTime are refetched by Fetch;
// zero keeps values fresh until they are invalidated.
func New(staleTime time.Duration) *Cache {
	return &Cache{
		entries:   make(map[string]*entry),
		staleTime: staleTime,
		now:       time.Now,
	}
}

// entryLocked returns the entry for key, creating it. c.mu must be held.
func (c *Cache) entryLocked(key Key) *entry {
	k := key.String()
	e, ok := c.entries[k]
	if !ok {
		e = &entry{key: append(Key(nil), key...)}
		c.entries[k] = e
	}
	return e
}

func (c *Cache) fresh(e *entry) bool {
	if !e.has || e.stale {
		return false
	}
	return c.staleTime <= 0 || c.now().Sub(e.updatedAt) < c.staleTime
}

// Fetch returns the cached value of key when it is fresh, otherwise it runs
// fetch. Concurrent calls for the same key share a single fetch call. The
// fetch runs detached from the cancellation of any one caller; a caller whose
// ctx ends stops waiting and gets ctx.Err().
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch Fetcher[T]) (T, error) {
	var zero T

	c.mu.Lock()
	if e, ok := c.entries[key.String()]; ok && c.fresh(e) {
		v, err := as[T](key, e.value)
		c.mu.Unlock()
		return v, err
	}
	c.mu.Unlock()

	ch := c.group.DoChan(key.String(), func() (any, error) {
		return c.load(ctx, key, func(ctx context.Context) (any, error) {
			return fetch(ctx)
		})
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return as[T](key, res.Val)
	}
}

func (c *Cache) load(ctx context.Context, key Key, fetch func(context.Context) (any, error)) (any, error) {
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()

	c.mu.Lock()
	e := c.entryLocked(key)
	e.gen++
	gen := e.gen
	e.cancel = cancel
	c.mu.Unlock()

	v, err := fetch(fctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if e.gen != gen {
		// Canceled, or the value was replaced while the fetch ran.
		if fctx.Err() != nil {
			return nil, ErrCanceled
		}
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	e.cancel = nil
	if err != nil {
		return nil, err
	}
	e.value, e.has, e.stale, e.updatedAt = v, true, false, c.now()
	return v, nil
}

// Cancel aborts the in-flight fetch for key, if any. Its result is discarded
// and its waiters get ErrCanceled.
func (c *Cache) Cancel(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok || e.cancel == nil {
		return
	}
	e.cancel()
	e.cancel = nil
	e.gen++
	c.group.Forget(key.String())
}

// Get returns the cached value of key, fresh or stale.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok || !e.has {
		return nil, false
	}
	return e.value, true
}

// Set stores v as the fresh value of key.
func (c *Cache) Set(key Key, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, v)
}

func (c *Cache) setLocked(key Key, v any) {
	e := c.entryLocked(key)
	e.gen++
	e.value, e.has, e.stale, e.updatedAt = v, true, false, c.now()
}

// IsStale reports whether key holds a value that the next Fetch will reload.
func (c *Cache) IsStale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	return ok && e.has && !c.fresh(e)
}

// Invalidate marks key stale. The value stays readable through Get; the next
// Fetch reloads it.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key.String()]; ok {
		c.invalidateLocked(e)
	}
}

// InvalidatePrefix marks stale every key starting with prefix.
func (c *Cache) InvalidatePrefix(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			c.invalidateLocked(e)
		}
	}
}

func (c *Cache) invalidateLocked(e *entry) {
	e.stale = true
	e.gen++
	c.group.Forget(e.key.String())
}

// Snapshot captures the state of keys so Restore can put it back exactly.
type Snapshot struct {
	entries []snapshotEntry
}

type snapshotEntry struct {
	key       Key
	value     any
	has       bool
	stale     bool
	updatedAt time.Time
}

// Snapshot records the current state of keys, including their absence.
func (c *Cache) Snapshot(keys ...Key) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{entries: make([]snapshotEntry, 0, len(keys))}
	for _, key := range keys {
		se := snapshotEntry{key: key}
		if e, ok := c.entries[key.String()]; ok {
			se.value, se.has, se.stale, se.updatedAt = e.value, e.has, e.stale, e.updatedAt
		}
		s.entries = append(s.entries, se)
	}
	return s
}

// Restore puts every key of s back to its recorded state.
func (c *Cache) Restore(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, se := range s.entries {
		e := c.entryLocked(se.key)
		e.gen++
		e.value, e.has, e.stale, e.updatedAt = se.value, se.has, se.stale, se.updatedAt
	}
}

// Value returns the cached value of key as T.
func Value[T any](c *Cache, key Key) (T, bool) {
	v, ok := c.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Update replaces the value of key with fn(old) when key holds a T. It reports
// whether anything changed. fn runs under the cache lock and must not call
// back into the cache.
func Update[T any](c *Cache, key Key, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok || !e.has {
		return false
	}
	old, ok := e.value.(T)
	if !ok {
		return false
	}
	c.setLocked(key, fn(old))
	return true
}

// Upsert is Update that also runs when key is empty; fn receives the zero T
// and false in that case.
func Upsert[T any](c *Cache, key Key, fn func(old T, ok bool) T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var old T
	ok := false
	if e, found := c.entries[key.String()]; found && e.has {
		old, ok = e.value.(T)
	}
	c.setLocked(key, fn(old, ok))
}

func as[T any](key Key, v any) (T, error) {
	if v == nil {
		var zero T
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("querycache: key %v holds %T, not %T", []string(key), v, zero)
	}
	return t, nil
}
