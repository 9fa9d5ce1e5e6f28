package querycache

import (
	"context"
)

// Coordinated runs one optimistic mutation over several keys as a unit.
//
// It cancels in-flight fetches for keys, snapshots them and runs apply, which
// writes the speculative state (typically through Update, Upsert or List
// transforms). Then it calls the server. On error every key is restored to
// its snapshot and the error is returned unchanged. On success reconcile, if
// non-nil, merges the server response. Either way all keys are invalidated.
func Coordinated[R any](
	ctx context.Context,
	c *Cache,
	keys []Key,
	apply func(),
	call func(ctx context.Context) (R, error),
	reconcile func(R),
) (R, error) {
	for _, k := range keys {
		c.Cancel(k)
	}
	snap := c.Snapshot(keys...)
	defer func() {
		for _, k := range keys {
			c.Invalidate(k)
		}
	}()

	if apply != nil {
		apply()
	}

	res, err := call(ctx)
	if err != nil {
		c.Restore(snap)
		return res, err
	}
	if reconcile != nil {
		reconcile(res)
	}
	return res, nil
}

// List describes a list-valued key ([]T) and how to identify its items.
type List[T any] struct {
	Cache *Cache
	Key   Key
	ID    func(T) string

	// Prepend puts added items first instead of last.
	Prepend bool
	// Match, when set, drops items that no longer belong to the list after a
	// change, e.g. notes moved out of the folder the key lists.
	Match func(T) bool
}

// AddItem inserts item, which carries a temporary id, then calls create. On
// success the temporary item is replaced by the created one.
func (l List[T]) AddItem(ctx context.Context, item T, create func(ctx context.Context) (T, error)) (T, error) {
	tempID := l.ID(item)
	return Coordinated(ctx, l.Cache, []Key{l.Key},
		func() { l.Insert(item) },
		create,
		func(created T) { l.Replace(tempID, created) },
	)
}

// UpdateItem applies patch to the item with id, then calls update. On success
// the item is replaced by the server's version.
func (l List[T]) UpdateItem(ctx context.Context, id string, patch func(T) T, update func(ctx context.Context) (T, error)) (T, error) {
	return Coordinated(ctx, l.Cache, []Key{l.Key},
		func() { l.Patch([]string{id}, patch) },
		update,
		func(updated T) { l.Replace(id, updated) },
	)
}

// DeleteItem removes the item with id, then calls del.
func (l List[T]) DeleteItem(ctx context.Context, id string, del func(ctx context.Context) error) error {
	_, err := Coordinated(ctx, l.Cache, []Key{l.Key},
		func() { l.Remove(id) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, del(ctx) },
		nil,
	)
	return err
}

// BatchUpdate applies patch to every item in ids, then calls update. On
// success each returned item replaces the cached one with the same id.
func (l List[T]) BatchUpdate(ctx context.Context, ids []string, patch func(T) T, update func(ctx context.Context) ([]T, error)) ([]T, error) {
	return Coordinated(ctx, l.Cache, []Key{l.Key},
		func() { l.Patch(ids, patch) },
		update,
		func(items []T) {
			for _, it := range items {
				l.Replace(l.ID(it), it)
			}
		},
	)
}

// Reorder moves the items in ids to the front in that order, keeping the rest
// in their current order, then calls save.
func (l List[T]) Reorder(ctx context.Context, ids []string, save func(ctx context.Context) error) error {
	_, err := Coordinated(ctx, l.Cache, []Key{l.Key},
		func() { l.Arrange(ids) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, save(ctx) },
		nil,
	)
	return err
}

// Items returns the cached list.
func (l List[T]) Items() ([]T, bool) { return Value[[]T](l.Cache, l.Key) }

// Insert adds item to the list, creating the list when the key is empty.
func (l List[T]) Insert(item T) {
	Upsert(l.Cache, l.Key, func(old []T, _ bool) []T {
		out := make([]T, 0, len(old)+1)
		if l.Prepend {
			out = append(out, item)
			out = append(out, old...)
		} else {
			out = append(out, old...)
			out = append(out, item)
		}
		return l.filter(out)
	})
}

// Replace swaps the item with id for item. Nothing happens if id is absent.
func (l List[T]) Replace(id string, item T) {
	Update(l.Cache, l.Key, func(old []T) []T {
		out := make([]T, len(old))
		for i, it := range old {
			if l.ID(it) == id {
				out[i] = item
			} else {
				out[i] = it
			}
		}
		return l.filter(out)
	})
}

// Patch applies fn to every item whose id is in ids.
func (l List[T]) Patch(ids []string, fn func(T) T) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	Update(l.Cache, l.Key, func(old []T) []T {
		out := make([]T, len(old))
		for i, it := range old {
			if _, ok := set[l.ID(it)]; ok {
				out[i] = fn(it)
			} else {
				out[i] = it
			}
		}
		return l.filter(out)
	})
}

// Remove drops the item with id.
func (l List[T]) Remove(id string) {
	Update(l.Cache, l.Key, func(old []T) []T {
		out := make([]T, 0, len(old))
		for _, it := range old {
			if l.ID(it) != id {
				out = append(out, it)
			}
		}
		return out
	})
}

// Arrange orders the items listed in ids first. Unknown ids are ignored.
func (l List[T]) Arrange(ids []string) {
	Update(l.Cache, l.Key, func(old []T) []T {
		byID := make(map[string]T, len(old))
		for _, it := range old {
			byID[l.ID(it)] = it
		}
		out := make([]T, 0, len(old))
		placed := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			it, ok := byID[id]
			if !ok {
				continue
			}
			if _, dup := placed[id]; dup {
				continue
			}
			placed[id] = struct{}{}
			out = append(out, it)
		}
		for _, it := range old {
			if _, ok := placed[l.ID(it)]; !ok {
				out = append(out, it)
			}
		}
		return out
	})
}

func (l List[T]) filter(items []T) []T {
	if l.Match == nil {
		return items
	}
	out := items[:0]
	for _, it := range items {
		if l.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
