// Package memory contains in-memory implementations of the registry ports.
// Each registry guards its own table with its own lock; records are cloned
// on the way in and out so callers never share memory with the store.
package memory

import (
	"sync"

	"github.com/example/dispatch/internal/apperr"
)

// table is a keyed store of records guarded by one RWMutex.
type table[T any] struct {
	mu    sync.RWMutex
	kind  string
	rows  map[string]*T
	order []string // insertion order
	clone func(*T) *T
}

func newTable[T any](kind string, clone func(*T) *T) *table[T] {
	return &table[T]{
		kind:  kind,
		rows:  make(map[string]*T),
		clone: clone,
	}
}

func (t *table[T]) notFound(key string) error {
	return apperr.NotFound("%s %s not found", t.kind, key)
}

func (t *table[T]) get(key string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[key]
	if !ok {
		return nil, t.notFound(key)
	}
	return t.clone(row), nil
}

// insert adds a row. check runs under the write lock before the insert.
func (t *table[T]) insert(key string, row *T, check func() error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[key]; ok {
		return apperr.Conflict("%s %s already exists", t.kind, key)
	}
	if check != nil {
		if err := check(); err != nil {
			return err
		}
	}
	t.rows[key] = t.clone(row)
	t.order = append(t.order, key)
	return nil
}

// mutate applies fn to a copy of the row and stores it only if fn succeeds.
func (t *table[T]) mutate(key string, fn func(*T) error) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[key]
	if !ok {
		return nil, t.notFound(key)
	}
	next := t.clone(row)
	if err := fn(next); err != nil {
		return nil, err
	}
	t.rows[key] = next
	return t.clone(next), nil
}

func (t *table[T]) remove(key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[key]; !ok {
		return t.notFound(key)
	}
	delete(t.rows, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// list returns clones of rows accepted by keep, in insertion order.
func (t *table[T]) list(keep func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*T, 0, len(t.order))
	for _, k := range t.order {
		row := t.rows[k]
		if keep == nil || keep(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

// anyMatch reports whether some row satisfies pred. Callers holding the
// write lock (inside insert/mutate checks) must use anyMatchLocked.
func (t *table[T]) anyMatchLocked(pred func(key string, row *T) bool) bool {
	for k, row := range t.rows {
		if pred(k, row) {
			return true
		}
	}
	return false
}
