package core

import (
	"context"
	"sort"
	"sync"
)

// Record is one item of a backend-owned collection. Key is the stable unique
// id within one fetch response; it is the render key and the mutation target.
type Record interface {
	Key() string
}

// Predicate is one client-side filter; filters never re-hit the network.
type Predicate[T Record] func(T) bool

// Fetcher produces a fresh collection from the backend.
type Fetcher[T Record] func(ctx context.Context) ([]T, error)

// ListController holds one panel's collection state: the fetched items, a
// loading flag and the active filters. The in-memory collection is a cache
// whose only invariant is "equals the last successful fetch response"; any
// successful mutation invalidates it by re-running Refresh.
type ListController[T Record] struct {
	mutex   sync.RWMutex
	fetch   Fetcher[T]
	items   []T
	loaded  bool
	loading bool
	filters map[string]Predicate[T]
}

func NewListController[T Record](fetch Fetcher[T]) *ListController[T] {
	return &ListController[T]{
		fetch:   fetch,
		filters: make(map[string]Predicate[T]),
	}
}

// Refresh replaces items with a fresh fetch. On failure the last known-good
// collection stays untouched. A refresh while one is already in flight is a
// no-op so a double-click cannot stack requests.
func (lc *ListController[T]) Refresh(ctx context.Context) error {
	lc.mutex.Lock()
	if lc.loading {
		lc.mutex.Unlock()
		return nil
	}
	lc.loading = true
	lc.mutex.Unlock()

	defer func() {
		lc.mutex.Lock()
		lc.loading = false
		lc.mutex.Unlock()
	}()

	items, err := lc.fetch(ctx)
	if err != nil {
		return err
	}
	lc.mutex.Lock()
	lc.items = items
	lc.loaded = true
	lc.mutex.Unlock()
	return nil
}

// SetFilter installs (or replaces) the predicate under key. It does not
// trigger a refresh; filters apply to the already-fetched items.
func (lc *ListController[T]) SetFilter(key string, pred Predicate[T]) {
	lc.mutex.Lock()
	defer lc.mutex.Unlock()
	if pred == nil {
		delete(lc.filters, key)
		return
	}
	lc.filters[key] = pred
}

// ClearFilter removes the predicate under key.
func (lc *ListController[T]) ClearFilter(key string) {
	lc.SetFilter(key, nil)
}

// ClearFilters removes every predicate.
func (lc *ListController[T]) ClearFilters() {
	lc.mutex.Lock()
	defer lc.mutex.Unlock()
	lc.filters = make(map[string]Predicate[T])
}

// VisibleRows derives the rows to render: every active predicate ANDed over
// the raw items, source order preserved. Pure with respect to (items, filters).
func (lc *ListController[T]) VisibleRows() []T {
	lc.mutex.RLock()
	defer lc.mutex.RUnlock()

	rows := make([]T, 0, len(lc.items))
outer:
	for _, item := range lc.items {
		for _, pred := range lc.filters {
			if !pred(item) {
				continue outer
			}
		}
		rows = append(rows, item)
	}
	return rows
}

// Items returns the raw last-fetched collection.
func (lc *ListController[T]) Items() []T {
	lc.mutex.RLock()
	defer lc.mutex.RUnlock()
	items := make([]T, len(lc.items))
	copy(items, lc.items)
	return items
}

// Loading reports whether a fetch is in flight; renderers show a spinner
// instead of the table while true.
func (lc *ListController[T]) Loading() bool {
	lc.mutex.RLock()
	defer lc.mutex.RUnlock()
	return lc.loading
}

// Loaded reports whether at least one fetch succeeded; an empty loaded
// collection renders an explicit "no records" row, never a blank table.
func (lc *ListController[T]) Loaded() bool {
	lc.mutex.RLock()
	defer lc.mutex.RUnlock()
	return lc.loaded
}

// SortBy orders the fetched items in place by the given less function.
func (lc *ListController[T]) SortBy(less func(a, b T) bool) {
	lc.mutex.Lock()
	defer lc.mutex.Unlock()
	sort.SliceStable(lc.items, func(i, j int) bool { return less(lc.items[i], lc.items[j]) })
}
