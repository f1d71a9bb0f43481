// Package watch turns one-shot queries into live sequences.
//
// Writers call Hub.Notify with the tables they changed after their commit.
// Every live query subscribed to one of those tables re-runs and pushes the
// fresh result to its channel. Delivery keeps only the newest snapshot: when
// the consumer is slower than the writers, intermediate states are skipped.
package watch

import (
	"context"
	"sync"
)

// Table names a group of rows that change together.
type Table string

const (
	Trips    Table = "trips"
	Entries  Table = "entries"
	Images   Table = "images"
	AppState Table = "app_state"
)

// Hub tracks live queries by the tables they read.
type Hub struct {
	mu   sync.Mutex
	subs map[Table]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[Table]map[chan struct{}]struct{})}
}

func (h *Hub) subscribe(tables []Table) chan struct{} {
	wake := make(chan struct{}, 1)

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range tables {
		set, ok := h.subs[t]
		if !ok {
			set = make(map[chan struct{}]struct{})
			h.subs[t] = set
		}
		set[wake] = struct{}{}
	}
	return wake
}

func (h *Hub) unsubscribe(wake chan struct{}, tables []Table) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range tables {
		delete(h.subs[t], wake)
		if len(h.subs[t]) == 0 {
			delete(h.subs, t)
		}
	}
}

// Notify wakes every live query reading any of tables. It never blocks.
func (h *Hub) Notify(tables ...Table) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range tables {
		for wake := range h.subs[t] {
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}
}

// Subscribers reports how many live queries currently read table.
func (h *Hub) Subscribers(table Table) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[table])
}

// Query loads one snapshot.
type Query[T any] func(ctx context.Context) ([]T, error)

// Live runs q immediately and again after every notification on tables,
// sending each result on the returned channel. A failed run is reported to
// onErr (when non-nil) and delivered as an empty snapshot. The channel is
// closed once ctx is done.
func Live[T any](ctx context.Context, h *Hub, q Query[T], onErr func(error), tables ...Table) <-chan []T {
	out := make(chan []T)
	wake := h.subscribe(tables)

	go func() {
		defer close(out)
		defer h.unsubscribe(wake, tables)

		for {
			snapshot := run(ctx, q, onErr)

			// a change that landed while querying makes this snapshot stale
			select {
			case <-wake:
				continue
			default:
			}

			select {
			case out <- snapshot:
			case <-wake:
				continue
			case <-ctx.Done():
				return
			}

			select {
			case <-wake:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func run[T any](ctx context.Context, q Query[T], onErr func(error)) []T {
	rows, err := q(ctx)
	if err != nil {
		if onErr != nil && ctx.Err() == nil {
			onErr(err)
		}
		return []T{}
	}
	if rows == nil {
		rows = []T{}
	}
	return rows
}
