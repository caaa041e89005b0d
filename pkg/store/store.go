// Package store holds client-side state for the relay console: the current
// page of each entity family, its search parameters and the signed-in
// session.
//
// Stores are explicit values created at the application boundary and passed
// to whatever needs them. They are safe for concurrent use. List fetches are
// fenced by a per-store sequence number so that a slow, superseded response
// never overwrites a newer one.
//
// Only search parameters and the session token are persisted (through a
// persist.Persister); entity lists always come from the server.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/logging"
	"github.com/relaydesk/relayctl/pkg/store/persist"
)

// State is the lifecycle of a store's last list fetch.
type State int

// Fetch states.
const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// FetchFunc loads one page of T for the given parameters.
type FetchFunc[T, P any] func(ctx context.Context, params P) (*types.Page[T], error)

// ListStore holds one page of a list endpoint together with its search
// parameters. K is the key type of T.
type ListStore[K comparable, T any, P any] struct {
	name      string
	key       func(T) K
	fetch     FetchFunc[T, P]
	persister persist.Persister
	defaults  P
	log       *slog.Logger

	mu     sync.RWMutex
	items  []T
	total  int
	state  State
	err    error
	params P
	seq    uint64 // last issued fetch
}

// NewListStore creates a list store. name keys the persisted parameters;
// persister and log may be nil. Previously persisted parameters replace
// defaults when they can be loaded.
func NewListStore[K comparable, T any, P any](name string, key func(T) K, fetch FetchFunc[T, P], defaults P, persister persist.Persister, log *slog.Logger) *ListStore[K, T, P] {
	if log == nil {
		log = logging.Nop()
	}
	s := &ListStore[K, T, P]{
		name:      name,
		key:       key,
		fetch:     fetch,
		persister: persister,
		defaults:  defaults,
		log:       log.With("store", name),
		items:     []T{},
		params:    defaults,
	}
	if persister != nil {
		var saved P
		switch err := persister.Load(s.paramsKey(), &saved); {
		case err == nil:
			s.params = saved
		case errors.Is(err, persist.ErrNotFound):
		default:
			s.log.Warn("ignoring saved search parameters", "error", err)
		}
	}
	return s
}

func (s *ListStore[K, T, P]) paramsKey() string {
	return s.name + "-params"
}

func (s *ListStore[K, T, P]) saveParams(params P) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.paramsKey(), params); err != nil {
		s.log.Warn("failed to save search parameters", "error", err)
	}
}

// FetchList applies patch to the stored parameters, persists them and
// loads the matching page. On failure the held items and total are left
// untouched and the error is returned as is. A response that arrives after
// a newer fetch was issued is discarded.
func (s *ListStore[K, T, P]) FetchList(ctx context.Context, patch func(*P)) error {
	s.mu.Lock()
	if patch != nil {
		patch(&s.params)
	}
	params := s.params
	s.seq++
	seq := s.seq
	s.state = StateLoading
	s.mu.Unlock()

	s.saveParams(params)

	page, err := s.fetch(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()

	latest := seq == s.seq
	if err != nil {
		if latest {
			s.state = StateError
			s.err = err
		}
		s.log.Debug("fetch failed", "seq", seq, "latest", latest, "error", err)
		return err
	}
	if !latest {
		s.log.Debug("discarding superseded response", "seq", seq, "latest_seq", s.seq)
		return nil
	}

	s.items = []T{}
	s.total = 0
	if page != nil {
		s.items = append(s.items, page.Items...)
		s.total = page.Total
	}
	s.state = StateSuccess
	s.err = nil
	return nil
}

// replace installs items as the held list, superseding any fetch in flight.
func (s *ListStore[K, T, P]) replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.items = append([]T{}, items...)
	s.total = len(items)
	s.state = StateSuccess
	s.err = nil
}

// eachID runs op for every id in order and stops at the first failure.
// Ids before the failing one have already been applied.
func eachID(what string, ids []int64, op func(int64) error) error {
	for _, id := range ids {
		if err := op(id); err != nil {
			return fmt.Errorf("%s %d: %w", what, id, err)
		}
	}
	return nil
}

func (s *ListStore[K, T, P]) indexOf(id K) int {
	for i, item := range s.items {
		if s.key(item) == id {
			return i
		}
	}
	return -1
}

// Add prepends item and increments the total. If an item with the same key
// is already held it is replaced in place and the total is unchanged.
func (s *ListStore[K, T, P]) Add(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(s.key(item)); i >= 0 {
		s.items[i] = item
		return
	}
	s.items = append([]T{item}, s.items...)
	s.total++
}

// Update replaces the held item with the same key. It reports whether one was found.
func (s *ListStore[K, T, P]) Update(item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(s.key(item))
	if i < 0 {
		return false
	}
	s.items[i] = item
	return true
}

// Mutate applies fn to the held item with key id. It reports whether one was found.
func (s *ListStore[K, T, P]) Mutate(id K, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	fn(&s.items[i])
	return true
}

// Remove deletes the held item with key id.
func (s *ListStore[K, T, P]) Remove(id K) int {
	return s.RemoveMany([]K{id})
}

// RemoveMany deletes every held item whose key is in ids, keeping the order
// of the rest. The total is decremented by the number removed, never below
// zero. It returns the number removed.
func (s *ListStore[K, T, P]) RemoveMany(ids []K) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[K]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0:0]
	for _, item := range s.items {
		if _, ok := drop[s.key(item)]; !ok {
			kept = append(kept, item)
		}
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	s.total = max(s.total-removed, 0)
	return removed
}

// Find returns the held item with key id.
func (s *ListStore[K, T, P]) Find(id K) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Filter returns the held items for which keep returns true.
func (s *ListStore[K, T, P]) Filter(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []T{}
	for _, item := range s.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Items returns a copy of the held items.
func (s *ListStore[K, T, P]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Total returns the server-side total of the last applied page, adjusted
// by local adds and removes.
func (s *ListStore[K, T, P]) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Loading reports whether the latest fetch is still in flight.
func (s *ListStore[K, T, P]) Loading() bool {
	return s.State() == StateLoading
}

// State returns the state of the latest fetch.
func (s *ListStore[K, T, P]) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err returns the error of the latest fetch, if it failed.
func (s *ListStore[K, T, P]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Params returns the current search parameters.
func (s *ListStore[K, T, P]) Params() P {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// ResetParams restores the default search parameters and persists them.
func (s *ListStore[K, T, P]) ResetParams() {
	s.mu.Lock()
	s.params = s.defaults
	params := s.params
	s.mu.Unlock()
	s.saveParams(params)
}

// Clear drops the held items, as on logout. In-flight fetches issued
// before Clear are discarded when they complete.
func (s *ListStore[K, T, P]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []T{}
	s.total = 0
	s.state = StateIdle
	s.err = nil
	s.seq++
}
