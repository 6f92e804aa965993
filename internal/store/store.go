// Package store owns the domain state: projects, wireframes, lineage,
// comments and the UI focus fields. All mutation goes through a Store, which
// applies each change as one atomic transition, persists the durable subset
// and notifies subscribers with the post-mutation state.
package store

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Result reports whether a mutation changed the state.
type Result int

const (
	// Applied means the mutation fully applied.
	Applied Result = iota
	// SkippedNotFound means a referenced id does not exist; nothing changed.
	SkippedNotFound
	// SkippedDuplicate means an add was rejected because the id is taken.
	SkippedDuplicate
	// SkippedInvalid means the input cannot be stored (e.g. an empty id).
	SkippedInvalid
)

func (r Result) String() string {
	switch r {
	case Applied:
		return "applied"
	case SkippedNotFound:
		return "skipped_not_found"
	case SkippedDuplicate:
		return "skipped_duplicate"
	case SkippedInvalid:
		return "skipped_invalid"
	default:
		return "unknown"
	}
}

// OK reports whether the mutation applied.
func (r Result) OK() bool {
	return r == Applied
}

// Persister receives the persisted subset after each mutation that touches it.
// It runs inside the store's critical section and must not call back into
// the store.
type Persister interface {
	Persist(Snapshot) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(Snapshot) error

// Persist calls f.
func (f PersisterFunc) Persist(s Snapshot) error {
	return f(s)
}

// Store is the single writer for the domain state.
type Store struct {
	mu        sync.RWMutex
	state     State
	persister Persister
	logger    *zap.Logger
	metrics   *metrics

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPersister sets the durable snapshot sink.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithSnapshot rehydrates the store from a persisted snapshot.
func WithSnapshot(snap Snapshot) Option {
	return func(s *Store) { s.state = Rehydrate(snap) }
}

// WithRegisterer registers the store's mutation counter.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Store) { s.metrics = newMetrics(reg) }
}

// New creates a Store holding the initial state unless WithSnapshot is given.
func New(opts ...Option) *Store {
	s := &Store{
		state:  InitialState(),
		logger: zap.NewNop(),
		subs:   map[int]func(State){},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = newMetrics(nil)
	}
	return s
}

// State returns a deep copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// Persisted returns a deep copy of the persisted subset.
func (s *Store) Persisted() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Persisted()
}

// Subscribe registers fn to be called with the new state after every applied
// mutation. Calls from concurrent mutations may arrive out of order. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// apply runs fn against a working copy of the state under the write lock.
// fn must build new slices rather than writing into shared ones, and must
// return without touching the working copy unless it returns Applied.
func (s *Store) apply(op string, persisted bool, fn func(st *State) Result) Result {
	s.mu.Lock()
	next := s.state
	res := fn(&next)
	var after State
	if res == Applied {
		s.state = next
		if persisted && s.persister != nil {
			if err := s.persister.Persist(s.state.Persisted()); err != nil {
				s.logger.Error("persist snapshot failed", zap.String("op", op), zap.Error(err))
			}
		}
		after = cloneState(s.state)
	}
	s.mu.Unlock()

	s.metrics.observe(op, res)
	if res != Applied {
		s.logger.Debug("mutation skipped", zap.String("op", op), zap.Stringer("result", res))
		return res
	}
	s.logger.Debug("mutation applied", zap.String("op", op))
	s.notify(after)
	return res
}

func (s *Store) notify(st State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
