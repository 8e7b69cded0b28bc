// Package state implements the tri-state collection store shared by the
// project, task and user slices of the client: an items/loading/error
// snapshot mutated only through a pure reducer, with a thin subscriber
// layer on top.
package state

import "sync"

// EventKind discriminates store events. Each remote operation emits a
// start event followed by exactly one success or failure event.
type EventKind int

const (
	FetchStart EventKind = iota
	FetchSuccess
	FetchFailure
	CreateStart
	CreateSuccess
	CreateFailure
	DetailSuccess
	ClearCurrent
)

// Event is a single store mutation request.
type Event[T any] struct {
	Kind  EventKind
	Items []T    // FetchSuccess payload
	Item  *T     // CreateSuccess / DetailSuccess payload
	Err   string // FetchFailure / CreateFailure payload
}

// State is an immutable snapshot of one collection. Loading is true only
// while a fetch or create is outstanding; Err and a successful result
// are mutually exclusive for the same operation. Current holds the
// detail view where a collection has one (projects).
type State[T any] struct {
	Items   []T
	Current *T
	Loading bool
	Err     string
}

// Reduce applies an event to a state and returns the next state. It
// never mutates its input: item slices are copied before growing, and a
// failure leaves the previous items visible (stale-but-visible policy).
func Reduce[T any](s State[T], e Event[T]) State[T] {
	switch e.Kind {
	case FetchStart, CreateStart:
		s.Loading = true
		s.Err = ""
	case FetchSuccess:
		s.Loading = false
		s.Items = e.Items
	case CreateSuccess:
		s.Loading = false
		if e.Item != nil {
			items := make([]T, len(s.Items), len(s.Items)+1)
			copy(items, s.Items)
			s.Items = append(items, *e.Item)
		}
	case FetchFailure, CreateFailure:
		s.Loading = false
		s.Err = e.Err
	case DetailSuccess:
		s.Loading = false
		s.Current = e.Item
	case ClearCurrent:
		s.Current = nil
	}
	return s
}

// Store holds the current state of one collection and notifies
// subscribers after every dispatch.
type Store[T any] struct {
	mu    sync.Mutex
	state State[T]
	subs  map[int]func(State[T])
	next  int
}

// NewStore creates an empty, not-loading store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{subs: make(map[int]func(State[T]))}
}

// Dispatch runs the event through the reducer and notifies subscribers
// with the resulting snapshot.
func (s *Store[T]) Dispatch(e Event[T]) {
	s.mu.Lock()
	s.state = Reduce(s.state, e)
	next := s.state
	fns := make([]func(State[T]), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

// State returns the current snapshot. Callers must not mutate the items
// slice; the reducer never writes into it in place.
func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to run after every dispatch and returns an
// unsubscribe function.
func (s *Store[T]) Subscribe(fn func(State[T])) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
