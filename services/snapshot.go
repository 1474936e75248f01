package services

import "sync"

// Snapshot holds the data one screen fetched most recently. Every fetch
// takes a sequence number from Begin, and only the result of the latest
// issued fetch is applied; older responses that arrive late are dropped.
type Snapshot[T any] struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
	value   T
	loaded  bool
	err     error
}

type SnapshotState[T any] struct {
	Value   T
	Loaded  bool
	Loading bool
	Err     error
	Seq     uint64
}

// Begin marks the snapshot as loading and returns the sequence number of the new fetch.
func (s *Snapshot[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Resolve applies the result of fetch seq and reports whether it was kept.
// A failed fetch replaces the previous value with nothing.
func (s *Snapshot[T]) Resolve(seq uint64, value T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.issued || seq <= s.applied {
		return false
	}

	s.applied = seq
	if err != nil {
		var zero T
		s.value, s.loaded, s.err = zero, false, err
		return true
	}
	s.value, s.loaded, s.err = value, true, nil
	return true
}

func (s *Snapshot[T]) State() SnapshotState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SnapshotState[T]{
		Value:   s.value,
		Loaded:  s.loaded,
		Loading: s.issued > s.applied,
		Err:     s.err,
		Seq:     s.applied,
	}
}
