package order

import "sync"

// Sequence issues order identifiers starting at 1. An identifier is only
// consumed by Advance, so a rejected checkout can Peek without burning one.
type Sequence struct {
	mu   sync.Mutex
	next int
}

// NewSequence returns a sequence whose first identifier is 1.
func NewSequence() *Sequence {
	return &Sequence{next: 1}
}

// Peek returns the identifier the next order will receive.
func (s *Sequence) Peek() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Advance consumes the current identifier and returns it.
func (s *Sequence) Advance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	return id
}
