package attendance

import (
	"sync"

	"github.com/tallyhr/attendance-backend-go/internal/domain/attendance"
)

// inflightSet is the per-key "operation in flight" table. It is the only
// shared mutable state in the mutation path: a key acquired here is being
// written to the store, and no second write on it may start until release.
type inflightSet struct {
	mu   sync.Mutex
	keys map[attendance.Key]struct{}
}

func newInflightSet() *inflightSet {
	return &inflightSet{keys: make(map[attendance.Key]struct{})}
}

// tryAcquire claims the key, or reports false when a mutation on it is
// already in flight. Callers never wait; Busy is surfaced immediately.
func (s *inflightSet) tryAcquire(key attendance.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.keys[key]; busy {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

func (s *inflightSet) release(key attendance.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
}
