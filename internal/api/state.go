package api

import (
	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"sync"
	"time"
)

type request struct {
	pid      *actor.PID
	finished time.Time
}

// requestsCache maps planning request ids to their crew actors.
type requestsCache struct {
	mu  sync.RWMutex
	ids map[uuid.UUID]*request
}

func newRequestsCache() *requestsCache {
	return &requestsCache{
		ids: map[uuid.UUID]*request{},
	}
}

func (s *requestsCache) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

func (s *requestsCache) add(id uuid.UUID, pid *actor.PID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = &request{pid: pid}
}

func (s *requestsCache) get(id uuid.UUID) (*actor.PID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ids[id]
	if !ok {
		return nil, false
	}
	return r.pid, true
}

// finish records when a plan was first seen done. Later calls keep the
// first time.
func (s *requestsCache) finish(id uuid.UUID, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.ids[id]; ok && r.finished.IsZero() {
		r.finished = at
	}
}

// running returns the requests not yet seen done.
func (s *requestsCache) running() map[uuid.UUID]*actor.PID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := map[uuid.UUID]*actor.PID{}
	for id, r := range s.ids {
		if r.finished.IsZero() {
			res[id] = r.pid
		}
	}
	return res
}

// expired returns the requests that finished at or before cutoff.
func (s *requestsCache) expired(cutoff time.Time) map[uuid.UUID]*actor.PID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := map[uuid.UUID]*actor.PID{}
	for id, r := range s.ids {
		if !r.finished.IsZero() && !r.finished.After(cutoff) {
			res[id] = r.pid
		}
	}
	return res
}

func (s *requestsCache) all() []*actor.PID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*actor.PID, 0, len(s.ids))
	for _, r := range s.ids {
		res = append(res, r.pid)
	}
	return res
}
