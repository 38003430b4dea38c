package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hctsai/roomcal/pkg/pipeline"
)

// maxStored bounds the number of render results kept in memory. The oldest
// result is evicted when the cap is reached.
const maxStored = 64

// resultStore holds render results between the render request and the
// subsequent image/download requests. Results are keyed by an opaque handle
// so URLs never leak workbook contents.
type resultStore struct {
	mu      sync.Mutex
	results map[string]storedResult
}

type storedResult struct {
	result  *pipeline.Result
	created time.Time
}

func newResultStore() *resultStore {
	return &resultStore{results: make(map[string]storedResult)}
}

// Put stores a result and returns its handle.
func (s *resultStore) Put(result *pipeline.Result) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) >= maxStored {
		s.evictOldest()
	}
	s.results[id] = storedResult{result: result, created: time.Now()}
	return id
}

// Get returns the result for a handle, or false when unknown or evicted.
func (s *resultStore) Get(id string) (*pipeline.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.results[id]
	if !ok {
		return nil, false
	}
	return stored.result, true
}

// evictOldest removes the least recent entry. Caller holds the lock.
func (s *resultStore) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, stored := range s.results {
		if oldestID == "" || stored.created.Before(oldest) {
			oldestID = id
			oldest = stored.created
		}
	}
	delete(s.results, oldestID)
}
