package server

import (
	"sync"
	"time"
)

const (
	defaultMaxResults = 1024
	defaultResultTTL  = time.Hour
)

type storedResult struct {
	rsp     ParseResponse
	expires time.Time
}

// resultStore keeps parse results for GET /api/molecule/{id}. Entries expire
// after ttl and the oldest are evicted once more than max are held.
type resultStore struct {
	max int
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]storedResult
	// ids in insertion order, which is also expiry order
	order []string
}

func newResultStore(max int, ttl time.Duration) *resultStore {
	if max <= 0 {
		max = defaultMaxResults
	}
	if ttl <= 0 {
		ttl = defaultResultTTL
	}
	return &resultStore{
		max:     max,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]storedResult),
	}
}

func (rs *resultStore) put(rsp ParseResponse) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	now := rs.now()
	rs.entries[rsp.ID] = storedResult{rsp: rsp, expires: now.Add(rs.ttl)}
	rs.order = append(rs.order, rsp.ID)

	for len(rs.order) > 0 {
		oldest := rs.order[0]
		e, ok := rs.entries[oldest]
		if ok && len(rs.entries) <= rs.max && now.Before(e.expires) {
			break
		}
		delete(rs.entries, oldest)
		rs.order = rs.order[1:]
	}
}

func (rs *resultStore) get(id string) (ParseResponse, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	e, ok := rs.entries[id]
	if !ok {
		return ParseResponse{}, false
	}
	if !rs.now().Before(e.expires) {
		delete(rs.entries, id)
		return ParseResponse{}, false
	}
	return e.rsp, true
}

func (rs *resultStore) size() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.entries)
}
