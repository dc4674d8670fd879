// Package compilestore keeps compiled programs addressable by id, the
// way internal/qservice.ProgramStore kept uploaded circuits addressable
// by id, so a driver can hand a client an opaque handle instead of the
// full result and let it come back for it later.
package compilestore

import (
	"sync"

	"github.com/google/uuid"
	"github.com/kegliz/qcore/qc/ir"
	"github.com/kegliz/qcore/qc/schedule"
)

// Result is everything a /compile call produces: the program as
// scheduled, plus the schedule metadata (depth, per-node cycle) for
// each kernel by name, so a caller retrieving a prior result doesn't
// need to re-derive it.
type Result struct {
	Program   *ir.Program
	Schedules map[string]*schedule.Schedule
}

// Store is a concurrency-safe id -> Result map.
type Store struct {
	mu      sync.RWMutex
	results map[string]*Result
}

// New returns an empty store.
func New() *Store {
	return &Store{results: map[string]*Result{}}
}

// Put assigns a fresh id to result and stores it.
func (s *Store) Put(result *Result) string {
	id := uuid.Must(uuid.NewRandom()).String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[id] = result
	return id
}

// Get retrieves a previously stored result by id.
func (s *Store) Get(id string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[id]
	return r, ok
}
