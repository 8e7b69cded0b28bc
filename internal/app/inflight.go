package app

import (
	"sync"

	"github.com/google/uuid"
)

// inflight tags the latest outstanding request against one store. A
// completion whose tag is no longer the latest belongs to an abandoned
// request and must not touch the store.
type inflight struct {
	mu     sync.Mutex
	latest uuid.UUID
}

func (f *inflight) begin() uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest = uuid.New()
	return f.latest
}

func (f *inflight) current(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest == id
}

// invalidate abandons whatever is in flight; any late completion will
// see a tag mismatch and discard its result.
func (f *inflight) invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest = uuid.New()
}
