package user

import (
	"sync"

	"scheduling-service/appointment"
)

// Registry hands out the per-user scheduler, creating it on first use.
type Registry struct {
	mu         sync.Mutex
	schedulers map[string]*appointment.Scheduler
	onCreate   func(total int)
}

type Option func(*Registry)

// WithOnCreate registers a callback invoked with the new user count whenever a
// scheduler is provisioned.
func WithOnCreate(fn func(total int)) Option {
	return func(r *Registry) {
		r.onCreate = fn
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{schedulers: make(map[string]*appointment.Scheduler)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetOrCreate returns the scheduler for userID, provisioning an empty one if the
// user has not been seen before. Concurrent callers for the same new user all
// receive the same instance.
func (r *Registry) GetOrCreate(userID string) *appointment.Scheduler {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.schedulers[userID]; ok {
		return s
	}

	s := appointment.NewScheduler(userID)
	r.schedulers[userID] = s
	if r.onCreate != nil {
		r.onCreate(len(r.schedulers))
	}
	return s
}

// Lookup returns the scheduler for userID without provisioning one.
func (r *Registry) Lookup(userID string) (*appointment.Scheduler, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schedulers[userID]
	return s, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.schedulers)
}
