package service

import (
	"context"

	"github.com/stitch/backend/internal/model"
)

// Backend delivers a cleared submission to one destination. Implementations
// return a *model.Error so the orchestrator can branch on the failure kind.
type Backend interface {
	// Name is the action string that selects this backend.
	Name() string
	Deliver(ctx context.Context, sub *model.Submission) error
}

// Router dispatches a submission to exactly one backend by action name.
// New destinations plug in with Register; the orchestrator never changes.
type Router struct {
	backends map[string]Backend
}

// NewRouter creates a Router over the given backends.
func NewRouter(backends ...Backend) *Router {
	r := &Router{backends: make(map[string]Backend, len(backends))}
	for _, b := range backends {
		r.Register(b)
	}
	return r
}

// Register adds or replaces a backend under its name.
func (r *Router) Register(b Backend) {
	r.backends[b.Name()] = b
}

// Deliver routes sub to the backend named by action. An action with no
// registered backend is a server-side wiring fault, reported as
// configuration-missing.
func (r *Router) Deliver(ctx context.Context, action string, sub *model.Submission) error {
	backend, ok := r.backends[action]
	if !ok {
		return model.NewError(model.KindConfigurationMissing, "no backend for action "+action)
	}
	return backend.Deliver(ctx, sub)
}
