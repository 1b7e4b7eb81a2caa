package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
)

// Backend reads and writes whole documents
type Backend interface {
	Read(ctx context.Context, loc Location) ([]byte, error)
	Write(ctx context.Context, loc Location, data []byte) error
}

// RemoteFactory creates the object storage backend
type RemoteFactory func() (Backend, error)

// Router sends local paths to the local backend and s3:// locations to
// the remote one, which is only created when first needed.
type Router struct {
	local     Backend
	newRemote RemoteFactory

	mu     sync.Mutex
	remote Backend
}

// NewRouter creates a Router. newRemote may be nil, in which case s3://
// locations are rejected.
func NewRouter(local Backend, newRemote RemoteFactory) *Router {
	return &Router{
		local:     local,
		newRemote: newRemote,
	}
}

// Read returns the document at location
func (r *Router) Read(ctx context.Context, location string) ([]byte, error) {
	loc, backend, err := r.resolve(location)
	if err != nil {
		return nil, err
	}
	return backend.Read(ctx, loc)
}

// Write stores the document at location
func (r *Router) Write(ctx context.Context, location string, data []byte) error {
	loc, backend, err := r.resolve(location)
	if err != nil {
		return err
	}
	return backend.Write(ctx, loc, data)
}

func (r *Router) resolve(location string) (Location, Backend, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return Location{}, nil, shared.InvalidInput(err.Error())
	}
	if !loc.IsRemote() {
		return loc, r.local, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.remote == nil {
		if r.newRemote == nil {
			return Location{}, nil, errors.New("object storage is not configured")
		}
		remote, err := r.newRemote()
		if err != nil {
			return Location{}, nil, err
		}
		r.remote = remote
	}
	return loc, r.remote, nil
}
