package rtdb

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
)

// Ensure MemoryStore implements shared.TreeStore
var _ shared.TreeStore = (*MemoryStore)(nil)

// MemoryStore is an in-process JSON tree with Realtime Database write
// semantics: values are stored as their JSON form, null and empty objects
// delete the node, and writes below a leaf turn it into an object.
// Use it for tests and local dry runs against a known tree.
type MemoryStore struct {
	mu   sync.Mutex
	root any
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get decodes the value at path into dst. An absent path decodes JSON null.
func (m *MemoryStore) Get(ctx context.Context, path string, dst any) error {
	if err := ctx.Err(); err != nil {
		return shared.RemoteReadError(path, err)
	}

	m.mu.Lock()
	data, err := json.Marshal(lookup(m.root, shared.SplitPath(path)))
	m.mu.Unlock()
	if err != nil {
		return shared.RemoteReadError(path, err)
	}

	if err := decodeJSON(data, dst); err != nil {
		return shared.RemoteReadError(path, err)
	}
	return nil
}

// Set creates or fully replaces the value at path
func (m *MemoryStore) Set(ctx context.Context, path string, value any) error {
	if err := ctx.Err(); err != nil {
		return shared.RemoteWriteError(path, err)
	}

	normalized, err := normalize(value)
	if err != nil {
		return shared.RemoteWriteError(path, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.root = store(m.root, shared.SplitPath(path), normalized)
	return nil
}

// Transaction runs fn against the current value at path and stores the
// result. The store lock is held throughout, so fn runs exactly once.
func (m *MemoryStore) Transaction(ctx context.Context, path string, fn shared.UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return shared.RemoteWriteError(path, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	segments := shared.SplitPath(path)
	current, err := clone(lookup(m.root, segments))
	if err != nil {
		return shared.RemoteWriteError(path, err)
	}

	next, err := fn(current)
	if err != nil {
		return shared.RemoteWriteError(path, err)
	}

	normalized, err := normalize(next)
	if err != nil {
		return shared.RemoteWriteError(path, err)
	}
	m.root = store(m.root, segments, normalized)
	return nil
}

// Snapshot returns a deep copy of the whole tree, nil when empty
func (m *MemoryStore) Snapshot() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out, _ := clone(m.root)
	return out
}

func lookup(node any, segments []string) any {
	for _, seg := range segments {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node = obj[seg]
	}
	return node
}

// store returns node with value placed at segments, pruning objects left empty
func store(node any, segments []string, value any) any {
	if len(segments) == 0 {
		return value
	}

	obj, ok := node.(map[string]any)
	if !ok {
		if value == nil {
			return node
		}
		obj = make(map[string]any)
	}

	child := store(obj[segments[0]], segments[1:], value)
	if child == nil {
		delete(obj, segments[0])
	} else {
		obj[segments[0]] = child
	}

	if len(obj) == 0 {
		return nil
	}
	return obj
}

// normalize converts value to its generic JSON form and drops null members
// and empty objects or arrays
func normalize(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := decodeJSON(data, &generic); err != nil {
		return nil, err
	}
	return prune(generic), nil
}

func prune(node any) any {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			if pruned := prune(child); pruned == nil {
				delete(v, k)
			} else {
				v[k] = pruned
			}
		}
		if len(v) == 0 {
			return nil
		}
		return v
	case []any:
		if len(v) == 0 {
			return nil
		}
		for i, child := range v {
			v[i] = prune(child)
		}
		return v
	default:
		return v
	}
}

func clone(node any) (any, error) {
	if node == nil {
		return nil, nil
	}
	data, err := json.Marshal(node)
	if err != nil {
		return nil, err
	}
	var out any
	err = decodeJSON(data, &out)
	return out, err
}

// decodeJSON keeps numbers as json.Number so integers survive unchanged
func decodeJSON(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(dst)
}
