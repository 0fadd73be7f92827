// Package draft mirrors the in-progress nested editing document to a
// key/value slot so an interrupted authoring session can resume. The sink is
// an injected dependency of the builder: create-mode editors get a real
// implementation, edit-mode editors get the no-op one.
package draft

import (
	"context"
	"errors"
	"sync"
)

// ErrNoDraft is returned by Get when the slot holds nothing.
var ErrNoDraft = errors.New("draft: no draft stored")

// Sink is the autosave destination. Put is invoked synchronously after every
// edit and is fire-and-forget from the editor's point of view; Get is read
// once when an editor mounts; Clear runs after a successful create.
type Sink interface {
	Put(ctx context.Context, key string, doc []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Clear(ctx context.Context, key string) error
}

// Noop discards every write. Used for editors working on already-persisted
// forms, which do not mirror drafts.
type Noop struct{}

func (Noop) Put(context.Context, string, []byte) error { return nil }

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrNoDraft }

func (Noop) Clear(context.Context, string) error { return nil }

// Memory is an in-process sink guarded by a mutex. Suitable for tests and for
// single-process tools such as the CLI.
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemory returns an empty in-process sink.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Put(_ context.Context, key string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), doc...)
	return nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.slots[key]
	if !ok {
		return nil, ErrNoDraft
	}
	return append([]byte(nil), doc...), nil
}

func (m *Memory) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}
