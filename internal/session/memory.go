package session

import (
	"context"
	"sync"

	"github.com/jonathan/hiring-portal/internal/types"
)

// MemoryPersistence keeps the session in memory only.
type MemoryPersistence struct {
	mu    sync.Mutex
	saved *types.Session
}

// NewMemoryPersistence returns an empty in-memory persistence.
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (m *MemoryPersistence) Load(_ context.Context) (*types.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return nil, nil
	}
	cp := *m.saved
	return &cp, nil
}

func (m *MemoryPersistence) Save(_ context.Context, s types.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = &s
	return nil
}

func (m *MemoryPersistence) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = nil
	return nil
}
