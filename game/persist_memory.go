package game

import (
	"sync"

	"github.com/pkg/errors"
)

// MemoryStateTracker keeps hand snapshots in process memory. Used in tests
// and single-node deployments.
type MemoryStateTracker struct {
	sync.RWMutex
	snapshots map[string]*HandSnapshot
}

func NewMemoryHandStateTracker() *MemoryStateTracker {
	return &MemoryStateTracker{
		snapshots: make(map[string]*HandSnapshot),
	}
}

func (m *MemoryStateTracker) Save(roomID string, snap *HandSnapshot) error {
	m.Lock()
	defer m.Unlock()
	m.snapshots[roomID] = snap
	return nil
}

func (m *MemoryStateTracker) Load(roomID string) (*HandSnapshot, error) {
	m.RLock()
	defer m.RUnlock()
	snap, ok := m.snapshots[roomID]
	if !ok {
		return nil, errors.Errorf("No hand snapshot found for room [%s]", roomID)
	}
	return snap, nil
}

func (m *MemoryStateTracker) Remove(roomID string) error {
	m.Lock()
	defer m.Unlock()
	delete(m.snapshots, roomID)
	return nil
}
