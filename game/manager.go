package game

import (
	"sync"
	"time"

	"pokerhive.com/server/room"
	"pokerhive.com/server/util"
)

var managerLogger = util.GetZeroLogger("game::manager", nil)

// Manager owns the active games and the room registry behind them. Each room
// gets one Game, and through it one event-loop goroutine and one turn clock.
type Manager struct {
	registry *room.Registry
	receiver MessageReceiver
	persist  PersistHandState
	config   Config
	delays   Delays

	gamesLock   sync.RWMutex
	activeGames map[string]*Game
}

func NewManager(registry *room.Registry, receiver MessageReceiver, persist PersistHandState, config Config, delays Delays) *Manager {
	return &Manager{
		registry:    registry,
		receiver:    receiver,
		persist:     persist,
		config:      config,
		delays:      delays,
		activeGames: make(map[string]*Game),
	}
}

// CreateRoom allocates a room and starts its game loop.
func (m *Manager) CreateRoom(opts room.CreateOptions) (*room.Room, *Game) {
	r := m.registry.Create(opts)
	g := NewGame(r, m.config, m.delays, m.receiver, m.persist)
	g.Run()

	m.gamesLock.Lock()
	m.activeGames[r.ID] = g
	m.gamesLock.Unlock()

	managerLogger.Info().Str("room", r.ID).Msg("Game started for room")
	return r, g
}

// GetGame looks up the running game for a room.
func (m *Manager) GetGame(roomID string) (*Game, error) {
	m.gamesLock.RLock()
	defer m.gamesLock.RUnlock()
	g, ok := m.activeGames[roomID]
	if !ok {
		return nil, stateErrorf("no game running for room [%s]", roomID)
	}
	return g, nil
}

// JoinRoom authorizes against the room password and seats the player via the
// room's event loop.
func (m *Manager) JoinRoom(roomID string, password string, p *room.Player) (*Game, error) {
	if _, err := m.registry.Authorize(roomID, password); err != nil {
		return nil, err
	}
	g, err := m.GetGame(roomID)
	if err != nil {
		return nil, err
	}
	if err := g.AddPlayer(p); err != nil {
		return nil, err
	}
	return g, nil
}

// EndGame stops a room's game loop and drops the room.
func (m *Manager) EndGame(roomID string) {
	m.gamesLock.Lock()
	g, ok := m.activeGames[roomID]
	delete(m.activeGames, roomID)
	m.gamesLock.Unlock()
	if ok {
		g.End()
	}
	m.registry.Remove(roomID)
}

// Registry exposes the room store for the lobby endpoints.
func (m *Manager) Registry() *room.Registry {
	return m.registry
}

// LoadSnapshot returns the last persisted hand snapshot for a room, for
// inspecting where a hand stood after a crash.
func (m *Manager) LoadSnapshot(roomID string) (*HandSnapshot, error) {
	if m.persist == nil {
		return nil, stateErrorf("hand state persistence is not configured")
	}
	return m.persist.Load(roomID)
}

// RunExpiryWatcher periodically drops rooms with no activity. It blocks and
// is meant to run on its own goroutine; closing stop ends it.
func (m *Manager) RunExpiryWatcher(interval time.Duration, timeout time.Duration, stop chan bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for _, id := range m.registry.Expired(timeout) {
				managerLogger.Info().Str("room", id).Msg("Room expired, shutting it down")
				m.EndGame(id)
			}
		}
	}
}
