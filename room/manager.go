package room

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"pokerhive.com/server/util"
)

var roomLogger = util.GetZeroLogger("room::manager", nil)

var avatars = []string{
	"/avatars/image1.png",
	"/avatars/image2.jpg",
	"/avatars/image3.jpg",
	"/avatars/image4.jpg",
	"/avatars/image5.png",
}

// RandomAvatar picks a default avatar for players that did not choose one.
func RandomAvatar() string {
	return avatars[rand.Intn(len(avatars))]
}

var (
	ErrRoomNotFound    = errors.New("room does not exist")
	ErrRoomFull        = errors.New("room is full")
	ErrInvalidPassword = errors.New("invalid password")
)

// CreateOptions carries the room settings chosen by the host.
type CreateOptions struct {
	Region   string
	MaxSeats int
	Password string
}

const (
	defaultRegion = "IN"
	maxSeatsCap   = 5
)

// Registry is the in-memory room store. It only guards membership of the map;
// mutations of an individual room's seats happen inside that room's game
// loop.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Create allocates a room with a region-prefixed code, e.g. "IN-3f2a9c".
func (reg *Registry) Create(opts CreateOptions) *Room {
	region := opts.Region
	if region == "" {
		region = defaultRegion
	}
	maxSeats := opts.MaxSeats
	if maxSeats <= 0 || maxSeats > maxSeatsCap {
		maxSeats = maxSeatsCap
	}
	id := fmt.Sprintf("%s-%s", region, strings.Split(uuid.New().String(), "-")[0])
	r := &Room{
		ID:         id,
		Region:     region,
		Password:   opts.Password,
		MaxSeats:   maxSeats,
		Players:    make([]*Player, 0, maxSeats),
		DealerIdx:  -1,
		LastActive: time.Now(),
	}

	reg.mu.Lock()
	reg.rooms[id] = r
	reg.mu.Unlock()

	roomLogger.Info().Str("room", id).Int("maxSeats", maxSeats).Msg("Room created")
	return r
}

// Get retrieves a room by id.
func (reg *Registry) Get(id string) (*Room, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[id]
	if !ok {
		return nil, errors.Wrap(ErrRoomNotFound, id)
	}
	return r, nil
}

// Authorize checks the room password before a join is routed to the room's
// event loop.
func (reg *Registry) Authorize(id string, password string) (*Room, error) {
	r, err := reg.Get(id)
	if err != nil {
		return nil, err
	}
	if r.Password != "" && r.Password != password {
		return nil, ErrInvalidPassword
	}
	return r, nil
}

// Remove deletes a room from the registry.
func (reg *Registry) Remove(id string) {
	reg.mu.Lock()
	delete(reg.rooms, id)
	reg.mu.Unlock()
	roomLogger.Info().Str("room", id).Msg("Room removed")
}

// List returns all rooms without a password, for the lobby.
func (reg *Registry) List() []*Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		if r.Password == "" {
			out = append(out, r)
		}
	}
	return out
}

// Expired returns ids of rooms inactive longer than the timeout.
func (reg *Registry) Expired(timeout time.Duration) []string {
	now := time.Now()
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	var ids []string
	for id, r := range reg.rooms {
		if now.Sub(r.LastActive) > timeout {
			ids = append(ids, id)
		}
	}
	return ids
}
