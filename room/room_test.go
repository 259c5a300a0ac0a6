package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatedRoom(chips ...int64) *Room {
	r := &Room{ID: "IN-abc123", MaxSeats: 5}
	names := []string{"p0", "p1", "p2", "p3", "p4"}
	for i, c := range chips {
		r.Players = append(r.Players, &Player{
			ID:           names[i],
			PersistentID: names[i],
			Name:         names[i],
			Chips:        c,
		})
	}
	return r
}

func TestNextSeatWithChipsWraps(t *testing.T) {
	r := seatedRoom(100, 100, 100)

	seat, ok := r.NextSeatWithChips(1)
	require.True(t, ok)
	assert.Equal(t, 1, seat)

	// Start past the end wraps to seat 0.
	seat, ok = r.NextSeatWithChips(3)
	require.True(t, ok)
	assert.Equal(t, 0, seat)
}

func TestNextSeatWithChipsIgnoresHandFlags(t *testing.T) {
	r := seatedRoom(100, 0, 100)
	r.Players[2].HasFolded = true

	seat, ok := r.NextSeatWithChips(1)
	require.True(t, ok)
	assert.Equal(t, 2, seat, "fold flags are per-hand and do not block seating")
}

func TestNextSeatWithChipsSkipsBrokeAndGone(t *testing.T) {
	r := seatedRoom(0, 100, 100)
	r.Players[1].IsDisconnected = true

	seat, ok := r.NextSeatWithChips(0)
	require.True(t, ok)
	assert.Equal(t, 2, seat)

	r.Players[2].Chips = 0
	_, ok = r.NextSeatWithChips(0)
	assert.False(t, ok)
}

func TestDropDisconnected(t *testing.T) {
	r := seatedRoom(100, 100, 100)
	r.DealerIdx = 2
	r.Players[1].IsDisconnected = true

	r.DropDisconnected()
	require.Len(t, r.Players, 2)
	assert.Equal(t, "p0", r.Players[0].ID)
	assert.Equal(t, "p2", r.Players[1].ID)
	assert.Equal(t, 0, r.DealerIdx, "dealer index stays within the seat list")
}

func TestSpectatorDerivedFromChips(t *testing.T) {
	p := &Player{Chips: 0}
	assert.True(t, p.IsSpectator())
	p.IsAllIn = true
	assert.False(t, p.IsSpectator(), "an all-in player is broke but still in the hand")
}

func TestResetForHand(t *testing.T) {
	p := &Player{
		Chips:            50,
		CurrentStreetBet: 10,
		HasFolded:        true,
		IsAllIn:          true,
		LastAction:       "raise",
	}
	p.ResetForHand()
	assert.Equal(t, int64(50), p.Chips, "chips carry across hands")
	assert.Zero(t, p.CurrentStreetBet)
	assert.False(t, p.HasFolded)
	assert.False(t, p.IsAllIn)
	assert.Empty(t, p.LastAction)
}

func TestRegistryCreateAndAuthorize(t *testing.T) {
	reg := NewRegistry()
	r := reg.Create(CreateOptions{Password: "hunter2"})
	assert.Contains(t, r.ID, "IN-")
	assert.Equal(t, 5, r.MaxSeats)

	_, err := reg.Authorize(r.ID, "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	got, err := reg.Authorize(r.ID, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	_, err = reg.Get("IN-nope")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRegistryListHidesPasswordRooms(t *testing.T) {
	reg := NewRegistry()
	open := reg.Create(CreateOptions{})
	reg.Create(CreateOptions{Password: "secret"})

	list := reg.List()
	require.Len(t, list, 1)
	assert.Equal(t, open.ID, list[0].ID)
}

func TestRegistryExpired(t *testing.T) {
	reg := NewRegistry()
	stale := reg.Create(CreateOptions{})
	fresh := reg.Create(CreateOptions{})
	stale.LastActive = time.Now().Add(-time.Hour)

	ids := reg.Expired(30 * time.Minute)
	require.Len(t, ids, 1)
	assert.Equal(t, stale.ID, ids[0])
	assert.NotEqual(t, fresh.ID, ids[0])
}
