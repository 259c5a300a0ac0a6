package room

import (
	"time"

	"pokerhive.com/server/poker"
)

// Player is a long-lived seat occupant. The per-hand fields (hole cards,
// street bet, fold/all-in flags) are mutated only by the game engine inside
// the room's event loop.
type Player struct {
	// ID is the ephemeral connection handle; it changes on reconnect.
	ID string `json:"id"`
	// PersistentID is the stable identity across reconnects.
	PersistentID string `json:"persistentId"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	Chips        int64  `json:"chips"`

	HoleCards        []poker.Card `json:"-"`
	CurrentStreetBet int64        `json:"currentStreetBet"`
	HasFolded        bool         `json:"hasFolded"`
	IsAllIn          bool         `json:"isAllIn"`
	IsDisconnected   bool         `json:"isDisconnected"`
	LastAction       string       `json:"lastAction"`
}

// IsSpectator is derived: a player with no chips sits out until the next
// bankroll reset.
func (p *Player) IsSpectator() bool {
	return p.Chips <= 0 && !p.IsAllIn
}

// CanAct reports whether the player may take a voluntary action this street.
func (p *Player) CanAct() bool {
	return !p.HasFolded && !p.IsAllIn && !p.IsDisconnected && p.Chips > 0
}

// InHand reports whether the player still contends for the pot.
func (p *Player) InHand() bool {
	return !p.HasFolded && (p.IsAllIn || p.Chips > 0)
}

// ResetForHand clears the per-hand state before cards are dealt.
func (p *Player) ResetForHand() {
	p.HoleCards = nil
	p.CurrentStreetBet = 0
	p.HasFolded = false
	p.IsAllIn = false
	p.LastAction = ""
}

// Room owns the ordered seat list; seat order is turn order.
type Room struct {
	ID         string    `json:"id"`
	Region     string    `json:"region"`
	Password   string    `json:"-"`
	MaxSeats   int       `json:"maxSeats"`
	Players    []*Player `json:"players"`
	DealerIdx  int       `json:"dealerIndex"`
	LastActive time.Time `json:"lastActive"`
}

// FindByPersistentID looks a player up by stable identity, for reconnects.
func (r *Room) FindByPersistentID(pid string) *Player {
	for _, p := range r.Players {
		if p.PersistentID == pid {
			return p
		}
	}
	return nil
}

// NextSeatWithChips scans seats starting at start (inclusive), wrapping
// around the table, for a funded, connected player. It ignores per-hand
// flags (cleared at setup anyway); used for rotating the dealer button and
// placing blinds.
func (r *Room) NextSeatWithChips(start int) (seat int, ok bool) {
	total := len(r.Players)
	if total == 0 {
		return 0, false
	}
	start = ((start % total) + total) % total
	for i := 0; i < total; i++ {
		idx := (start + i) % total
		p := r.Players[idx]
		if !p.IsDisconnected && p.Chips > 0 {
			return idx, true
		}
	}
	return 0, false
}

// DropDisconnected removes disconnected players from the seat list between
// hands. Their chips leave the table with them.
func (r *Room) DropDisconnected() {
	kept := r.Players[:0]
	for _, p := range r.Players {
		if !p.IsDisconnected {
			kept = append(kept, p)
		}
	}
	r.Players = kept
	if len(r.Players) > 0 {
		r.DealerIdx = r.DealerIdx % len(r.Players)
	} else {
		r.DealerIdx = 0
	}
}

// ActiveCount counts seats that will be dealt into the next hand.
func (r *Room) ActiveCount() int {
	count := 0
	for _, p := range r.Players {
		if !p.IsDisconnected && p.Chips > 0 {
			count++
		}
	}
	return count
}

// Touch refreshes the activity timestamp used by the expiry watcher.
func (r *Room) Touch() {
	r.LastActive = time.Now()
}
