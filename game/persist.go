package game

import (
	"pokerhive.com/server/poker"
	"pokerhive.com/server/room"
)

// HandSnapshot is the serialized form of a running hand, written after every
// state change so a crashed server can report where a hand stood.
type HandSnapshot struct {
	RoomID         string         `json:"roomId"`
	HandNum        uint32         `json:"handNum"`
	Street         string         `json:"street"`
	CommunityCards []string       `json:"communityCards"`
	CurrentBet     int64          `json:"currentBet"`
	MinRaise       int64          `json:"minRaise"`
	ActingSeat     int            `json:"actingSeat"`
	DealerSeat     int            `json:"dealerSeat"`
	Pots           []*Pot         `json:"pots"`
	Seats          []SeatSnapshot `json:"seats"`
}

type SeatSnapshot struct {
	PlayerID  string `json:"playerId"`
	Name      string `json:"name"`
	Chips     int64  `json:"chips"`
	StreetBet int64  `json:"streetBet"`
	HasFolded bool   `json:"hasFolded"`
	IsAllIn   bool   `json:"isAllIn"`
}

func snapshotOf(r *room.Room, h *HandState) *HandSnapshot {
	snap := &HandSnapshot{
		RoomID:         r.ID,
		HandNum:        h.HandNum,
		Street:         h.CurrentStreet.String(),
		CommunityCards: poker.CardStrings(h.CommunityCards),
		CurrentBet:     h.CurrentBet,
		MinRaise:       h.MinRaise,
		ActingSeat:     h.ActingIndex,
		DealerSeat:     h.DealerIndex,
		Pots:           h.Pots,
	}
	for _, p := range h.seats {
		snap.Seats = append(snap.Seats, SeatSnapshot{
			PlayerID:  p.PersistentID,
			Name:      p.Name,
			Chips:     p.Chips,
			StreetBet: p.CurrentStreetBet,
			HasFolded: p.HasFolded,
			IsAllIn:   p.IsAllIn,
		})
	}
	return snap
}

// PersistHandState stores hand snapshots keyed by room.
type PersistHandState interface {
	Save(roomID string, snap *HandSnapshot) error
	Load(roomID string) (*HandSnapshot, error)
	Remove(roomID string) error
}
