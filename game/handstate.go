package game

import (
	"strings"

	"pokerhive.com/server/poker"
	"pokerhive.com/server/room"
	"pokerhive.com/server/util"
)

var handLogger = util.GetZeroLogger("game::hand", nil)

// HandState is created at hand start and destroyed when the next hand
// begins; only player chips and the dealer button carry forward. It is
// mutated exclusively inside the room's event loop.
type HandState struct {
	HandNum        uint32
	Deck           *poker.Deck
	CommunityCards []poker.Card
	CurrentStreet  Street

	// CurrentBet is the street total every active player must match.
	CurrentBet int64
	// MinRaise is the minimum increment a full raise must add on top of
	// CurrentBet. It resets to the big blind at every street.
	MinRaise int64

	ActingIndex int
	// LastAggressorIndex anchors the betting circuit: the big blind pre-flop
	// (modeling the blind "option"), the first active seat after the button
	// post-flop, then whichever seat last made a full raise.
	LastAggressorIndex int
	// IncompleteRaise is set while the bet to match came from an all-in
	// raise smaller than the minimum increment; re-raising is barred until
	// the street ends.
	IncompleteRaise bool

	Pots      []*Pot
	HandEnded bool

	DealerIndex     int
	SmallBlindIndex int
	BigBlindIndex   int

	// ActionNum increments every time the turn moves; the turn clock carries
	// it so a stale fire can be recognized.
	ActionNum uint32

	// acted tracks, per seat, whether the player has voluntarily acted since
	// the last full raise. Blind posts do not count, which is exactly the
	// big blind's pre-flop option.
	acted []bool

	seats  []*room.Player
	config Config
}

func newHandState(r *room.Room, config Config, handNum uint32, deck *poker.Deck) *HandState {
	return &HandState{
		HandNum:            handNum,
		Deck:               deck,
		CurrentStreet:      StreetPreflop,
		CurrentBet:         0,
		MinRaise:           config.BigBlind,
		LastAggressorIndex: -1,
		Pots:               make([]*Pot, 0, 4),
		acted:              make([]bool, len(r.Players)),
		seats:              r.Players,
		config:             config,
	}
}

// postBlind pays the forced bet, going all-in when the stack is short.
func (h *HandState) postBlind(seat int, amount int64, label string) {
	p := h.seats[seat]
	pay := amount
	if pay > p.Chips {
		pay = p.Chips
	}
	p.Chips -= pay
	p.CurrentStreetBet += pay
	p.LastAction = label
	if p.Chips <= 0 {
		p.IsAllIn = true
	}
	if p.CurrentStreetBet > h.CurrentBet {
		h.CurrentBet = p.CurrentStreetBet
	}
}

// dealHoleCards pops two cards per player in hand, in one batch.
func (h *HandState) dealHoleCards() error {
	for _, p := range h.seats {
		if p.IsDisconnected || (p.Chips <= 0 && !p.IsAllIn) {
			// Spectators receive no cards.
			continue
		}
		cards, err := h.Deck.Draw(2)
		if err != nil {
			return invariantErrorf("dealing hole cards: %v", err)
		}
		p.HoleCards = cards
	}
	return nil
}

// dealCommunity burns one card and deals the street's board cards.
func (h *HandState) dealCommunity(street Street) error {
	if err := h.Deck.Burn(); err != nil {
		return invariantErrorf("burning before %s: %v", street, err)
	}
	n := 1
	if street == StreetFlop {
		n = 3
	}
	cards, err := h.Deck.Draw(n)
	if err != nil {
		return invariantErrorf("dealing %s: %v", street, err)
	}
	h.CommunityCards = append(h.CommunityCards, cards...)
	pretty := make([]string, len(h.CommunityCards))
	for i, c := range h.CommunityCards {
		pretty[i] = c.PrettyString()
	}
	handLogger.Debug().
		Uint32("hand", h.HandNum).
		Str("board", strings.Join(pretty, " ")).
		Msgf("Dealt %s", street)
	return nil
}

// appliedAction reports what a validated action did, for broadcasting.
type appliedAction struct {
	Seat   int
	Kind   ActionKind
	Amount int64 // chips paid by this action
}

// applyAction validates and applies one action for the seat whose turn it
// is. On any validation failure the state is untouched.
func (h *HandState) applyAction(seat int, kind ActionKind, raiseTotal int64) (*appliedAction, error) {
	if h.HandEnded {
		return nil, stateErrorf("hand has already ended")
	}
	if seat != h.ActingIndex {
		return nil, validationErrorf("not your turn")
	}
	p := h.seats[seat]
	if p.HasFolded || p.IsAllIn || p.IsSpectator() || p.IsDisconnected {
		return nil, validationErrorf("player cannot act")
	}

	applied := &appliedAction{Seat: seat, Kind: kind}
	switch kind {
	case ActionFold:
		p.HasFolded = true

	case ActionCheck:
		if p.CurrentStreetBet != h.CurrentBet {
			return nil, validationErrorf("must call, raise, or fold")
		}

	case ActionCall:
		pay := h.CurrentBet - p.CurrentStreetBet
		if pay > p.Chips {
			pay = p.Chips
		}
		p.Chips -= pay
		p.CurrentStreetBet += pay
		applied.Amount = pay
		if p.Chips <= 0 {
			p.IsAllIn = true
		}

	case ActionRaise:
		if err := h.applyRaise(p, raiseTotal, applied); err != nil {
			return nil, err
		}

	default:
		return nil, validationErrorf("unknown action")
	}

	p.LastAction = kind.String()
	h.acted[seat] = true
	return applied, nil
}

// applyRaise implements the raise rules. raiseTotal is the player's new
// total street commitment, not the increment.
func (h *HandState) applyRaise(p *room.Player, raiseTotal int64, applied *appliedAction) error {
	if h.IncompleteRaise {
		return validationErrorf("cannot re-raise an incomplete all-in raise")
	}
	increment := raiseTotal - p.CurrentStreetBet
	if increment <= 0 {
		return validationErrorf("raise must add chips")
	}
	if increment > p.Chips {
		return validationErrorf("not enough chips")
	}
	allIn := increment == p.Chips
	if !allIn && raiseTotal < h.CurrentBet+h.MinRaise {
		return validationErrorf("raise must be at least %d", h.CurrentBet+h.MinRaise)
	}

	priorBet := h.CurrentBet
	p.Chips -= increment
	p.CurrentStreetBet = raiseTotal
	applied.Amount = increment
	if p.Chips <= 0 {
		p.IsAllIn = true
	}

	if raiseTotal > priorBet {
		h.CurrentBet = raiseTotal
		if raiseTotal-priorBet >= h.MinRaise {
			// Full raise: re-opens the action for everyone else.
			h.MinRaise = raiseTotal - priorBet
			h.LastAggressorIndex = h.seatIndex(p)
			for i := range h.acted {
				if i != h.seatIndex(p) {
					h.acted[i] = false
				}
			}
		} else {
			// All-in for less than a full raise: callers may not re-raise
			// and the action is not re-opened.
			h.IncompleteRaise = true
		}
	}
	return nil
}

func (h *HandState) seatIndex(p *room.Player) int {
	for i, s := range h.seats {
		if s == p {
			return i
		}
	}
	return -1
}

// bettingRoundComplete holds when no voluntary action remains: every player
// who can still act has matched the current bet and has acted since the last
// full raise. The big blind's pre-flop option falls out of the acted flags,
// since posting a blind is not an action.
func (h *HandState) bettingRoundComplete() bool {
	for i, p := range h.seats {
		if !p.CanAct() {
			continue
		}
		if p.CurrentStreetBet != h.CurrentBet {
			return false
		}
		if !h.acted[i] {
			return false
		}
	}
	return true
}

// playersInHand counts players still contending for the pot.
func (h *HandState) playersInHand() int {
	count := 0
	for _, p := range h.seats {
		if p.InHand() {
			count++
		}
	}
	return count
}

// lastPlayerInHand returns the sole remaining contender, if any.
func (h *HandState) lastPlayerInHand() (*room.Player, int) {
	var last *room.Player
	idx := -1
	for i, p := range h.seats {
		if p.InHand() {
			if last != nil {
				return nil, -1
			}
			last = p
			idx = i
		}
	}
	return last, idx
}

// nextActiveSeat scans the hand's seats starting at start (inclusive),
// wrapping around the table, for the next player who can act. Seats are
// fixed at hand start, so a mid-hand joiner can never be handed a turn.
func (h *HandState) nextActiveSeat(start int) (seat int, ok bool) {
	total := len(h.seats)
	if total == 0 {
		return 0, false
	}
	start = ((start % total) + total) % total
	for i := 0; i < total; i++ {
		idx := (start + i) % total
		p := h.seats[idx]
		if p.CanAct() && len(p.HoleCards) > 0 {
			return idx, true
		}
	}
	return 0, false
}

// startStreet resets the betting state for a new board stage and re-anchors
// the action to the first active seat after the button.
func (h *HandState) startStreet(street Street) (hasAction bool) {
	h.CurrentStreet = street
	h.CurrentBet = 0
	h.MinRaise = h.config.BigBlind
	h.IncompleteRaise = false
	for i := range h.acted {
		h.acted[i] = false
	}

	seat, ok := h.nextActiveSeat(h.DealerIndex + 1)
	if !ok {
		// Everyone is all-in or folded; the street runs out with no betting.
		return false
	}
	h.ActingIndex = seat
	h.LastAggressorIndex = seat
	return true
}

// advanceTurn moves the action to the next eligible seat.
func (h *HandState) advanceTurn() bool {
	seat, ok := h.nextActiveSeat(h.ActingIndex + 1)
	if !ok {
		return false
	}
	h.ActingIndex = seat
	h.ActionNum++
	return true
}

// callAmount is what the acting player owes to stay in.
func (h *HandState) callAmount() int64 {
	p := h.seats[h.ActingIndex]
	owed := h.CurrentBet - p.CurrentStreetBet
	if owed > p.Chips {
		owed = p.Chips
	}
	if owed < 0 {
		owed = 0
	}
	return owed
}

// minRaiseTo is the smallest legal full-raise total for the acting player.
func (h *HandState) minRaiseTo() int64 {
	return h.CurrentBet + h.MinRaise
}
