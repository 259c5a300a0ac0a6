package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokerhive.com/server/poker"
	"pokerhive.com/server/room"
	"pokerhive.com/server/timer"
)

type captureReceiver struct {
	mu         sync.Mutex
	broadcasts []*Message
	direct     map[string][]*Message
}

func newCaptureReceiver() *captureReceiver {
	return &captureReceiver{direct: make(map[string][]*Message)}
}

func (c *captureReceiver) BroadcastToRoom(roomID string, msg *Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.broadcasts = append(c.broadcasts, msg)
}

func (c *captureReceiver) SendToPlayer(roomID string, playerID string, msg *Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.direct[playerID] = append(c.direct[playerID], msg)
}

func (c *captureReceiver) lastOfType(msgType string) *Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.broadcasts) - 1; i >= 0; i-- {
		if c.broadcasts[i].Type == msgType {
			return c.broadcasts[i]
		}
	}
	return nil
}

// scriptDeck builds a deck that deals the given cards in order: hole cards
// two per seat, then burn, flop, burn, turn, burn, river.
func scriptDeck(deal ...string) func() *poker.Deck {
	return func() *poker.Deck {
		cards := make([]poker.Card, len(deal))
		for i, s := range deal {
			cards[len(deal)-1-i] = poker.MustCard(s)
		}
		return poker.NewDeckFromCards(cards...)
	}
}

func newTestGame(t *testing.T, deck func() *poker.Deck, chips ...int64) (*Game, *captureReceiver, *room.Room) {
	t.Helper()
	r := testRoom(chips...)
	cfg := DefaultConfig()
	cfg.AutoDeal = false
	cfg.TurnTimeoutSec = 60
	rec := newCaptureReceiver()
	g := NewGame(r, cfg, Delays{}, rec, NewMemoryHandStateTracker())
	g.deckFn = deck
	g.Run()
	t.Cleanup(g.End)
	return g, rec, r
}

func TestWinByFold(t *testing.T) {
	g, rec, r := newTestGame(t, nil, 1000, 1000)
	require.NoError(t, g.StartHand())

	// Heads-up the button posts the small blind and acts first.
	require.NoError(t, g.SubmitAction("p0", ActionFold, 0))

	assert.Equal(t, int64(999), r.Players[0].Chips)
	assert.Equal(t, int64(1001), r.Players[1].Chips)

	msg := rec.lastOfType(MsgShowdown)
	require.NotNil(t, msg)
	assert.True(t, msg.Showdown.WinByFold)
	assert.Empty(t, msg.Showdown.Revealed, "a fold win must not reveal cards")
	require.Len(t, msg.Showdown.Results, 1)
	assert.Equal(t, int64(3), msg.Showdown.Results[0].Amount)
	assert.Equal(t, "p1", msg.Showdown.Results[0].Winners[0].PlayerID)
}

func TestCheckdownAwardsBestHand(t *testing.T) {
	deck := scriptDeck(
		"As", "Ah", // p0
		"7c", "2d", // p1
		"3c", "Ks", "Qs", "Js", // burn + flop
		"3d", "9h", // burn + turn
		"3h", "4c", // burn + river
	)
	g, rec, r := newTestGame(t, deck, 1000, 1000)
	require.NoError(t, g.StartHand())

	require.NoError(t, g.SubmitAction("p0", ActionCall, 0))
	require.NoError(t, g.SubmitAction("p1", ActionCheck, 0))

	flop := rec.lastOfType(MsgStreetAdvanced)
	require.NotNil(t, flop)
	assert.Equal(t, "flop", flop.StreetAdvanced.Street)
	assert.Equal(t, int64(4), flop.StreetAdvanced.PotTotal)
	assert.Equal(t, 1, flop.StreetAdvanced.NextSeat, "post-flop action starts left of the button")

	for street := 0; street < 3; street++ {
		require.NoError(t, g.SubmitAction("p1", ActionCheck, 0))
		require.NoError(t, g.SubmitAction("p0", ActionCheck, 0))
	}

	assert.Equal(t, int64(1002), r.Players[0].Chips)
	assert.Equal(t, int64(998), r.Players[1].Chips)

	msg := rec.lastOfType(MsgShowdown)
	require.NotNil(t, msg)
	assert.False(t, msg.Showdown.WinByFold)
	assert.Len(t, msg.Showdown.Revealed, 2)
	require.Len(t, msg.Showdown.Results, 1)
	winners := msg.Showdown.Results[0].Winners
	require.Len(t, winners, 1)
	assert.Equal(t, "p0", winners[0].PlayerID)
	assert.Equal(t, "Pair of Aces", winners[0].HandDesc)
}

func TestSplitPotOddChipGoesLeftOfButton(t *testing.T) {
	// The board plays for everyone; the pot is odd because of a dead small
	// blind.
	deck := scriptDeck(
		"2c", "2d", // p0
		"3c", "3d", // p1
		"4c", "4d", // p2
		"5c", "As", "Ks", "Qs", // burn + flop
		"5d", "Js", // burn + turn
		"5h", "Ts", // burn + river
	)
	g, rec, r := newTestGame(t, deck, 1000, 1000, 1000)
	require.NoError(t, g.StartHand())

	require.NoError(t, g.SubmitAction("p0", ActionCall, 0))
	require.NoError(t, g.SubmitAction("p1", ActionFold, 0))
	require.NoError(t, g.SubmitAction("p2", ActionCheck, 0))
	for street := 0; street < 3; street++ {
		require.NoError(t, g.SubmitAction("p2", ActionCheck, 0))
		require.NoError(t, g.SubmitAction("p0", ActionCheck, 0))
	}

	// Pot of 5 splits 2/3; seat 2 sits closer to the button's left.
	assert.Equal(t, int64(1000), r.Players[0].Chips)
	assert.Equal(t, int64(999), r.Players[1].Chips)
	assert.Equal(t, int64(1001), r.Players[2].Chips)

	msg := rec.lastOfType(MsgShowdown)
	require.NotNil(t, msg)
	require.Len(t, msg.Showdown.Results, 1)
	winners := msg.Showdown.Results[0].Winners
	require.Len(t, winners, 2)
	assert.Equal(t, "p2", winners[0].PlayerID)
	assert.Equal(t, int64(3), winners[0].Amount)
	assert.Equal(t, "p0", winners[1].PlayerID)
	assert.Equal(t, int64(2), winners[1].Amount)
}

func TestSidePotsAwardedByTier(t *testing.T) {
	deck := scriptDeck(
		"As", "Ad", // p0, short stack
		"Ks", "Kd", // p1
		"Qs", "7c", // p2
		"2c", "2h", "5d", "9c", // burn + flop
		"2d", "Jh", // burn + turn
		"2s", "3s", // burn + river
	)
	g, rec, r := newTestGame(t, deck, 50, 100, 200)
	require.NoError(t, g.StartHand())

	require.NoError(t, g.SubmitAction("p0", ActionRaise, 50))
	require.NoError(t, g.SubmitAction("p1", ActionRaise, 100))
	require.NoError(t, g.SubmitAction("p2", ActionRaise, 200))

	// Main pot to the best hand, first side pot to the second stack, the
	// uncalled remainder back to the big stack.
	assert.Equal(t, int64(150), r.Players[0].Chips)
	assert.Equal(t, int64(100), r.Players[1].Chips)
	assert.Equal(t, int64(100), r.Players[2].Chips)

	msg := rec.lastOfType(MsgShowdown)
	require.NotNil(t, msg)
	require.Len(t, msg.Showdown.Results, 3)
	assert.Equal(t, "p0", msg.Showdown.Results[0].Winners[0].PlayerID)
	assert.Equal(t, int64(150), msg.Showdown.Results[0].Amount)
	assert.Equal(t, "p1", msg.Showdown.Results[1].Winners[0].PlayerID)
	assert.Equal(t, int64(100), msg.Showdown.Results[1].Amount)
	assert.Equal(t, "p2", msg.Showdown.Results[2].Winners[0].PlayerID)
	assert.Equal(t, int64(100), msg.Showdown.Results[2].Amount)
}

func TestGameOverResetsStacks(t *testing.T) {
	deck := scriptDeck(
		"As", "Ah", // p0
		"7c", "2d", // p1, all-in from the big blind
		"3c", "Ks", "Qs", "Js", // burn + flop
		"3d", "9h", // burn + turn
		"3h", "4c", // burn + river
	)
	g, rec, r := newTestGame(t, deck, 1000, 2)
	require.NoError(t, g.StartHand())

	// Calling the blind ends the betting; the board runs out.
	require.NoError(t, g.SubmitAction("p0", ActionCall, 0))

	msg := rec.lastOfType(MsgGameOver)
	require.NotNil(t, msg)
	assert.Equal(t, "p0", msg.GameOver.WinnerID)
	assert.Equal(t, int64(1002), msg.GameOver.Chips)
	assert.Equal(t, int64(1000), msg.GameOver.ResetTo)

	assert.Equal(t, int64(1000), r.Players[0].Chips)
	assert.Equal(t, int64(1000), r.Players[1].Chips)
}

func TestTimeoutFoldsActingPlayer(t *testing.T) {
	r := testRoom(1000, 1000)
	cfg := DefaultConfig()
	cfg.AutoDeal = false
	cfg.TurnTimeoutSec = 1
	rec := newCaptureReceiver()
	g := NewGame(r, cfg, Delays{}, rec, NewMemoryHandStateTracker())
	g.Run()
	t.Cleanup(g.End)

	require.NoError(t, g.StartHand())
	require.Eventually(t, func() bool {
		return rec.lastOfType(MsgShowdown) != nil
	}, 3*time.Second, 50*time.Millisecond)

	// Synchronize with the event loop before reading room state.
	err := g.SubmitAction("p0", ActionFold, 0)
	require.Error(t, err)

	msg := rec.lastOfType(MsgPlayerActed)
	require.NotNil(t, msg)
	assert.True(t, msg.PlayerActed.TimedOut)
	assert.Equal(t, "fold", msg.PlayerActed.Action)
	assert.Equal(t, int64(999), r.Players[0].Chips)
	assert.Equal(t, int64(1001), r.Players[1].Chips)
}

func TestStaleTimerFireIsDiscarded(t *testing.T) {
	g, rec, r := newTestGame(t, nil, 1000, 1000)
	require.NoError(t, g.StartHand())

	// A fire from a superseded turn must not fold anyone.
	g.onTimerExpired(timer.Msg{Seat: 0, PlayerID: "p0", HandNum: 99, ActionNum: 0})

	// Synchronize with the event loop before reading room state.
	err := g.SubmitAction("ghost", ActionCall, 0)
	require.Error(t, err)

	assert.Nil(t, rec.lastOfType(MsgPlayerActed))
	assert.False(t, r.Players[0].HasFolded)
}

func TestStartHandWhileRunningRejected(t *testing.T) {
	g, _, _ := newTestGame(t, nil, 1000, 1000)
	require.NoError(t, g.StartHand())
	err := g.StartHand()
	require.Error(t, err)
	assert.False(t, isValidationError(err))
}

func TestStartHandNeedsTwoFundedPlayers(t *testing.T) {
	g, _, _ := newTestGame(t, nil, 1000)
	assert.Error(t, g.StartHand())

	g2, _, _ := newTestGame(t, nil, 1000, 0)
	assert.Error(t, g2.StartHand())
}

func TestHostOnlyStart(t *testing.T) {
	g, _, _ := newTestGame(t, nil, 1000, 1000)
	err := g.StartHandBy("p1")
	require.Error(t, err)
	require.NoError(t, g.StartHandBy("p0"))
}

func TestActionFromUnknownPlayerRejected(t *testing.T) {
	g, _, r := newTestGame(t, nil, 1000, 1000)
	require.NoError(t, g.StartHand())
	err := g.SubmitAction("ghost", ActionCall, 0)
	require.Error(t, err)
	assert.Equal(t, int64(999), r.Players[0].Chips)
}

func TestRejectedActionChangesNothing(t *testing.T) {
	g, _, r := newTestGame(t, nil, 1000, 1000)
	require.NoError(t, g.StartHand())

	// p1 acts out of turn.
	err := g.SubmitAction("p1", ActionCall, 0)
	require.Error(t, err)
	assert.True(t, isValidationError(err))
	assert.Equal(t, int64(999), r.Players[0].Chips)
	assert.Equal(t, int64(998), r.Players[1].Chips)

	// The turn is still p0's.
	require.NoError(t, g.SubmitAction("p0", ActionCall, 0))
}

func TestDropPlayerFoldsOutOfTurn(t *testing.T) {
	g, rec, r := newTestGame(t, nil, 1000, 1000)
	require.NoError(t, g.StartHand())

	// p1 is not the acting player; dropping them folds the hand anyway.
	require.NoError(t, g.DropPlayer("p1"))

	msg := rec.lastOfType(MsgShowdown)
	require.NotNil(t, msg)
	assert.True(t, msg.Showdown.WinByFold)
	assert.Equal(t, "p0", msg.Showdown.Results[0].Winners[0].PlayerID)
	assert.Equal(t, int64(1002), r.Players[0].Chips)

	// The empty seat keeps the next hand from dealing.
	assert.Error(t, g.StartHand())
}

func TestDropActingPlayerFoldsHand(t *testing.T) {
	g, rec, r := newTestGame(t, nil, 1000, 1000)
	require.NoError(t, g.StartHand())

	// Heads-up p0 is acting; the drop must fold them, not stall the hand.
	require.NoError(t, g.DropPlayer("p0"))

	assert.True(t, r.Players[0].HasFolded)
	assert.True(t, r.Players[0].IsDisconnected)

	acted := rec.lastOfType(MsgPlayerActed)
	require.NotNil(t, acted)
	assert.Equal(t, "fold", acted.PlayerActed.Action)
	assert.True(t, acted.PlayerActed.TimedOut)

	msg := rec.lastOfType(MsgShowdown)
	require.NotNil(t, msg)
	assert.True(t, msg.Showdown.WinByFold)
	assert.Equal(t, "p1", msg.Showdown.Results[0].Winners[0].PlayerID)
	assert.Equal(t, int64(1001), r.Players[1].Chips)
}

func TestDropActingPlayerAdvancesTurn(t *testing.T) {
	g, rec, r := newTestGame(t, nil, 1000, 1000, 1000)
	require.NoError(t, g.StartHand())

	// Three-handed the button acts first pre-flop; dropping the button moves
	// the turn to the small blind.
	require.NoError(t, g.DropPlayer("p0"))
	assert.True(t, r.Players[0].HasFolded)

	next := rec.lastOfType(MsgNextAction)
	require.NotNil(t, next)
	assert.Equal(t, "p1", next.NextAction.PlayerID)

	// The hand plays on without the dropped seat.
	require.NoError(t, g.SubmitAction("p1", ActionCall, 0))
	require.NoError(t, g.SubmitAction("p2", ActionCheck, 0))

	flop := rec.lastOfType(MsgStreetAdvanced)
	require.NotNil(t, flop)
	assert.Equal(t, "flop", flop.StreetAdvanced.Street)
}

func TestAddPlayerRespectsMaxSeats(t *testing.T) {
	g, _, r := newTestGame(t, nil, 1000, 1000)
	r.MaxSeats = 2
	err := g.AddPlayer(&room.Player{ID: "p9", PersistentID: "p9", Name: "Nine"})
	assert.ErrorIs(t, err, room.ErrRoomFull)
}

func TestReconnectRedealsHoleCards(t *testing.T) {
	g, rec, _ := newTestGame(t, nil, 1000, 1000)
	require.NoError(t, g.StartHand())
	require.NoError(t, g.Reconnect("p1"))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	var deals, prompts int
	for _, m := range rec.direct["p1"] {
		switch m.Type {
		case MsgDealCards:
			deals++
		case MsgNextAction:
			prompts++
		}
	}
	assert.Equal(t, 2, deals, "initial deal plus the replay on reconnect")
	require.Equal(t, 1, prompts, "the pending turn prompt is replayed")
	for _, m := range rec.direct["p1"] {
		if m.Type == MsgNextAction {
			assert.Equal(t, "p0", m.NextAction.PlayerID)
			assert.LessOrEqual(t, m.NextAction.SecondsToAct, uint32(60))
		}
	}
}
