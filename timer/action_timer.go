package timer

import (
	"runtime/debug"
	"time"

	"github.com/pkg/errors"

	"pokerhive.com/server/util"
)

var actionTimerLogger = util.GetZeroLogger("timer::action_timer", nil)

// Msg identifies the turn a timer was armed for. The engine compares the
// hand and action numbers when the timer fires so a stale timer from a
// superseded turn can never fold the wrong player.
type Msg struct {
	Seat      int
	PlayerID  string
	HandNum   uint32
	ActionNum uint32
	ExpireAt  time.Time
}

// ActionTimer is the per-room turn clock. Only one timer is outstanding per
// room: arming a new one cancels the previous. The expiry callback runs on
// the timer goroutine and must hand off to the room's event loop.
type ActionTimer struct {
	roomID string

	chReset   chan Msg
	chPause   chan bool
	chEndLoop chan bool

	callback   func(Msg)
	currentMsg Msg

	lastResetAt time.Time
}

func NewActionTimer(roomID string, callback func(Msg)) *ActionTimer {
	return &ActionTimer{
		roomID:    roomID,
		chReset:   make(chan Msg),
		chPause:   make(chan bool),
		chEndLoop: make(chan bool, 1),
		callback:  callback,
	}
}

func (a *ActionTimer) Run() {
	go a.loop()
}

func (a *ActionTimer) Destroy() {
	a.chEndLoop <- true
}

func (a *ActionTimer) loop() {
	defer func() {
		if err := recover(); err != nil {
			actionTimerLogger.Error().
				Str("room", a.roomID).
				Msgf("Action timer loop returning due to panic: %s\nStack Trace:\n%s", err, string(debug.Stack()))
		}
	}()

	expiry := time.NewTimer(time.Hour)
	if !expiry.Stop() {
		<-expiry.C
	}
	armed := false
	drain := func() {
		if armed && !expiry.Stop() {
			select {
			case <-expiry.C:
			default:
			}
		}
		armed = false
	}

	for {
		select {
		case <-a.chEndLoop:
			drain()
			return
		case <-a.chPause:
			drain()
		case msg := <-a.chReset:
			drain()
			a.currentMsg = msg
			remaining := time.Until(msg.ExpireAt)
			if remaining < 0 {
				remaining = 0
			}
			expiry.Reset(remaining)
			armed = true
		case <-expiry.C:
			armed = false
			a.callback(a.currentMsg)
		}
	}
}

// Pause cancels the outstanding timer, typically because the acting player
// responded in time.
func (a *ActionTimer) Pause() {
	a.chPause <- true
}

// Reset arms the timer for a new turn, canceling any previous one.
func (a *ActionTimer) Reset(msg Msg) error {
	if msg.PlayerID == "" {
		return errors.New("invalid playerID")
	}
	if msg.ExpireAt.IsZero() {
		return errors.New("invalid expireAt")
	}
	a.lastResetAt = time.Now()
	a.chReset <- msg
	return nil
}

// GetElapsedTime reports how long the current turn has been running.
func (a *ActionTimer) GetElapsedTime() time.Duration {
	return time.Since(a.lastResetAt)
}
