package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fireRecorder struct {
	mu    sync.Mutex
	fires []Msg
}

func (f *fireRecorder) record(msg Msg) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fires = append(f.fires, msg)
}

func (f *fireRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fires)
}

func (f *fireRecorder) last() Msg {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fires[len(f.fires)-1]
}

func TestTimerFiresWithArmedMsg(t *testing.T) {
	rec := &fireRecorder{}
	a := NewActionTimer("IN-test", rec.record)
	a.Run()
	defer a.Destroy()

	msg := Msg{Seat: 2, PlayerID: "p2", HandNum: 7, ActionNum: 3, ExpireAt: time.Now().Add(50 * time.Millisecond)}
	require.NoError(t, a.Reset(msg))

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 10*time.Millisecond)
	fired := rec.last()
	assert.Equal(t, 2, fired.Seat)
	assert.Equal(t, "p2", fired.PlayerID)
	assert.Equal(t, uint32(7), fired.HandNum)
	assert.Equal(t, uint32(3), fired.ActionNum)
}

func TestResetSupersedesPreviousTimer(t *testing.T) {
	rec := &fireRecorder{}
	a := NewActionTimer("IN-test", rec.record)
	a.Run()
	defer a.Destroy()

	require.NoError(t, a.Reset(Msg{PlayerID: "p1", ActionNum: 1, ExpireAt: time.Now().Add(60 * time.Millisecond)}))
	require.NoError(t, a.Reset(Msg{PlayerID: "p2", ActionNum: 2, ExpireAt: time.Now().Add(120 * time.Millisecond)}))

	require.Eventually(t, func() bool { return rec.count() >= 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 1, rec.count(), "only the most recently armed turn may fire")
	assert.Equal(t, "p2", rec.last().PlayerID)
}

func TestPauseCancelsTimer(t *testing.T) {
	rec := &fireRecorder{}
	a := NewActionTimer("IN-test", rec.record)
	a.Run()
	defer a.Destroy()

	require.NoError(t, a.Reset(Msg{PlayerID: "p1", ExpireAt: time.Now().Add(80 * time.Millisecond)}))
	a.Pause()
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, rec.count())
}

func TestResetValidation(t *testing.T) {
	a := NewActionTimer("IN-test", func(Msg) {})
	a.Run()
	defer a.Destroy()

	assert.Error(t, a.Reset(Msg{ExpireAt: time.Now().Add(time.Second)}))
	assert.Error(t, a.Reset(Msg{PlayerID: "p1"}))
}
