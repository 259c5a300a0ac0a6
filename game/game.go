package game

import (
	"runtime/debug"
	"time"

	"pokerhive.com/server/poker"
	"pokerhive.com/server/room"
	"pokerhive.com/server/timer"
	"pokerhive.com/server/util"
)

var gameLogger = util.GetZeroLogger("game::game", nil)

type eventKind uint8

const (
	evStartHand eventKind = iota
	evAction
	evTimeout
	evScheduledDeal
	evAddPlayer
	evDropPlayer
	evReconnect
	evEndGame
)

// gameEvent is the only way state inside a Game changes. Events carrying a
// reply channel produce a synchronous result for the caller.
type gameEvent struct {
	kind eventKind

	playerID   string
	action     ActionKind
	raiseTotal int64
	timerMsg   timer.Msg
	player     *room.Player

	reply chan error
}

// Game owns one room's table state. A single goroutine consumes chEvents,
// so hand state is never touched concurrently.
type Game struct {
	room     *room.Room
	config   Config
	delays   Delays
	receiver MessageReceiver
	persist  PersistHandState

	hand    *HandState
	handNum uint32

	actionTimer *timer.ActionTimer
	pendingDeal *time.Timer
	deckFn      func() *poker.Deck

	chEvents chan *gameEvent
	chEnd    chan bool
}

func NewGame(r *room.Room, config Config, delays Delays, receiver MessageReceiver, persist PersistHandState) *Game {
	g := &Game{
		room:     r,
		config:   config,
		delays:   delays,
		receiver: receiver,
		persist:  persist,
		chEvents: make(chan *gameEvent, 16),
		chEnd:    make(chan bool),
	}
	g.actionTimer = timer.NewActionTimer(r.ID, g.onTimerExpired)
	return g
}

func (g *Game) Run() {
	g.actionTimer.Run()
	go g.runGame()
}

// End stops the event loop. Pending synchronous callers get a StateError.
func (g *Game) End() {
	close(g.chEnd)
}

func (g *Game) runGame() {
	defer func() {
		if err := recover(); err != nil {
			gameLogger.Error().
				Str("room", g.room.ID).
				Msgf("Game loop returning due to panic: %s\nStack Trace:\n%s", err, string(debug.Stack()))
		}
	}()

	for {
		select {
		case <-g.chEnd:
			g.cleanup()
			return
		case ev := <-g.chEvents:
			g.handleEvent(ev)
		}
	}
}

func (g *Game) cleanup() {
	g.actionTimer.Destroy()
	if g.pendingDeal != nil {
		g.pendingDeal.Stop()
	}
	for {
		select {
		case ev := <-g.chEvents:
			if ev.reply != nil {
				ev.reply <- stateErrorf("game has ended")
			}
		default:
			return
		}
	}
}

// do submits an event and waits for the loop to process it.
func (g *Game) do(ev *gameEvent) error {
	ev.reply = make(chan error, 1)
	select {
	case g.chEvents <- ev:
	case <-g.chEnd:
		return stateErrorf("game has ended")
	}
	select {
	case err := <-ev.reply:
		return err
	case <-g.chEnd:
		return stateErrorf("game has ended")
	}
}

// send submits a fire-and-forget event from timers and callbacks.
func (g *Game) send(ev *gameEvent) {
	select {
	case g.chEvents <- ev:
	case <-g.chEnd:
	}
}

// StartHand deals a new hand. The error is the synchronous result: a
// StateError when a hand is running or fewer than two funded players remain.
func (g *Game) StartHand() error {
	return g.do(&gameEvent{kind: evStartHand})
}

// SubmitAction applies one player action and returns its validation result.
// raiseTotal is the player's new total street commitment and is ignored for
// every kind but raise.
func (g *Game) SubmitAction(playerID string, kind ActionKind, raiseTotal int64) error {
	return g.do(&gameEvent{kind: evAction, playerID: playerID, action: kind, raiseTotal: raiseTotal})
}

// AddPlayer seats a player. Joining mid-hand is allowed; the newcomer is
// dealt in from the next hand.
func (g *Game) AddPlayer(p *room.Player) error {
	return g.do(&gameEvent{kind: evAddPlayer, player: p})
}

// DropPlayer handles a disconnect or leave: the player folds out of the
// current hand and is unseated before the next one.
func (g *Game) DropPlayer(playerID string) error {
	return g.do(&gameEvent{kind: evDropPlayer, playerID: playerID})
}

// Reconnect restores a seat whose socket dropped, as long as the seat has
// not been reclaimed between hands.
func (g *Game) Reconnect(playerID string) error {
	return g.do(&gameEvent{kind: evReconnect, playerID: playerID})
}

// StartHandBy deals a new hand if the requester is the host. The host is
// whoever holds seat zero.
func (g *Game) StartHandBy(playerID string) error {
	return g.do(&gameEvent{kind: evStartHand, playerID: playerID})
}

func (g *Game) onTimerExpired(msg timer.Msg) {
	g.send(&gameEvent{kind: evTimeout, timerMsg: msg})
}

func (g *Game) handleEvent(ev *gameEvent) {
	var err error
	switch ev.kind {
	case evStartHand:
		if ev.playerID != "" && !g.isHost(ev.playerID) {
			err = stateErrorf("only the host can start the game")
			break
		}
		err = g.startHand()
	case evAction:
		err = g.handleAction(ev.playerID, ev.action, ev.raiseTotal, false)
	case evTimeout:
		g.handleTimeout(ev.timerMsg)
	case evScheduledDeal:
		g.handleScheduledDeal()
	case evAddPlayer:
		err = g.addPlayer(ev.player)
	case evDropPlayer:
		err = g.dropPlayer(ev.playerID)
	case evReconnect:
		err = g.reconnectPlayer(ev.playerID)
	case evEndGame:
	}
	if ev.reply != nil {
		ev.reply <- err
	}
}

func (g *Game) startHand() error {
	if g.hand != nil && !g.hand.HandEnded {
		return stateErrorf("a hand is already in progress")
	}

	g.room.DropDisconnected()
	if g.room.ActiveCount() < 2 {
		return stateErrorf("need at least two funded players to deal")
	}

	for _, p := range g.room.Players {
		p.ResetForHand()
	}

	g.handNum++
	deck := poker.NewDeck()
	if g.deckFn != nil {
		// Scripted deck, for driving known boards through the engine.
		deck = g.deckFn()
	}
	h := newHandState(g.room, g.config, g.handNum, deck)

	dealer, ok := g.room.NextSeatWithChips(g.room.DealerIdx + 1)
	if g.handNum == 1 {
		dealer, ok = g.room.NextSeatWithChips(0)
	}
	if !ok {
		return invariantErrorf("no seat available for the button")
	}
	g.room.DealerIdx = dealer
	h.DealerIndex = dealer

	if g.room.ActiveCount() == 2 {
		// Heads-up: the button posts the small blind and acts first pre-flop.
		h.SmallBlindIndex = dealer
		h.BigBlindIndex, _ = g.room.NextSeatWithChips(dealer + 1)
	} else {
		h.SmallBlindIndex, _ = g.room.NextSeatWithChips(dealer + 1)
		h.BigBlindIndex, _ = g.room.NextSeatWithChips(h.SmallBlindIndex + 1)
	}
	h.postBlind(h.SmallBlindIndex, g.config.SmallBlind, "small blind")
	h.postBlind(h.BigBlindIndex, g.config.BigBlind, "big blind")

	if err := h.dealHoleCards(); err != nil {
		g.hand = h
		g.abortHand(err)
		return err
	}
	g.hand = h
	g.room.Touch()

	handLogger.Info().
		Str("room", g.room.ID).
		Uint32("hand", h.HandNum).
		Int("dealer", dealer).
		Msg("Hand started")

	g.broadcast(&Message{
		Type:    MsgHandStarted,
		RoomID:  g.room.ID,
		HandNum: h.HandNum,
		HandStarted: &HandStarted{
			Street:     h.CurrentStreet.String(),
			SmallBlind: g.config.SmallBlind,
			BigBlind:   g.config.BigBlind,
			Seats:      g.seatInfos(),
		},
	})
	for i, p := range g.room.Players {
		if len(p.HoleCards) == 0 {
			continue
		}
		g.receiver.SendToPlayer(g.room.ID, p.PersistentID, &Message{
			Type:    MsgDealCards,
			RoomID:  g.room.ID,
			HandNum: h.HandNum,
			DealCards: &DealCards{
				Seat:  i,
				Cards: poker.CardStrings(p.HoleCards),
			},
		})
	}

	seat, ok := h.nextActiveSeat(h.BigBlindIndex + 1)
	if ok && h.actionPossible() {
		h.ActingIndex = seat
		h.LastAggressorIndex = h.BigBlindIndex
		g.promptNextAction()
	} else {
		// Blinds put everyone all-in; run the board out.
		g.advanceStreets()
	}
	g.saveSnapshot()
	return nil
}

// actionPossible reports whether anyone has a real decision this street. A
// lone active player only acts when facing a bet; otherwise the board runs
// out.
func (h *HandState) actionPossible() bool {
	active := 0
	facing := false
	for _, p := range h.seats {
		if !p.CanAct() {
			continue
		}
		active++
		if p.CurrentStreetBet < h.CurrentBet {
			facing = true
		}
	}
	return active >= 2 || (active == 1 && facing)
}

func (g *Game) handleAction(playerID string, kind ActionKind, raiseTotal int64, timedOut bool) error {
	h := g.hand
	if h == nil || h.HandEnded {
		return stateErrorf("no hand in progress")
	}
	seat := -1
	for i, p := range h.seats {
		if p.PersistentID == playerID {
			seat = i
			break
		}
	}
	if seat == -1 {
		return stateErrorf("player is not seated in this hand")
	}

	applied, err := h.applyAction(seat, kind, raiseTotal)
	if err != nil {
		if isInvariantError(err) {
			g.abortHand(err)
		}
		return err
	}
	g.actionTimer.Pause()
	g.room.Touch()

	p := h.seats[seat]
	g.broadcast(&Message{
		Type:    MsgPlayerActed,
		RoomID:  g.room.ID,
		HandNum: h.HandNum,
		PlayerActed: &PlayerActed{
			Seat:      seat,
			PlayerID:  p.PersistentID,
			Action:    applied.Kind.String(),
			Amount:    applied.Amount,
			StreetBet: p.CurrentStreetBet,
			Chips:     p.Chips,
			IsAllIn:   p.IsAllIn,
			HasFolded: p.HasFolded,
			PotTotal:  h.potTotal(),
			TimedOut:  timedOut,
		},
	})

	g.progress()
	g.saveSnapshot()
	return nil
}

// progress moves the hand forward after a state change: win by fold, street
// advance, or the next player's turn.
func (g *Game) progress() {
	h := g.hand
	if h == nil || h.HandEnded {
		return
	}

	if winner, seat := h.lastPlayerInHand(); winner != nil {
		if err := h.reconcilePots(); err != nil {
			g.abortHand(err)
			return
		}
		g.winByFold(winner, seat)
		return
	}

	if h.bettingRoundComplete() {
		g.advanceStreets()
		return
	}

	if !h.advanceTurn() {
		// Nobody left who can act; the round is over by definition.
		g.advanceStreets()
		return
	}
	g.promptNextAction()
}

// advanceStreets settles the street into pots, then deals the next stage.
// When no betting is possible it keeps going, running the board out to the
// river and the showdown.
func (g *Game) advanceStreets() {
	h := g.hand
	for {
		if err := h.reconcilePots(); err != nil {
			g.abortHand(err)
			return
		}
		if h.CurrentStreet == StreetRiver {
			g.showdown()
			return
		}

		next := h.CurrentStreet + 1
		if err := h.dealCommunity(next); err != nil {
			g.abortHand(err)
			return
		}
		hasAction := h.startStreet(next)
		h.ActionNum++

		sa := &StreetAdvanced{
			Street:         next.String(),
			CommunityCards: poker.CardStrings(h.CommunityCards),
			PotTotal:       h.potTotal(),
			NextSeat:       -1,
		}
		if hasAction && h.actionPossible() {
			sa.NextSeat = h.ActingIndex
			sa.NextPlayerID = h.seats[h.ActingIndex].PersistentID
		}
		g.broadcast(&Message{
			Type:           MsgStreetAdvanced,
			RoomID:         g.room.ID,
			HandNum:        h.HandNum,
			StreetAdvanced: sa,
		})

		if sa.NextSeat >= 0 {
			g.promptNextAction()
			return
		}
	}
}

func (g *Game) promptNextAction() {
	h := g.hand
	p := h.seats[h.ActingIndex]
	g.broadcast(&Message{
		Type:    MsgNextAction,
		RoomID:  g.room.ID,
		HandNum: h.HandNum,
		NextAction: &NextAction{
			Seat:         h.ActingIndex,
			PlayerID:     p.PersistentID,
			SecondsToAct: g.config.TurnTimeoutSec,
			CallAmount:   h.callAmount(),
			MinRaiseTo:   h.minRaiseTo(),
		},
	})
	err := g.actionTimer.Reset(timer.Msg{
		Seat:      h.ActingIndex,
		PlayerID:  p.PersistentID,
		HandNum:   h.HandNum,
		ActionNum: h.ActionNum,
		ExpireAt:  time.Now().Add(g.config.TurnTimeout()),
	})
	if err != nil {
		gameLogger.Error().Str("room", g.room.ID).Err(err).Msg("Could not arm the turn clock")
	}
}

// handleTimeout folds the player whose clock ran out. A fire whose hand or
// action number no longer matches is from a superseded turn and is dropped.
func (g *Game) handleTimeout(msg timer.Msg) {
	h := g.hand
	if h == nil || h.HandEnded {
		return
	}
	if msg.HandNum != h.HandNum || msg.ActionNum != h.ActionNum || msg.Seat != h.ActingIndex {
		gameLogger.Debug().
			Str("room", g.room.ID).
			Uint32("handNum", msg.HandNum).
			Uint32("actionNum", msg.ActionNum).
			Msg("Discarding stale timer fire")
		return
	}
	gameLogger.Info().
		Str("room", g.room.ID).
		Str("player", msg.PlayerID).
		Msg("Turn clock expired, folding")
	if err := g.handleAction(msg.PlayerID, ActionFold, 0, true); err != nil {
		gameLogger.Error().Str("room", g.room.ID).Err(err).Msg("Timeout fold failed")
	}
}

func (g *Game) winByFold(winner *room.Player, seat int) {
	h := g.hand
	var total int64
	for _, pot := range h.Pots {
		total += pot.Amount
	}
	winner.Chips += total

	g.broadcast(&Message{
		Type:    MsgShowdown,
		RoomID:  g.room.ID,
		HandNum: h.HandNum,
		Showdown: &Showdown{
			WinByFold:      true,
			CommunityCards: poker.CardStrings(h.CommunityCards),
			Results: []PotResult{{
				PotIndex: 0,
				Amount:   total,
				Winners: []WinnerInfo{{
					Seat:     seat,
					PlayerID: winner.PersistentID,
					Name:     winner.Name,
					Amount:   total,
				}},
			}},
		},
	})
	g.finishHand()
}

func (g *Game) showdown() {
	h := g.hand

	values := make(map[string]poker.HandValue)
	revealed := make([]RevealedHand, 0, len(h.seats))
	for i, p := range h.seats {
		if p.HasFolded || len(p.HoleCards) == 0 {
			continue
		}
		hv, err := poker.Evaluate(p.HoleCards, h.CommunityCards)
		if err != nil {
			g.abortHand(invariantErrorf("evaluating seat %d: %v", i, err))
			return
		}
		values[p.PersistentID] = hv
		revealed = append(revealed, RevealedHand{
			Seat:     i,
			PlayerID: p.PersistentID,
			Name:     p.Name,
			Cards:    poker.CardStrings(p.HoleCards),
		})
	}

	results := make([]PotResult, 0, len(h.Pots))
	for potIdx, pot := range h.Pots {
		contenders := g.potContenders(pot)
		if len(contenders) == 0 {
			// Every eligible player folded a later street; the pot goes to
			// the field instead.
			for seat, p := range h.seats {
				if !p.HasFolded && len(p.HoleCards) > 0 {
					contenders = append(contenders, seat)
				}
			}
		}
		if len(contenders) == 0 {
			g.abortHand(invariantErrorf("pot %d has no contenders", potIdx))
			return
		}

		winners := make([]int, 0, len(contenders))
		if len(contenders) == 1 {
			// Sole contender: awarded without comparing hands.
			winners = append(winners, contenders[0])
		} else {
			var best poker.HandValue
			for _, seat := range contenders {
				hv := values[h.seats[seat].PersistentID]
				if len(winners) == 0 || hv.Beats(best) {
					best = hv
					winners = winners[:0]
					winners = append(winners, seat)
				} else if hv.Ties(best) {
					winners = append(winners, seat)
				}
			}
		}

		result := PotResult{PotIndex: potIdx, Amount: pot.Amount}
		share := pot.Amount / int64(len(winners))
		odd := pot.Amount % int64(len(winners))
		for _, seat := range g.orderFromDealer(winners) {
			amount := share
			if odd > 0 {
				// Odd chips go one apiece in seat order left of the button.
				amount++
				odd--
			}
			p := h.seats[seat]
			p.Chips += amount
			desc := ""
			if hv, ok := values[p.PersistentID]; ok && len(contenders) > 1 {
				desc = hv.Description
			}
			result.Winners = append(result.Winners, WinnerInfo{
				Seat:     seat,
				PlayerID: p.PersistentID,
				Name:     p.Name,
				Amount:   amount,
				HandDesc: desc,
			})
		}
		results = append(results, result)
	}

	g.broadcast(&Message{
		Type:    MsgShowdown,
		RoomID:  g.room.ID,
		HandNum: h.HandNum,
		Showdown: &Showdown{
			Results:        results,
			Revealed:       revealed,
			CommunityCards: poker.CardStrings(h.CommunityCards),
		},
	})
	g.finishHand()
}

// potContenders intersects a pot's eligible set with the players still in
// the hand. Eligibility is fixed when the pot forms, but a player can fold
// a later street and forfeit it.
func (g *Game) potContenders(pot *Pot) []int {
	h := g.hand
	contenders := make([]int, 0, len(pot.EligiblePlayerIDs))
	for i, p := range h.seats {
		if p.HasFolded || len(p.HoleCards) == 0 {
			continue
		}
		if pot.isEligible(p.PersistentID) {
			contenders = append(contenders, i)
		}
	}
	return contenders
}

// orderFromDealer sorts seats into table order starting left of the button.
func (g *Game) orderFromDealer(seats []int) []int {
	total := len(g.hand.seats)
	ordered := make([]int, 0, len(seats))
	for i := 1; i <= total; i++ {
		idx := (g.hand.DealerIndex + i) % total
		for _, s := range seats {
			if s == idx {
				ordered = append(ordered, idx)
				break
			}
		}
	}
	return ordered
}

// finishHand closes out the hand, detects a finished game, and schedules
// the next deal.
func (g *Game) finishHand() {
	h := g.hand
	h.HandEnded = true
	g.actionTimer.Pause()
	g.removeSnapshot()

	delay := g.delays.NextHand()
	if winner := g.soleFundedPlayer(); winner != nil {
		handLogger.Info().
			Str("room", g.room.ID).
			Str("player", winner.PersistentID).
			Int64("chips", winner.Chips).
			Msg("Game over, resetting stacks")
		finalChips := winner.Chips
		for _, p := range g.room.Players {
			p.Chips = g.config.StartingChips
			p.IsAllIn = false
		}
		g.broadcast(&Message{
			Type:    MsgGameOver,
			RoomID:  g.room.ID,
			HandNum: h.HandNum,
			GameOver: &GameOver{
				WinnerID:   winner.PersistentID,
				WinnerName: winner.Name,
				Chips:      finalChips,
				ResetTo:    g.config.StartingChips,
			},
		})
		delay = g.delays.GameRestart()
	}

	if g.config.AutoDeal {
		g.scheduleDeal(delay)
	}
}

// soleFundedPlayer returns the last player with chips, if the rest are
// felted.
func (g *Game) soleFundedPlayer() *room.Player {
	var winner *room.Player
	for _, p := range g.room.Players {
		if p.Chips > 0 {
			if winner != nil {
				return nil
			}
			winner = p
		}
	}
	return winner
}

func (g *Game) scheduleDeal(delay time.Duration) {
	if g.pendingDeal != nil {
		g.pendingDeal.Stop()
	}
	g.pendingDeal = time.AfterFunc(delay, func() {
		g.send(&gameEvent{kind: evScheduledDeal})
	})
}

func (g *Game) handleScheduledDeal() {
	if g.hand != nil && !g.hand.HandEnded {
		return
	}
	if err := g.startHand(); err != nil {
		gameLogger.Info().Str("room", g.room.ID).Err(err).Msg("Scheduled deal skipped")
	}
}

// abortHand tears down a hand after an invariant violation. The room falls
// back to having no hand in progress; chips already moved stay where they
// are.
func (g *Game) abortHand(err error) {
	gameLogger.Error().
		Str("room", g.room.ID).
		Err(err).
		Msg("Aborting hand")
	handNum := uint32(0)
	if g.hand != nil {
		handNum = g.hand.HandNum
	}
	g.hand = nil
	g.actionTimer.Pause()
	g.removeSnapshot()
	g.broadcast(&Message{
		Type:          MsgHandCancelled,
		RoomID:        g.room.ID,
		HandNum:       handNum,
		HandCancelled: &HandCancelled{Reason: err.Error()},
	})
}

func (g *Game) addPlayer(p *room.Player) error {
	if len(g.room.Players) >= g.room.MaxSeats {
		return room.ErrRoomFull
	}
	if p.Chips <= 0 {
		p.Chips = g.config.StartingChips
	}
	g.room.Players = append(g.room.Players, p)
	g.room.Touch()
	g.broadcastRoomUpdate()
	return nil
}

// dropPlayer folds a leaver out of the running hand immediately. The seat
// itself is reclaimed when the next hand starts.
func (g *Game) dropPlayer(playerID string) error {
	p := g.room.FindByPersistentID(playerID)
	if p == nil {
		return stateErrorf("player is not seated in this room")
	}
	g.room.Touch()

	h := g.hand
	if h == nil || h.HandEnded || p.HasFolded || len(p.HoleCards) == 0 {
		p.IsDisconnected = true
		if h == nil || h.HandEnded {
			g.room.DropDisconnected()
		}
		g.broadcastRoomUpdate()
		return nil
	}

	seat := h.seatIndex(p)
	if seat == h.ActingIndex {
		// Fold while the seat can still act; once the disconnect flag is set
		// applyAction would refuse it.
		if err := g.handleAction(playerID, ActionFold, 0, true); err != nil {
			gameLogger.Error().Str("room", g.room.ID).Err(err).Msg("Disconnect fold failed")
		}
		p.IsDisconnected = true
		g.broadcastRoomUpdate()
		return nil
	}

	// Folding out of turn: no validation path applies, the seat just gives
	// up its hand.
	p.IsDisconnected = true
	p.HasFolded = true
	p.LastAction = "fold"
	g.broadcast(&Message{
		Type:    MsgPlayerActed,
		RoomID:  g.room.ID,
		HandNum: h.HandNum,
		PlayerActed: &PlayerActed{
			Seat:      seat,
			PlayerID:  p.PersistentID,
			Action:    "fold",
			StreetBet: p.CurrentStreetBet,
			Chips:     p.Chips,
			HasFolded: true,
			PotTotal:  h.potTotal(),
			TimedOut:  true,
		},
	})

	if winner, wseat := h.lastPlayerInHand(); winner != nil {
		if err := h.reconcilePots(); err != nil {
			g.abortHand(err)
			return nil
		}
		g.winByFold(winner, wseat)
	} else if h.bettingRoundComplete() {
		g.advanceStreets()
	}
	g.broadcastRoomUpdate()
	return nil
}

func (g *Game) isHost(playerID string) bool {
	return len(g.room.Players) > 0 && g.room.Players[0].PersistentID == playerID
}

func (g *Game) reconnectPlayer(playerID string) error {
	p := g.room.FindByPersistentID(playerID)
	if p == nil {
		return stateErrorf("player is not seated in this room")
	}
	p.IsDisconnected = false
	g.room.Touch()
	g.broadcastRoomUpdate()

	// Replay the hand context the player missed while offline.
	h := g.hand
	if h != nil && !h.HandEnded && len(p.HoleCards) > 0 {
		g.receiver.SendToPlayer(g.room.ID, playerID, &Message{
			Type:    MsgDealCards,
			RoomID:  g.room.ID,
			HandNum: h.HandNum,
			DealCards: &DealCards{
				Seat:  h.seatIndex(p),
				Cards: poker.CardStrings(p.HoleCards),
			},
		})
		left := g.config.TurnTimeout() - g.actionTimer.GetElapsedTime()
		if left < 0 {
			left = 0
		}
		actor := h.seats[h.ActingIndex]
		g.receiver.SendToPlayer(g.room.ID, playerID, &Message{
			Type:    MsgNextAction,
			RoomID:  g.room.ID,
			HandNum: h.HandNum,
			NextAction: &NextAction{
				Seat:         h.ActingIndex,
				PlayerID:     actor.PersistentID,
				SecondsToAct: uint32(left / time.Second),
				CallAmount:   h.callAmount(),
				MinRaiseTo:   h.minRaiseTo(),
			},
		})
	}
	return nil
}

func (g *Game) seatInfos() []SeatInfo {
	h := g.hand
	infos := make([]SeatInfo, 0, len(g.room.Players))
	for i, p := range g.room.Players {
		info := SeatInfo{
			Seat:        i,
			PlayerID:    p.PersistentID,
			Name:        p.Name,
			Avatar:      p.Avatar,
			Chips:       p.Chips,
			StreetBet:   p.CurrentStreetBet,
			IsSpectator: p.IsSpectator(),
		}
		if h != nil {
			info.IsDealer = i == h.DealerIndex
			info.IsSmallBlind = i == h.SmallBlindIndex
			info.IsBigBlind = i == h.BigBlindIndex
		}
		infos = append(infos, info)
	}
	return infos
}

func (g *Game) broadcast(msg *Message) {
	g.receiver.BroadcastToRoom(g.room.ID, msg)
}

func (g *Game) broadcastRoomUpdate() {
	g.broadcast(&Message{
		Type:       MsgRoomUpdate,
		RoomID:     g.room.ID,
		RoomUpdate: &RoomUpdate{Players: g.seatInfos()},
	})
}

func (g *Game) saveSnapshot() {
	if g.persist == nil || g.hand == nil {
		return
	}
	if err := g.persist.Save(g.room.ID, snapshotOf(g.room, g.hand)); err != nil {
		gameLogger.Error().Str("room", g.room.ID).Err(err).Msg("Could not persist hand state")
	}
}

func (g *Game) removeSnapshot() {
	if g.persist == nil {
		return
	}
	if err := g.persist.Remove(g.room.ID); err != nil {
		gameLogger.Error().Str("room", g.room.ID).Err(err).Msg("Could not remove persisted hand state")
	}
}
