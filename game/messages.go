package game

// Message types published by the engine. Each message carries exactly one
// typed payload matching its type; the field sets are fixed.
const (
	MsgHandStarted    = "handStarted"
	MsgDealCards      = "dealCards"
	MsgPlayerActed    = "playerActed"
	MsgNextAction     = "nextAction"
	MsgStreetAdvanced = "streetAdvanced"
	MsgShowdown       = "showdown"
	MsgHandCancelled  = "handCancelled"
	MsgGameOver       = "gameOver"
	MsgRoomUpdate     = "roomUpdate"
	MsgChat           = "chat"
)

// MessageReceiver is the outbound notification collaborator. Delivery is
// fire-and-forget; the engine never retries.
type MessageReceiver interface {
	BroadcastToRoom(roomID string, msg *Message)
	SendToPlayer(roomID string, playerID string, msg *Message)
}

// Message is the envelope for every engine notification.
type Message struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId"`
	HandNum uint32 `json:"handNum,omitempty"`

	HandStarted    *HandStarted    `json:"handStarted,omitempty"`
	DealCards      *DealCards      `json:"dealCards,omitempty"`
	PlayerActed    *PlayerActed    `json:"playerActed,omitempty"`
	NextAction     *NextAction     `json:"nextAction,omitempty"`
	StreetAdvanced *StreetAdvanced `json:"streetAdvanced,omitempty"`
	Showdown       *Showdown       `json:"showdown,omitempty"`
	HandCancelled  *HandCancelled  `json:"handCancelled,omitempty"`
	GameOver       *GameOver       `json:"gameOver,omitempty"`
	RoomUpdate     *RoomUpdate     `json:"roomUpdate,omitempty"`
	Chat           *Chat           `json:"chat,omitempty"`
}

// SeatInfo is a player's public state at hand start.
type SeatInfo struct {
	Seat         int    `json:"seat"`
	PlayerID     string `json:"playerId"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar,omitempty"`
	Chips        int64  `json:"chips"`
	StreetBet    int64  `json:"streetBet"`
	IsDealer     bool   `json:"isDealer"`
	IsSmallBlind bool   `json:"isSmallBlind"`
	IsBigBlind   bool   `json:"isBigBlind"`
	IsSpectator  bool   `json:"isSpectator"`
}

type HandStarted struct {
	Street     string     `json:"street"`
	SmallBlind int64      `json:"smallBlind"`
	BigBlind   int64      `json:"bigBlind"`
	Seats      []SeatInfo `json:"seats"`
}

// DealCards is delivered privately to a single player.
type DealCards struct {
	Seat  int      `json:"seat"`
	Cards []string `json:"cards"`
}

type PlayerActed struct {
	Seat      int    `json:"seat"`
	PlayerID  string `json:"playerId"`
	Action    string `json:"action"`
	Amount    int64  `json:"amount"`
	StreetBet int64  `json:"streetBet"`
	Chips     int64  `json:"chips"`
	IsAllIn   bool   `json:"isAllIn"`
	HasFolded bool   `json:"hasFolded"`
	PotTotal  int64  `json:"potTotal"`
	TimedOut  bool   `json:"timedOut,omitempty"`
}

type NextAction struct {
	Seat         int    `json:"seat"`
	PlayerID     string `json:"playerId"`
	SecondsToAct uint32 `json:"secondsToAct"`
	CallAmount   int64  `json:"callAmount"`
	MinRaiseTo   int64  `json:"minRaiseTo"`
}

type StreetAdvanced struct {
	Street         string   `json:"street"`
	CommunityCards []string `json:"communityCards"`
	PotTotal       int64    `json:"potTotal"`
	NextSeat       int      `json:"nextSeat"`
	NextPlayerID   string   `json:"nextPlayerId"`
}

type WinnerInfo struct {
	Seat     int    `json:"seat"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	HandDesc string `json:"handDesc"`
}

type PotResult struct {
	PotIndex int          `json:"potIndex"`
	Amount   int64        `json:"amount"`
	Winners  []WinnerInfo `json:"winners"`
}

// RevealedHand shows a non-folded player's hole cards at showdown.
type RevealedHand struct {
	Seat     int      `json:"seat"`
	PlayerID string   `json:"playerId"`
	Name     string   `json:"name"`
	Cards    []string `json:"cards"`
}

type Showdown struct {
	Results        []PotResult    `json:"results"`
	Revealed       []RevealedHand `json:"revealed,omitempty"`
	CommunityCards []string       `json:"communityCards"`
	WinByFold      bool           `json:"winByFold,omitempty"`
}

type HandCancelled struct {
	Reason string `json:"reason"`
}

type GameOver struct {
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`
	Chips      int64  `json:"chips"`
	ResetTo    int64  `json:"resetTo"`
}

// RoomUpdate is the lobby-safe room summary, broadcast on membership changes.
type RoomUpdate struct {
	Players []SeatInfo `json:"players"`
}

type Chat struct {
	Kind      string `json:"kind"` // "player" or "system"
	SenderID  string `json:"senderId,omitempty"`
	Name      string `json:"name,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}
