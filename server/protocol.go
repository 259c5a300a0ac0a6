package server

// ClientMessage is the envelope for everything a player sends over the
// websocket. RequestID, when set, is echoed back on the Result so the client
// can correlate.
type ClientMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId,omitempty"`

	CreateRoom *CreateRoomRequest `json:"createRoom,omitempty"`
	JoinRoom   *JoinRoomRequest   `json:"joinRoom,omitempty"`
	Action     *ActionRequest     `json:"action,omitempty"`
	Chat       *ChatRequest       `json:"chat,omitempty"`
}

const (
	ClientMsgCreateRoom = "createRoom"
	ClientMsgJoinRoom   = "joinRoom"
	ClientMsgLeaveRoom  = "leaveRoom"
	ClientMsgStartGame  = "startGame"
	ClientMsgAction     = "playerAction"
	ClientMsgChat       = "sendMessage"
	ClientMsgListRooms  = "getRoomList"
)

type CreateRoomRequest struct {
	Region   string `json:"region,omitempty"`
	MaxSeats int    `json:"maxSeats,omitempty"`
	Password string `json:"password,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

type JoinRoomRequest struct {
	RoomID   string `json:"roomId"`
	Password string `json:"password,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// ActionRequest carries a betting action. RaiseTotal is the player's new
// total street commitment, not the increment, and is ignored unless Kind is
// "raise".
type ActionRequest struct {
	Kind       string `json:"kind"`
	RaiseTotal int64  `json:"raiseTotal,omitempty"`
}

type ChatRequest struct {
	Text string `json:"text"`
}

// Result is the synchronous answer to a client request.
type Result struct {
	Type      string        `json:"type"`
	RequestID string        `json:"requestId,omitempty"`
	OK        bool          `json:"ok"`
	Error     string        `json:"error,omitempty"`
	RoomID    string        `json:"roomId,omitempty"`
	Rooms     []RoomSummary `json:"rooms,omitempty"`
}

// RoomSummary is a lobby entry; password-protected rooms never appear.
type RoomSummary struct {
	RoomID      string `json:"roomId"`
	Region      string `json:"region"`
	PlayerCount int    `json:"playerCount"`
	MaxSeats    int    `json:"maxSeats"`
}
