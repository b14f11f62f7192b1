package proto

import "encoding/json"

// Inbound is the envelope for frames coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeHello = "hello"
	InboundTypeJoin  = "join"
	InboundTypeLeave = "leave"
	InboundTypeMsg   = "msg"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventConnected      = "connected"
	EventMessage        = "message"
	EventPrivateMessage = "private_message"
	EventStatus         = "status"
	EventActiveUsers    = "active_users"
	EventChatHistory    = "chat_history"

	// MsgKindPrivate marks a MsgData frame as a private send.
	MsgKindPrivate = "private"
)

// HelloData introduces the connection to the service.
type HelloData struct {
	Token    string `json:"token"`
	Protocol int    `json:"protocol,omitempty"`
}

// JoinData requests to join a room. Seq is the client's join sequence
// number, echoed back on the resulting chat_history event.
type JoinData struct {
	Room string `json:"room"`
	Seq  uint64 `json:"seq"`
}

// LeaveData announces the client is leaving a room. Advisory only.
type LeaveData struct {
	Room string `json:"room"`
}

// MsgData is an outgoing chat message. Type "private" with a Target
// routes to a single user; otherwise Room addresses a broadcast.
type MsgData struct {
	Msg    string `json:"msg"`
	Room   string `json:"room,omitempty"`
	Type   string `json:"type,omitempty"`
	Target string `json:"target,omitempty"`
}

// Outbound is the envelope for frames sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// ConnectedData confirms the hello and names the session identity.
type ConnectedData struct {
	Username string `json:"username"`
}

// MessageData is a room broadcast delivered to clients.
type MessageData struct {
	Username string `json:"username"`
	Msg      string `json:"msg"`
	Room     string `json:"room"`
	TS       int64  `json:"ts,omitempty"`
}

// PrivateMessageData is a direct message delivered to one user.
type PrivateMessageData struct {
	From string `json:"from"`
	Msg  string `json:"msg"`
	TS   int64  `json:"ts,omitempty"`
}

// StatusData is a service notice shown as a system message.
type StatusData struct {
	Msg string `json:"msg"`
}

// ActiveUsersData replaces the presence roster wholesale.
type ActiveUsersData struct {
	Users []string `json:"users"`
}

// HistoryMessage is one replayed message inside a chat_history event.
type HistoryMessage struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ChatHistoryData rebuilds a room's log on join. Room and Seq echo the
// join request so the client can discard stale replays.
type ChatHistoryData struct {
	Room     string           `json:"room"`
	Seq      uint64           `json:"seq"`
	Messages []HistoryMessage `json:"messages"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
