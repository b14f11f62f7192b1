package server

// EventKind is a notification the hub emits to clients.
type EventKind int

const (
	// EventRoomMessage notifies clients about a chat message in a room.
	EventRoomMessage EventKind = iota
	// EventPrivateMessage delivers a direct message to one client.
	EventPrivateMessage
	// EventStatus carries a service notice for a room.
	EventStatus
	// EventActiveUsers replaces the presence roster.
	EventActiveUsers
	// EventHistory delivers a room's message history on join.
	EventHistory
	// EventError notifies a client about a domain error.
	EventError
)

// HistoryItem is one replayed message inside an EventHistory.
type HistoryItem struct {
	Username string
	Body     string
}

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind    EventKind
	Room    string
	User    string // sender for messages, subject for status
	Body    string
	Users   []string      // for EventActiveUsers
	Seq     uint64        // for EventHistory, echoes the join seq
	History []HistoryItem // for EventHistory
	Error   *DomainError
}
