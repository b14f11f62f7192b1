package server

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the client to a room, replacing any
	// previous room membership.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom unsubscribes the client from a room.
	CommandLeaveRoom
	// CommandSendRoomMessage broadcasts a chat message to a room.
	CommandSendRoomMessage
	// CommandSendPrivateMessage delivers a message to a single user.
	CommandSendPrivateMessage
)

// Command represents an action requested by a client.
type Command struct {
	Kind   CommandKind
	Room   string
	Seq    uint64 // join sequence, echoed on the history event
	Target string // private message recipient
	Body   string
}
