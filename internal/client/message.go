package client

// Classification is the locally derived tag that determines how a
// message is rendered. It is never transmitted on the wire.
type Classification string

const (
	// ClassOwn marks a room message sent by the session identity.
	ClassOwn Classification = "own"
	// ClassOther marks a room message from any other participant.
	ClassOther Classification = "other"
	// ClassPrivate marks a direct message, regardless of direction.
	ClassPrivate Classification = "private"
	// ClassSystem marks a service-originated status notice.
	ClassSystem Classification = "system"
)

// SystemSender is the identity attached to status notices.
const SystemSender = "System"

// Message is one entry in a room's log.
type Message struct {
	Sender string
	Body   string
	Class  Classification
}

// HistoryEntry is one replayed message delivered on (re)join, before
// classification.
type HistoryEntry struct {
	Sender string
	Body   string
}
