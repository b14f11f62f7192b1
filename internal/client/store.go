package client

// Store keeps a per-room ordered log of messages. A room's log is
// created empty on first reference, replaced wholesale when history is
// replayed for that room, and appended to incrementally otherwise.
// Entries are never mutated or removed, and insertion order is
// preserved.
type Store struct {
	logs map[string][]Message
}

// NewStore constructs an empty message store.
func NewStore() *Store {
	return &Store{logs: make(map[string][]Message)}
}

// Append adds msg to the end of room's log.
func (s *Store) Append(room string, msg Message) {
	s.logs[room] = append(s.logs[room], msg)
}

// Replace discards room's log and installs msgs in the given order.
func (s *Store) Replace(room string, msgs []Message) {
	log := make([]Message, len(msgs))
	copy(log, msgs)
	s.logs[room] = log
}

// Log returns room's ordered log. The returned slice is the store's
// backing array; callers must not mutate it.
func (s *Store) Log(room string) []Message {
	return s.logs[room]
}

// Len reports the number of messages logged for room.
func (s *Store) Len(room string) int {
	return len(s.logs[room])
}
