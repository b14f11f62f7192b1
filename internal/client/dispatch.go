package client

import "context"

// Dispatcher serializes all session access onto the goroutine running
// Run. The session's handlers assume cooperative single-threaded
// scheduling; hosts with more than one event source (socket reader,
// user input) queue mutations here instead of calling the session
// directly.
type Dispatcher struct {
	session *Session
	queue   chan func(*Session)
}

// NewDispatcher wraps session with a serializing queue.
func NewDispatcher(session *Session) *Dispatcher {
	return &Dispatcher{
		session: session,
		queue:   make(chan func(*Session), 64),
	}
}

// Run drains the queue until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case fn := <-d.queue:
			fn(d.session)
		case <-ctx.Done():
			return
		}
	}
}

// Do enqueues fn for execution on the session goroutine.
func (d *Dispatcher) Do(fn func(*Session)) {
	d.queue <- fn
}

// JoinRoom queues a room switch.
func (d *Dispatcher) JoinRoom(ctx context.Context, target string) {
	d.Do(func(s *Session) { s.JoinRoom(ctx, target) })
}

// SendMessage queues outbound input routing.
func (d *Dispatcher) SendMessage(ctx context.Context, raw string) {
	d.Do(func(s *Session) { s.SendMessage(ctx, raw) })
}

// HandleConnected queues the connect reaction.
func (d *Dispatcher) HandleConnected(ctx context.Context) {
	d.Do(func(s *Session) { s.HandleConnected(ctx) })
}

// HandleRoomMessage queues an inbound room message.
func (d *Dispatcher) HandleRoomMessage(room, sender, body string) {
	d.Do(func(s *Session) { s.HandleRoomMessage(room, sender, body) })
}

// HandlePrivateMessage queues an inbound private message.
func (d *Dispatcher) HandlePrivateMessage(from, body string) {
	d.Do(func(s *Session) { s.HandlePrivateMessage(from, body) })
}

// HandleStatus queues an inbound status notice.
func (d *Dispatcher) HandleStatus(body string) {
	d.Do(func(s *Session) { s.HandleStatus(body) })
}

// HandlePresence queues a roster update.
func (d *Dispatcher) HandlePresence(users []string) {
	d.Do(func(s *Session) { s.HandlePresence(users) })
}

// HandleHistory queues a history replay.
func (d *Dispatcher) HandleHistory(room string, seq uint64, entries []HistoryEntry) {
	d.Do(func(s *Session) { s.HandleHistory(room, seq, entries) })
}
