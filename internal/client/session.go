package client

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Session owns one client's view of the chat: the current room, the
// per-room message logs, and the presence roster. All mutation happens
// through its handler methods, which are driven by a single event
// loop; Session itself does no locking.
type Session struct {
	identity    string
	defaultRoom string

	current string
	joinSeq uint64

	store  *Store
	roster *Roster

	transport Transport
	render    Renderer
	input     Input
	log       *zerolog.Logger
}

// NewSession constructs a session for identity. The transport,
// renderer, and input collaborators are injected so the session can be
// exercised without a live socket or display.
func NewSession(identity, defaultRoom string, transport Transport, render Renderer, input Input, logger *zerolog.Logger) *Session {
	return &Session{
		identity:    identity,
		defaultRoom: defaultRoom,
		store:       NewStore(),
		roster:      &Roster{},
		transport:   transport,
		render:      render,
		input:       input,
		log:         logger,
	}
}

// Identity returns the session's display name.
func (s *Session) Identity() string {
	return s.identity
}

// CurrentRoom returns the room the session believes it is viewing.
func (s *Session) CurrentRoom() string {
	return s.current
}

// Store exposes the per-room message logs.
func (s *Session) Store() *Store {
	return s.store
}

// Roster exposes the presence roster.
func (s *Session) Roster() *Roster {
	return s.roster
}

// HandleConnected reacts to connection establishment by entering the
// default room.
func (s *Session) HandleConnected(ctx context.Context) {
	s.JoinRoom(ctx, s.defaultRoom)
}

// JoinRoom switches the session to target. The leave for the previous
// room is advisory and the room transition is optimistic: the current
// room is updated before any server confirmation. The viewport is
// cleared here and repopulated by the chat_history event the join
// provokes.
func (s *Session) JoinRoom(ctx context.Context, target string) {
	if s.current != "" {
		if err := s.transport.LeaveRoom(ctx, s.current); err != nil {
			s.log.Debug().Err(err).Str("room", s.current).Msg("leave emit failed")
		}
	}

	s.current = target
	s.joinSeq++

	if err := s.transport.JoinRoom(ctx, target, s.joinSeq); err != nil {
		s.log.Debug().Err(err).Str("room", target).Msg("join emit failed")
	}

	s.render.ClearViewport()
	s.render.SetActiveRoom(target)
}

// SendMessage classifies raw input as a room broadcast or a private
// send and emits the matching intent. Whitespace-only input and a
// private address with no body are silent no-ops. The input field is
// cleared and refocused after every attempt, sent or not.
func (s *Session) SendMessage(ctx context.Context, raw string) {
	defer s.input.Reset()

	text := strings.TrimSpace(raw)
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "@") {
		target, rest, _ := strings.Cut(text[1:], " ")
		body := strings.TrimLeft(rest, " \t")
		if body == "" {
			s.log.Debug().Str("target", target).Msg("private send without body dropped")
			return
		}
		if err := s.transport.SendPrivateMessage(ctx, target, body); err != nil {
			s.log.Debug().Err(err).Str("target", target).Msg("private emit failed")
		}
		return
	}

	if err := s.transport.SendRoomMessage(ctx, s.current, text); err != nil {
		s.log.Debug().Err(err).Str("room", s.current).Msg("message emit failed")
	}
}

// ComposePrivate pre-fills the input with a private addressing prefix
// for user. Invoked when a roster entry is activated.
func (s *Session) ComposePrivate(user string) {
	s.input.Prefill("@" + user + " ")
}

// HandleRoomMessage routes an inbound room broadcast. The message is
// appended to the tagged room's log; it reaches the viewport only when
// that room is current. An untagged event is attributed to the current
// room.
func (s *Session) HandleRoomMessage(room, sender, body string) {
	if room == "" {
		room = s.current
	}

	class := ClassOther
	if sender == s.identity {
		class = ClassOwn
	}

	s.store.Append(room, Message{Sender: sender, Body: body, Class: class})
	if room != s.current {
		s.log.Debug().Str("room", room).Str("current", s.current).Msg("message for non-current room stored without render")
		return
	}
	s.render.AppendMessage(sender, body, class)
}

// HandlePrivateMessage stores and renders a direct message. Private
// messages live in the current room's log alongside room traffic, with
// a visible marker on the body.
func (s *Session) HandlePrivateMessage(from, body string) {
	marked := "[Private] " + body
	s.store.Append(s.current, Message{Sender: from, Body: marked, Class: ClassPrivate})
	s.render.AppendMessage(from, marked, ClassPrivate)
}

// HandleStatus stores and renders a service notice as a system
// message in the current room.
func (s *Session) HandleStatus(body string) {
	s.store.Append(s.current, Message{Sender: SystemSender, Body: body, Class: ClassSystem})
	s.render.AppendMessage(SystemSender, body, ClassSystem)
}

// HandlePresence replaces the roster wholesale and re-renders it,
// marking the session's own entry.
func (s *Session) HandlePresence(users []string) {
	s.roster.Replace(users)

	entries := make([]RosterEntry, len(users))
	for i, u := range users {
		entries[i] = RosterEntry{Name: u, Self: u == s.identity}
	}
	s.render.RenderRoster(entries)
}

// HandleHistory rebuilds a room's log from a replay. A replay for a
// room that is no longer current, or stamped with a sequence older
// than the latest join, lost the race to a faster room switch and is
// dropped. The viewport is cleared again here: anything rendered
// between the join and the replay is not part of the rebuilt log, and
// the viewport must keep showing exactly what the log holds.
func (s *Session) HandleHistory(room string, seq uint64, entries []HistoryEntry) {
	if room != s.current || seq != s.joinSeq {
		s.log.Debug().
			Str("room", room).
			Uint64("seq", seq).
			Uint64("join_seq", s.joinSeq).
			Msg("stale history replay dropped")
		return
	}

	s.render.ClearViewport()

	log := make([]Message, 0, len(entries))
	for _, e := range entries {
		class := ClassOther
		if e.Sender == s.identity {
			class = ClassOwn
		}
		log = append(log, Message{Sender: e.Sender, Body: e.Body, Class: class})
	}

	s.store.Replace(room, log)
	for _, m := range log {
		s.render.AppendMessage(m.Sender, m.Body, m.Class)
	}
}
