package client

import (
	"context"

	"github.com/rs/zerolog"
)

// fakeTransport records emitted intents in order.
type fakeTransport struct {
	calls []emitCall
}

type emitCall struct {
	kind   string // "join", "leave", "msg", "private"
	room   string
	target string
	body   string
	seq    uint64
}

func (f *fakeTransport) JoinRoom(_ context.Context, room string, seq uint64) error {
	f.calls = append(f.calls, emitCall{kind: "join", room: room, seq: seq})
	return nil
}

func (f *fakeTransport) LeaveRoom(_ context.Context, room string) error {
	f.calls = append(f.calls, emitCall{kind: "leave", room: room})
	return nil
}

func (f *fakeTransport) SendRoomMessage(_ context.Context, room, body string) error {
	f.calls = append(f.calls, emitCall{kind: "msg", room: room, body: body})
	return nil
}

func (f *fakeTransport) SendPrivateMessage(_ context.Context, target, body string) error {
	f.calls = append(f.calls, emitCall{kind: "private", target: target, body: body})
	return nil
}

// fakeRenderer models the viewport as an ordered line list.
type fakeRenderer struct {
	viewport   []renderedLine
	clears     int
	activeRoom string
	roster     []RosterEntry
}

type renderedLine struct {
	sender string
	body   string
	class  Classification
}

func (f *fakeRenderer) AppendMessage(sender, body string, class Classification) {
	f.viewport = append(f.viewport, renderedLine{sender: sender, body: body, class: class})
}

func (f *fakeRenderer) ClearViewport() {
	f.viewport = nil
	f.clears++
}

func (f *fakeRenderer) SetActiveRoom(room string) {
	f.activeRoom = room
}

func (f *fakeRenderer) RenderRoster(entries []RosterEntry) {
	f.roster = entries
}

// fakeInput records resets and prefills.
type fakeInput struct {
	resets   int
	prefills []string
}

func (f *fakeInput) Reset() { f.resets++ }

func (f *fakeInput) Prefill(text string) { f.prefills = append(f.prefills, text) }

func newTestSession(identity string) (*Session, *fakeTransport, *fakeRenderer, *fakeInput) {
	tr := &fakeTransport{}
	rd := &fakeRenderer{}
	in := &fakeInput{}
	logger := zerolog.Nop()
	return NewSession(identity, "General", tr, rd, in, &logger), tr, rd, in
}
