package client

// RosterEntry is one rendered presence row. Self marks the entry
// matching the session identity.
type RosterEntry struct {
	Name string
	Self bool
}

// Renderer is the sink for viewport updates. Implementations perform
// side effects only; the session never reads display state back.
// AppendMessage must advance scroll so the new message is visible.
type Renderer interface {
	AppendMessage(sender, body string, class Classification)
	ClearViewport()
	SetActiveRoom(room string)
	RenderRoster(entries []RosterEntry)
}

// Input abstracts the outbound text field. Reset clears the field and
// restores focus; Prefill replaces its contents, used to seed a
// private-message prefix when a roster entry is activated. Line-based
// implementations may treat Prefill as a display hint only.
type Input interface {
	Reset()
	Prefill(text string)
}
