package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/roomchat/roomchat/internal/client"
)

const (
	ansiReset   = "\x1b[0m"
	ansiGreen   = "\x1b[32m"
	ansiCyan    = "\x1b[36m"
	ansiMagenta = "\x1b[35m"
	ansiYellow  = "\x1b[33m"
	ansiClear   = "\x1b[2J\x1b[H"
)

// Renderer writes the chat viewport to a terminal. Appending always
// happens at the cursor, so the latest message is the visible one.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer builds a renderer targeting out. Set color to false for
// dumb terminals and log captures.
func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, color: color}
}

// AppendMessage prints one message line styled by classification.
func (r *Renderer) AppendMessage(sender, body string, class client.Classification) {
	if !r.color {
		fmt.Fprintf(r.out, "%s: %s\n", sender, body)
		return
	}
	fmt.Fprintf(r.out, "%s%s: %s%s\n", r.style(class), sender, body, ansiReset)
}

// ClearViewport empties the visible message area.
func (r *Renderer) ClearViewport() {
	if r.color {
		fmt.Fprint(r.out, ansiClear)
		return
	}
	fmt.Fprintln(r.out, strings.Repeat("-", 40))
}

// SetActiveRoom prints the room banner.
func (r *Renderer) SetActiveRoom(room string) {
	if r.color {
		fmt.Fprintf(r.out, "%s=== %s ===%s\n", ansiCyan, room, ansiReset)
		return
	}
	fmt.Fprintf(r.out, "=== %s ===\n", room)
}

// RenderRoster prints the active-user list, marking our own entry.
func (r *Renderer) RenderRoster(entries []client.RosterEntry) {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Self {
			names = append(names, e.Name+" (you)")
			continue
		}
		names = append(names, e.Name)
	}
	fmt.Fprintf(r.out, "* active: %s\n", strings.Join(names, ", "))
}

func (r *Renderer) style(class client.Classification) string {
	switch class {
	case client.ClassOwn:
		return ansiGreen
	case client.ClassPrivate:
		return ansiMagenta
	case client.ClassSystem:
		return ansiYellow
	default:
		return ansiReset
	}
}

// Input is the line-based stand-in for the message input field. Reset
// reprints the prompt. Prefill is advisory display only: the printed
// prefix is not fed back into the next scanned line, so the user types
// the address themselves. True pre-filling needs readline support.
type Input struct {
	out    io.Writer
	prompt string
}

// NewInput builds an input bound to out.
func NewInput(out io.Writer) *Input {
	return &Input{out: out, prompt: "> "}
}

// Reset clears the pending input and restores the prompt.
func (i *Input) Reset() {
	fmt.Fprint(i.out, i.prompt)
}

// Prefill seeds the prompt with text for the user to complete.
func (i *Input) Prefill(text string) {
	fmt.Fprintf(i.out, "%s%s", i.prompt, text)
}
