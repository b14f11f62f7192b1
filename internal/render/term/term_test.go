package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/roomchat/roomchat/internal/client"
)

func TestAppendMessagePlain(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)

	r.AppendMessage("alice", "hello", client.ClassOther)

	if got := buf.String(); got != "alice: hello\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestAppendMessageColorByClass(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)

	r.AppendMessage("alice", "hello", client.ClassOwn)

	out := buf.String()
	if !strings.HasPrefix(out, ansiGreen) || !strings.Contains(out, "alice: hello") {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderRosterMarksSelf(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)

	r.RenderRoster([]client.RosterEntry{
		{Name: "alice", Self: false},
		{Name: "bob", Self: true},
	})

	if got := buf.String(); got != "* active: alice, bob (you)\n" {
		t.Fatalf("output = %q", got)
	}
}
