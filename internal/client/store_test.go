package client

import (
	"reflect"
	"testing"
)

func TestStoreCreatesLogOnFirstReference(t *testing.T) {
	s := NewStore()

	if got := s.Log("nowhere"); got != nil {
		t.Fatalf("unreferenced room log = %v, want nil", got)
	}

	s.Append("General", Message{Sender: "a", Body: "x", Class: ClassOther})
	if s.Len("General") != 1 {
		t.Fatalf("log length = %d, want 1", s.Len("General"))
	}
}

func TestStoreReplaceDoesNotAliasInput(t *testing.T) {
	s := NewStore()
	src := []Message{{Sender: "a", Body: "x", Class: ClassOther}}

	s.Replace("General", src)
	src[0].Body = "mutated"

	if s.Log("General")[0].Body != "x" {
		t.Fatal("Replace must copy the supplied slice")
	}
}

func TestRosterReplaceDoesNotAliasInput(t *testing.T) {
	var r Roster
	src := []string{"alice", "bob"}

	r.Replace(src)
	src[0] = "mallory"

	if !reflect.DeepEqual(r.Users(), []string{"alice", "bob"}) {
		t.Fatalf("roster = %v", r.Users())
	}
}
