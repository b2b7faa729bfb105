package main

import "testing"

func TestCommandMap(t *testing.T) {
	m := commandMap()
	if len(m) != len(SubCommands) {
		t.Errorf("expected %d commands, got %d", len(SubCommands), len(m))
	}
	for _, name := range []string{"convert", "check", "rank"} {
		if m[name] == nil {
			t.Errorf("missing subcommand %s", name)
		}
	}
	if m["extract"] != nil {
		t.Error("unexpected subcommand extract")
	}
}
