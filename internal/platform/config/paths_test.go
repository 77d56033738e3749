package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.kafkaview/state.db")
	if err != nil {
		t.Fatalf("ExpandHome() error = %v", err)
	}
	if want := filepath.Join(home, ".kafkaview", "state.db"); got != want {
		t.Fatalf("ExpandHome() = %q, want %q", got, want)
	}
	if got, _ := ExpandHome(" /tmp/state.db "); got != "/tmp/state.db" {
		t.Fatalf("ExpandHome(abs) = %q, want /tmp/state.db", got)
	}
	if got, _ := ExpandHome("~user/state.db"); got != "~user/state.db" {
		t.Fatalf("ExpandHome(~user) = %q, want unchanged", got)
	}
}
