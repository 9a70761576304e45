package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("SOLDI_TEST_DIR", "/srv/ledger")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty stays empty", in: "", want: ""},
		{name: "plain path untouched", in: "/var/data/transactions.csv", want: "/var/data/transactions.csv"},
		{name: "env var expanded", in: "$SOLDI_TEST_DIR/transactions.csv", want: "/srv/ledger/transactions.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandPath_Tilde(t *testing.T) {
	got := ExpandPath("~/ledger.csv")
	if strings.HasPrefix(got, "~") {
		t.Errorf("tilde not expanded: %q", got)
	}
	if filepath.Base(got) != "ledger.csv" {
		t.Errorf("file name lost in expansion: %q", got)
	}
}

func TestDefaultDataFile(t *testing.T) {
	if filepath.Base(DefaultDataFile("csv")) != "transactions.csv" {
		t.Error("csv backend must default to a .csv file")
	}
	if filepath.Base(DefaultDataFile("sqlite")) != "transactions.db" {
		t.Error("sqlite backend must default to a .db file")
	}
}
