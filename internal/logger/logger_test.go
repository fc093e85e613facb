package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupWritesFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "geotoggle.log")
	c, err := Logger{Level: "debug", Format: "json", File: p}.Setup()
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.Debug().Str("name", "Treme").Msg("Feature toggled")
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"name":"Treme"`) {
		t.Errorf("log file missing entry: %s", b)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v", zerolog.GlobalLevel())
	}
}

func TestSetupDefaults(t *testing.T) {
	c, err := Logger{Level: "bogus"}.Setup()
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer c.Close()
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("unknown level should fall back to info, got %v", zerolog.GlobalLevel())
	}
}

func TestSetupBadPath(t *testing.T) {
	if _, err := (Logger{File: filepath.Join(t.TempDir(), "no", "such", "dir", "x.log")}).Setup(); err == nil {
		t.Error("expected error for unwritable path")
	}
}
