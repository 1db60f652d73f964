package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gravity-sling/internal/config"
)

func TestResolveSourcePack(t *testing.T) {
	s := config.Settings{Pack: "classic"}
	src, err := resolveSource(s)
	if err != nil {
		t.Fatalf("resolveSource() failed: %v", err)
	}
	if src.pack != "classic" {
		t.Errorf("pack = %q, expected classic", src.pack)
	}
	campaign, err := src.campaign()
	if err != nil {
		t.Fatalf("campaign() failed: %v", err)
	}
	if campaign.Len() == 0 {
		t.Error("classic pack has no levels")
	}

	if _, err := resolveSource(config.Settings{Pack: "nope"}); err == nil {
		t.Error("resolveSource() with unknown pack succeeded")
	}
}

func TestResolveSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	data := "id: 1\nname: Only\nplanets:\n  - {name: Goal, x: 0.7, y: 0.5, r: 18, mass: 1100}\n"
	if err := os.WriteFile(filepath.Join(dir, "one.yaml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	src, err := resolveSource(config.Settings{Pack: "classic", LevelsDir: dir})
	if err != nil {
		t.Fatalf("resolveSource() failed: %v", err)
	}
	if !strings.HasPrefix(src.pack, "dir:") {
		t.Errorf("pack = %q, expected dir: prefix", src.pack)
	}
	campaign, err := src.campaign()
	if err != nil {
		t.Fatalf("campaign() failed: %v", err)
	}
	if campaign.Len() != 1 || campaign.Current().Name != "Only" {
		t.Errorf("campaign = %d levels starting at %q, expected 1 starting at Only", campaign.Len(), campaign.Current().Name)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "test", "debug")
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, expected debug", logger.GetLevel())
	}

	buf.Reset()
	logger = newLogger(&buf, "test", "loud")
	if logger.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, expected info", logger.GetLevel())
	}
	if !strings.Contains(buf.String(), "unknown log level") {
		t.Errorf("log = %q, expected a warning", buf.String())
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"localhost:2222": "2222",
		"bogus":          "bogus",
	}
	for addr, expected := range tests {
		if got := portOf(addr); got != expected {
			t.Errorf("portOf(%q) = %q, expected %q", addr, got, expected)
		}
	}
}
