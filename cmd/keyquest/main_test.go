package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/keyquest/internal/config"
	"github.com/verte-zerg/keyquest/internal/game"
	"github.com/verte-zerg/keyquest/internal/model"
)

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("decode template: %v", err)
	}
	if fc.Session.Lives != nil || fc.Game.SpawnInterval != nil {
		t.Fatalf("expected every key to be commented out")
	}
}

func TestMiniGameVariant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("cat\nco-op\nmoon\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := game.DefaultConfig()
	cfg.WordsFile = path

	v, err := miniGameVariant(model.ModeLetterDrop, cfg)
	if err != nil {
		t.Fatalf("variant: %v", err)
	}
	drop, ok := v.(game.LetterDropVariant)
	if !ok {
		t.Fatalf("expected letter drop variant, got %T", v)
	}
	if len(drop.Pool) != 2 || drop.Pool[0] != "CAT" || drop.Pool[1] != "MOON" {
		t.Fatalf("unexpected pool %v", drop.Pool)
	}

	hunt, err := miniGameVariant(model.ModeTreasureHunt, cfg)
	if err != nil {
		t.Fatalf("variant: %v", err)
	}
	if _, ok := hunt.(game.TreasureHuntVariant); !ok {
		t.Fatalf("expected treasure hunt variant, got %T", hunt)
	}

	if _, err := miniGameVariant(model.ModeLesson, cfg); err == nil {
		t.Fatalf("expected lesson to be rejected")
	}
}

func TestNewRootCmdRegistersCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"lesson", "play", "lessons", "history", "config"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("expected %s command, got %v", name, err)
		}
	}
}
