package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	worlds := c.Worlds()
	if len(worlds) != 3 {
		t.Fatalf("expected 3 worlds, got %d", len(worlds))
	}
	if worlds[0].ID != "jungle" || worlds[0].Title != "Jungle Quest" {
		t.Fatalf("unexpected first world: %+v", worlds[0])
	}
	lesson, err := c.Lesson(context.Background(), "jungle", "level-1")
	if err != nil {
		t.Fatalf("lesson: %v", err)
	}
	if lesson.Words[0] != "map" {
		t.Fatalf("expected first word map, got %q", lesson.Words[0])
	}
	if lesson.Definitions["frog"] == "" {
		t.Fatalf("expected frog definition")
	}
	if lesson.ID() != "jungle/level-1" {
		t.Fatalf("unexpected id %q", lesson.ID())
	}
}

func TestLessonNotFound(t *testing.T) {
	c, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	_, err = c.Lesson(context.Background(), "candyland", "level-1")
	if !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

func TestLessonCancelledContext(t *testing.T) {
	c, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Lesson(ctx, "jungle", "level-1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadUserOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessons.toml")
	data := `
[[world]]
id = "jungle"

  [[world.level]]
  id = "level-1"
  title = "Short Door"
  words = ["ant"]

[[world]]
id = "candyland"
title = "Candy Kingdom"

  [[world.level]]
  id = "level-1"
  words = ["cake", "candy"]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	lesson, err := c.Lesson(context.Background(), "jungle", "level-1")
	if err != nil {
		t.Fatalf("lesson: %v", err)
	}
	if len(lesson.Words) != 1 || lesson.Words[0] != "ant" {
		t.Fatalf("expected override words, got %v", lesson.Words)
	}
	worlds := c.Worlds()
	if worlds[0].Title != "Jungle Quest" {
		t.Fatalf("expected title kept, got %q", worlds[0].Title)
	}
	if len(worlds[0].Levels) != 2 {
		t.Fatalf("expected override in place, got %d levels", len(worlds[0].Levels))
	}
	if worlds[len(worlds)-1].ID != "candyland" {
		t.Fatalf("expected candyland appended, got %q", worlds[len(worlds)-1].ID)
	}
	if _, err := c.Lesson(context.Background(), "candyland", "level-1"); err != nil {
		t.Fatalf("candyland: %v", err)
	}
}

func TestLoadMissingUserFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.IDs()) != 5 {
		t.Fatalf("expected 5 lessons, got %d", len(c.IDs()))
	}
}

func TestLoadRejectsEmptyLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessons.toml")
	data := "[[world]]\nid = \"x\"\n[[world.level]]\nid = \"1\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for level without words")
	}
}

func TestLoadRejectsNonLetterWords(t *testing.T) {
	for _, word := range []string{"ice cream", "don't", "r2d2", "snow-man"} {
		path := filepath.Join(t.TempDir(), "lessons.toml")
		data := fmt.Sprintf("[[world]]\nid = \"x\"\n[[world.level]]\nid = \"1\"\nwords = [\"cat\", %q]\n", word)
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, err := Load(path)
		if err == nil {
			t.Fatalf("expected error for word %q", word)
		}
		if !strings.Contains(err.Error(), "must contain only letters") {
			t.Fatalf("unexpected error for %q: %v", word, err)
		}
	}
}
