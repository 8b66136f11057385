// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// Mode identifies the kind of practice session.
type Mode int

const (
	ModeLesson Mode = iota
	ModeRace
	ModeLetterDrop
	ModeTreasureHunt
)

// String returns the stable tag used in storage and result ids.
func (m Mode) String() string {
	switch m {
	case ModeLesson:
		return "lesson"
	case ModeRace:
		return "race"
	case ModeLetterDrop:
		return "letter-drop"
	case ModeTreasureHunt:
		return "treasure-hunt"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a stored or user-supplied tag back to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "lesson":
		return ModeLesson, nil
	case "race":
		return ModeRace, nil
	case "letter-drop", "drop":
		return ModeLetterDrop, nil
	case "treasure-hunt", "treasure":
		return ModeTreasureHunt, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// Config defines session tuning shared by every mode.
type Config struct {
	Lives           int
	LessonDuration  time.Duration
	DropDuration    time.Duration
	HuntDuration    time.Duration
	RaceDuration    time.Duration
	FrameInterval   time.Duration
	SpawnInterval   time.Duration
	RaceWords       int
	OpponentSpeed   int
	MistakesPerLife int
	Seed            int64
	WordsFile       string
}

// Lesson is a story-themed list of words to type.
type Lesson struct {
	WorldID     string
	LevelID     string
	Title       string
	Words       []string
	Story       string
	Definitions map[string]string
}

// ID returns the identifier used when submitting a lesson result.
func (l Lesson) ID() string {
	return l.WorldID + "/" + l.LevelID
}

// Point is a position on the 0-100 playfield.
type Point struct {
	X float64
	Y float64
}

// FallingObject is a glyph dropping down the letter-drop field.
type FallingObject struct {
	ID    int64
	Glyph rune
	Pos   Point
	Speed float64
}

// Treasure is a word hidden on the treasure-hunt map.
type Treasure struct {
	ID         string
	Word       string
	Pos        Point
	Value      int
	Discovered bool
}

// LetterStats stores per-letter keystroke counts for a session.
type LetterStats struct {
	Letter    string
	Correct   int
	Incorrect int
}

// Result is the immutable snapshot published when a session ends.
type Result struct {
	SessionID      string
	Mode           Mode
	GameID         string
	Score          int
	Speed          int
	Accuracy       int
	Stars          int
	WordsCompleted int
	Won            bool
	Reason         string
	StartedAt      time.Time
	EndedAt        time.Time
	DurationMs     int64
	Letters        []LetterStats
}

// HistoryConfig defines filters for the history report.
type HistoryConfig struct {
	Mode  string
	Since *time.Time
	Last  int
}

// ResultAggregate summarizes a stored result for reporting.
type ResultAggregate struct {
	ID         int64
	Mode       Mode
	GameID     string
	EndedAt    time.Time
	Score      int
	Speed      int
	Accuracy   int
	DurationMs int64
}

// LetterAggregate aggregates letter stats across sessions.
type LetterAggregate struct {
	Letter    string
	Correct   int
	Incorrect int
}
