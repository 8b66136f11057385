// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/keyquest/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Session SessionConfig `toml:"session"`
	Game    GameConfig    `toml:"game"`
	Log     LogConfig     `toml:"log"`
}

// SessionConfig maps settings shared by every mode.
type SessionConfig struct {
	Lives           *int    `toml:"lives"`
	LessonDuration  *string `toml:"lesson-duration"`
	FrameInterval   *string `toml:"frame-interval"`
	MistakesPerLife *int    `toml:"mistakes-per-life"`
	Seed            *int64  `toml:"seed"`
}

// GameConfig maps mini-game settings.
type GameConfig struct {
	DropDuration  *string `toml:"drop-duration"`
	HuntDuration  *string `toml:"hunt-duration"`
	RaceDuration  *string `toml:"race-duration"`
	SpawnInterval *string `toml:"spawn-interval"`
	RaceWords     *int    `toml:"race-words"`
	OpponentSpeed *int    `toml:"opponent-speed"`
	WordsFile     *string `toml:"words-file"`
	LessonsFile   *string `toml:"lessons-file"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// Settings is the resolved configuration.
type Settings struct {
	Game        model.Config
	LessonsFile string
	LogLevel    string
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ApplyFile overlays the keys present in fc onto s.
func ApplyFile(s *Settings, fc FileConfig) error {
	g := &s.Game
	setInt(&g.Lives, fc.Session.Lives)
	setInt(&g.MistakesPerLife, fc.Session.MistakesPerLife)
	if fc.Session.Seed != nil {
		g.Seed = *fc.Session.Seed
	}
	setInt(&g.RaceWords, fc.Game.RaceWords)
	setInt(&g.OpponentSpeed, fc.Game.OpponentSpeed)
	setString(&g.WordsFile, fc.Game.WordsFile)
	setString(&s.LessonsFile, fc.Game.LessonsFile)
	setString(&s.LogLevel, fc.Log.Level)

	durations := []struct {
		key string
		dst *time.Duration
		src *string
	}{
		{"session.lesson-duration", &g.LessonDuration, fc.Session.LessonDuration},
		{"session.frame-interval", &g.FrameInterval, fc.Session.FrameInterval},
		{"game.drop-duration", &g.DropDuration, fc.Game.DropDuration},
		{"game.hunt-duration", &g.HuntDuration, fc.Game.HuntDuration},
		{"game.race-duration", &g.RaceDuration, fc.Game.RaceDuration},
		{"game.spawn-interval", &g.SpawnInterval, fc.Game.SpawnInterval},
	}
	for _, d := range durations {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}
	return nil
}

// Validate rejects settings no session can run with.
func Validate(cfg model.Config) error {
	switch {
	case cfg.Lives <= 0:
		return fmt.Errorf("lives must be positive")
	case cfg.FrameInterval <= 0:
		return fmt.Errorf("frame interval must be positive")
	case cfg.SpawnInterval <= 0:
		return fmt.Errorf("spawn interval must be positive")
	case cfg.RaceWords <= 0:
		return fmt.Errorf("race words must be positive")
	case cfg.OpponentSpeed <= 0:
		return fmt.Errorf("opponent speed must be positive")
	case cfg.MistakesPerLife < 0:
		return fmt.Errorf("mistakes per life must not be negative")
	case cfg.LessonDuration < 0 || cfg.DropDuration < 0 || cfg.HuntDuration < 0 || cfg.RaceDuration < 0:
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
