package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KEYQUEST_"

// EnvConfig maps KEYQUEST_* environment variables.
type EnvConfig struct {
	Lives           int           `env:"LIVES"`
	LessonDuration  time.Duration `env:"LESSON_DURATION"`
	DropDuration    time.Duration `env:"DROP_DURATION"`
	HuntDuration    time.Duration `env:"HUNT_DURATION"`
	RaceDuration    time.Duration `env:"RACE_DURATION"`
	FrameInterval   time.Duration `env:"FRAME_INTERVAL"`
	SpawnInterval   time.Duration `env:"SPAWN_INTERVAL"`
	RaceWords       int           `env:"RACE_WORDS"`
	OpponentSpeed   int           `env:"OPPONENT_SPEED"`
	MistakesPerLife int           `env:"MISTAKES_PER_LIFE"`
	Seed            int64         `env:"SEED"`
	WordsFile       string        `env:"WORDS_FILE"`
	LessonsFile     string        `env:"LESSONS_FILE"`
	LogLevel        string        `env:"LOG_LEVEL"`
}

// ParseEnv loads the overrides and reports which variables were set, keyed
// by name without the prefix.
func ParseEnv() (EnvConfig, map[string]bool, error) {
	var cfg EnvConfig
	present := map[string]bool{}
	opts := env.Options{
		Prefix: EnvPrefix,
		OnSet: func(tag string, value any, isDefault bool) {
			if !isDefault && value != nil && fmt.Sprint(value) != "" {
				present[strings.TrimPrefix(tag, EnvPrefix)] = true
			}
		},
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return EnvConfig{}, nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, present, nil
}

// ApplyEnv overlays the variables present in the environment onto s.
func ApplyEnv(s *Settings, ec EnvConfig, present map[string]bool) {
	g := &s.Game
	has := func(name string) bool { return present[name] }
	if has("LIVES") {
		g.Lives = ec.Lives
	}
	if has("LESSON_DURATION") {
		g.LessonDuration = ec.LessonDuration
	}
	if has("DROP_DURATION") {
		g.DropDuration = ec.DropDuration
	}
	if has("HUNT_DURATION") {
		g.HuntDuration = ec.HuntDuration
	}
	if has("RACE_DURATION") {
		g.RaceDuration = ec.RaceDuration
	}
	if has("FRAME_INTERVAL") {
		g.FrameInterval = ec.FrameInterval
	}
	if has("SPAWN_INTERVAL") {
		g.SpawnInterval = ec.SpawnInterval
	}
	if has("RACE_WORDS") {
		g.RaceWords = ec.RaceWords
	}
	if has("OPPONENT_SPEED") {
		g.OpponentSpeed = ec.OpponentSpeed
	}
	if has("MISTAKES_PER_LIFE") {
		g.MistakesPerLife = ec.MistakesPerLife
	}
	if has("SEED") {
		g.Seed = ec.Seed
	}
	if has("WORDS_FILE") {
		g.WordsFile = ec.WordsFile
	}
	if has("LESSONS_FILE") {
		s.LessonsFile = ec.LessonsFile
	}
	if has("LOG_LEVEL") {
		s.LogLevel = ec.LogLevel
	}
}

// Load resolves defaults, then the TOML file at path, then the environment.
// Command-line flags are applied by the caller on top of the result.
func Load(path string, defaults Settings) (Settings, error) {
	s := defaults
	fc, err := LoadConfig(path)
	if err != nil {
		return Settings{}, err
	}
	if err := ApplyFile(&s, fc); err != nil {
		return Settings{}, err
	}
	ec, present, err := ParseEnv()
	if err != nil {
		return Settings{}, err
	}
	ApplyEnv(&s, ec, present)
	return s, nil
}
