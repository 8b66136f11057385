package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keyquest/internal/config"
	"github.com/verte-zerg/keyquest/internal/engine"
	"github.com/verte-zerg/keyquest/internal/game"
	"github.com/verte-zerg/keyquest/internal/logger"
	"github.com/verte-zerg/keyquest/internal/model"
	"github.com/verte-zerg/keyquest/internal/store"
	"github.com/verte-zerg/keyquest/internal/tui"
	"github.com/verte-zerg/keyquest/internal/wordlist"
)

// miniGameVariant builds the variant for a mini-game, using the custom word
// pool when one is configured.
func miniGameVariant(mode model.Mode, cfg model.Config) (game.Variant, error) {
	var pool []string
	if cfg.WordsFile != "" && (mode == model.ModeRace || mode == model.ModeLetterDrop) {
		words, err := wordlist.LoadWords(cfg.WordsFile, wordlist.ASCIILetters)
		if err != nil {
			return nil, fmt.Errorf("failed to load word pool %s: %w", cfg.WordsFile, err)
		}
		pool = words
	}
	switch mode {
	case model.ModeRace:
		return game.RaceVariant{Pool: pool}, nil
	case model.ModeLetterDrop:
		return game.LetterDropVariant{Pool: wordlist.Upper(pool)}, nil
	case model.ModeTreasureHunt:
		return game.TreasureHuntVariant{}, nil
	default:
		return nil, fmt.Errorf("%s is not a mini-game", mode)
	}
}

// runSession wires logging, storage and the scheduler around one game and
// hands the terminal to Bubble Tea until the player leaves.
func runSession(s config.Settings, variant game.Variant) error {
	closeLog, err := openLog(s.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logger.With("mode", variant.Mode().String())

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	g, err := game.New(variant, game.Deps{
		Config:    s.Game,
		Scheduler: engine.NewScheduler(time.Now()),
		Sink:      st,
		Logger:    log,
	})
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	program := tea.NewProgram(tui.NewModel(g, s.Game.FrameInterval), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if result, ok := g.Session().Result(); ok {
		printResult(result)
	}
	return nil
}

func openLog(level string) (func(), error) {
	path := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	logger.Init(level, file)
	return func() {
		if cerr := file.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}, nil
}

func printResult(r model.Result) {
	line := fmt.Sprintf("%s %s: score %d, speed %d, accuracy %d%%", r.Mode, r.Reason, r.Score, r.Speed, r.Accuracy)
	if r.Mode == model.ModeLesson {
		line += fmt.Sprintf(", stars %d", r.Stars)
	}
	logErrf("%s\n", line)
}
