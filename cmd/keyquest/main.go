// Package main provides the CLI entrypoint for keyquest.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/keyquest/internal/config"
	"github.com/verte-zerg/keyquest/internal/content"
	"github.com/verte-zerg/keyquest/internal/game"
	"github.com/verte-zerg/keyquest/internal/model"
	"github.com/verte-zerg/keyquest/internal/stats"
	"github.com/verte-zerg/keyquest/internal/store"
)

const (
	defaultWorld       = "jungle"
	defaultLevel       = "level-1"
	defaultCurveWindow = 5
	defaultWeakTop     = 5
	defaultLogLevel    = "info"
)

var (
	flagLives     int
	flagSeed      int64
	flagWordsFile string
	flagLogLevel  string

	lessonWorld string
	lessonLevel string

	historyMode        string
	historySince       string
	historyLast        int
	historyCurveWindow int
	historyWeakTop     int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keyquest",
		Short:         "Typing adventures for young explorers",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagLives, "lives", 0, "starting lives (default from config)")
	flags.Int64Var(&flagSeed, "seed", 0, "random seed, 0 seeds from the clock")
	flags.StringVar(&flagWordsFile, "words-file", "", "custom word pool, one word per line")
	flags.StringVar(&flagLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newLessonCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newLessonsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func defaultSettings() config.Settings {
	return config.Settings{
		Game:        game.DefaultConfig(),
		LessonsFile: config.DefaultLessonsPath(),
		LogLevel:    defaultLogLevel,
	}
}

// loadSettings resolves defaults, config file, environment and flags, in
// increasing precedence.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	s, err := config.Load(config.DefaultConfigPath(), defaultSettings())
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("lives") {
		s.Game.Lives = flagLives
	}
	if flags.Changed("seed") {
		s.Game.Seed = flagSeed
	}
	if flags.Changed("words-file") {
		s.Game.WordsFile = flagWordsFile
	}
	if flags.Changed("log-level") {
		s.LogLevel = flagLogLevel
	}
	if err := config.Validate(s.Game); err != nil {
		return config.Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

func newLessonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Practice a story lesson",
		Args:  cobra.NoArgs,
		RunE:  runLessonCmd,
	}
	cmd.Flags().StringVar(&lessonWorld, "world", defaultWorld, "world id")
	cmd.Flags().StringVar(&lessonLevel, "level", defaultLevel, "level id")
	return cmd
}

func runLessonCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	catalog, err := content.Load(s.LessonsFile)
	if err != nil {
		return fmt.Errorf("failed to load lessons: %w", err)
	}
	lesson, err := catalog.Lesson(cmd.Context(), lessonWorld, lessonLevel)
	if err != nil {
		if errors.Is(err, content.ErrLessonNotFound) {
			logErrf("No lesson %s/%s. Run: keyquest lessons\n", lessonWorld, lessonLevel)
		}
		return err
	}
	return runSession(s, game.LessonVariant{Lesson: lesson})
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "play <race|drop|treasure>",
		Short:     "Play a mini-game",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"race", "drop", "treasure"},
		RunE:      runPlayCmd,
	}
}

func runPlayCmd(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	mode, err := model.ParseMode(args[0])
	if err != nil {
		return err
	}
	variant, err := miniGameVariant(mode, s.Game)
	if err != nil {
		return err
	}
	return runSession(s, variant)
}

func newLessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List worlds and levels",
		Args:  cobra.NoArgs,
		RunE:  runLessonsCmd,
	}
}

func runLessonsCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	catalog, err := content.Load(s.LessonsFile)
	if err != nil {
		return fmt.Errorf("failed to load lessons: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, world := range catalog.Worlds() {
		if _, err := fmt.Fprintf(out, "%s  %s\n", world.ID, world.Title); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		for _, level := range world.Levels {
			if _, err := fmt.Fprintf(out, "  %-10s %s (%d words)\n", level.LevelID, level.Title, len(level.Words)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past results",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyMode, "mode", "", "mode filter (lesson, race, letter-drop, treasure-hunt)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&historyCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&historyWeakTop, "weak-top", defaultWeakTop, "number of weak letters to list")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg := model.HistoryConfig{Last: historyLast}
	if historyMode != "" {
		mode, err := model.ParseMode(historyMode)
		if err != nil {
			return err
		}
		cfg.Mode = mode.String()
	}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(cmd.Context(), st, cfg, historyWeakTop)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Results); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderTrend(out, report.Results, historyCurveWindow, 0); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(report.WeakLetters) > 0 {
		if _, err := fmt.Fprintf(out, "Practice next: %s\n\n", strings.Join(report.WeakLetters, " ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := stats.RenderLetterTable(out, report.Letters); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	d := game.DefaultConfig()
	return fmt.Sprintf(`# keyquest configuration
# Uncomment a value to enable it. KEYQUEST_* environment variables and CLI
# flags override config values.

[session]
# lives = %d                  # Starting lives
# lesson-duration = %q        # Lesson time limit
# frame-interval = %q        # Time between animation frames
# mistakes-per-life = %d      # Lesson mistakes that cost one life, 0 disables
# seed = 0                   # Random seed, 0 seeds from the clock

[game]
# drop-duration = %q          # Letter drop time limit
# hunt-duration = %q        # Treasure hunt time limit
# race-duration = "0s"        # Race time limit, 0 races until someone finishes
# spawn-interval = %q       # Time between falling letters
# race-words = %d             # Words per race
# opponent-speed = %d         # Opponent base speed
# words-file = ""             # Custom word pool for race and letter drop
# lessons-file = %q

[log]
# level = %q
`,
		d.Lives,
		d.LessonDuration.String(),
		d.FrameInterval.String(),
		d.MistakesPerLife,
		d.DropDuration.String(),
		d.HuntDuration.String(),
		d.SpawnInterval.String(),
		d.RaceWords,
		d.OpponentSpeed,
		config.DefaultLessonsPath(),
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
