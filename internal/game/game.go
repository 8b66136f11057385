// Package game layers the practice modes on top of the session engine.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/verte-zerg/keyquest/internal/engine"
	"github.com/verte-zerg/keyquest/internal/generator"
	"github.com/verte-zerg/keyquest/internal/model"
)

const (
	defaultLives           = 3
	defaultLessonDuration  = 5 * time.Minute
	defaultDropDuration    = 60 * time.Second
	defaultHuntDuration    = 120 * time.Second
	defaultFrameInterval   = 50 * time.Millisecond
	defaultSpawnInterval   = 1500 * time.Millisecond
	defaultRaceWords       = 20
	defaultOpponentSpeed   = 15
	defaultMistakesPerLife = 5
)

// DefaultConfig returns the built-in session tuning.
func DefaultConfig() model.Config {
	return model.Config{
		Lives:           defaultLives,
		LessonDuration:  defaultLessonDuration,
		DropDuration:    defaultDropDuration,
		HuntDuration:    defaultHuntDuration,
		FrameInterval:   defaultFrameInterval,
		SpawnInterval:   defaultSpawnInterval,
		RaceWords:       defaultRaceWords,
		OpponentSpeed:   defaultOpponentSpeed,
		MistakesPerLife: defaultMistakesPerLife,
	}
}

// Variant selects a mode and carries only what that mode needs.
type Variant interface {
	Mode() model.Mode
}

// LessonVariant practices the words of one lesson in order.
type LessonVariant struct {
	Lesson model.Lesson
}

// RaceVariant races a paced opponent over words drawn from Pool.
type RaceVariant struct {
	Pool []string
}

// LetterDropVariant catches falling letters to spell words from Pool.
type LetterDropVariant struct {
	Pool []string
	// First words are served before random draws start.
	First []string
}

// TreasureHuntVariant walks a map collecting treasures. A non-empty Layout
// replaces the random batch drawn from Pool.
type TreasureHuntVariant struct {
	Pool   []TreasureSpec
	Layout []model.Treasure
}

// Mode implements Variant.
func (LessonVariant) Mode() model.Mode { return model.ModeLesson }

// Mode implements Variant.
func (RaceVariant) Mode() model.Mode { return model.ModeRace }

// Mode implements Variant.
func (LetterDropVariant) Mode() model.Mode { return model.ModeLetterDrop }

// Mode implements Variant.
func (TreasureHuntVariant) Mode() model.Mode { return model.ModeTreasureHunt }

// Deps are the collaborators shared by every mode.
type Deps struct {
	Config     model.Config
	Scheduler  *engine.Scheduler
	Gen        *generator.Generator
	Sink       engine.ResultSink
	Logger     *slog.Logger
	OnComplete func(model.Result)
}

// Game is a running practice mode.
type Game interface {
	Session() *engine.Session
	Start()
}

// Typist is a Game driven by single keystrokes.
type Typist interface {
	Game
	Type(r rune) engine.Outcome
	Matcher() *engine.Matcher
}

// New builds the game for v.
func New(v Variant, deps Deps) (Game, error) {
	if deps.Gen == nil {
		deps.Gen = generator.New(deps.Config.Seed)
	}
	var (
		g   Game
		err error
	)
	switch v := v.(type) {
	case LessonVariant:
		g, err = NewLesson(v, deps)
	case RaceVariant:
		g, err = NewRace(v, deps)
	case LetterDropVariant:
		g, err = NewLetterDrop(v, deps)
	case TreasureHuntVariant:
		g, err = NewTreasureHunt(v, deps)
	default:
		return nil, fmt.Errorf("unsupported game variant %T", v)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// MiniGameID returns the result id used for a mini-game mode.
func MiniGameID(mode model.Mode) string {
	return "mini-game-" + mode.String()
}

func newSession(deps Deps, mode model.Mode, gameID string, limit time.Duration) *engine.Session {
	return engine.NewSession(engine.Options{
		Mode:       mode,
		GameID:     gameID,
		Limit:      limit,
		Lives:      deps.Config.Lives,
		Scheduler:  deps.Scheduler,
		Sink:       deps.Sink,
		Logger:     deps.Logger,
		OnComplete: deps.OnComplete,
	})
}
