package game

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/keyquest/internal/engine"
	"github.com/verte-zerg/keyquest/internal/model"
	"github.com/verte-zerg/keyquest/internal/stats"
)

// Lesson types the words of a story lesson in order. A wrong letter keeps
// the cursor in place so the child can retry it.
type Lesson struct {
	session         *engine.Session
	matcher         *engine.Matcher
	lesson          model.Lesson
	mistakesPerLife int
}

// NewLesson builds an idle lesson.
func NewLesson(v LessonVariant, deps Deps) (*Lesson, error) {
	if len(v.Lesson.Words) == 0 {
		return nil, fmt.Errorf("lesson %s has no words", v.Lesson.ID())
	}
	l := &Lesson{
		session:         newSession(deps, model.ModeLesson, v.Lesson.ID(), deps.Config.LessonDuration),
		matcher:         engine.NewMatcher(engine.NewSequentialWords(v.Lesson.Words), engine.HoldCursor),
		lesson:          v.Lesson,
		mistakesPerLife: deps.Config.MistakesPerLife,
	}
	l.session.SetSummary(l.summary)
	return l, nil
}

// Start implements Game.
func (l *Lesson) Start() {
	l.session.Start()
}

// Session implements Game.
func (l *Lesson) Session() *engine.Session {
	return l.session
}

// Matcher implements Typist.
func (l *Lesson) Matcher() *engine.Matcher {
	return l.matcher
}

// Lesson returns the lesson definition.
func (l *Lesson) Lesson() model.Lesson {
	return l.lesson
}

// Definition returns the meaning of the current word, if the lesson has one.
func (l *Lesson) Definition() string {
	word := l.matcher.CurrentWord()
	if def, ok := l.lesson.Definitions[word]; ok {
		return def
	}
	return l.lesson.Definitions[strings.ToLower(word)]
}

// Progress returns the share of words completed, 0-100.
func (l *Lesson) Progress() float64 {
	return float64(l.matcher.WordIndex()) / float64(l.matcher.Total()) * 100
}

// Type implements Typist.
func (l *Lesson) Type(r rune) engine.Outcome {
	if !l.session.Active() {
		return engine.Outcome{Ignored: true}
	}
	out := l.matcher.Consume(r)
	if out.Ignored {
		return out
	}
	if !out.Correct && l.mistakesPerLife > 0 && l.matcher.Mistakes()%l.mistakesPerLife == 0 {
		l.session.Clock().LoseLife(1)
	}
	if out.SequenceDone {
		l.session.End(engine.EndCompleted)
	}
	return out
}

func (l *Lesson) summary() model.Result {
	speed := stats.Speed(l.matcher.WordsCompleted(), l.session.Elapsed().Milliseconds())
	acc := stats.Accuracy(l.matcher.Correct(), l.matcher.Attempts())
	return model.Result{
		Score:          speed,
		Speed:          speed,
		Accuracy:       acc,
		Stars:          stats.Stars(acc),
		WordsCompleted: l.matcher.WordsCompleted(),
		Won:            l.matcher.Done(),
		Letters:        l.matcher.LetterStats(),
	}
}
