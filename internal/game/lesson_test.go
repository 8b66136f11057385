package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keyquest/internal/engine"
	"github.com/verte-zerg/keyquest/internal/model"
)

var farmLesson = model.Lesson{
	WorldID: "farm",
	LevelID: "1",
	Title:   "The Farm",
	Words:   []string{"The", "cat"},
	Story:   "The cat sat on the farm.",
	Definitions: map[string]string{
		"cat": "a small furry pet",
	},
}

func newLesson(t *testing.T, h *harness) *Lesson {
	t.Helper()
	l, err := NewLesson(LessonVariant{Lesson: farmLesson}, h.deps)
	require.NoError(t, err)
	l.Start()
	return l
}

func TestLesson_Completes(t *testing.T) {
	h := newHarness(t, &scriptedSource{})
	l := newLesson(t, h)

	h.sched.Advance(30 * time.Second)
	typeWord(l, "The")
	assert.Equal(t, 50.0, l.Progress())
	assert.Equal(t, "a small furry pet", l.Definition())
	typeWord(l, "cat")

	require.True(t, l.Session().Terminal())
	assert.Equal(t, engine.EndCompleted, l.Session().Reason())
	require.Len(t, h.completed, 1)
	r := h.completed[0]
	assert.Equal(t, "farm/1", r.GameID)
	assert.Equal(t, model.ModeLesson, r.Mode)
	assert.Equal(t, 4, r.Speed)
	assert.Equal(t, 100, r.Accuracy)
	assert.Equal(t, 3, r.Stars)
	assert.True(t, r.Won)
	assert.NotEmpty(t, r.Letters)
}

func TestLesson_HoldsCursorOnMistake(t *testing.T) {
	h := newHarness(t, &scriptedSource{})
	l := newLesson(t, h)

	l.Type('t')
	out := l.Type('x')

	assert.False(t, out.Correct)
	assert.Equal(t, 1, l.Matcher().Cursor())
	assert.True(t, l.Matcher().Missed(1))
	l.Type('h')
	assert.Equal(t, 2, l.Matcher().Cursor())
}

func TestLesson_MistakesCostLives(t *testing.T) {
	h := newHarness(t, &scriptedSource{})
	l := newLesson(t, h)

	for i := 0; i < 4; i++ {
		l.Type('z')
	}
	assert.Equal(t, 3, l.Session().Clock().Lives())
	l.Type('z')
	assert.Equal(t, 2, l.Session().Clock().Lives())

	for i := 0; i < 10; i++ {
		l.Type('z')
	}
	require.True(t, l.Session().Terminal())
	assert.Equal(t, engine.EndOutOfLives, l.Session().Reason())
	assert.Equal(t, 0, l.Session().Clock().Lives())

	r, ok := l.Session().Result()
	require.True(t, ok)
	assert.Equal(t, 0, r.Accuracy)
	assert.Equal(t, 1, r.Stars)
	assert.False(t, r.Won)
}

func TestLesson_TimeUp(t *testing.T) {
	h := newHarness(t, &scriptedSource{})
	h.deps.Config.LessonDuration = 10 * time.Second
	l := newLesson(t, h)

	h.sched.Advance(10 * time.Second)

	assert.Equal(t, engine.EndTimeUp, l.Session().Reason())
	assert.True(t, l.Type('t').Ignored)
}

func TestLesson_RequiresWords(t *testing.T) {
	h := newHarness(t, &scriptedSource{})

	_, err := NewLesson(LessonVariant{Lesson: model.Lesson{WorldID: "w", LevelID: "1"}}, h.deps)

	assert.Error(t, err)
}
