package game

import (
	"time"
	"unicode"

	"github.com/verte-zerg/keyquest/internal/engine"
	"github.com/verte-zerg/keyquest/internal/generator"
	"github.com/verte-zerg/keyquest/internal/model"
	"github.com/verte-zerg/keyquest/internal/stats"
)

const (
	// CaptureReward is scored for each falling letter caught.
	CaptureReward = 10
	// WordBonus is scored for each completed word.
	WordBonus = 50

	spawnY    = -5
	floorY    = 100
	spawnMinX = 10
	spawnMaxX = 90
	minFall   = 1
	maxFall   = 3

	scorePerSpeedUnit = 10
)

// DropAlphabet is the set of glyphs that fall.
const DropAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DropWords is the default letter-drop word pool.
var DropWords = []string{"CAT", "DOG", "SUN", "MOON", "STAR", "TREE", "FISH", "BIRD", "CAKE", "BOOK"}

// LetterDrop spawns falling glyphs that are caught by typing the next letter
// of the target word. Each glyph that reaches the floor costs a life.
type LetterDrop struct {
	session  *engine.Session
	matcher  *engine.Matcher
	gen      *generator.Generator
	alphabet []rune
	objects  []model.FallingObject
	nextID   int64
	captured int
	missed   int

	spawnInterval time.Duration
	frameInterval time.Duration
}

// NewLetterDrop builds an idle letter-drop game.
func NewLetterDrop(v LetterDropVariant, deps Deps) (*LetterDrop, error) {
	pool := v.Pool
	first := v.First
	if len(pool) == 0 {
		pool = DropWords
		if len(first) == 0 {
			first = []string{"CAT"}
		}
	}
	d := &LetterDrop{
		session:       newSession(deps, model.ModeLetterDrop, MiniGameID(model.ModeLetterDrop), deps.Config.DropDuration),
		matcher:       engine.NewMatcher(engine.NewRandomWords(deps.Gen, pool, first...), engine.ResetBuffer),
		gen:           deps.Gen,
		alphabet:      []rune(DropAlphabet),
		spawnInterval: deps.Config.SpawnInterval,
		frameInterval: deps.Config.FrameInterval,
	}
	d.session.SetSummary(d.summary)
	return d, nil
}

// Start implements Game.
func (d *LetterDrop) Start() {
	if !d.session.Start() {
		return
	}
	d.session.Every(d.spawnInterval, d.Spawn)
	d.session.Every(d.frameInterval, d.Advance)
}

// Session implements Game.
func (d *LetterDrop) Session() *engine.Session {
	return d.session
}

// Matcher implements Typist.
func (d *LetterDrop) Matcher() *engine.Matcher {
	return d.matcher
}

// Objects returns a copy of the live falling objects.
func (d *LetterDrop) Objects() []model.FallingObject {
	return append([]model.FallingObject(nil), d.objects...)
}

// Captured returns how many objects were caught.
func (d *LetterDrop) Captured() int {
	return d.captured
}

// Missed returns how many objects hit the floor.
func (d *LetterDrop) Missed() int {
	return d.missed
}

// Spawn drops one new glyph from the top of the field.
func (d *LetterDrop) Spawn() {
	if !d.session.Active() {
		return
	}
	d.nextID++
	d.objects = append(d.objects, model.FallingObject{
		ID:    d.nextID,
		Glyph: d.gen.Glyph(d.alphabet),
		Pos:   model.Point{X: d.gen.Between(spawnMinX, spawnMaxX), Y: spawnY},
		Speed: d.gen.Between(minFall, maxFall),
	})
}

// Advance moves every glyph down one frame. Glyphs past the floor are
// removed and each costs a life; nothing moves once the session ends.
func (d *LetterDrop) Advance() {
	if !d.session.Active() {
		return
	}
	kept := d.objects[:0]
	for i, obj := range d.objects {
		if !d.session.Active() {
			kept = append(kept, d.objects[i:]...)
			break
		}
		obj.Pos.Y += obj.Speed
		if obj.Pos.Y > floorY {
			d.missed++
			d.session.Clock().LoseLife(1)
			continue
		}
		kept = append(kept, obj)
	}
	d.objects = kept
}

// Type catches the first falling copy of the expected letter, if any, and
// feeds the keystroke to the matcher either way.
func (d *LetterDrop) Type(r rune) engine.Outcome {
	if !d.session.Active() || !d.matcher.Accepts(r) {
		return engine.Outcome{Ignored: true}
	}
	if expected, ok := d.matcher.Expected(); ok && unicode.ToUpper(r) == unicode.ToUpper(expected) {
		if d.capture(unicode.ToUpper(r)) {
			d.session.AddScore(CaptureReward)
		}
	}
	out := d.matcher.Consume(r)
	if out.WordDone {
		d.session.AddScore(WordBonus)
	}
	return out
}

func (d *LetterDrop) capture(glyph rune) bool {
	for i, obj := range d.objects {
		if obj.Glyph == glyph {
			d.objects = append(d.objects[:i], d.objects[i+1:]...)
			d.captured++
			return true
		}
	}
	return false
}

func (d *LetterDrop) summary() model.Result {
	score := d.session.Score()
	return model.Result{
		Score:          score,
		Speed:          score / scorePerSpeedUnit,
		Accuracy:       stats.Accuracy(d.matcher.Correct(), d.matcher.Attempts()),
		WordsCompleted: d.matcher.WordsCompleted(),
		Letters:        d.matcher.LetterStats(),
	}
}
