package game

import (
	"fmt"
	"time"

	"github.com/verte-zerg/keyquest/internal/engine"
	"github.com/verte-zerg/keyquest/internal/model"
	"github.com/verte-zerg/keyquest/internal/stats"
)

const (
	// RaceTick is the opponent pacing period.
	RaceTick = 200 * time.Millisecond
	// opponentDivisor converts a speed parameter into progress per tick.
	opponentDivisor = 300
	// opponentRampWords is how many player words raise the opponent speed by one.
	opponentRampWords = 4
	opponentFinish    = 100
)

// RaceWords is the default race word pool.
var RaceWords = []string{
	"speed", "fast", "quick", "rapid", "swift", "zoom", "dash", "rush", "race", "boost",
	"turbo", "lightning", "rocket", "flash", "bolt", "blast", "zoom", "fly", "soar", "sprint",
}

// Opponent is a simulated racer whose progress only grows.
//
// Progress is kept as the sum of applied speed parameters so repeated
// ticks do not accumulate rounding error.
type Opponent struct {
	units int
}

// Advance adds one tick at the given speed parameter.
func (o *Opponent) Advance(speed int) {
	if o.Finished() || speed <= 0 {
		return
	}
	o.units += speed
}

// Progress returns the completion percentage, 0-100.
func (o *Opponent) Progress() float64 {
	return min(float64(o.units)/opponentDivisor, opponentFinish)
}

// Finished reports whether the opponent reached the line.
func (o *Opponent) Finished() bool {
	return o.units >= opponentDivisor*opponentFinish
}

// Race pits the player against an Opponent over a fixed word list. A wrong
// letter restarts the current word.
type Race struct {
	session   *engine.Session
	matcher   *engine.Matcher
	opponent  *Opponent
	baseSpeed int
}

// NewRace builds an idle race over words drawn from the pool.
func NewRace(v RaceVariant, deps Deps) (*Race, error) {
	pool := v.Pool
	if len(pool) == 0 {
		pool = RaceWords
	}
	count := deps.Config.RaceWords
	if count <= 0 {
		return nil, fmt.Errorf("race needs at least one word")
	}
	words := deps.Gen.Words(pool, count)
	r := &Race{
		session:   newSession(deps, model.ModeRace, MiniGameID(model.ModeRace), deps.Config.RaceDuration),
		matcher:   engine.NewMatcher(engine.NewSequentialWords(words), engine.ResetBuffer),
		opponent:  &Opponent{},
		baseSpeed: deps.Config.OpponentSpeed,
	}
	r.session.SetSummary(r.summary)
	return r, nil
}

// Start implements Game.
func (r *Race) Start() {
	if r.session.Start() {
		r.session.Every(RaceTick, r.Tick)
	}
}

// Session implements Game.
func (r *Race) Session() *engine.Session {
	return r.session
}

// Matcher implements Typist.
func (r *Race) Matcher() *engine.Matcher {
	return r.matcher
}

// Opponent returns the simulated racer.
func (r *Race) Opponent() *Opponent {
	return r.opponent
}

// OpponentSpeed returns the current speed parameter, which grows with the
// player's word index.
func (r *Race) OpponentSpeed() int {
	return r.baseSpeed + r.matcher.WordIndex()/opponentRampWords
}

// Tick advances the opponent by one pacing step.
func (r *Race) Tick() {
	if !r.session.Active() {
		return
	}
	r.opponent.Advance(r.OpponentSpeed())
	if r.opponent.Finished() {
		r.session.End(engine.EndOpponentFinished)
	}
}

// PlayerProgress returns the share of words completed, 0-100.
func (r *Race) PlayerProgress() float64 {
	return float64(r.matcher.WordIndex()) / float64(r.matcher.Total()) * 100
}

// Type implements Typist.
func (r *Race) Type(ch rune) engine.Outcome {
	if !r.session.Active() {
		return engine.Outcome{Ignored: true}
	}
	out := r.matcher.Consume(ch)
	if out.SequenceDone {
		r.session.End(engine.EndCompleted)
	}
	return out
}

func (r *Race) summary() model.Result {
	speed := stats.Speed(r.matcher.WordsCompleted(), r.session.Elapsed().Milliseconds())
	return model.Result{
		Score:          speed,
		Speed:          speed,
		Accuracy:       stats.Accuracy(r.matcher.Correct(), r.matcher.Attempts()),
		WordsCompleted: r.matcher.WordsCompleted(),
		Won:            r.PlayerProgress() >= r.opponent.Progress(),
		Letters:        r.matcher.LetterStats(),
	}
}
