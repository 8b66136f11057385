package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/verte-zerg/keyquest/internal/engine"
	"github.com/verte-zerg/keyquest/internal/model"
	"github.com/verte-zerg/keyquest/internal/stats"
)

const (
	// CaptureRange is the distance within which a treasure can be claimed.
	CaptureRange = 15.0
	// MoveStep is how far one directional command moves the player.
	MoveStep = 8.0

	minPlayerPos   = 5.0
	maxPlayerPos   = 95.0
	minTreasurePos = 10.0
	maxTreasurePos = 90.0
	treasureCount  = 8
	playerStart    = 50.0
)

// Direction is a single step on the map.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// TreasureSpec is a word and the gems it is worth.
type TreasureSpec struct {
	Word  string `toml:"word"`
	Value int    `toml:"value"`
}

// TreasureWords is the default treasure pool.
var TreasureWords = []TreasureSpec{
	{Word: "gold", Value: 50},
	{Word: "ruby", Value: 75},
	{Word: "pearl", Value: 30},
	{Word: "diamond", Value: 100},
	{Word: "emerald", Value: 80},
	{Word: "sapphire", Value: 90},
	{Word: "crystal", Value: 40},
	{Word: "jewel", Value: 60},
	{Word: "treasure", Value: 120},
	{Word: "coin", Value: 25},
}

// Submission classifies a submitted word.
type Submission int

const (
	SubmitIgnored Submission = iota
	SubmitOutOfRange
	SubmitMismatch
	SubmitCaptured
)

func (s Submission) String() string {
	switch s {
	case SubmitIgnored:
		return "ignored"
	case SubmitOutOfRange:
		return "out-of-range"
	case SubmitMismatch:
		return "mismatch"
	case SubmitCaptured:
		return "captured"
	default:
		return fmt.Sprintf("submission(%d)", int(s))
	}
}

// TreasureHunt moves a player around a map and claims treasures by typing
// their word while close enough. Treasures are claimed in the order they
// were laid out, whatever path the player takes.
type TreasureHunt struct {
	session   *engine.Session
	deps      Deps
	pool      []TreasureSpec
	treasures []model.Treasure
	player    model.Point
	target    int
	correct   int
	attempts  int
}

// NewTreasureHunt builds an idle hunt. The map is laid out on Start.
func NewTreasureHunt(v TreasureHuntVariant, deps Deps) (*TreasureHunt, error) {
	pool := v.Pool
	if len(pool) == 0 {
		pool = TreasureWords
	}
	h := &TreasureHunt{
		session:   newSession(deps, model.ModeTreasureHunt, MiniGameID(model.ModeTreasureHunt), deps.Config.HuntDuration),
		deps:      deps,
		pool:      pool,
		treasures: append([]model.Treasure(nil), v.Layout...),
		player:    model.Point{X: playerStart, Y: playerStart},
		target:    -1,
	}
	h.session.SetSummary(h.summary)
	return h, nil
}

// Start lays out the treasures and starts the session.
func (h *TreasureHunt) Start() {
	if h.session.State() != engine.StateIdle {
		return
	}
	if len(h.treasures) == 0 {
		h.treasures = h.layout()
	}
	h.target = h.nextTarget()
	h.session.Start()
	if h.target < 0 {
		h.session.End(engine.EndCompleted)
	}
}

func (h *TreasureHunt) layout() []model.Treasure {
	out := make([]model.Treasure, 0, treasureCount)
	for i := 0; i < treasureCount; i++ {
		spec := h.pool[h.deps.Gen.Index(len(h.pool))]
		out = append(out, model.Treasure{
			ID:    fmt.Sprintf("treasure-%d", i),
			Word:  spec.Word,
			Value: spec.Value,
			Pos: model.Point{
				X: h.deps.Gen.Between(minTreasurePos, maxTreasurePos),
				Y: h.deps.Gen.Between(minTreasurePos, maxTreasurePos),
			},
		})
	}
	return out
}

func (h *TreasureHunt) nextTarget() int {
	for i, t := range h.treasures {
		if !t.Discovered {
			return i
		}
	}
	return -1
}

// Session implements Game.
func (h *TreasureHunt) Session() *engine.Session {
	return h.session
}

// Treasures returns a copy of the map.
func (h *TreasureHunt) Treasures() []model.Treasure {
	return append([]model.Treasure(nil), h.treasures...)
}

// Player returns the player position.
func (h *TreasureHunt) Player() model.Point {
	return h.player
}

// Target returns the treasure to claim next.
func (h *TreasureHunt) Target() (model.Treasure, bool) {
	if h.target < 0 {
		return model.Treasure{}, false
	}
	return h.treasures[h.target], true
}

// Gems returns the value of the treasures claimed.
func (h *TreasureHunt) Gems() int {
	return h.session.Score()
}

// Discovered returns how many treasures were claimed.
func (h *TreasureHunt) Discovered() int {
	n := 0
	for _, t := range h.treasures {
		if t.Discovered {
			n++
		}
	}
	return n
}

// Move steps the player, clamped to the map.
func (h *TreasureHunt) Move(dir Direction) {
	if !h.session.Active() {
		return
	}
	switch dir {
	case Up:
		h.player.Y = math.Max(minPlayerPos, h.player.Y-MoveStep)
	case Down:
		h.player.Y = math.Min(maxPlayerPos, h.player.Y+MoveStep)
	case Left:
		h.player.X = math.Max(minPlayerPos, h.player.X-MoveStep)
	case Right:
		h.player.X = math.Min(maxPlayerPos, h.player.X+MoveStep)
	}
}

// Distance returns how far the player is from the current target, or +Inf
// when there is none.
func (h *TreasureHunt) Distance() float64 {
	t, ok := h.Target()
	if !ok {
		return math.Inf(1)
	}
	return math.Hypot(h.player.X-t.Pos.X, h.player.Y-t.Pos.Y)
}

// InRange reports whether the current target can be claimed.
func (h *TreasureHunt) InRange() bool {
	return h.Distance() < CaptureRange
}

// SubmitWord tries to claim the current target with text.
func (h *TreasureHunt) SubmitWord(text string) Submission {
	text = strings.TrimSpace(text)
	if !h.session.Active() || text == "" || h.target < 0 {
		return SubmitIgnored
	}
	if !h.InRange() {
		return SubmitOutOfRange
	}
	h.attempts++
	target := &h.treasures[h.target]
	if !strings.EqualFold(text, target.Word) {
		return SubmitMismatch
	}
	h.correct++
	target.Discovered = true
	h.session.AddScore(target.Value)
	h.target = h.nextTarget()
	if h.target < 0 {
		h.session.End(engine.EndCompleted)
	}
	return SubmitCaptured
}

func (h *TreasureHunt) summary() model.Result {
	gems := h.session.Score()
	return model.Result{
		Score:          gems,
		Speed:          gems / scorePerSpeedUnit,
		Accuracy:       stats.Accuracy(h.correct, h.attempts),
		WordsCompleted: h.Discovered(),
		Won:            h.target < 0,
	}
}
