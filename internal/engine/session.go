// Package engine implements the real-time typing session core: virtual-time
// scheduling, the countdown and lives clock, keystroke matching and the
// session state machine shared by every game mode.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/keyquest/internal/logger"
	"github.com/verte-zerg/keyquest/internal/model"
)

// CountdownInterval is the period of the session countdown tick.
const CountdownInterval = time.Second

// State is the lifecycle stage of a session.
type State int

const (
	StateIdle State = iota
	StateActive
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// EndReason records why a session became terminal.
type EndReason int

const (
	EndNone EndReason = iota
	EndTimeUp
	EndOutOfLives
	EndCompleted
	EndOpponentFinished
	EndAborted
)

func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndTimeUp:
		return "time-up"
	case EndOutOfLives:
		return "out-of-lives"
	case EndCompleted:
		return "completed"
	case EndOpponentFinished:
		return "opponent-finished"
	case EndAborted:
		return "aborted"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// ResultSink accepts finished session results.
type ResultSink interface {
	SubmitResult(ctx context.Context, result model.Result) error
}

// Options configures a Session.
type Options struct {
	Mode       model.Mode
	GameID     string
	Limit      time.Duration
	Lives      int
	Scheduler  *Scheduler
	Sink       ResultSink
	Logger     *slog.Logger
	OnComplete func(model.Result)
}

// Session is the single owned state of one practice run. Every tick and
// input handler mutates it from the scheduler's goroutine only.
type Session struct {
	id         string
	mode       model.Mode
	gameID     string
	state      State
	clock      *Clock
	sched      *Scheduler
	tokens     []*Token
	sink       ResultSink
	log        *slog.Logger
	onComplete func(model.Result)
	summarize  func() model.Result

	score     int
	startedAt time.Time
	endedAt   time.Time
	reason    EndReason
	result    model.Result
}

// NewSession builds an idle session.
func NewSession(opts Options) *Session {
	sched := opts.Scheduler
	if sched == nil {
		sched = NewScheduler(time.Now())
	}
	log := opts.Logger
	if log == nil {
		log = logger.Get()
	}
	s := &Session{
		id:         uuid.NewString(),
		mode:       opts.Mode,
		gameID:     opts.GameID,
		clock:      NewClock(opts.Limit, opts.Lives),
		sched:      sched,
		sink:       opts.Sink,
		onComplete: opts.OnComplete,
	}
	s.log = log.With("session", s.id, "mode", opts.Mode.String())
	s.clock.onEnd = s.End
	return s
}

// SetSummary installs the function that computes mode-specific metrics
// when the session ends.
func (s *Session) SetSummary(fn func() model.Result) {
	s.summarize = fn
}

// Start moves an idle session to active and starts the countdown.
func (s *Session) Start() bool {
	if s.state != StateIdle {
		return false
	}
	s.state = StateActive
	s.startedAt = s.sched.Now()
	s.Every(CountdownInterval, func() {
		s.clock.Tick(CountdownInterval)
	})
	s.log.Info("session started", "game", s.gameID)
	return true
}

// Every schedules fn while the session is active. The callback is cancelled
// when the session ends and is guarded against firing afterwards.
func (s *Session) Every(interval time.Duration, fn func()) *Token {
	t := s.sched.Schedule(interval, func() {
		if s.state != StateActive {
			return
		}
		fn()
	})
	s.tokens = append(s.tokens, t)
	return t
}

// End makes the session terminal, cancels every scheduled callback and
// publishes the result. Only the first call has any effect.
func (s *Session) End(reason EndReason) {
	if s.state != StateActive {
		return
	}
	s.state = StateTerminal
	s.reason = reason
	s.endedAt = s.sched.Now()
	s.clock.stop()
	for _, t := range s.tokens {
		t.Cancel()
	}
	s.tokens = nil

	var result model.Result
	if s.summarize != nil {
		result = s.summarize()
	}
	result.SessionID = s.id
	result.Mode = s.mode
	result.GameID = s.gameID
	result.Reason = reason.String()
	result.StartedAt = s.startedAt
	result.EndedAt = s.endedAt
	result.DurationMs = s.endedAt.Sub(s.startedAt).Milliseconds()
	s.result = result

	s.log.Info("session ended",
		"reason", reason.String(),
		"score", result.Score,
		"speed", result.Speed,
		"accuracy", result.Accuracy,
	)
	s.submit(result)
	if s.onComplete != nil {
		s.onComplete(result)
	}
}

func (s *Session) submit(result model.Result) {
	if s.sink == nil {
		return
	}
	if err := s.sink.SubmitResult(context.Background(), result); err != nil {
		s.log.Warn("failed to submit result", "error", err)
	}
}

// AddScore adds points while the session is active.
func (s *Session) AddScore(n int) {
	if s.state != StateActive {
		return
	}
	s.score += n
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Mode returns the session mode.
func (s *Session) Mode() model.Mode {
	return s.mode
}

// State returns the lifecycle stage.
func (s *Session) State() State {
	return s.state
}

// Active reports whether ticks and input are accepted.
func (s *Session) Active() bool {
	return s.state == StateActive
}

// Terminal reports whether the session has ended.
func (s *Session) Terminal() bool {
	return s.state == StateTerminal
}

// Clock returns the countdown and lives clock.
func (s *Session) Clock() *Clock {
	return s.clock
}

// Scheduler returns the scheduler driving the session.
func (s *Session) Scheduler() *Scheduler {
	return s.sched
}

// Score returns the points gathered so far.
func (s *Session) Score() int {
	return s.score
}

// Reason returns why the session ended.
func (s *Session) Reason() EndReason {
	return s.reason
}

// Elapsed returns the session time since Start, frozen once terminal.
func (s *Session) Elapsed() time.Duration {
	switch s.state {
	case StateActive:
		return s.sched.Now().Sub(s.startedAt)
	case StateTerminal:
		return s.endedAt.Sub(s.startedAt)
	default:
		return 0
	}
}

// Result returns the published snapshot; ok is false until the session ends.
func (s *Session) Result() (model.Result, bool) {
	if s.state != StateTerminal {
		return model.Result{}, false
	}
	return s.result, true
}
