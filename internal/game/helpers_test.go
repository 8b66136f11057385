package game

import (
	"context"
	"testing"
	"time"

	"github.com/verte-zerg/keyquest/internal/engine"
	"github.com/verte-zerg/keyquest/internal/generator"
	"github.com/verte-zerg/keyquest/internal/model"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// scriptedSource replays fixed draws and returns zero once exhausted.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

type memorySink struct {
	results []model.Result
}

func (m *memorySink) SubmitResult(_ context.Context, r model.Result) error {
	m.results = append(m.results, r)
	return nil
}

type harness struct {
	deps      Deps
	sched     *engine.Scheduler
	sink      *memorySink
	completed []model.Result
}

func newHarness(t *testing.T, src generator.Source) *harness {
	t.Helper()
	h := &harness{
		sched: engine.NewScheduler(epoch),
		sink:  &memorySink{},
	}
	h.deps = Deps{
		Config:     DefaultConfig(),
		Scheduler:  h.sched,
		Gen:        generator.FromSource(src),
		Sink:       h.sink,
		OnComplete: func(r model.Result) { h.completed = append(h.completed, r) },
	}
	return h
}

func letterIndex(r rune) int {
	return int(r - 'A')
}
