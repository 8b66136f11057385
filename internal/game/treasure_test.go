package game

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keyquest/internal/engine"
	"github.com/verte-zerg/keyquest/internal/model"
)

func newHunt(t *testing.T, layout []model.Treasure) (*TreasureHunt, *harness) {
	t.Helper()
	h := newHarness(t, &scriptedSource{})
	hunt, err := NewTreasureHunt(TreasureHuntVariant{Layout: layout}, h.deps)
	require.NoError(t, err)
	hunt.Start()
	return hunt, h
}

func TestTreasureHunt_CaptureGold(t *testing.T) {
	hunt, h := newHunt(t, []model.Treasure{
		{ID: "t0", Word: "gold", Pos: model.Point{X: 55, Y: 52}, Value: 50},
		{ID: "t1", Word: "ruby", Pos: model.Point{X: 20, Y: 20}, Value: 75},
	})

	assert.InDelta(t, 5.385, hunt.Distance(), 0.001)
	assert.True(t, hunt.InRange())

	got := hunt.SubmitWord("GOLD ")

	assert.Equal(t, SubmitCaptured, got)
	assert.True(t, hunt.Treasures()[0].Discovered)
	assert.Equal(t, 50, hunt.Gems())
	target, ok := hunt.Target()
	require.True(t, ok)
	assert.Equal(t, "ruby", target.Word)
	assert.True(t, hunt.Session().Active())
	assert.Empty(t, h.completed)
}

func TestTreasureHunt_ProximityBoundary(t *testing.T) {
	hunt, _ := newHunt(t, []model.Treasure{
		{ID: "t0", Word: "coin", Pos: model.Point{X: 50 + 14.999, Y: 50}, Value: 25},
	})
	assert.True(t, hunt.InRange())

	edge, _ := newHunt(t, []model.Treasure{
		{ID: "t0", Word: "coin", Pos: model.Point{X: 65, Y: 50}, Value: 25},
	})
	assert.Equal(t, 15.0, edge.Distance())
	assert.False(t, edge.InRange())
	assert.Equal(t, SubmitOutOfRange, edge.SubmitWord("coin"))
	assert.Zero(t, edge.Gems())
	assert.False(t, edge.Treasures()[0].Discovered)
}

func TestTreasureHunt_MismatchCountsAttemptOnly(t *testing.T) {
	hunt, _ := newHunt(t, []model.Treasure{
		{ID: "t0", Word: "pearl", Pos: model.Point{X: 50, Y: 50}, Value: 30},
	})

	assert.Equal(t, SubmitMismatch, hunt.SubmitWord("peral"))
	assert.Equal(t, SubmitIgnored, hunt.SubmitWord("   "))
	assert.Equal(t, SubmitCaptured, hunt.SubmitWord("pearl"))

	r, ok := hunt.Session().Result()
	require.True(t, ok, "last treasure ends the hunt")
	assert.Equal(t, 50, r.Accuracy)
	assert.Equal(t, 30, r.Score)
	assert.Equal(t, 3, r.Speed)
	assert.True(t, r.Won)
	assert.Equal(t, engine.EndCompleted, hunt.Session().Reason())
}

func TestTreasureHunt_FixedOrderIgnoresNearerTreasure(t *testing.T) {
	hunt, _ := newHunt(t, []model.Treasure{
		{ID: "far", Word: "diamond", Pos: model.Point{X: 90, Y: 90}, Value: 100},
		{ID: "near", Word: "jewel", Pos: model.Point{X: 50, Y: 50}, Value: 60},
	})

	assert.Equal(t, SubmitOutOfRange, hunt.SubmitWord("jewel"))
	for i := 0; i < 5; i++ {
		hunt.Move(Right)
		hunt.Move(Down)
	}
	assert.Equal(t, SubmitCaptured, hunt.SubmitWord("diamond"))
	target, ok := hunt.Target()
	require.True(t, ok)
	assert.Equal(t, "near", target.ID)
}

func TestTreasureHunt_MoveClamps(t *testing.T) {
	hunt, _ := newHunt(t, []model.Treasure{{ID: "t0", Word: "gold", Pos: model.Point{X: 10, Y: 10}, Value: 50}})

	for i := 0; i < 20; i++ {
		hunt.Move(Left)
		hunt.Move(Up)
	}
	assert.Equal(t, model.Point{X: 5, Y: 5}, hunt.Player())

	for i := 0; i < 20; i++ {
		hunt.Move(Right)
		hunt.Move(Down)
	}
	assert.Equal(t, model.Point{X: 95, Y: 95}, hunt.Player())
}

func TestTreasureHunt_RandomLayout(t *testing.T) {
	h := newHarness(t, &scriptedSource{ints: []int{3}, floats: []float64{0.5, 0.5}})
	hunt, err := NewTreasureHunt(TreasureHuntVariant{}, h.deps)
	require.NoError(t, err)
	_, ok := hunt.Target()
	assert.False(t, ok, "map is laid out on start")

	hunt.Start()

	treasures := hunt.Treasures()
	require.Len(t, treasures, 8)
	assert.Equal(t, "diamond", treasures[0].Word)
	assert.Equal(t, model.Point{X: 50, Y: 50}, treasures[0].Pos)
	for _, tr := range treasures {
		assert.GreaterOrEqual(t, tr.Pos.X, 10.0)
		assert.Less(t, tr.Pos.X, 90.0)
		assert.False(t, tr.Discovered)
	}
	assert.Equal(t, SubmitCaptured, hunt.SubmitWord("diamond"))
}

func TestTreasureHunt_TimeUpFreezesInput(t *testing.T) {
	hunt, h := newHunt(t, []model.Treasure{{ID: "t0", Word: "gold", Pos: model.Point{X: 50, Y: 50}, Value: 50}})

	h.sched.Advance(121 * time.Second)

	assert.True(t, hunt.Session().Terminal())
	assert.Equal(t, engine.EndTimeUp, hunt.Session().Reason())
	assert.Equal(t, SubmitIgnored, hunt.SubmitWord("gold"))
	hunt.Move(Up)
	assert.Equal(t, model.Point{X: 50, Y: 50}, hunt.Player())
	require.Len(t, h.completed, 1)
	assert.Equal(t, 100, h.completed[0].Accuracy)
	assert.False(t, math.IsInf(hunt.Distance(), 1))
}
