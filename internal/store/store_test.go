package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/keyquest/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "keyquest.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestSubmitAndListResults(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	start := time.Unix(1000, 0).UTC()

	results := []model.Result{
		{SessionID: "s1", Mode: model.ModeLesson, GameID: "forest/level-1", Speed: 12, Accuracy: 95, Stars: 3},
		{SessionID: "s2", Mode: model.ModeRace, GameID: "mini-game-race", Speed: 20, Accuracy: 80, Won: true},
		{SessionID: "s3", Mode: model.ModeLetterDrop, GameID: "mini-game-letter-drop", Score: 120, Speed: 12, Accuracy: 70},
	}
	for i := range results {
		results[i].StartedAt = start.Add(time.Duration(i) * time.Minute)
		results[i].EndedAt = results[i].StartedAt.Add(30 * time.Second)
		results[i].DurationMs = 30000
		results[i].Letters = []model.LetterStats{{Letter: "a", Correct: 3, Incorrect: 1}}
		if err := st.SubmitResult(ctx, results[i]); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	all, err := st.ListResults(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 results, got %d", len(all))
	}
	if all[0].Mode != model.ModeLesson || all[2].Score != 120 {
		t.Fatalf("unexpected results: %+v", all)
	}

	races, err := st.ListResults(ctx, model.HistoryConfig{Mode: "race"})
	if err != nil {
		t.Fatalf("list races: %v", err)
	}
	if len(races) != 1 || races[0].GameID != "mini-game-race" {
		t.Fatalf("unexpected race results: %+v", races)
	}

	since := start.Add(90 * time.Second)
	recent, err := st.ListResults(ctx, model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent results, got %d", len(recent))
	}
	if recent[0].GameID != "mini-game-race" || recent[1].GameID != "mini-game-letter-drop" {
		t.Fatalf("unexpected recent results: %+v", recent)
	}

	letters, err := st.ListLetterAggregates(ctx, []int64{all[0].ID, all[1].ID})
	if err != nil {
		t.Fatalf("letters: %v", err)
	}
	if len(letters) != 1 || letters[0].Correct != 6 || letters[0].Incorrect != 2 {
		t.Fatalf("unexpected letter aggregates: %+v", letters)
	}
}

func TestSubmitDuplicateSessionFails(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	r := model.Result{SessionID: "dup", Mode: model.ModeTreasureHunt, StartedAt: time.Unix(0, 0), EndedAt: time.Unix(1, 0)}
	if err := st.SubmitResult(ctx, r); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := st.SubmitResult(ctx, r); err == nil {
		t.Fatalf("expected duplicate session id to be rejected")
	}
	all, err := st.ListResults(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected rollback to keep 1 result, got %d", len(all))
	}
}

func TestListResultsOrdersByInstant(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 10, 0, time.UTC)
	plusTwo := time.FixedZone("UTC+2", 2*60*60)

	submissions := []struct {
		id    string
		ended time.Time
	}{
		// 10.5s sorts after 10s even though its text form would not.
		{id: "half", ended: base.Add(500 * time.Millisecond)},
		{id: "whole", ended: base},
		// 13:59:59 at +02:00 is 11:59:59 UTC, the earliest instant.
		{id: "offset", ended: base.Add(-11 * time.Second).In(plusTwo)},
	}
	for _, sub := range submissions {
		r := model.Result{
			SessionID: sub.id,
			Mode:      model.ModeRace,
			GameID:    sub.id,
			StartedAt: sub.ended.Add(-time.Minute),
			EndedAt:   sub.ended,
		}
		if err := st.SubmitResult(ctx, r); err != nil {
			t.Fatalf("submit %s: %v", sub.id, err)
		}
	}

	all, err := st.ListResults(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var order []string
	for _, r := range all {
		order = append(order, r.GameID)
	}
	if strings.Join(order, ",") != "offset,whole,half" {
		t.Fatalf("unexpected order: %v", order)
	}
	if !all[2].EndedAt.Equal(base.Add(500 * time.Millisecond)) {
		t.Fatalf("ended_at round trip lost precision: %v", all[2].EndedAt)
	}

	since := base
	recent, err := st.ListResults(ctx, model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 2 || recent[0].GameID != "whole" {
		t.Fatalf("unexpected results since %v: %+v", since, recent)
	}
}
