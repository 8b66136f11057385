package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/keyquest/internal/model"
	"github.com/verte-zerg/keyquest/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "keyquest.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		result := model.Result{
			SessionID:  "session-" + string(rune('a'+i)),
			Mode:       model.ModeLesson,
			GameID:     "forest/level-1",
			StartedAt:  start,
			EndedAt:    start.Add(30 * time.Second),
			Speed:      10 + i,
			Accuracy:   90,
			DurationMs: 30000,
			Letters: []model.LetterStats{
				{Letter: "a", Correct: 5, Incorrect: 0},
				{Letter: "b", Correct: 4, Incorrect: 1},
			},
		}
		if err := st.SubmitResult(ctx, result); err != nil {
			t.Fatalf("submit result: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.HistoryConfig{Mode: "lesson", Last: 2}, 3)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[0].Speed != 11 || report.Results[1].Speed != 12 {
		t.Fatalf("unexpected results: %+v", report.Results)
	}
	if len(report.Letters) != 2 {
		t.Fatalf("expected 2 letter aggregates, got %d", len(report.Letters))
	}
	if len(report.WeakLetters) != 1 || report.WeakLetters[0] != "b" {
		t.Fatalf("unexpected weak letters: %v", report.WeakLetters)
	}
}
