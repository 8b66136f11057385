package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keyquest/internal/engine"
	"github.com/verte-zerg/keyquest/internal/game"
	"github.com/verte-zerg/keyquest/internal/model"
)

const (
	fieldCols = 48
	fieldRows = 16
	barWidth  = 30
)

func (m *Model) renderGame() string {
	var body string
	switch g := m.game.(type) {
	case *game.Lesson:
		body = m.renderLesson(g)
	case *game.Race:
		body = m.renderRace(g)
	case *game.LetterDrop:
		body = m.renderDrop(g)
	case *game.TreasureHunt:
		body = m.renderHunt(g)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.renderFooter())
}

func (m *Model) renderLesson(l *game.Lesson) string {
	lesson := l.Lesson()
	width := m.contentWidth()
	line := wordLineFor(l.Matcher(), lesson.Words)
	parts := []string{
		titleStyle.Render(lesson.Title),
		storyStyle.Width(width).Render(lesson.Story),
		"",
		wrapStyledRunes(buildStyledRunes(line), width),
	}
	if def := l.Definition(); def != "" {
		parts = append(parts, "", footerStyle.Render(l.Matcher().CurrentWord()+": "+def))
	}
	parts = append(parts, "", progressBar("Progress", l.Progress(), correctStyle))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderRace(r *game.Race) string {
	line := wordLine{words: []string{r.Matcher().CurrentWord()}, cursor: r.Matcher().Cursor()}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Typing Race"),
		"",
		progressBar("You     ", r.PlayerProgress(), playerStyle),
		progressBar("Opponent", r.Opponent().Progress(), opponentStyle),
		"",
		renderStyledRunes(buildStyledRunes(line)),
		footerStyle.Render(fmt.Sprintf("Word %d/%d  Opponent speed %d", r.Matcher().WordIndex()+1, r.Matcher().Total(), r.OpponentSpeed())),
	)
}

func (m *Model) renderDrop(d *game.LetterDrop) string {
	g := newGrid(fieldCols, fieldRows)
	expected, _ := d.Matcher().Expected()
	for _, obj := range d.Objects() {
		style := glyphStyle
		if obj.Glyph == expected {
			style = targetGlyphStyle
		}
		g.put(obj.Pos, obj.Glyph, style.Render)
	}
	line := wordLine{words: []string{d.Matcher().CurrentWord()}, cursor: d.Matcher().Cursor()}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Letter Drop"),
		fieldStyle.Render(g.render()),
		"Spell: "+renderStyledRunes(buildStyledRunes(line)),
		footerStyle.Render(fmt.Sprintf("Caught %d  Missed %d", d.Captured(), d.Missed())),
	)
}

func (m *Model) renderHunt(h *game.TreasureHunt) string {
	g := newGrid(fieldCols, fieldRows)
	target, hasTarget := h.Target()
	for _, t := range h.Treasures() {
		switch {
		case t.Discovered:
			g.put(t.Pos, '.', footerStyle.Render)
		case hasTarget && t.ID == target.ID:
			g.put(t.Pos, '$', targetGlyphStyle.Render)
		default:
			g.put(t.Pos, '$', glyphStyle.Render)
		}
	}
	g.put(h.Player(), '@', playerStyle.Render)

	hint := "Walk to the green $ with the arrow keys"
	if hasTarget && h.InRange() {
		hint = fmt.Sprintf("In range! Type %q and press enter", target.Word)
	} else if hasTarget {
		hint = fmt.Sprintf("%s (distance %.0f)", hint, h.Distance())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Treasure Hunt"),
		fieldStyle.Render(g.render()),
		footerStyle.Render(runewidth.Truncate(hint, m.contentWidth(), "…")),
		m.input.View(),
		footerStyle.Render(fmt.Sprintf("Found %d/%d", h.Discovered(), len(h.Treasures()))),
	)
}

// wordLineFor positions the matcher inside a known word sequence.
func wordLineFor(mt *engine.Matcher, words []string) wordLine {
	return wordLine{
		words:   words,
		current: mt.WordIndex(),
		cursor:  mt.Cursor(),
		missed:  mt.Missed,
	}
}

func (m *Model) renderFooter() string {
	session := m.game.Session()
	clock := session.Clock()
	segments := make([]string, 0, 3)
	if clock.Timed() {
		segments = append(segments, "Time "+formatClock(clock.Remaining()))
	} else {
		segments = append(segments, "Time "+formatClock(session.Elapsed()))
	}
	segments = append(segments, "Lives "+strings.Repeat("♥", clock.Lives()))
	segments = append(segments, fmt.Sprintf("Score %d", session.Score()))
	return footerStyle.Render(strings.Join(segments, "  "))
}

func formatClock(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func progressBar(label string, pct float64, style lipgloss.Style) string {
	pct = min(max(pct, 0), 100)
	filled := int(pct / 100 * barWidth)
	bar := style.Render(strings.Repeat("█", filled)) + pendingStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %s %3.0f%%", label, bar, pct)
}

func renderResult(r model.Result) string {
	lines := []string{
		titleStyle.Render(resultHeadline(r)),
		"",
		fmt.Sprintf("Score     %d", r.Score),
		fmt.Sprintf("Speed     %d", r.Speed),
		fmt.Sprintf("Accuracy  %d%%", r.Accuracy),
		fmt.Sprintf("Words     %d", r.WordsCompleted),
	}
	if r.Mode == model.ModeLesson {
		lines = append(lines, "Stars     "+strings.Repeat("★", r.Stars)+strings.Repeat("☆", 3-r.Stars))
	}
	lines = append(lines, "", footerStyle.Render("enter to exit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func resultHeadline(r model.Result) string {
	switch r.Reason {
	case engine.EndTimeUp.String():
		return "Time's up!"
	case engine.EndOutOfLives.String():
		return "Out of lives!"
	case engine.EndOpponentFinished.String():
		return "The opponent crossed the line first"
	case engine.EndAborted.String():
		return "Session stopped"
	}
	if r.Won {
		return "You did it!"
	}
	return "Finished"
}
