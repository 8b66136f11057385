// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/keyquest/internal/model"
)

const sparkChars = " .:-=+*#%@"

const defaultSparkWidth = 40

// Speed returns correct units per minute of elapsed time, rounded.
// Zero elapsed time yields zero.
func Speed(correctUnits int, elapsedMs int64) int {
	if elapsedMs <= 0 {
		return 0
	}
	minutes := float64(elapsedMs) / 60000.0
	return int(math.Round(float64(correctUnits) / minutes))
}

// Accuracy returns the rounded percentage of correct attempts, or 100 when
// nothing was attempted.
func Accuracy(correct, attempts int) int {
	if attempts <= 0 {
		return 100
	}
	return int(math.Round(float64(correct) / float64(attempts) * 100))
}

// Stars grades a lesson by accuracy.
func Stars(accuracy int) int {
	switch {
	case accuracy > 90:
		return 3
	case accuracy > 80:
		return 2
	default:
		return 1
	}
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints totals for the given results.
func RenderSummary(w io.Writer, results []model.ResultAggregate) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalSpeed, totalAcc, totalScore int
	best := 0
	for _, r := range results {
		totalSpeed += r.Speed
		totalAcc += r.Accuracy
		totalScore += r.Score
		best = max(best, r.Speed)
	}
	count := float64(len(results))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(results)),
		fmt.Sprintf("Avg Speed: %.1f", float64(totalSpeed)/count),
		fmt.Sprintf("Best Speed: %d", best),
		fmt.Sprintf("Avg Accuracy: %.1f%%", float64(totalAcc)/count),
		fmt.Sprintf("Total Score: %d", totalScore),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints moving-average sparklines of speed and accuracy, at
// most width points wide. A width of 0 uses the terminal width.
func RenderTrend(w io.Writer, results []model.ResultAggregate, window, width int) error {
	if len(results) == 0 {
		return nil
	}
	if width <= 0 {
		width = terminalWidth() - 12
	}
	width = max(width, 1)
	if len(results) > width {
		results = results[len(results)-width:]
	}
	speeds := make([]float64, len(results))
	accs := make([]float64, len(results))
	for i, r := range results {
		speeds[i] = float64(r.Speed)
		accs[i] = float64(r.Accuracy)
	}
	lines := []string{
		"Trend",
		"Speed    " + Sparkline(MovingAverage(speeds, window)),
		"Accuracy " + Sparkline(MovingAverage(accs, window)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultSparkWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultSparkWidth
	}
	return width
}
