package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keyquest/internal/model"
)

const playfieldSize = 100.0

// grid is a character canvas over the 0-100 playfield.
type grid struct {
	cols  int
	rows  int
	cells [][]string
}

func newGrid(cols, rows int) *grid {
	cols = max(cols, 1)
	rows = max(rows, 1)
	cells := make([][]string, rows)
	for i := range cells {
		cells[i] = make([]string, cols)
	}
	return &grid{cols: cols, rows: rows, cells: cells}
}

// cell projects p onto the canvas. Points outside the playfield are hidden.
func (g *grid) cell(p model.Point) (col, row int, ok bool) {
	if p.X < 0 || p.Y < 0 || p.X > playfieldSize || p.Y > playfieldSize {
		return 0, 0, false
	}
	col = min(int(p.X/playfieldSize*float64(g.cols)), g.cols-1)
	row = min(int(p.Y/playfieldSize*float64(g.rows)), g.rows-1)
	return col, row, true
}

// put draws a single-cell glyph at p. Wide glyphs are replaced so columns
// stay aligned.
func (g *grid) put(p model.Point, glyph rune, render func(...string) string) {
	col, row, ok := g.cell(p)
	if !ok {
		return
	}
	if runewidth.RuneWidth(glyph) != 1 {
		glyph = '?'
	}
	g.cells[row][col] = render(string(glyph))
}

func (g *grid) render() string {
	var b strings.Builder
	for i, row := range g.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			if c == "" {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c)
		}
	}
	return b.String()
}
