// Package tui provides the Bubble Tea host for practice sessions.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keyquest/internal/engine"
	"github.com/verte-zerg/keyquest/internal/game"
	"github.com/verte-zerg/keyquest/internal/logger"
)

// maxFrameLag caps how much session time a single late frame may advance.
const maxFrameLag = 4

type frameMsg time.Time

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Model drives one game: frames advance the scheduler, keys go to the game.
type Model struct {
	game      game.Game
	sched     *engine.Scheduler
	frame     time.Duration
	lastFrame time.Time
	log       *slog.Logger

	input textinput.Model

	width  int
	height int
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	retriedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8A33D"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7DC4E4"))
	storyStyle       = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#B4B4B4"))
	fieldStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4A4A4A"))
	glyphStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5D76E"))
	targetGlyphStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#52C41A"))
	playerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7DC4E4"))
	opponentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7A45"))
)

// NewModel starts g and wraps it for Bubble Tea. frame is the real-time
// interval between scheduler advances.
func NewModel(g game.Game, frame time.Duration) *Model {
	m := &Model{
		game:  g,
		sched: g.Session().Scheduler(),
		frame: frame,
		log:   logger.With("component", "tui", "mode", g.Session().Mode().String()),
		input: newWordInput(),
	}
	g.Start()
	return m
}

func newWordInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "Word: "
	input.Placeholder = "type the treasure word"
	input.CharLimit = 32
	input.Cursor.SetMode(cursor.CursorBlink)
	input.Focus()
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameCmd(m.frame)}
	if _, ok := m.game.(*game.TreasureHunt); ok {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case frameMsg:
		return m, m.handleFrame(time.Time(msg))
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if _, ok := m.game.(*game.TreasureHunt); ok && m.game.Session().Active() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m *Model) handleFrame(now time.Time) tea.Cmd {
	if !m.game.Session().Active() {
		return nil
	}
	delta := m.frame
	if !m.lastFrame.IsZero() {
		delta = min(max(now.Sub(m.lastFrame), 0), maxFrameLag*m.frame)
	}
	m.lastFrame = now
	m.sched.Advance(delta)
	if !m.game.Session().Active() {
		return nil
	}
	return frameCmd(m.frame)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := m.game.Session()
	switch msg.Type {
	case tea.KeyCtrlC:
		session.End(engine.EndAborted)
		return m, tea.Quit
	case tea.KeyEsc:
		if session.Active() {
			m.log.Info("session aborted by player")
			session.End(engine.EndAborted)
		}
		return m, tea.Quit
	}
	if session.Terminal() {
		switch msg.String() {
		case "enter", "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch g := m.game.(type) {
	case *game.TreasureHunt:
		return m, m.handleHuntKey(g, msg)
	case game.Typist:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				g.Type(r)
			}
		}
	}
	return m, nil
}

func (m *Model) handleHuntKey(h *game.TreasureHunt, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		h.Move(game.Up)
	case tea.KeyDown:
		h.Move(game.Down)
	case tea.KeyLeft:
		h.Move(game.Left)
	case tea.KeyRight:
		h.Move(game.Right)
	case tea.KeyEnter:
		got := h.SubmitWord(m.input.Value())
		m.log.Debug("word submitted", "outcome", got.String())
		if got != game.SubmitOutOfRange {
			m.input.Reset()
		}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if result, ok := m.game.Session().Result(); ok {
		body = renderResult(result)
	} else {
		body = m.renderGame()
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(int(float64(m.width)*0.70), 1)
}
