// Package tui renders a live series of games in the terminal. One decision
// is played per tick; a key plays a thousand games at once.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/copsandrobbers/internal/game"
	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/lox/copsandrobbers/internal/randutil"
)

const (
	// DefaultInterval matches the original cadence of one decision per 700ms.
	DefaultInterval = 700 * time.Millisecond

	// FastForwardGames is how many games the fast-forward key plays.
	FastForwardGames = 1000

	minInterval = 50 * time.Millisecond
	maxInterval = 5 * time.Second
	maxLogLines = 200
)

// Config wires a model to an engine
type Config struct {
	Engine   *game.Engine
	Source   randutil.Source
	Interval time.Duration
	Logger   *log.Logger
}

// TickMsg advances the game by one decision
type TickMsg struct {
	id int
}

// FastForwardMsg carries the state after a fast-forward
type FastForwardMsg struct {
	State game.State
	Games int
	Err   error
}

// Model is the Bubble Tea model for a live series
type Model struct {
	ctx    context.Context
	engine *game.Engine
	state  game.State
	src    randutil.Source
	logger *log.Logger

	interval time.Duration
	tickID   int
	paused   bool
	busy     bool

	keys        keyMap
	help        help.Model
	logViewport viewport.Model
	gameLog     []string

	width    int
	height   int
	quitting bool
	err      error
}

// New creates a model positioned before the first cop placement
func New(ctx context.Context, cfg Config) *Model {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	src := cfg.Source
	if src == nil {
		src = randutil.New(randutil.Seed(0))
	}

	return &Model{
		ctx:         ctx,
		engine:      cfg.Engine,
		state:       cfg.Engine.Start(),
		src:         src,
		logger:      logger.WithPrefix("tui"),
		interval:    interval,
		keys:        defaultKeyMap(),
		help:        help.New(),
		logViewport: viewport.New(10, 5),
	}
}

// Run starts the program and blocks until the user quits or ctx is done
func Run(ctx context.Context, cfg Config) error {
	p := tea.NewProgram(New(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// State returns the current game state
func (m *Model) State() game.State {
	return m.state
}

// Paused reports whether ticking is suspended
func (m *Model) Paused() bool {
	return m.paused
}

// Interval returns the current tick interval
func (m *Model) Interval() time.Duration {
	return m.interval
}

// Log returns the event log, oldest first
func (m *Model) Log() []string {
	return slices.Clone(m.gameLog)
}

// Init starts the tick loop
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	m.tickID++
	id := m.tickID
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{id: id}
	})
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		return m, nil

	case TickMsg:
		// Stale ticks from before a pause or speed change are dropped
		if msg.id != m.tickID || m.paused || m.busy {
			return m, nil
		}
		m.step()
		return m, m.tick()

	case FastForwardMsg:
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
			m.logger.Error("Fast-forward failed", "error", msg.Err)
			return m, nil
		}
		m.state = msg.State
		score := m.state.Score()
		m.addLog(WarningStyle.Render(fmt.Sprintf("Played %d games: cops %d, robber %d",
			msg.Games, score.CopWins, score.RobberWins)))
		// Start the next game straight away
		m.step()
		if m.paused {
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if m.paused || m.busy {
				m.tickID++
				return m, nil
			}
			return m, m.tick()

		case key.Matches(msg, m.keys.Step):
			if m.paused && !m.busy {
				m.step()
			}
			return m, nil

		case key.Matches(msg, m.keys.FastForward):
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.tickID++
			return m, m.fastForward(FastForwardGames)

		case key.Matches(msg, m.keys.Faster):
			return m, m.setInterval(m.interval / 2)

		case key.Matches(msg, m.keys.Slower):
			return m, m.setInterval(m.interval * 2)

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) setInterval(d time.Duration) tea.Cmd {
	m.interval = min(max(d, minInterval), maxInterval)
	if m.paused || m.busy {
		return nil
	}
	return m.tick()
}

// step plays one decision and logs finished games.
func (m *Model) step() {
	m.state = m.engine.Step(m.state, m.src.Float64())
	if m.state.Turn() != game.Over {
		return
	}

	score := m.state.Score()
	robber, _ := m.state.RobberPosition()
	if m.state.Captured() {
		m.addLog(CopStyle.Render(fmt.Sprintf("Game %d: cops caught the robber at %d", score.Games(), robber)))
	} else {
		m.addLog(RobberStyle.Render(fmt.Sprintf("Game %d: robber escaped at %d", score.Games(), robber)))
	}
}

func (m *Model) fastForward(games int) tea.Cmd {
	ctx, engine, state, src := m.ctx, m.engine, m.state, m.src
	return func() tea.Msg {
		next, err := engine.Advance(ctx, state, games, src)
		return FastForwardMsg{State: next, Games: games, Err: err}
	}
}

func (m *Model) addLog(line string) {
	m.gameLog = append(m.gameLog, line)
	if len(m.gameLog) > maxLogLines {
		m.gameLog = slices.Clone(m.gameLog[len(m.gameLog)-maxLogLines:])
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	g := m.engine.Graph()
	header := HeaderStyle.Render(fmt.Sprintf("Cops and Robbers: %s", g.Name()))

	board := PaneStyle.Render(m.renderBoard(g))
	sidebar := PaneStyle.Render(m.renderSidebar())
	top := lipgloss.JoinHorizontal(lipgloss.Top, board, sidebar)

	logHeight := m.height - lipgloss.Height(header) - lipgloss.Height(top) - 4
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(logHeight, 1)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
	logPane := PaneStyle.Render(m.logViewport.View())

	footer := m.help.View(m.keys)
	if m.err != nil {
		footer = ErrorStyle.Render(m.err.Error()) + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, top, logPane, footer)
}

func (m *Model) renderBoard(g *graph.Graph) string {
	cops := m.state.CopPositions()
	robber, placed := m.state.RobberPosition()

	var b strings.Builder
	for v := 0; v < g.NumVertices(); v++ {
		vertex := graph.Vertex(v)
		n := 0
		for _, c := range cops {
			if c == vertex {
				n++
			}
		}
		hasRobber := placed && robber == vertex

		var marker string
		switch {
		case n > 0 && hasRobber:
			marker = CaughtStyle.Render("X ")
		case n > 1:
			marker = CopStyle.Render(fmt.Sprintf("C%d", n))
		case n == 1:
			marker = CopStyle.Render("C ")
		case hasRobber:
			marker = RobberStyle.Render("R ")
		default:
			marker = InfoStyle.Render("· ")
		}

		neighbors := make([]string, 0, g.Degree(vertex))
		for _, w := range g.Neighbors(vertex) {
			neighbors = append(neighbors, fmt.Sprint(int(w)))
		}
		fmt.Fprintf(&b, "%s %s -> %s\n", VertexStyle.Render(fmt.Sprintf("%2d", v)), marker,
			InfoStyle.Render(strings.Join(neighbors, ", ")))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderSidebar() string {
	cfg := m.engine.Config()
	score := m.state.Score()

	rate := 0.0
	if score.Games() > 0 {
		rate = float64(score.CopWins) / float64(score.Games())
	}

	status := fmt.Sprintf("every %s", m.interval)
	switch {
	case m.busy:
		status = WarningStyle.Render("playing...")
	case m.paused:
		status = WarningStyle.Render("paused")
	}

	lines := []string{
		ScoreStyle.Render(fmt.Sprintf("Cops %d : %d Robber", score.CopWins, score.RobberWins)),
		fmt.Sprintf("Games: %d  Cop rate: %.3f", score.Games(), rate),
		"",
		fmt.Sprintf("%d %s cop(s) vs %s robber", cfg.NumberOfCops, cfg.Cop, cfg.Robber),
		fmt.Sprintf("Phase: %s", m.state.Phase()),
		fmt.Sprintf("Rounds left: %d", m.state.RoundsLeft()),
		fmt.Sprintf("Learned states: %d / %d",
			len(m.state.CopStrategy().Bags()), len(m.state.RobberStrategy().Bags())),
		"",
		status,
	}
	return strings.Join(lines, "\n")
}
