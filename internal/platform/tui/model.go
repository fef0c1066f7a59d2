package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/games/dino"
	"github.com/vovakirdan/tui-dino/internal/input"
	"github.com/vovakirdan/tui-dino/internal/storage"
)

// Options configure a Model.
type Options struct {
	FPS         int
	InputHold   time.Duration // Synthetic key release delay between repeats
	RepeatDelay time.Duration // Release delay before the first repeat
	MaxWidth    int           // Playfield letterbox limits; 0 is unlimited
	MaxHeight   int
	Logger      *log.Logger
	Store       *storage.Store // Optional profile store
	Session     string         // Profile session label
	Renderer    *lipgloss.Renderer
}

// heldKey tracks a key the terminal reported down.
type heldKey struct {
	last     time.Time // Last press or repeat
	repeated bool      // Autorepeat has started
}

// Model is the Bubble Tea model hosting one game.
type Model struct {
	game    *dino.Game
	in      *input.State
	opts    Options
	logger  *log.Logger
	palette *Palette
	keys    KeyMap
	help    help.Model
	hint    lipgloss.Style

	window   core.Size // Terminal size minus the help line
	field    core.Rect // Letterboxed playfield inside window
	screen   *core.Screen
	frame    string // Last rendered playfield
	tooSmall error

	held     map[input.Key]heldKey
	quitting bool
}

// NewModel creates a model for a started game.
func NewModel(game *dino.Game, opts Options) *Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Session == "" {
		opts.Session = "local"
	}
	if opts.RepeatDelay < opts.InputHold {
		opts.RepeatDelay = opts.InputHold
	}

	vp := game.Viewport()
	screen, _ := core.NewScreen(vp.W, vp.H)

	h := help.New()
	h.ShowAll = false

	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	return &Model{
		game:    game,
		in:      game.Input(),
		opts:    opts,
		logger:  opts.Logger,
		palette: NewPalette(r),
		keys:    DefaultKeyMap(),
		help:    h,
		hint:    r.NewStyle().Foreground(lipgloss.Color("241")),
		window:  vp,
		field:   core.NewRect(0, 0, vp.W, vp.H),
		screen:  screen,
		held:    make(map[input.Key]heldKey),
	}
}

// Init starts the frame loop.
func (m *Model) Init() tea.Cmd {
	return frameCmd(m.opts.FPS, m.game.Scheduler().Arm())
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg:
		gen := m.game.Scheduler().Resume(time.Now())
		return m, frameCmd(m.opts.FPS, gen)

	case tea.BlurMsg:
		m.game.Scheduler().Pause()
		return m, nil

	case FrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

// handleKey processes keyboard input. Terminals report presses and
// repeats only; the release is synthesised in releaseStale.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.saveProfile()
		return m, tea.Quit
	}

	k, ok := m.keys.Resolve(msg)
	if !ok {
		return m, nil
	}
	m.press(k, time.Now())
	return m, nil
}

// press records a press or an autorepeat of k at now.
func (m *Model) press(k input.Key, now time.Time) {
	_, repeat := m.held[k]
	m.held[k] = heldKey{last: now, repeated: repeat}
	m.in.KeyDown(k)
}

// handleMouse forwards pointer events in playfield coordinates. Presses
// outside the playfield are ignored.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.in.MouseMove(float64(msg.X-m.field.X), float64(msg.Y-m.field.Y))

	switch msg.Action {
	case tea.MouseActionPress:
		if !m.field.Contains(msg.X, msg.Y) {
			return
		}
		if b, ok := mouseButtons[msg.Button]; ok {
			m.in.MouseDown(b)
		}
	case tea.MouseActionRelease:
		// Some terminals do not say which button was released.
		if b, ok := mouseButtons[msg.Button]; ok {
			m.in.MouseUp(b)
			return
		}
		for _, b := range mouseButtons {
			m.in.MouseUp(b)
		}
	}
}

// handleResize letterboxes the playfield into the new terminal size.
func (m *Model) handleResize(width, height int) {
	m.window = core.Size{W: width, H: core.Max(height-1, 0)}
	m.help.Width = width
	m.field = core.Letterbox(m.window, m.opts.MaxWidth, m.opts.MaxHeight)

	vp := core.Size{W: m.field.W, H: m.field.H}
	if err := m.game.SetViewport(vp); err != nil {
		m.logger.Warn("viewport rejected", "width", vp.W, "height", vp.H, "error", err)
		m.tooSmall = err
		return
	}
	if m.tooSmall != nil {
		// The simulation did not run while the playfield was hidden.
		m.game.Scheduler().ResetClock()
		m.tooSmall = nil
	}

	if m.screen == nil {
		m.screen, _ = core.NewScreen(vp.W, vp.H)
	} else {
		m.screen.Resize(vp.W, vp.H)
	}
	m.game.Scheduler().Invalidate()
}

// handleFrame runs one host frame if its request is still current.
func (m *Model) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	sched := m.game.Scheduler()
	if !sched.Accept(msg.Gen) {
		return m, nil
	}

	m.releaseStale(msg.Time)
	if m.tooSmall == nil && m.screen != nil && m.game.Frame(msg.Time, m.screen) {
		m.frame = m.palette.RenderScreen(m.screen)
	}

	return m, frameCmd(m.opts.FPS, sched.Arm())
}

// releaseStale releases keys that have not repeated within the hold time.
// Until the first repeat the longer RepeatDelay applies.
func (m *Model) releaseStale(now time.Time) {
	for k, h := range m.held {
		hold := m.opts.RepeatDelay
		if h.repeated {
			hold = m.opts.InputHold
		}
		if now.Sub(h.last) >= hold {
			m.in.KeyUp(k)
			delete(m.held, k)
		}
	}
}

// saveProfile stores the frame-timing summary of this session.
func (m *Model) saveProfile() {
	if m.opts.Store == nil {
		return
	}
	st := m.game.Scheduler().Stats()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := m.opts.Store.SaveProfile(ctx, storage.Profile{
		Session:   m.opts.Session,
		FPS:       st.FPS,
		UPS:       st.UPS,
		AvgFrame:  st.AvgFrame.Seconds(),
		MaxFrame:  st.MaxFrame.Seconds(),
		Frames:    st.Frames,
		BestScore: m.game.Best(),
	})
	if err != nil {
		m.logger.Warn("could not save profile", "error", err)
	}
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.tooSmall != nil {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nPlease enlarge the window.", m.window.W, m.window.H)
		return lipgloss.Place(m.window.W, m.window.H, lipgloss.Center, lipgloss.Center, msg)
	}

	field := lipgloss.Place(m.window.W, m.window.H, lipgloss.Center, lipgloss.Center, m.frame)

	st := m.game.Scheduler().Stats()
	stats := m.hint.Render(fmt.Sprintf("%d fps · %d ups", st.FPS, st.UPS))
	helpView := m.help.View(m.keys)
	gap := core.Max(m.window.W-lipgloss.Width(helpView)-lipgloss.Width(stats), 1)

	return field + "\n" + helpView + strings.Repeat(" ", gap) + stats
}

// Run starts a Bubble Tea program for game and blocks until it exits.
func Run(game *dino.Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
