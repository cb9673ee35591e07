package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinojump/internal/config"
	"github.com/vovakirdan/dinojump/internal/core"
	"github.com/vovakirdan/dinojump/internal/dino"
	"github.com/vovakirdan/dinojump/internal/storage"
)

// Options configures a game session.
type Options struct {
	Config    config.Config
	Width     int // Terminal columns
	Height    int // Terminal rows
	Store     *storage.Store
	Audio     dino.JumpCue
	Rand      dino.Rand
	Autopilot bool
	Logger    *log.Logger

	// ScreenshotDir defaults to ~/.dinojump/screenshots.
	ScreenshotDir string
}

// frameView keeps the most recent frame presented by the controller.
type frameView struct {
	frame dino.Frame
}

func (v *frameView) Present(f dino.Frame) {
	v.frame = f
}

// Model is the Bubble Tea model for a dinojump session.
type Model struct {
	ctrl   *dino.Controller
	driver *TickDriver
	view   *frameView
	screen *core.Screen
	keys   *KeyMapper
	store  *storage.Store
	pilot  *dino.Autopilot
	cfg    config.Config
	logger *log.Logger

	screenshotDir   string
	quitting        bool
	runSaved        bool // Whether the current game over has been recorded
	wantsScoreboard bool
}

// NewModel creates a new Bubble Tea model and an idle controller.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = filepath.Join(os.Getenv("HOME"), ".dinojump", "screenshots")
	}

	view := &frameView{}
	driver := NewTickDriver(opts.Config.Runtime.FPS)
	ctrl := dino.New(opts.Config.Field(opts.Width, opts.Height), dino.Deps{
		Presenter: view,
		Best:      storage.NewBestKeeper(opts.Store, opts.Config.Storage.BestKey, opts.Logger),
		Audio:     opts.Audio,
		Driver:    driver,
		Rand:      opts.Rand,
		Logger:    opts.Logger,
	})

	m := Model{
		ctrl:          ctrl,
		driver:        driver,
		view:          view,
		screen:        core.NewScreen(opts.Width, opts.Height),
		keys:          NewKeyMapper(),
		store:         opts.Store,
		cfg:           opts.Config,
		logger:        opts.Logger,
		screenshotDir: opts.ScreenshotDir,
	}
	if opts.Autopilot {
		pilot := dino.DefaultAutopilot()
		m.pilot = &pilot
	}
	return m
}

// Init starts the first run right away when the autopilot is playing.
func (m Model) Init() tea.Cmd {
	if m.pilot != nil {
		m.ctrl.Start()
	}
	return m.driver.Next()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.MapKey(msg))

	case tea.MouseMsg:
		return m.handleAction(m.keys.MapMouse(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleAction applies an input action to the controller.
func (m Model) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	phase := m.ctrl.Phase()

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionScreenshot:
		m.saveScreenshot()

	case core.ActionJump:
		m.ctrl.Jump()

	case core.ActionConfirm:
		switch phase {
		case dino.PhaseIdle:
			m.ctrl.Start()
		case dino.PhaseGameOver:
			m.restart()
		}

	case core.ActionRestart:
		if phase == dino.PhaseGameOver {
			m.restart()
		}

	case core.ActionScoreboard:
		if phase != dino.PhaseRunning {
			m.wantsScoreboard = true
			return m, tea.Quit
		}
	}

	return m, m.driver.Next()
}

func (m *Model) restart() {
	m.ctrl.Restart()
	m.runSaved = false
}

// handleResize processes window resize events. The run keeps going on the
// resized field.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.screen.Resize(msg.Width, msg.Height)
	field := m.cfg.Field(msg.Width, msg.Height)
	m.ctrl.Resize(field.Width, field.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.driver.Handle(msg) {
		return m, nil
	}

	if m.pilot != nil && m.pilot.ShouldJump(m.view.frame) {
		m.ctrl.Jump()
	}

	if m.ctrl.Phase() == dino.PhaseGameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	return m, m.driver.Next()
}

// saveRun records the finished run in the history.
func (m *Model) saveRun() {
	if m.store == nil {
		return
	}
	f := m.view.frame
	_, err := m.store.SaveRun(storage.RunRecord{
		Score:     f.Score,
		Ticks:     f.Ticks,
		Autopilot: m.pilot != nil,
	})
	if err != nil {
		m.logger.Warn("cannot save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	DrawFrame(m.screen, m.view.frame)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("dinojump_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.wantsScoreboard {
		return ""
	}
	DrawFrame(m.screen, m.view.frame)
	return RenderScreen(m.screen)
}

// Frame returns the most recently presented frame.
func (m Model) Frame() dino.Frame {
	return m.view.frame
}

// Result describes how a session ended.
type Result struct {
	WantsScoreboard bool
	Best            int
}

// Run starts the Bubble Tea program for one session.
func Run(opts Options) (Result, error) {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Left click jumps
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	m, ok := final.(Model)
	if !ok {
		return Result{}, nil
	}
	return Result{WantsScoreboard: m.wantsScoreboard, Best: m.ctrl.Best()}, nil
}
