package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/taskboard/internal/api"
	"github.com/Iron-Ham/taskboard/internal/comments"
	"github.com/Iron-Ham/taskboard/internal/config"
	"github.com/Iron-Ham/taskboard/internal/refresh"
	"github.com/Iron-Ham/taskboard/internal/tui/keymap"
	"github.com/Iron-Ham/taskboard/internal/tui/msg"
	"github.com/Iron-Ham/taskboard/internal/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	cancel  context.CancelFunc
}

// New creates a new TUI application
func New(client Client, opts Options) *App {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	opts.Context = ctx

	return &App{
		model:  NewModel(client, opts),
		cancel: cancel,
	}
}

// Run starts the TUI application and blocks until the user quits.
func (a *App) Run() error {
	defer a.cancel()

	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	// Quit cleanly on termination signals so the terminal is restored
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		<-sigChan
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	// Re-read display settings when the config file changes
	if viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(e fsnotify.Event) {
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				return
			}
			cfg, err := config.Load()
			if err != nil {
				a.program.Send(msg.ErrMsg{Err: err})
				return
			}
			a.program.Send(msg.ConfigReloadedMsg{Config: cfg})
		})
		viper.WatchConfig()
	}

	_, err := a.program.Run()

	signal.Stop(sigChan)

	return err
}

// Init starts the first task list load. The board reports itself as
// loading until it lands, which keeps the spinner going.
func (m Model) Init() tea.Cmd {
	return tea.Batch(msg.Sync(m.ctx, m.syncer, m.board.Load()), m.spinner.Tick)
}

// Update handles every message of the event loop.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch v := message.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.ready = true
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeypress(v)

	case msg.SyncedMsg:
		return m.handleSynced(v.Result)

	case msg.StatusMsg:
		cmd := m.setStatus(v.Text, v.IsErr)
		return m, cmd

	case msg.ClearStatusMsg:
		if v.Seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case msg.ConfigReloadedMsg:
		if v.Config != nil {
			m.applyTUIConfig(v.Config.TUI)
		}
		cmd := m.setStatus("Config reloaded", false)
		return m, cmd

	case msg.ErrMsg:
		m.logger.Error("tui error", "error", v.Err.Error())
		cmd := m.setStatus(v.Err.Error(), true)
		return m, cmd

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(v)
		return m, cmd
	}

	return m, nil
}

// run dispatches job and starts the spinner if nothing else is in flight.
func (m *Model) run(job refresh.Job) tea.Cmd {
	idle := !m.busy()
	m.pending++
	cmd := msg.Sync(m.ctx, m.syncer, job)
	if idle {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

// busy reports whether a request is in flight.
func (m Model) busy() bool {
	return m.pending > 0 || m.board.Loading()
}

// handleSynced applies a finished job to the board and the open panel,
// then leaves any form whose work is done.
func (m Model) handleSynced(res refresh.Result) (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.pending--
	}

	m.board.Apply(res)
	if m.panel != nil {
		m.panel.Apply(res)
	}

	// The selected task may have vanished in a reload
	if _, ok := m.board.Selected(); !ok && m.panel != nil {
		m.panel = nil
		m.focus = PaneTasks
	}

	var cmd tea.Cmd
	if res.Err == nil {
		switch {
		case res.Op == refresh.OpCreateTask && m.mode == keymap.ModeNewTask:
			m.titleInput.Reset()
			m.descInput.Reset()
			m.leaveForm()
			m.taskCursor = len(m.board.Tasks()) - 1
			cmd = m.setStatus("Task created", false)
		case res.Op == refresh.OpAddComment && m.mode == keymap.ModeNewComment &&
			m.panel != nil && m.panel.TaskID() == res.TaskID:
			m.commentInput.Reset()
			m.leaveForm()
			m.commentCursor = len(m.panel.Comments()) - 1
		}
	}

	switch m.mode {
	case keymap.ModeEditTask:
		if _, ok := m.board.Draft(); !ok {
			m.leaveForm()
		}
	case keymap.ModeEditComment:
		if m.panel == nil {
			m.leaveForm()
		} else if _, ok := m.panel.Draft(); !ok {
			m.leaveForm()
		}
	case keymap.ModeNewComment:
		if m.panel == nil {
			m.leaveForm()
		}
	}

	m.clampCursors()
	m.refreshDetail()
	return m, cmd
}

// setStatus shows text in the footer until statusTTL passes.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	return msg.ClearStatusAfter(m.statusTTL, m.statusSeq)
}

// applyTUIConfig switches theme and display settings at runtime.
func (m *Model) applyTUIConfig(cfg config.TUIConfig) {
	styles.SetActiveTheme(styles.ThemeName(cfg.Theme))
	m.spinner.Style = styles.GetActiveTheme().Primary
	if cfg.TimeFormat != "" {
		m.timeFormat = cfg.TimeFormat
	}
	m.renderMarkdown = cfg.RenderMarkdown
	m.refreshDetail()
}

// openTask selects task and mounts a comment panel for it.
func (m Model) openTask(task api.Task) (tea.Model, tea.Cmd) {
	if m.panel != nil && m.panel.TaskID() == task.ID {
		m.focus = PaneComments
		return m, nil
	}

	m.board.SelectTask(task)
	m.panel = comments.New(m.client, m.syncer.Tracker(), task.ID, comments.Embedded, m.baseLogger)
	m.panel.ReportTo(m.board)
	if task.Comments != nil {
		m.panel.Seed(task.Comments)
	}
	m.commentCursor = 0
	m.detail.GotoTop()
	m.refreshDetail()
	cmd := m.run(m.panel.Load())
	return m, cmd
}

// closeTask clears the selection and unmounts the comment panel.
func (m *Model) closeTask() {
	m.board.ClearSelection()
	m.panel = nil
	m.focus = PaneTasks
	m.commentCursor = 0
	m.refreshDetail()
}
