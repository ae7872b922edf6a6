package tui

import (
	"context"
	"time"

	"github.com/Iron-Ham/taskboard/internal/api"
	"github.com/Iron-Ham/taskboard/internal/board"
	"github.com/Iron-Ham/taskboard/internal/comments"
	"github.com/Iron-Ham/taskboard/internal/config"
	"github.com/Iron-Ham/taskboard/internal/logging"
	"github.com/Iron-Ham/taskboard/internal/refresh"
	"github.com/Iron-Ham/taskboard/internal/tui/keymap"
	"github.com/Iron-Ham/taskboard/internal/tui/msg"
	"github.com/Iron-Ham/taskboard/internal/tui/styles"
	"github.com/Iron-Ham/taskboard/internal/tui/view"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Client is everything the TUI needs from the task API.
type Client interface {
	board.API
	comments.API
	refresh.Loader
}

// Pane identifies which pane has keyboard focus in normal mode.
type Pane int

const (
	PaneTasks Pane = iota
	PaneComments
)

// Options configure a Model.
type Options struct {
	// Context bounds every request the model issues. Defaults to
	// context.Background().
	Context context.Context
	Logger  *logging.Logger
	// TUI holds the display settings from the config file.
	TUI config.TUIConfig
	// StatusTTL is how long footer messages stay up. Defaults to msg.StatusTTL.
	StatusTTL time.Duration
}

// Model is the Bubbletea model of the task board.
type Model struct {
	ctx    context.Context
	client Client
	syncer *refresh.Syncer
	logger *logging.Logger
	// baseLogger is handed to the board and panels, which add their own
	// component attribute.
	baseLogger *logging.Logger

	board *board.Board
	// panel is the comment panel of the selected task; nil when no task is open.
	panel *comments.Panel

	keymap *keymap.Keymap
	mode   keymap.Mode
	focus  Pane

	taskCursor    int
	commentCursor int

	titleInput   textinput.Model
	descInput    textarea.Model
	commentInput textarea.Model
	formField    int

	spinner  spinner.Model
	detail   viewport.Model
	markdown *view.Markdown

	timeFormat     string
	renderMarkdown bool

	// pending counts jobs whose SyncedMsg has not arrived yet.
	pending int

	showHelp  bool
	status    string
	statusErr bool
	statusSeq int
	statusTTL time.Duration

	width  int
	height int
	ready  bool
}

// NewModel creates a Model talking to client. Nothing is fetched until Init.
func NewModel(client Client, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	ttl := opts.StatusTTL
	if ttl <= 0 {
		ttl = msg.StatusTTL
	}
	tuiCfg := opts.TUI
	if tuiCfg.TimeFormat == "" {
		tuiCfg.TimeFormat = config.Default().TUI.TimeFormat
	}
	styles.SetActiveTheme(styles.ThemeName(tuiCfg.Theme))

	tracker := refresh.NewTracker()

	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200
	title.Cursor.SetMode(cursor.CursorStatic)

	desc := textarea.New()
	desc.Placeholder = "Description (optional)"
	desc.ShowLineNumbers = false
	desc.SetHeight(3)
	desc.Cursor.SetMode(cursor.CursorStatic)

	comment := textarea.New()
	comment.Placeholder = "Write a comment..."
	comment.ShowLineNumbers = false
	comment.SetHeight(3)
	comment.Cursor.SetMode(cursor.CursorStatic)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.GetActiveTheme().Primary

	m := Model{
		ctx:            ctx,
		client:         client,
		syncer:         refresh.NewSyncer(client, tracker, logger),
		logger:         logger.WithComponent("tui"),
		baseLogger:     logger,
		board:          board.New(client, tracker, logger),
		keymap:         keymap.DefaultKeymap(),
		mode:           keymap.ModeNormal,
		focus:          PaneTasks,
		titleInput:     title,
		descInput:      desc,
		commentInput:   comment,
		spinner:        spin,
		detail:         viewport.New(0, 0),
		markdown:       &view.Markdown{},
		timeFormat:     tuiCfg.TimeFormat,
		renderMarkdown: tuiCfg.RenderMarkdown,
		statusTTL:      ttl,
	}
	m.resize()
	return m
}

// Mode returns the current input mode.
func (m Model) Mode() keymap.Mode { return m.mode }

// Focus returns the focused pane.
func (m Model) Focus() Pane { return m.focus }

// Board returns the task list state.
func (m Model) Board() *board.Board { return m.board }

// Panel returns the comment panel of the open task, or nil.
func (m Model) Panel() *comments.Panel { return m.panel }

// currentTask returns the task under the list cursor.
func (m Model) currentTask() (api.Task, bool) {
	tasks := m.board.Tasks()
	if m.taskCursor < 0 || m.taskCursor >= len(tasks) {
		return api.Task{}, false
	}
	return tasks[m.taskCursor], true
}

// currentComment returns the comment under the comment cursor.
func (m Model) currentComment() (api.Comment, bool) {
	if m.panel == nil {
		return api.Comment{}, false
	}
	list := m.panel.Comments()
	if m.commentCursor < 0 || m.commentCursor >= len(list) {
		return api.Comment{}, false
	}
	return list[m.commentCursor], true
}

// clampCursors keeps both cursors inside their lists after a reload.
func (m *Model) clampCursors() {
	m.taskCursor = clamp(m.taskCursor, len(m.board.Tasks()))
	if m.panel == nil {
		m.commentCursor = 0
		return
	}
	m.commentCursor = clamp(m.commentCursor, len(m.panel.Comments()))
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
