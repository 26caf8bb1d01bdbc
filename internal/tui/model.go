// Package tui is the bubbletea front end: the portfolio sections with the
// terminal, deploy game, command palette and god mode overlays on top.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pipeterm/internal/config"
	"pipeterm/internal/logging"
	"pipeterm/internal/logstream"
	"pipeterm/internal/palette"
	"pipeterm/internal/pipeline"
	"pipeterm/internal/rng"
	"pipeterm/internal/scramble"
	"pipeterm/internal/shell"
	"pipeterm/internal/snake"
)

// section indexes palette.Sections.
type section int

const (
	sectionHero section = iota
	sectionHistory
	sectionBuild
	sectionTest
	sectionDeploy
	sectionStatus
)

func (s section) String() string {
	return palette.Sections[s]
}

// modelMode enumerates which layer receives keys.
type modelMode int

const (
	modeBrowse modelMode = iota
	modeTerminal
	modeGame
	modePalette
	modeGodMode
)

// heroTagline is revealed by the scramble effect on start.
const heroTagline = "BUILD. TEST. DEPLOY. REPEAT."

// Options configures a Model.
type Options struct {
	Owner config.Owner
	Rand  rng.Source
	Clock func() time.Time
	// Logs feeds the background log pane. When nil the model starts its
	// own service and stops it in Close.
	Logs *logstream.Service
	// Opener launches external URLs. When nil links are only displayed.
	Opener func(url string) error
	// Paint feeds decorative frames (sparkline, glyph rain) so repaints
	// never draw from Rand. Defaults to a time-seeded source.
	Paint  rng.Source
	Logger *slog.Logger
}

// Model is the bubbletea model for one viewer. Its pointer fields are
// shared between the copies bubbletea makes, so a Model must only be used
// by one program.
type Model struct {
	owner  config.Owner
	rand   rng.Source
	paint  rng.Source
	clock  func() time.Time
	opener func(string) error
	log    *slog.Logger

	width    int
	height   int
	mode     modelMode
	prevMode modelMode // restored when the palette or god mode closes
	section  section
	quitting bool
	message  string // status line shown under the page

	// terminal overlay
	shell    *shell.Session
	vis      shell.Visibility
	input    textinput.Model
	scroll   viewport.Model
	clockGen int // bumped to cancel the monitor clock
	now      time.Time

	// deploy game
	game    *snake.Engine
	gameGen int // bumped to cancel in-flight game ticks

	// sections
	hero     *scramble.Animator
	pulls    []pipeline.Pull
	artifact int
	runner   *pipeline.Runner
	spin     spinner.Model

	// overlays
	menu   *palette.Menu
	query  textinput.Model
	konami *konami

	// background log stream
	logs     *logstream.Service
	ownsLogs bool
	logCh    chan []logstream.Entry
	done     chan struct{}
	unsub    func()
	entries  []logstream.Entry
}

// New builds a model and subscribes it to the log stream.
func New(opts Options) Model {
	if opts.Rand == nil {
		opts.Rand = rng.New(0)
	}
	if opts.Paint == nil {
		opts.Paint = rng.New(0)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.New("tui")
	}

	in := textinput.New()
	in.Prompt = "root@portfolio:~$ "
	in.CharLimit = 256
	in.Placeholder = `try "help"`

	q := textinput.New()
	q.Prompt = "> "
	q.Placeholder = "Type a command or search..."

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPurple)

	m := Model{
		owner:  opts.Owner,
		rand:   opts.Rand,
		paint:  opts.Paint,
		clock:  opts.Clock,
		opener: opts.Opener,
		log:    opts.Logger,
		shell: shell.New(shell.Options{
			Owner:  opts.Owner,
			Rand:   opts.Rand,
			Now:    opts.Clock,
			Logger: opts.Logger.With("session", "tui"),
		}),
		input:  in,
		scroll: viewport.New(76, 12),
		now:    opts.Clock(),
		game:   snake.New(opts.Rand),
		hero:   scramble.New(heroTagline, opts.Rand),
		pulls:  make([]pipeline.Pull, len(pipeline.Artifacts)),
		runner: pipeline.NewRunner(opts.Rand),
		spin:   s,
		menu:   palette.NewMenu(palette.Items(opts.Owner)),
		query:  q,
		konami: &konami{},
		logs:   opts.Logs,
		logCh:  make(chan []logstream.Entry, 1),
		done:   make(chan struct{}),
	}
	if m.logs == nil {
		m.logs = logstream.New(logstream.Options{Rand: opts.Rand, Clock: opts.Clock})
		m.ownsLogs = true
	}
	m.unsub = m.logs.Subscribe(m.pushLogs)
	m.refreshScroll()
	return m
}

// pushLogs keeps only the newest snapshot in logCh.
func (m Model) pushLogs(entries []logstream.Entry) {
	for {
		select {
		case <-m.done:
			return
		case m.logCh <- entries:
			return
		default:
		}
		select {
		case <-m.logCh:
		default:
		}
	}
}

// Close releases the log subscription, stopping the stream if the model
// started it.
func (m Model) Close() {
	m.unsub()
	select {
	case <-m.done:
	default:
		close(m.done)
	}
	if m.ownsLogs {
		m.logs.Stop()
	}
}

// Init implements tea.Model. It starts the hero reveal and the log pane.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		scrambleTick(),
		m.waitForLogs(),
		m.startLogs(),
	)
}

func (m Model) startLogs() tea.Cmd {
	if !m.ownsLogs {
		return nil
	}
	return func() tea.Msg {
		m.logs.Start(contextFor(m.done))
		return nil
	}
}
