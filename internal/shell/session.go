// Package shell implements the scripted command interpreter behind the
// portfolio terminal. A Session owns the scrollback history and the
// hostname to fake-IP memo used by ping; nothing here touches a real
// process, file or network.
package shell

import (
	"log/slog"
	"strings"
	"time"

	"pipeterm/internal/config"
	"pipeterm/internal/logging"
	"pipeterm/internal/rng"
)

// Welcome is the history a fresh session starts with.
var Welcome = []string{
	"Welcome to PipeTerm v1.0.0",
	`Type "help" for available commands.`,
}

// Effect is the side effect a command asks its host to perform.
type Effect int

const (
	EffectNone Effect = iota
	// EffectClear means the history was emptied.
	EffectClear
	// EffectClose hides the terminal.
	EffectClose
	// EffectOpenMonitor shows the fake system monitor.
	EffectOpenMonitor
	// EffectOpenURL opens Result.URL in a new browsing context.
	EffectOpenURL
)

func (e Effect) String() string {
	switch e {
	case EffectClear:
		return "clear"
	case EffectClose:
		return "close"
	case EffectOpenMonitor:
		return "open_monitor"
	case EffectOpenURL:
		return "open_url"
	default:
		return "none"
	}
}

// Result is the outcome of one input line. Lines excludes the "> input"
// echo; the echo lives only in the history.
type Result struct {
	Lines  []string
	Effect Effect
	URL    string
}

// Text joins the response lines the way they are stored in the history.
func (r Result) Text() string {
	return strings.Join(r.Lines, "\n")
}

// Options configures a Session. Zero values get sensible defaults.
type Options struct {
	Owner   config.Owner
	Rand    rng.Source
	Now     func() time.Time
	Started time.Time
	Logger  *slog.Logger
}

// Session is the state of one mounted terminal. It is not safe for
// concurrent use; hosts serialize access.
type Session struct {
	owner   config.Owner
	rand    rng.Source
	now     func() time.Time
	started time.Time
	log     *slog.Logger

	history []string
	hosts   map[string]string // hostname -> fake IPv4, never shrinks
}

// New creates a session whose history holds the welcome banner.
func New(opts Options) *Session {
	s := &Session{
		owner:   opts.Owner,
		rand:    opts.Rand,
		now:     opts.Now,
		started: opts.Started,
		log:     opts.Logger,
		history: append([]string(nil), Welcome...),
		hosts:   map[string]string{},
	}
	if s.rand == nil {
		s.rand = rng.New(0)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.started.IsZero() {
		s.started = s.now()
	}
	if s.log == nil {
		s.log = logging.New("shell")
	}
	return s
}

// Execute runs one line of input. Empty input is a no-op. Every other
// input except clear appends "> input" to the history, and every command
// except clear and exit appends exactly one response entry.
func (s *Session) Execute(raw string) Result {
	input := strings.TrimSpace(raw)
	if input == "" {
		return Result{}
	}
	fields := strings.Fields(input)
	name := strings.ToLower(fields[0])
	args := fields[1:]

	if name == "clear" {
		s.history = nil
		s.log.Debug("command executed", "name", name)
		return Result{Effect: EffectClear}
	}

	s.history = append(s.history, "> "+input)

	var res Result
	if cmd, ok := commands[name]; ok {
		res = cmd.run(s, args)
		s.log.Debug("command executed", "name", name)
	} else {
		res = respond("Command not found: " + name)
		s.log.Debug("unknown command", "name", name)
	}

	if res.Effect != EffectClose {
		s.history = append(s.history, res.Text())
	}
	return res
}

// History returns a copy of the scrollback.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// HostIP reports the memoized fake address for host, if ping has seen it.
func (s *Session) HostIP(host string) (string, bool) {
	ip, ok := s.hosts[host]
	return ip, ok
}

// KnownHosts is the number of memoized hostnames.
func (s *Session) KnownHosts() int {
	return len(s.hosts)
}

// Uptime is the time since the session started.
func (s *Session) Uptime() time.Duration {
	return s.now().Sub(s.started)
}

func respond(lines ...string) Result {
	return Result{Lines: lines}
}
