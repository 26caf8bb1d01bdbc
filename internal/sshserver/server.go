// Package sshserver serves the portfolio TUI over SSH. Every PTY session
// runs its own bubbletea program; sessions with a command and no PTY run
// that one line through the interpreter.
package sshserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gliderlabs/ssh"
	"github.com/pkg/errors"

	"pipeterm/internal/config"
	"pipeterm/internal/logging"
	"pipeterm/internal/rng"
	"pipeterm/internal/shell"
	"pipeterm/internal/tui"
)

type Config struct {
	Addr        string
	HostKeyPath string
	Owner       config.Owner
	// Seed makes every session's randomness reproducible. Zero is random.
	Seed        int64
	IdleTimeout time.Duration
	Logger      *slog.Logger
}

type Server struct {
	cfg    Config
	log    *slog.Logger
	srv    *ssh.Server
	active atomic.Int64
}

// New loads or creates the host key and prepares the listener config.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = logging.New("ssh")
	}
	pemBytes, err := LoadOrGenerateHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	fp, err := Fingerprint(pemBytes)
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, log: cfg.Logger}
	s.srv = &ssh.Server{
		Addr:        cfg.Addr,
		Handler:     s.handle,
		IdleTimeout: cfg.IdleTimeout,
	}
	if err := s.srv.SetOption(ssh.HostKeyPEM(pemBytes)); err != nil {
		return nil, errors.Wrap(err, "installing host key")
	}
	s.log.Info("ssh server configured", "addr", cfg.Addr, "fingerprint", fp)
	return s, nil
}

func (s *Server) ListenAndServe() error {
	s.log.Info("listening", "addr", s.cfg.Addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Serve(l net.Listener) error {
	return s.srv.Serve(l)
}

// Shutdown stops accepting connections and waits for sessions to end or
// ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.srv.Close()
}

// Active is the number of sessions being served.
func (s *Server) Active() int64 {
	return s.active.Load()
}

func (s *Server) handle(sess ssh.Session) {
	s.active.Add(1)
	defer s.active.Add(-1)
	log := s.log.With("user", sess.User(), "remote", sess.RemoteAddr().String())

	pty, winCh, isPty := sess.Pty()
	if !isPty {
		if cmd := sess.Command(); len(cmd) > 0 {
			s.execOnce(sess, strings.Join(cmd, " "), log)
			return
		}
		fmt.Fprintln(sess.Stderr(), "pipeterm needs a terminal, try: ssh -t")
		sess.Exit(1)
		return
	}

	log.Info("session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)
	m := tui.New(tui.Options{
		Owner:  s.cfg.Owner,
		Rand:   rng.New(s.cfg.Seed),
		Logger: log,
	})
	defer m.Close()

	p := tea.NewProgram(m,
		tea.WithInput(sess),
		tea.WithOutput(sess),
		tea.WithAltScreen(),
	)
	go func() {
		for {
			select {
			case w, ok := <-winCh:
				if !ok {
					return
				}
				p.Send(tea.WindowSizeMsg{Width: w.Width, Height: w.Height})
			case <-sess.Context().Done():
				p.Quit()
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error("program exited", "error", err)
	}
	log.Info("session ended")
}

// execOnce serves "ssh host <command>": one line through a fresh
// interpreter, printed without the prompt echo.
func (s *Server) execOnce(sess ssh.Session, line string, log *slog.Logger) {
	sh := shell.New(shell.Options{
		Owner:  s.cfg.Owner,
		Rand:   rng.New(s.cfg.Seed),
		Logger: log,
	})
	res := sh.Execute(line)
	for _, l := range res.Lines {
		fmt.Fprintln(sess, l)
	}
	log.Info("command executed", "name", commandName(line), "effect", res.Effect.String())
}

// commandName is the lowercased first word of line. Arguments stay out of
// the logs.
func commandName(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
