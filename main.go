// pipeterm renders a DevOps portfolio as a terminal UI, locally or over
// SSH, and serves its command interpreter over HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pipeterm/internal/config"
	"pipeterm/internal/logging"
	"pipeterm/internal/rng"
	"pipeterm/internal/tui"
)

var (
	envFile   string
	logFile   string
	seed      int64
	logCloser io.Closer
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeterm",
		Short: "A DevOps portfolio you can ssh into",
		Long: `pipeterm renders a portfolio as a terminal UI.

Usage modes:
  pipeterm              Run the UI in this terminal
  pipeterm serve ssh    Serve the UI to ssh clients
  pipeterm serve http   Serve the command interpreter as a JSON API
  pipeterm exec <line>  Run interpreter lines and print the responses`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		RunE: runTUI,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file applied before reading PIPETERM_* settings")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", `Log file (default PIPETERM_LOG_FILE, "" logs to stderr)`)
	cmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed, 0 for time based (default PIPETERM_SEED)")

	cmd.AddCommand(serveCmd(), execCmd())
	return cmd
}

// setup loads configuration, applies flag overrides and installs the
// process logger.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.Load(envFile); err != nil {
		return err
	}
	env := config.Env()
	if cmd.Flags().Changed("log-file") {
		env.LogFile = logFile
	}
	if cmd.Flags().Changed("seed") {
		env.Seed = seed
	}

	closer, err := logging.Setup(logOptions(cmd, env))
	if err != nil {
		return err
	}
	logCloser = closer
	return nil
}

// logOptions sends logs to env.LogFile. With no file, the local UI
// discards them because it owns the terminal; other commands use stderr.
func logOptions(cmd *cobra.Command, env *config.PipetermEnv) logging.Options {
	opts := logging.Options{File: env.LogFile, Level: env.LogLevel}
	if opts.File == "" && cmd == cmd.Root() {
		opts.Stderr = io.Discard
	}
	return opts
}

// runTUI runs the portfolio in the current terminal.
func runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("pipeterm needs an interactive terminal, try: pipeterm exec help")
	}
	env := config.Env()
	log := logging.New("main")

	m := tui.New(tui.Options{
		Owner:  env.Owner,
		Rand:   rng.New(env.Seed),
		Opener: tui.OpenURL,
	})
	defer m.Close()

	log.Info("starting local session")
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running program")
	}
	return nil
}
