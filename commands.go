package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gliderlabs/ssh"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pipeterm/internal/config"
	"pipeterm/internal/httpapi"
	"pipeterm/internal/logging"
	"pipeterm/internal/rng"
	"pipeterm/internal/shell"
	"pipeterm/internal/sshserver"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a server",
	}
	cmd.AddCommand(serveSSHCmd(), serveHTTPCmd())
	return cmd
}

func serveSSHCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve the UI to ssh clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := config.Env()
			if cmd.Flags().Changed("addr") {
				env.SSHAddr = addr
			}
			srv, err := sshserver.New(sshserver.Config{
				Addr:        env.SSHAddr,
				HostKeyPath: env.HostKeyPath,
				Owner:       env.Owner,
				Seed:        env.Seed,
				Logger:      logging.New("ssh"),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			fmt.Fprintf(cmd.OutOrStdout(), "%s ssh -p <port> %s\n", color.CyanString("pipeterm listening:"), env.SSHAddr)

			select {
			case err := <-errc:
				if errors.Is(err, ssh.ErrServerClosed) {
					return nil
				}
				return errors.Wrap(err, "ssh server")
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return errors.Wrap(err, "shutting down ssh server")
				}
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default PIPETERM_SSH_ADDR)")
	return cmd
}

func serveHTTPCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the command interpreter as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := config.Env()
			if cmd.Flags().Changed("addr") {
				env.HTTPAddr = addr
			}
			srv := httpapi.New(httpapi.Config{
				Owner:  env.Owner,
				TTL:    env.SessionTTL,
				Seed:   env.Seed,
				Logger: logging.New("http"),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.OutOrStdout(), "%s http://%s/api\n", color.CyanString("pipeterm listening:"), env.HTTPAddr)
			return srv.ListenAndServe(ctx, env.HTTPAddr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default PIPETERM_HTTP_ADDR)")
	return cmd
}

type execResult struct {
	Input  string   `json:"input"`
	Lines  []string `json:"lines"`
	Effect string   `json:"effect"`
	URL    string   `json:"url,omitempty"`
}

func execCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "exec <line>...",
		Short: "Run lines through one interpreter session and print the responses",
		Example: `  pipeterm exec whoami "ping example.com"
  pipeterm exec --json "ls -a"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := config.Env()
			sh := shell.New(shell.Options{
				Owner:  env.Owner,
				Rand:   rng.New(env.Seed),
				Logger: logging.New("exec"),
			})
			out := cmd.OutOrStdout()

			results := make([]execResult, 0, len(args))
			for _, line := range args {
				res := sh.Execute(line)
				if asJSON {
					lines := res.Lines
					if lines == nil {
						lines = []string{}
					}
					results = append(results, execResult{
						Input:  strings.TrimSpace(line),
						Lines:  lines,
						Effect: res.Effect.String(),
						URL:    res.URL,
					})
					continue
				}
				printResult(out, line, res)
			}

			if asJSON {
				data, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return errors.Wrap(err, "encoding results")
				}
				fmt.Fprintln(out, string(data))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

// printResult writes the echo and response the way the terminal shows
// them. Effects with no text of their own are noted in brackets.
func printResult(w io.Writer, line string, res shell.Result) {
	input := strings.TrimSpace(line)
	if input == "" {
		return
	}
	fmt.Fprintf(w, "%s%s\n", color.GreenString("> "), input)
	for _, l := range res.Lines {
		fmt.Fprintln(w, l)
	}
	switch res.Effect {
	case shell.EffectNone:
	case shell.EffectOpenURL:
		fmt.Fprintln(w, color.HiBlackString("[%s %s]", res.Effect, res.URL))
	default:
		fmt.Fprintln(w, color.HiBlackString("[%s]", res.Effect))
	}
}
