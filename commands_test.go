package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipeterm/internal/config"
	"pipeterm/internal/logging"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	config.ResetEnv()
	t.Setenv("PIPETERM_OWNER_NAME", "Test Owner")
	t.Setenv("PIPETERM_OWNER_ROLE", "Engineer")
	t.Setenv("PIPETERM_REPO_URL", "https://github.com/owner/pipeterm")
	t.Cleanup(config.ResetEnv)

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	base := []string{
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--log-file", filepath.Join(t.TempDir(), "pipeterm.log"),
	}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestExecPrintsTranscript(t *testing.T) {
	out, err := run(t, "exec", "whoami", "  about ", "", "bogus")
	require.NoError(t, err)

	want := strings.Join([]string{
		"> whoami",
		"root",
		"> about",
		"Test Owner: Engineer specializing in robust infrastructure.",
		"> bogus",
		"Command not found: bogus",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestExecNotesEffects(t *testing.T) {
	out, err := run(t, "exec", "repo", "htop", "exit")
	require.NoError(t, err)

	assert.Contains(t, out, "[open_url https://github.com/owner/pipeterm]")
	assert.Contains(t, out, "Starting session...\n[open_monitor]")
	assert.True(t, strings.HasSuffix(out, "> exit\n[close]\n"), out)
}

func TestExecJSON(t *testing.T) {
	out, err := run(t, "--seed", "3", "exec", "--json", "pwd", "clear", "ping not a host")
	require.NoError(t, err)

	var got []execResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []execResult{
		{Input: "pwd", Lines: []string{"/root/portfolio"}, Effect: "none"},
		{Input: "clear", Lines: []string{}, Effect: "clear"},
		{Input: "ping not a host", Lines: []string{"ping: not a host: Name or service not known"}, Effect: "none"},
	}, got)
}

func TestExecSharesOneSession(t *testing.T) {
	out, err := run(t, "--seed", "9", "exec", "ping example.com", "ping example.com")
	require.NoError(t, err)

	var ips []string
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, "64 bytes from ") && strings.Contains(l, "icmp_seq=1 ") {
			ips = append(ips, strings.TrimSuffix(strings.Fields(l)[3], ":"))
		}
	}
	require.Len(t, ips, 2)
	assert.Equal(t, ips[0], ips[1])
}

func TestExecNeedsArgs(t *testing.T) {
	_, err := run(t, "exec")
	assert.Error(t, err)
}

func TestRootNeedsTerminal(t *testing.T) {
	_, err := run(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestLogOptions(t *testing.T) {
	root := rootCmd()
	exec, _, err := root.Find([]string{"exec"})
	require.NoError(t, err)

	env := &config.PipetermEnv{LogLevel: "debug"}
	assert.Equal(t, logging.Options{Level: "debug", Stderr: io.Discard}, logOptions(root, env))
	assert.Equal(t, logging.Options{Level: "debug"}, logOptions(exec, env))

	env.LogFile = "/tmp/pipeterm.log"
	assert.Equal(t, logging.Options{File: "/tmp/pipeterm.log", Level: "debug"}, logOptions(root, env))
}
