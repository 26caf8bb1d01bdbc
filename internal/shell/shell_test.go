package shell

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipeterm/internal/config"
	"pipeterm/internal/rng"
)

var testOwner = config.Owner{
	Name:    "Test Owner",
	Role:    "Platform Engineer",
	Email:   "owner@example.com",
	GitHub:  "owner",
	RepoURL: "https://github.com/owner/pipeterm",
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestSession(t *testing.T, src rng.Source) (*Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 11, 27, 14, 22, 0, 0, time.UTC)}
	if src == nil {
		src = rng.New(1)
	}
	s := New(Options{Owner: testOwner, Rand: src, Now: clock.Now})
	return s, clock
}

func TestNewSessionStartsWithWelcome(t *testing.T) {
	s, _ := newTestSession(t, nil)
	assert.Equal(t, Welcome, s.History())
}

func TestUnknownCommand(t *testing.T) {
	s, _ := newTestSession(t, nil)
	for input, name := range map[string]string{
		"foo":             "foo",
		"FooBar baz qux":  "foobar",
		"  DeployNow  ":   "deploynow",
		"contact":         "contact",
		"./run.sh --fast": "./run.sh",
	} {
		res := s.Execute(input)
		assert.Equal(t, []string{"Command not found: " + name}, res.Lines, input)
		assert.Equal(t, EffectNone, res.Effect)
	}
}

func TestEmptyInputIsNoop(t *testing.T) {
	s, _ := newTestSession(t, nil)
	before := s.History()
	res := s.Execute("   \t ")
	assert.Empty(t, res.Lines)
	assert.Equal(t, before, s.History())
}

func TestEchoThenResponse(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Execute("clear")
	require.Empty(t, s.History())

	for _, input := range []string{"help", "whoami", "ping 8.8.8.8", "cat nope", "rm -rf /", "mkdir x", "nvim", "repo", "neofetch"} {
		before := len(s.History())
		res := s.Execute(input)
		h := s.History()
		require.Len(t, h, before+2, input)
		assert.Equal(t, "> "+input, h[before])
		assert.Equal(t, res.Text(), h[before+1])
	}
}

func TestEchoUsesTrimmedInput(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Execute("clear")
	s.Execute("   whoami   ")
	assert.Equal(t, []string{"> whoami", "root"}, s.History())
}

func TestClearAppendsNothing(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Execute("whoami")
	res := s.Execute("CLEAR")
	assert.Equal(t, EffectClear, res.Effect)
	assert.Empty(t, s.History())
	s.Execute("whoami")
	assert.Equal(t, []string{"> whoami", "root"}, s.History())
}

func TestExitAppendsOnlyEcho(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Execute("clear")
	res := s.Execute("exit")
	assert.Equal(t, EffectClose, res.Effect)
	assert.Empty(t, res.Lines)
	assert.Equal(t, []string{"> exit"}, s.History())
}

func TestMonitorAliases(t *testing.T) {
	s, _ := newTestSession(t, nil)
	for _, name := range []string{"tmux", "nvim", "vim", "vi", "htop", "btop", "HTOP"} {
		res := s.Execute(name)
		assert.Equal(t, EffectOpenMonitor, res.Effect, name)
		assert.Equal(t, []string{"Starting session..."}, res.Lines)
	}
}

func TestRepoOpensURL(t *testing.T) {
	s, _ := newTestSession(t, nil)
	res := s.Execute("repo")
	assert.Equal(t, EffectOpenURL, res.Effect)
	assert.Equal(t, testOwner.RepoURL, res.URL)
	assert.Len(t, res.Lines, 1)
}

func TestEchoRejoinsArguments(t *testing.T) {
	s, _ := newTestSession(t, nil)
	res := s.Execute("ECHO   Hello    World  ")
	assert.Equal(t, []string{"Hello World"}, res.Lines)
	assert.Equal(t, []string{""}, s.Execute("echo").Lines)
}

func TestCat(t *testing.T) {
	s, _ := newTestSession(t, nil)

	res := s.Execute("cat contact.md")
	assert.Equal(t, []string{"Email: owner@example.com | GitHub: @owner"}, res.Lines)

	assert.Contains(t, s.Execute("cat secret_key.pem").Text(), "BEGIN RSA PRIVATE KEY")
	assert.NotEmpty(t, s.Execute("cat secret_key.info").Text())

	assert.Equal(t, []string{"cat: resume.txt: No such file or directory"}, s.Execute("cat resume.txt").Lines)
	assert.Equal(t, []string{"cat: : No such file or directory"}, s.Execute("cat").Lines)
	assert.Equal(t, []string{"cat: .config: No such file or directory"}, s.Execute("cat .config").Lines)
}

func TestLS(t *testing.T) {
	s, _ := newTestSession(t, nil)
	tests := []struct {
		input string
		want  []string
	}{
		{"ls", []string{"contact.md  secret_key.pem  secret_key.info"}},
		{"ls -a", []string{".  ..  .config  contact.md  secret_key.pem  secret_key.info"}},
		{"ls -la", []string{".  ..  .config  contact.md  secret_key.pem  secret_key.info"}},
		{"ls -l", []string{"contact.md  secret_key.pem  secret_key.info"}},
		{"ls *.md", []string{"contact.md"}},
		{"ls secret_*", []string{"secret_key.pem  secret_key.info"}},
		{"ls nope", []string{"ls: cannot access 'nope': No such file or directory"}},
		{"ls .config", []string{"ls: cannot access '.config': No such file or directory"}},
		{"ls -a .config", []string{".config"}},
		{"ls *.md nope", []string{"ls: cannot access 'nope': No such file or directory", "contact.md"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, s.Execute(tt.input).Lines); diff != "" {
			t.Errorf("%q: (-want +got)\n%s", tt.input, diff)
		}
	}
}

func TestRM(t *testing.T) {
	s, _ := newTestSession(t, nil)
	for _, input := range []string{"rm -rf /", "rm -rf *", "rm / -rf", "rm * -rf", "rm -rf / --no-preserve-root"} {
		assert.Equal(t, []string{daveRefusal}, s.Execute(input).Lines, input)
	}
	assert.Equal(t, []string{"rm: cannot remove 'somefile': Permission denied"}, s.Execute("rm somefile").Lines)
	assert.Equal(t, []string{"rm: cannot remove '': Permission denied"}, s.Execute("rm").Lines)
	// combined short flags are not special-cased
	assert.Equal(t, []string{"rm: cannot remove '-fr': Permission denied"}, s.Execute("rm -fr /").Lines)
	assert.Equal(t, []string{"rm: cannot remove '-rf': Permission denied"}, s.Execute("rm -rf tmp").Lines)
}

func TestPermissionDenied(t *testing.T) {
	s, _ := newTestSession(t, nil)
	assert.Equal(t, []string{"mkdir: cannot create directory 'build': Permission denied"}, s.Execute("mkdir build").Lines)
	assert.Equal(t, []string{"touch: cannot touch 'x.txt': Permission denied"}, s.Execute("touch x.txt").Lines)
	assert.Equal(t, []string{"mkdir: cannot create directory '': Permission denied"}, s.Execute("mkdir").Lines)
}

func TestUptime(t *testing.T) {
	s, clock := newTestSession(t, nil)
	clock.t = clock.t.Add(42*time.Second + 900*time.Millisecond)
	assert.Equal(t, []string{"up 42 seconds, 1 user, load average: 0.00, 0.01, 0.05"}, s.Execute("uptime").Lines)
}

func TestDateUsesClock(t *testing.T) {
	s, _ := newTestSession(t, nil)
	assert.Equal(t, []string{"Thu Nov 27 14:22:00 UTC 2025"}, s.Execute("date").Lines)
}

func TestJokeIsUniformPick(t *testing.T) {
	s, _ := newTestSession(t, &rng.Sequence{Ints: []int{0, 3, 3}})
	assert.Equal(t, jokes[0], s.Execute("joke").Text())
	assert.Equal(t, jokes[3], s.Execute("joke").Text())
	// no repetition avoidance
	assert.Equal(t, jokes[3], s.Execute("joke").Text())
	assert.GreaterOrEqual(t, len(jokes), 25)
}

func TestUname(t *testing.T) {
	s, _ := newTestSession(t, nil)
	assert.Equal(t, []string{"Linux"}, s.Execute("uname").Lines)
	assert.True(t, strings.HasPrefix(s.Execute("uname -a").Text(), "Linux portfolio "))
}

func TestRev(t *testing.T) {
	s, _ := newTestSession(t, nil)
	assert.Equal(t, []string{"spOveD olleh"}, s.Execute("rev hello DevOps").Lines)
	assert.Equal(t, []string{"élas"}, s.Execute("rev salé").Lines)
}

func TestCurl(t *testing.T) {
	s, _ := newTestSession(t, nil)
	assert.Equal(t, []string{"curl: (7) Failed to connect to example.com port 443: Connection refused"}, s.Execute("curl https://example.com/x").Lines)
	assert.Equal(t, []string{"curl: (7) Failed to connect to example.com port 8080: Connection refused"}, s.Execute("curl example.com:8080").Lines)
	assert.Contains(t, s.Execute("curl").Text(), "curl --help")
}

func TestMan(t *testing.T) {
	s, _ := newTestSession(t, nil)
	assert.Len(t, s.Execute("man").Lines, 2)
	assert.Equal(t, []string{"ping(1) - send ICMP ECHO_REQUEST to a host"}, s.Execute("man ping").Lines)
	assert.Equal(t, []string{"No manual entry for gcc"}, s.Execute("man gcc").Lines)
}

func TestFixedResponses(t *testing.T) {
	s, _ := newTestSession(t, nil)
	assert.Equal(t, "root", s.Execute("whoami").Text())
	assert.Equal(t, homeDir, s.Execute("pwd").Text())
	assert.Contains(t, s.Execute("sudo rm -rf /").Text(), "sudoers")
	assert.Contains(t, s.Execute("about").Text(), "Test Owner")
	assert.Contains(t, s.Execute("skills").Text(), "Kubernetes")
	assert.Contains(t, s.Execute("weather").Text(), "serverless")
	assert.Len(t, s.Execute("neofetch").Lines, len(neofetchLogo))
}

func TestHelpListsEveryCommand(t *testing.T) {
	s, _ := newTestSession(t, nil)
	help := s.Execute("help").Text()
	for _, name := range helpOrder {
		_, ok := commands[name]
		assert.True(t, ok, name)
		assert.Contains(t, help, name)
	}
}

func TestEffectString(t *testing.T) {
	assert.Equal(t, "none", EffectNone.String())
	assert.Equal(t, "open_monitor", EffectOpenMonitor.String())
	assert.Equal(t, "open_url", EffectOpenURL.String())
}
