package shell

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"pipeterm/internal/rng"
)

type command struct {
	summary string
	run     func(s *Session, args []string) Result
}

// commands is filled in init because help and man read it back.
var commands map[string]command

// helpOrder is the order help lists commands in.
var helpOrder = []string{
	"help", "about", "skills", "cat", "ls", "pwd", "whoami", "uname", "uptime",
	"date", "ping", "curl", "weather", "echo", "rev", "joke", "neofetch", "man",
	"repo", "sudo", "mkdir", "touch", "rm", "tmux", "nvim", "htop", "clear", "exit",
}

func init() {
	monitor := command{summary: "attach to the workstation session", run: cmdMonitor}
	commands = map[string]command{
		"help":     {summary: "list available commands", run: cmdHelp},
		"echo":     {summary: "print arguments", run: cmdEcho},
		"tmux":     monitor,
		"nvim":     monitor,
		"vim":      monitor,
		"vi":       monitor,
		"htop":     monitor,
		"btop":     monitor,
		"about":    {summary: "who runs this terminal", run: cmdAbout},
		"skills":   {summary: "print the tech stack", run: cmdSkills},
		"cat":      {summary: "print a file", run: cmdCat},
		"whoami":   {summary: "print the current user", run: fixed("root")},
		"sudo":     {summary: "escalate privileges", run: fixed("user is not in the sudoers file. This incident will be reported.")},
		"uptime":   {summary: "how long this session has been up", run: cmdUptime},
		"ping":     {summary: "send ICMP ECHO_REQUEST to a host", run: (*Session).ping},
		"weather":  {summary: "local forecast", run: fixed("Cloudy with a chance of serverless functions.")},
		"date":     {summary: "print the date", run: cmdDate},
		"pwd":      {summary: "print working directory", run: fixed(homeDir)},
		"ls":       {summary: "list directory contents", run: cmdLS},
		"repo":     {summary: "open the source repository", run: cmdRepo},
		"man":      {summary: "an interface to the manuals", run: cmdMan},
		"uname":    {summary: "print system information", run: cmdUname},
		"neofetch": {summary: "system information with style", run: cmdNeofetch},
		"curl":     {summary: "transfer a URL", run: cmdCurl},
		"rev":      {summary: "reverse text", run: cmdRev},
		"joke":     {summary: "tell a joke", run: cmdJoke},
		"mkdir":    {summary: "make directories", run: cmdMkdir},
		"touch":    {summary: "create files", run: cmdTouch},
		"rm":       {summary: "remove files", run: cmdRM},
		"clear":    {summary: "clear the screen"},
		"exit":     {summary: "close the terminal", run: cmdExit},
	}
}

const (
	homeDir     = "/root/portfolio"
	kernel      = "6.8.0-pipeterm"
	dateLayout  = "Mon Jan _2 15:04:05 MST 2006"
	daveRefusal = "I'm sorry, Dave. I'm afraid I can't do that."
)

func fixed(line string) func(*Session, []string) Result {
	return func(*Session, []string) Result { return respond(line) }
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func cmdHelp(_ *Session, _ []string) Result {
	return respond("Available commands: " + strings.Join(helpOrder, ", "))
}

func cmdEcho(_ *Session, args []string) Result {
	return respond(strings.Join(args, " "))
}

func cmdMonitor(_ *Session, _ []string) Result {
	return Result{Lines: []string{"Starting session..."}, Effect: EffectOpenMonitor}
}

func cmdAbout(s *Session, _ []string) Result {
	return respond(fmt.Sprintf("%s: %s specializing in robust infrastructure.", s.owner.Name, s.owner.Role))
}

func cmdSkills(_ *Session, _ []string) Result {
	return respond("STACK: Kubernetes, AWS, Terraform, Go, Node.js, React, PostgreSQL")
}

func cmdCat(s *Session, args []string) Result {
	name := firstArg(args)
	f, ok := lookupFile(name)
	if !ok || f.dir {
		return respond(fmt.Sprintf("cat: %s: No such file or directory", name))
	}
	return respond(f.content(s))
}

func cmdUptime(s *Session, _ []string) Result {
	secs := int64(s.Uptime() / time.Second)
	if secs < 0 {
		secs = 0
	}
	return respond(fmt.Sprintf("up %d seconds, 1 user, load average: 0.00, 0.01, 0.05", secs))
}

func cmdDate(s *Session, _ []string) Result {
	return respond(s.now().Format(dateLayout))
}

func cmdRepo(s *Session, _ []string) Result {
	return Result{
		Lines:  []string{"Opening repository: " + s.owner.RepoURL},
		Effect: EffectOpenURL,
		URL:    s.owner.RepoURL,
	}
}

func cmdMan(_ *Session, args []string) Result {
	if len(args) == 0 {
		return respond("What manual page do you want?", "For example, try 'man ping'.")
	}
	page := strings.ToLower(args[0])
	if cmd, ok := commands[page]; ok {
		return respond(fmt.Sprintf("%s(1) - %s", page, cmd.summary))
	}
	return respond(fmt.Sprintf("No manual entry for %s", args[0]))
}

func cmdUname(_ *Session, args []string) Result {
	for _, a := range args {
		if a == "-a" {
			return respond(fmt.Sprintf("Linux portfolio %s #1 SMP PREEMPT_DYNAMIC x86_64 GNU/Linux", kernel))
		}
	}
	return respond("Linux")
}

var neofetchLogo = []string{
	`    .--.    `,
	`   |o_o |   `,
	`   |:_/ |   `,
	`  //   \ \  `,
	` (|     | ) `,
	`/'\_   _/'\ `,
	`\___)=(___/ `,
}

func cmdNeofetch(s *Session, _ []string) Result {
	info := []string{
		"root@portfolio",
		"--------------",
		"OS: PipeTerm Linux x86_64",
		"Kernel: " + kernel,
		fmt.Sprintf("Uptime: %d secs", int64(s.Uptime()/time.Second)),
		"Shell: pipesh 1.0.0",
		"Owner: " + s.owner.Name,
	}
	lines := make([]string, len(neofetchLogo))
	for i, logo := range neofetchLogo {
		lines[i] = strings.TrimRight(logo+"  "+info[i], " ")
	}
	return respond(lines...)
}

func cmdCurl(_ *Session, args []string) Result {
	raw := firstArg(args)
	if raw == "" {
		return respond("curl: try 'curl --help' or 'curl --manual' for more information")
	}
	target := raw
	if !strings.Contains(target, "://") {
		target = "http://" + target
	}
	u, err := url.Parse(target)
	if err != nil || u.Hostname() == "" {
		return respond(fmt.Sprintf("curl: (3) URL using bad/illegal format or missing URL: %s", raw))
	}
	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return respond(fmt.Sprintf("curl: (7) Failed to connect to %s port %s: Connection refused", u.Hostname(), port))
}

func cmdRev(_ *Session, args []string) Result {
	r := []rune(strings.Join(args, " "))
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return respond(string(r))
}

func cmdJoke(s *Session, _ []string) Result {
	return respond(rng.Pick(s.rand, jokes))
}

func cmdMkdir(_ *Session, args []string) Result {
	return respond(fmt.Sprintf("mkdir: cannot create directory '%s': Permission denied", firstArg(args)))
}

func cmdTouch(_ *Session, args []string) Result {
	return respond(fmt.Sprintf("touch: cannot touch '%s': Permission denied", firstArg(args)))
}

// cmdRM refuses `rm -rf /` and `rm -rf *` with flag and target as separate
// tokens in either order. Combined forms such as -fr fall through.
func cmdRM(_ *Session, args []string) Result {
	var flag, target bool
	for _, a := range args {
		switch a {
		case "-rf":
			flag = true
		case "/", "*":
			target = true
		}
	}
	if flag && target {
		return respond(daveRefusal)
	}
	return respond(fmt.Sprintf("rm: cannot remove '%s': Permission denied", firstArg(args)))
}

func cmdExit(_ *Session, _ []string) Result {
	return Result{Effect: EffectClose}
}
