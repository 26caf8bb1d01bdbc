// Package monitor renders the fake workstation shown by tmux, nvim, htop
// and friends: a btop pane, an nvim pane and a tmux status bar.
package monitor

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"

	"pipeterm/internal/rng"
)

// ClockInterval is how often the status bar clock refreshes while shown.
const ClockInterval = time.Second

const (
	sparkBars = 40
	kworkers  = 10
	memLine   = "14.2G / 32G"
)

// Process is one row of the process table.
type Process struct {
	PID     int
	CPU     float64
	Mem     float64
	Command string
}

// Processes are the named rows listed above the kworker threads.
var Processes = []Process{
	{PID: 1024, CPU: 98.5, Mem: 45.2, Command: "kube-controller"},
	{PID: 1025, CPU: 92.1, Mem: 38.7, Command: "aws-daemon"},
	{PID: 1026, CPU: 88.4, Mem: 25.1, Command: "terraform"},
	{PID: 1027, CPU: 85.2, Mem: 22.4, Command: "dockerd"},
	{PID: 1028, CPU: 82.0, Mem: 30.5, Command: "go-runtime"},
	{PID: 1029, CPU: 75.5, Mem: 15.2, Command: "ci-pipeline"},
}

var codeSnippet = `package main

import (
    "fmt"
    "time"
)

// DevOpsEngineer defines the core role
type DevOpsEngineer struct {
    Name     string
    Skills   []string
    Coffee   int
    IsOnline bool
}

func main() {
    eng := DevOpsEngineer{
        Name:     %q,
        Skills:   []string{"Kubernetes", "AWS", "Terraform", "Go"},
        Coffee:   9000,
        IsOnline: true,
    }

    for eng.IsOnline {
        deploy("Production")
        fmt.Println("Systems stable")
        time.Sleep(24 * time.Hour)
    }
}`

var (
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	sparkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	memStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true)
	modeStyle   = lipgloss.NewStyle().Background(lipgloss.Color("111")).Foreground(lipgloss.Color("0")).Bold(true).Padding(0, 1)
	activeStyle = lipgloss.NewStyle().Background(lipgloss.Color("34")).Foreground(lipgloss.Color("0")).Bold(true).Padding(0, 1)
	barStyle    = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	clockStyle  = lipgloss.NewStyle().Background(lipgloss.Color("111")).Foreground(lipgloss.Color("0")).Bold(true).Padding(0, 1)
)

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws n bars of random height.
func Sparkline(r rng.Source, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(rng.Pick(r, sparkGlyphs))
	}
	return b.String()
}

// ProcessTable renders the named processes followed by the kworkers.
func ProcessTable() string {
	var buf bytes.Buffer
	t := table.New("PID", "CPU%", "MEM", "CMD").WithWriter(&buf)
	for _, p := range Processes {
		t.AddRow(p.PID, fmt.Sprintf("%.1f%%", p.CPU), fmt.Sprintf("%.1f", p.Mem), p.Command)
	}
	for i := 0; i < kworkers; i++ {
		t.AddRow(3000+i, "0.1%", "0.5", fmt.Sprintf("kworker/u%d:0", i))
	}
	t.Print()
	return strings.TrimRight(buf.String(), "\n")
}

// Code returns the numbered editor buffer.
func Code(owner string) []string {
	src := strings.Split(fmt.Sprintf(codeSnippet, owner), "\n")
	lines := make([]string, 0, len(src)+2)
	for i, l := range src {
		lines = append(lines, fmt.Sprintf("%3d  %s", i+1, l))
	}
	return append(lines, "  ~", "  ~")
}

// Clock is the status bar time.
func Clock(now time.Time) string {
	return now.Format("15:04")
}

func btop(r rng.Source) string {
	return strings.Join([]string{
		titleStyle.Render("btop++ 1.2.13") + "  " + dimStyle.Render("[root@portfolio]"),
		"",
		"cpu " + sparkStyle.Render(Sparkline(r, sparkBars)) + " 12%",
		"mem " + memStyle.Render(memLine),
		"",
		ProcessTable(),
	}, "\n")
}

func nvim(owner string) string {
	status := modeStyle.Render("NORMAL") + " master  main.go" + dimStyle.Render("   go  utf-8  95%  24:10")
	return strings.Join([]string{
		titleStyle.Render("main.go") + dimStyle.Render(" | pkg/utils.go | go.mod"),
		strings.Join(Code(owner), "\n"),
		status,
	}, "\n")
}

func tmuxBar(now time.Time, width int) string {
	left := activeStyle.Render("0:btop") + barStyle.Render(" 1:nvim* ") + dimStyle.Render(` "portfolio" `)
	right := barStyle.Render(" CPU 32%  MEM 16GB  Wireless ") + clockStyle.Render(Clock(now))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + barStyle.Render(strings.Repeat(" ", gap)) + right
}

// Render draws the whole monitor for a terminal width columns wide. Panes
// sit side by side when there is room and stack otherwise.
func Render(width int, now time.Time, r rng.Source, owner string) string {
	left := paneStyle.Render(btop(r))
	right := paneStyle.Render(nvim(owner))
	var body string
	if lipgloss.Width(left)+lipgloss.Width(right) <= width {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, tmuxBar(now, width), dimStyle.Render("press any key to detach"))
}
