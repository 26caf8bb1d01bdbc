package pipeline

import (
	"fmt"
	"time"

	"pipeterm/internal/rng"
)

// LogInterval is the delay between streamed test log lines.
const LogInterval = 400 * time.Millisecond

type SuiteStatus int

const (
	Pending SuiteStatus = iota
	Running
	Passed
)

func (s SuiteStatus) String() string {
	switch s {
	case Running:
		return "running"
	case Passed:
		return "passed"
	default:
		return "pending"
	}
}

type Suite struct {
	ID       string
	Name     string
	Type     string
	Logs     []string
	Status   SuiteStatus
	Duration time.Duration
}

var suites = []Suite{
	{
		ID: "t1", Name: "Frontend Component Tests", Type: "UNIT",
		Logs: []string{"Mounting <StatusCard />...", "Mocking API response...", "Verifying snapshot match... OK", "Checking event handlers... OK"},
	},
	{
		ID: "t2", Name: "API Contract Verification", Type: "INTEGRATION",
		Logs: []string{"PING /health...", "GET /api/v1/status?region=eu-west-1", "Validating JSON Schema...", "Response Time < 50ms... OK"},
	},
	{
		ID: "t3", Name: "End-to-End User Flow", Type: "E2E",
		Logs: []string{"Opening headless chrome...", "Navigating to dashboard...", `Clicking "Refresh Data"...`, "Verifying chart update... OK"},
	},
	{
		ID: "t4", Name: "Container Security Scan", Type: "SECURITY",
		Logs: []string{"Scanning base image alpine:3.20...", "Checking for CVEs...", "Analyzing dependencies...", "No critical vulnerabilities found."},
	},
}

// Runner is the quality gate. Run resets every suite and Step, called every
// LogInterval, streams one log line at a time until all suites pass.
type Runner struct {
	rand    rng.Source
	suites  []Suite
	log     []string
	running bool
	cur     int
	line    int
}

func NewRunner(r rng.Source) *Runner {
	if r == nil {
		r = rng.New(0)
	}
	return &Runner{
		rand:   r,
		suites: freshSuites(),
		log:    []string{"Waiting for pipeline execution..."},
	}
}

func freshSuites() []Suite {
	out := make([]Suite, len(suites))
	copy(out, suites)
	return out
}

// Run starts the pipeline. It is ignored while a run is in progress.
func (r *Runner) Run() bool {
	if r.running {
		return false
	}
	r.running = true
	r.suites = freshSuites()
	r.log = []string{"Initializing test runner...", "Loading configuration..."}
	r.cur, r.line = 0, 0
	r.begin()
	return true
}

func (r *Runner) begin() {
	s := &r.suites[r.cur]
	s.Status = Running
	r.log = append(r.log, "", ">>> EXECUTING: "+s.Name)
}

// Step streams the next log line and reports whether the run continues.
func (r *Runner) Step() bool {
	if !r.running {
		return false
	}
	s := &r.suites[r.cur]
	r.log = append(r.log, fmt.Sprintf("[%s] %s", s.Type, s.Logs[r.line]))
	r.line++
	if r.line < len(s.Logs) {
		return true
	}

	s.Status = Passed
	s.Duration = time.Duration(100+r.rand.Intn(500)) * time.Millisecond
	r.cur++
	r.line = 0
	if r.cur < len(r.suites) {
		r.begin()
		return true
	}
	r.log = append(r.log, "", "PIPELINE SUCCESSFUL")
	r.running = false
	return false
}

func (r *Runner) Running() bool { return r.running }

// Suites returns a copy of the suite states.
func (r *Runner) Suites() []Suite {
	return append([]Suite(nil), r.suites...)
}

// Log returns a copy of the runner output.
func (r *Runner) Log() []string {
	return append([]string(nil), r.log...)
}
