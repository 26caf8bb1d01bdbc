package pipeline

import (
	"math"
	"time"

	"pipeterm/internal/rng"
)

// PullInterval is the progress step of an image pull.
const PullInterval = 50 * time.Millisecond

type Artifact struct {
	ID          string
	Name        string
	Tag         string
	Description string
	Tech        []string
}

// Ref is the docker reference shown on the pull button.
func (a Artifact) Ref() string {
	return a.Name + ":" + a.Tag
}

var Artifacts = []Artifact{
	{
		ID:          "img-web",
		Name:        "status-frontend",
		Tag:         "v1.2.0",
		Description: "Dashboard for service health and deploy history.",
		Tech:        []string{"React", "TypeScript", "Vite"},
	},
	{
		ID:          "img-api",
		Name:        "status-api",
		Tag:         "v2.0.1",
		Description: "REST API aggregating probes from every region.",
		Tech:        []string{"Go", "gin", "PostgreSQL"},
	},
	{
		ID:          "img-proxy",
		Name:        "edge-proxy",
		Tag:         "stable",
		Description: "Edge router serving the frontend and proxying API requests.",
		Tech:        []string{"Nginx", "Docker", "TLS"},
	},
}

type PullState int

const (
	PullIdle PullState = iota
	Pulling
	Pulled
)

func (s PullState) String() string {
	switch s {
	case Pulling:
		return "pulling"
	case Pulled:
		return "pulled"
	default:
		return "idle"
	}
}

// Pull animates one artifact pull. A pull takes a random 250-1250ms and
// advances once per PullInterval.
type Pull struct {
	State PullState
	step  int
	steps float64
}

// Begin starts an idle pull. It reports false if one was already started.
func (p *Pull) Begin(r rng.Source) bool {
	if p.State != PullIdle {
		return false
	}
	total := 250 + r.Float64()*1000
	p.State = Pulling
	p.step = 0
	p.steps = total / float64(PullInterval/time.Millisecond)
	return true
}

// Advance moves one step and reports whether the pull is still running.
func (p *Pull) Advance() bool {
	if p.State != Pulling {
		return false
	}
	p.step++
	if float64(p.step) >= p.steps {
		p.State = Pulled
		return false
	}
	return true
}

// Progress is the completed percentage.
func (p *Pull) Progress() float64 {
	switch p.State {
	case Pulled:
		return 100
	case Pulling:
		return math.Min(float64(p.step)/p.steps*100, 100)
	default:
		return 0
	}
}
