package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pipeterm/internal/logstream"
	"pipeterm/internal/monitor"
	"pipeterm/internal/pipeline"
	"pipeterm/internal/scramble"
	"pipeterm/internal/snake"
)

// Timer messages carry the generation they were scheduled under; a tick
// whose generation no longer matches the model is dropped.
type (
	gameTickMsg  struct{ gen int }
	clockTickMsg struct {
		gen int
		t   time.Time
	}
	scrambleTickMsg struct{}
	pullTickMsg     struct{ idx int }
	suiteTickMsg    struct{}
	logsMsg         []logstream.Entry
	openedMsg       struct {
		url string
		err error
	}
)

func gameTick(gen int) tea.Cmd {
	return tea.Tick(snake.TickInterval, func(time.Time) tea.Msg {
		return gameTickMsg{gen: gen}
	})
}

func clockTick(gen int) tea.Cmd {
	return tea.Tick(monitor.ClockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg{gen: gen, t: t}
	})
}

func scrambleTick() tea.Cmd {
	return tea.Tick(scramble.Interval, func(time.Time) tea.Msg {
		return scrambleTickMsg{}
	})
}

func pullTick(idx int) tea.Cmd {
	return tea.Tick(pipeline.PullInterval, func(time.Time) tea.Msg {
		return pullTickMsg{idx: idx}
	})
}

func suiteTick() tea.Cmd {
	return tea.Tick(pipeline.LogInterval, func(time.Time) tea.Msg {
		return suiteTickMsg{}
	})
}

// waitForLogs blocks for the next log snapshot. The model re-issues it
// after every logsMsg.
func (m Model) waitForLogs() tea.Cmd {
	ch, done := m.logCh, m.done
	return func() tea.Msg {
		select {
		case e := <-ch:
			return logsMsg(e)
		case <-done:
			return nil
		}
	}
}

// contextFor is cancelled once done is closed.
func contextFor(done <-chan struct{}) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-done
		cancel()
	}()
	return ctx
}
