package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibilityTransitions(t *testing.T) {
	tests := []struct {
		from Visibility
		ev   Event
		want Visibility
	}{
		{Closed, EventToggle, Prompt},
		{Closed, EventExit, Closed},
		{Closed, EventOpenMonitor, Closed},
		{Closed, EventKey, Closed},
		{Prompt, EventToggle, Closed},
		{Prompt, EventExit, Closed},
		{Prompt, EventOpenMonitor, Monitor},
		{Prompt, EventKey, Prompt},
		{Monitor, EventToggle, Prompt},
		{Monitor, EventExit, Closed},
		{Monitor, EventOpenMonitor, Monitor},
		{Monitor, EventKey, Prompt},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.Next(tt.ev), "%s on %d", tt.from, tt.ev)
	}
}

func TestMonitorNeverWhileClosed(t *testing.T) {
	events := []Event{EventToggle, EventExit, EventOpenMonitor, EventKey}
	// exhaustively walk every 4-event path from Closed
	var walk func(v Visibility, depth int)
	walk = func(v Visibility, depth int) {
		if depth == 0 {
			return
		}
		for _, ev := range events {
			next := v.Next(ev)
			if v == Closed {
				assert.NotEqual(t, Monitor, next)
			}
			walk(next, depth-1)
		}
	}
	walk(Closed, 4)
}

func TestEffectEvent(t *testing.T) {
	ev, ok := EffectClose.Event()
	assert.True(t, ok)
	assert.Equal(t, EventExit, ev)

	ev, ok = EffectOpenMonitor.Event()
	assert.True(t, ok)
	assert.Equal(t, EventOpenMonitor, ev)

	_, ok = EffectNone.Event()
	assert.False(t, ok)
	_, ok = EffectOpenURL.Event()
	assert.False(t, ok)
}
