package shell

// Visibility is which surface of the terminal is showing. The monitor is
// only reachable from the prompt, so it can never be up while the
// terminal is closed.
type Visibility int

const (
	Closed Visibility = iota
	Prompt
	Monitor
)

func (v Visibility) String() string {
	switch v {
	case Prompt:
		return "prompt"
	case Monitor:
		return "monitor"
	default:
		return "closed"
	}
}

// Event drives Visibility transitions.
type Event int

const (
	// EventToggle is the backtick/tilde hotkey.
	EventToggle Event = iota
	// EventExit closes everything.
	EventExit
	// EventOpenMonitor comes from tmux, nvim, htop and friends.
	EventOpenMonitor
	// EventKey is any keypress while the monitor is up.
	EventKey
)

// Next returns the state after ev.
func (v Visibility) Next(ev Event) Visibility {
	switch v {
	case Closed:
		if ev == EventToggle {
			return Prompt
		}
		return Closed
	case Prompt:
		switch ev {
		case EventToggle, EventExit:
			return Closed
		case EventOpenMonitor:
			return Monitor
		default:
			return Prompt
		}
	case Monitor:
		switch ev {
		case EventExit:
			return Closed
		case EventToggle, EventKey:
			// the keypress only closes the monitor
			return Prompt
		default:
			return Monitor
		}
	default:
		return Closed
	}
}

// Event maps a command side effect onto a visibility event.
func (e Effect) Event() (Event, bool) {
	switch e {
	case EffectClose:
		return EventExit, true
	case EffectOpenMonitor:
		return EventOpenMonitor, true
	default:
		return 0, false
	}
}
