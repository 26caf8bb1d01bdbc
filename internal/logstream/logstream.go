// Package logstream produces the rolling fake log shown behind the
// portfolio sections. Each Service is independent; hosts start it, feed it
// navigation events and subscribe to its entries.
package logstream

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"pipeterm/internal/logging"
	"pipeterm/internal/rng"
)

type Level string

const (
	Info    Level = "INFO"
	Warn    Level = "WARN"
	Success Level = "SUCCESS"
	Debug   Level = "DEBUG"
)

// Entry is one line of the stream.
type Entry struct {
	ID      string
	Time    time.Time
	Level   Level
	Message string
}

// Timestamp is the 24-hour wall clock the entry is rendered with.
func (e Entry) Timestamp() string {
	return e.Time.Format("15:04:05")
}

// scrollCooldown limits navigation entries.
const scrollCooldown = 2 * time.Second

type Options struct {
	Rand     rng.Source
	Clock    func() time.Time
	Interval time.Duration // default 1s
	Chance   float64       // probability a tick emits, default 0.3
	Capacity int           // default 15
	Logger   *slog.Logger
}

type Service struct {
	opts Options
	log  *slog.Logger

	mu      sync.Mutex
	entries []Entry
	subs    map[int]func([]Entry)
	nextSub int

	started    bool
	cancel     context.CancelFunc
	done       chan struct{}
	section    int
	lastScroll time.Time
}

func New(opts Options) *Service {
	if opts.Rand == nil {
		opts.Rand = rng.New(0)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Chance <= 0 {
		opts.Chance = 0.3
	}
	if opts.Capacity <= 0 {
		opts.Capacity = 15
	}
	if opts.Logger == nil {
		opts.Logger = logging.New("logstream")
	}
	return &Service{
		opts: opts,
		log:  opts.Logger,
		subs: map[int]func([]Entry){},
	}
}

// Start writes the boot entries and begins emitting noise until ctx is done
// or Stop is called. Calling it again is a no-op.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	s.Add(Info, "System initialized. Logger attached.")
	s.Add(Debug, "Rendering viewport components...")

	go func() {
		defer close(done)
		t := time.NewTicker(s.opts.Interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.tick()
			}
		}
	}()
	s.log.Debug("log stream started", "interval", s.opts.Interval)
}

// Stop halts the noise goroutine and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.log.Debug("log stream stopped")
}

// tick picks a noise message and emits it with probability Chance.
func (s *Service) tick() bool {
	fn := rng.Pick(s.opts.Rand, noise)
	if s.opts.Rand.Float64() <= 1-s.opts.Chance {
		return false
	}
	level, msg := fn(s.opts.Rand)
	s.Add(level, msg)
	return true
}

// Add appends an entry, evicting the oldest past Capacity, and notifies
// subscribers.
func (s *Service) Add(level Level, msg string) {
	s.mu.Lock()
	s.entries = append(s.entries, Entry{
		ID:      ulid.Make().String(),
		Time:    s.opts.Clock(),
		Level:   level,
		Message: msg,
	})
	if over := len(s.entries) - s.opts.Capacity; over > 0 {
		s.entries = append([]Entry(nil), s.entries[over:]...)
	}
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Entries returns the retained entries, oldest first.
func (s *Service) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

// Subscribe calls fn with the current entries now and after every change.
// fn runs on the goroutine that caused the change and must not block.
func (s *Service) Subscribe(fn func([]Entry)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	current := append([]Entry(nil), s.entries...)
	s.mu.Unlock()

	fn(current)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Navigate records a move to the section at index idx. At most one entry is
// written per scrollCooldown; moving to the current section writes nothing.
func (s *Service) Navigate(idx int, name string) bool {
	s.mu.Lock()
	now := s.opts.Clock()
	if idx == s.section || now.Sub(s.lastScroll) < scrollCooldown {
		s.mu.Unlock()
		return false
	}
	dir := "DOWN"
	if idx < s.section {
		dir = "UP"
	}
	s.section = idx
	s.lastScroll = now
	s.mu.Unlock()

	s.Add(Info, "Scroll detected: "+dir+" -> "+name)
	return true
}

func (s *Service) snapshotLocked() ([]Entry, []func([]Entry)) {
	entries := append([]Entry(nil), s.entries...)
	subs := make([]func([]Entry), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return entries, subs
}
