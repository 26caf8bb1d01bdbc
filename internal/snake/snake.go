// Package snake is the deploy-game engine: a snake on a toroidal grid that
// advances one cell per tick, grows on food and stops on self-collision.
package snake

import (
	"time"

	"pipeterm/internal/rng"
)

const (
	// GridSize is the width and height of the default board.
	GridSize = 20
	// TickInterval is how often a playing game advances.
	TickInterval = 80 * time.Millisecond
	// SecretScore is the score above which the Konami hint is shown.
	SecretScore = 5
)

// Point is a board cell.
type Point struct {
	X, Y int
}

func (p Point) add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// wrap folds p back onto a w by h board.
func (p Point) wrap(w, h int) Point {
	return Point{X: ((p.X % w) + w) % w, Y: ((p.Y % h) + h) % h}
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	default:
		return "RIGHT"
	}
}

// Opposite is the direction that would reverse onto the neck.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) delta() Point {
	switch d {
	case Up:
		return Point{Y: -1}
	case Down:
		return Point{Y: 1}
	case Left:
		return Point{X: -1}
	default:
		return Point{X: 1}
	}
}

// Status is the game lifecycle: Idle -> Playing -> GameOver, and back to
// Playing on restart or to Idle on reset.
type Status int

const (
	Idle Status = iota
	Playing
	GameOver
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case GameOver:
		return "gameover"
	default:
		return "idle"
	}
}

var startBody = []Point{{10, 10}, {9, 10}, {8, 10}}

// Engine holds one game. It is driven from a single event loop and is not
// safe for concurrent use.
type Engine struct {
	width, height int
	rand          rng.Source

	status    Status
	snake     []Point // head first
	food      Point
	committed Direction // direction of the last applied move
	pending   Direction // direction the next tick will apply
	score     int
	highScore int
}

// New returns an idle engine on a GridSize board.
func New(src rng.Source) *Engine {
	if src == nil {
		src = rng.New(0)
	}
	return &Engine{width: GridSize, height: GridSize, rand: src}
}

// Start begins a fresh game. It is used both from Idle and to restart after
// GameOver; only the high score carries over.
func (e *Engine) Start() {
	e.snake = append([]Point(nil), startBody...)
	e.committed, e.pending = Right, Right
	e.score = 0
	e.status = Playing
	if !e.placeFood() {
		e.end()
	}
}

// Reset returns to Idle, dropping the current game.
func (e *Engine) Reset() {
	e.status = Idle
	e.snake = nil
	e.score = 0
	e.committed, e.pending = Right, Right
}

// Steer queues d for the next tick. A reversal of the committed direction
// is rejected, so two quick turns within one tick cannot fold the head
// back onto the neck.
func (e *Engine) Steer(d Direction) bool {
	if e.status != Playing || d == e.committed.Opposite() {
		return false
	}
	e.pending = d
	return true
}

// Tick advances a playing game by one cell and reports whether it moved.
func (e *Engine) Tick() bool {
	if e.status != Playing {
		return false
	}
	e.committed = e.pending
	head := e.snake[0].add(e.committed.delta()).wrap(e.width, e.height)
	if e.occupied(head) {
		e.end()
		return false
	}

	e.snake = append([]Point{head}, e.snake...)
	if head == e.food {
		e.score++
		if !e.placeFood() {
			e.end()
		}
		return true
	}
	e.snake = e.snake[:len(e.snake)-1]
	return true
}

func (e *Engine) end() {
	e.status = GameOver
	if e.score > e.highScore {
		e.highScore = e.score
	}
}

func (e *Engine) occupied(p Point) bool {
	for _, s := range e.snake {
		if s == p {
			return true
		}
	}
	return false
}

// placeFood samples free cells uniformly. It reports false when the board
// is full.
func (e *Engine) placeFood() bool {
	cells := e.width * e.height
	if len(e.snake) >= cells {
		return false
	}
	for i := 0; i < cells*4; i++ {
		p := Point{X: e.rand.Intn(e.width), Y: e.rand.Intn(e.height)}
		if !e.occupied(p) {
			e.food = p
			return true
		}
	}
	// a crowded board can starve sampling; take the first free cell
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			if p := (Point{X: x, Y: y}); !e.occupied(p) {
				e.food = p
				return true
			}
		}
	}
	return false
}

// Snapshot is a copy of the engine state for rendering.
type Snapshot struct {
	Status    Status
	Snake     []Point
	Food      Point
	Direction Direction
	Score     int
	HighScore int
	Width     int
	Height    int
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Status:    e.status,
		Snake:     append([]Point(nil), e.snake...),
		Food:      e.food,
		Direction: e.committed,
		Score:     e.score,
		HighScore: e.highScore,
		Width:     e.width,
		Height:    e.height,
	}
}

func (e *Engine) Status() Status { return e.status }
func (e *Engine) Score() int     { return e.score }
func (e *Engine) HighScore() int { return e.highScore }

// SecretUnlocked reports whether the Konami hint should be shown.
func (s Snapshot) SecretUnlocked() bool { return s.Score > SecretScore }
