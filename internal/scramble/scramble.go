// Package scramble reveals a string left to right through random glyphs.
package scramble

import (
	"time"

	"pipeterm/internal/rng"
)

// Interval is the frame rate of the effect.
const Interval = 30 * time.Millisecond

// Glyphs are the characters shown in place of unrevealed text.
const Glyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890!@#$%^&*()_+"

// step is how far the reveal cursor moves per frame.
const step = 0.5

// Animator holds one reveal. Characters before the cursor are final, the
// one under it flickers, and the rest come from a buffer drawn once.
type Animator struct {
	rand   rng.Source
	text   []rune
	buffer []rune
	iter   float64
	frame  string
	done   bool
}

func New(text string, r rng.Source) *Animator {
	if r == nil {
		r = rng.New(0)
	}
	a := &Animator{rand: r, text: []rune(text)}
	a.buffer = make([]rune, len(a.text))
	for i := range a.buffer {
		a.buffer[i] = a.glyph()
	}
	a.frame = string(a.buffer)
	if len(a.text) == 0 {
		a.done = true
	}
	return a
}

func (a *Animator) glyph() rune {
	return rune(Glyphs[a.rand.Intn(len(Glyphs))])
}

// Step renders the next frame and reports whether more frames follow.
func (a *Animator) Step() bool {
	if a.done {
		return false
	}
	if a.iter >= float64(len(a.text)) {
		a.done = true
		a.frame = string(a.text)
		return false
	}
	cur := int(a.iter)
	out := make([]rune, len(a.text))
	for i := range a.text {
		switch {
		case i < cur:
			out[i] = a.text[i]
		case i == cur:
			out[i] = a.glyph()
		default:
			out[i] = a.buffer[i]
		}
	}
	a.frame = string(out)
	a.iter += step
	return true
}

// Frame is the current rendering.
func (a *Animator) Frame() string { return a.frame }

func (a *Animator) Done() bool { return a.done }

// Text is the final string.
func (a *Animator) Text() string { return string(a.text) }
