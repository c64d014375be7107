// Package reveal exposes a finished answer one rune at a time.
//
// An Animator hands out a Token per sequence. Ticks carry the token they were
// scheduled with; a tick whose token is no longer current is ignored, so a
// restarted or canceled sequence can never be advanced by a late tick.
package reveal

import "time"

// DefaultInterval is the delay between two revealed runes.
const DefaultInterval = 10 * time.Millisecond

// Token identifies one reveal sequence.
type Token uint64

// Frame describes the state after an Advance.
type Frame struct {
	Token  Token
	Length int
	Done   bool
}

// Animator tracks the visible prefix of the current answer. The zero value is
// ready to use.
type Animator struct {
	runes   []rune
	length  int
	token   Token
	running bool
}

// Start cancels any sequence in progress and begins a new one at length zero.
// An empty text completes immediately.
func (a *Animator) Start(text string) Token {
	a.token++
	a.runes = []rune(text)
	a.length = 0
	a.running = len(a.runes) > 0
	return a.token
}

// Advance shows one more rune. The second result is false when token does not
// belong to the running sequence; nothing changes in that case.
func (a *Animator) Advance(token Token) (Frame, bool) {
	if token != a.token || !a.running {
		return Frame{}, false
	}
	a.length++
	if a.length >= len(a.runes) {
		a.length = len(a.runes)
		a.running = false
	}
	return Frame{Token: a.token, Length: a.length, Done: !a.running}, true
}

// Cancel stops the current sequence and clears the visible prefix.
func (a *Animator) Cancel() {
	a.token++
	a.runes = nil
	a.length = 0
	a.running = false
}

// Prefix returns the visible part of the answer.
func (a *Animator) Prefix() string {
	return string(a.runes[:a.length])
}

// Len is the number of visible runes.
func (a *Animator) Len() int {
	return a.length
}

// Total is the rune length of the full answer.
func (a *Animator) Total() int {
	return len(a.runes)
}

// Running reports whether ticks are still expected.
func (a *Animator) Running() bool {
	return a.running
}

// Token returns the token of the current sequence.
func (a *Animator) Token() Token {
	return a.token
}
