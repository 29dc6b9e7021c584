package expand

import "github.com/ardnew/inox/lang"

// Accumulator collects the rewritten tokens of a pass. Its tail is a stack:
// the path extractor pops the invocation name back off the top.
type Accumulator struct {
	tokens lang.Stream
}

// NewAccumulator returns an empty accumulator with room for size tokens.
func NewAccumulator(size int) *Accumulator {
	return &Accumulator{tokens: make(lang.Stream, 0, size)}
}

// Len returns the number of tokens held.
func (a *Accumulator) Len() int { return len(a.tokens) }

// Push appends tokens to the top.
func (a *Accumulator) Push(tokens ...lang.Token) {
	a.tokens = append(a.tokens, tokens...)
}

// Peek returns the token n places below the top without removing it.
// Peek(0) is the top.
func (a *Accumulator) Peek(n int) (lang.Token, bool) {
	i := len(a.tokens) - 1 - n
	if n < 0 || i < 0 {
		return lang.Token{}, false
	}

	return a.tokens[i], true
}

// Pop removes and returns the top token.
func (a *Accumulator) Pop() (lang.Token, bool) {
	t, ok := a.Peek(0)
	if ok {
		a.tokens[len(a.tokens)-1] = lang.Token{}
		a.tokens = a.tokens[:len(a.tokens)-1]
	}

	return t, ok
}

// Stream returns the accumulated tokens in insertion order.
func (a *Accumulator) Stream() lang.Stream { return a.tokens }
