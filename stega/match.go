package stega

import (
	"cmp"
	"slices"
)

// ============================================================
// Range Matcher
// ============================================================
//
// Anchors open ranges and payload blocks close the most recently opened
// one, so ranges nest like brackets. Nesting is tracked with explicit
// stacks rather than recursion; depth is bounded only by memory.

// span is a located range whose payload has not been decoded yet.
type span struct {
	start        int
	payloadStart int
	end          int
	anchored     bool
	payload      string
}

// visibleStart returns the offset of the first visible byte of the range.
func (sp span) visibleStart() int {
	if sp.anchored {
		return sp.start + anchorLen
	}
	return sp.start
}

type matcher struct {
	sc *Scanner

	open    span
	hasOpen bool
	pending []span // enclosing ranges of open, innermost last
	found   []span // closed ranges of the current outermost group
}

func newMatcher(text string) *matcher {
	return &matcher{sc: NewScanner(text)}
}

// step feeds one token to the stacks. It returns the range the token
// closed, if any.
func (m *matcher) step(tok Token) (span, bool) {
	if tok.Type == TokenAnchor {
		if m.hasOpen {
			m.pending = append(m.pending, m.open)
		}
		m.open = span{start: tok.Start, anchored: true}
		m.hasOpen = true
		return span{}, false
	}

	// A payload with nothing open starts at 0; some encoders omit the anchor.
	var sp span
	if m.hasOpen {
		sp = m.open
	}
	sp.payloadStart = tok.Start
	sp.end = tok.End
	sp.payload = tok.Value

	if n := len(m.pending); n > 0 {
		m.open = m.pending[n-1]
		m.pending = m.pending[:n-1]
	} else {
		m.open = span{}
		m.hasOpen = false
	}
	return sp, true
}

// nextGroup returns the ranges of the next complete outermost group,
// ordered by start then end. It returns false once the input is exhausted.
//
// Ranges are held back until the group's outermost range closes. If the
// input ends inside an unclosed anchor, whatever was closed is returned.
func (m *matcher) nextGroup() ([]span, bool) {
	for {
		tok, ok := m.sc.Next()
		if !ok {
			group := m.flush()
			return group, len(group) > 0
		}
		sp, closed := m.step(tok)
		if !closed {
			continue
		}
		m.found = append(m.found, sp)
		if !m.hasOpen {
			return m.flush(), true
		}
	}
}

func (m *matcher) flush() []span {
	group := m.found
	m.found = nil
	slices.SortStableFunc(group, func(a, b span) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		return cmp.Compare(a.end, b.end)
	})
	return group
}

// first returns the first range of text in start order.
func first(text string) (span, bool) {
	group, ok := newMatcher(text).nextGroup()
	if !ok {
		return span{}, false
	}
	return group[0], true
}
