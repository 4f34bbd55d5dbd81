package locate

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/Neumenon/stega/stega"
)

// Locator finds annotations in HTML node trees. It is safe for
// concurrent use.
type Locator struct {
	attrs  map[string]bool
	skip   map[string]bool
	opts   Options
	logger *zap.Logger
}

// New creates a Locator. Nil Attributes or SkipElements take their
// DefaultOptions values; pass an empty slice to search no attributes or
// skip no elements.
func New(opts Options) *Locator {
	defaults := DefaultOptions()
	if opts.Attributes == nil {
		opts.Attributes = defaults.Attributes
	}
	if opts.SkipElements == nil {
		opts.SkipElements = defaults.SkipElements
	}
	l := &Locator{
		attrs:  make(map[string]bool, len(opts.Attributes)),
		skip:   make(map[string]bool, len(opts.SkipElements)),
		opts:   opts,
		logger: opts.Logger,
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	for _, a := range opts.Attributes {
		l.attrs[strings.ToLower(a)] = true
	}
	for _, e := range opts.SkipElements {
		l.skip[strings.ToLower(e)] = true
	}
	return l
}

// Parse parses an HTML document for use with Walk.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("locate: parse html: %w", err)
	}
	return doc, nil
}

// Walk yields the annotations under root in document order. For each
// node, attribute annotations come before those of its children.
//
// The sequence is lazy; each iteration walks the tree again. A payload
// that fails to decode is yielded with its error unless SkipMalformed
// is set.
func (l *Locator) Walk(root *html.Node) iter.Seq2[Annotation, error] {
	return func(yield func(Annotation, error) bool) {
		w := walk{Locator: l, yield: yield}
		w.run(root)
		l.logger.Debug("walk finished",
			zap.Int("nodes", w.nodes),
			zap.Int("found", w.found),
			zap.Int("skipped", w.skipped),
			zap.Bool("stopped", w.stopped))
	}
}

type walk struct {
	*Locator
	yield func(Annotation, error) bool

	nodes   int
	found   int
	skipped int
	stopped bool
}

func (w *walk) run(root *html.Node) {
	if root == nil {
		return
	}
	// Explicit stack; children are pushed last-first so they pop in order.
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		w.nodes++

		switch n.Type {
		case html.TextNode:
			if !w.scan(n, PropertyData, n.Data) {
				return
			}
			continue
		case html.ElementNode:
			if w.skip[n.Data] {
				continue
			}
			for _, a := range n.Attr {
				if a.Namespace != "" || !w.attrs[a.Key] {
					continue
				}
				if !w.scan(n, a.Key, a.Val) {
					return
				}
			}
		case html.DocumentNode:
		default:
			continue
		}

		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
}

// scan yields the annotations of one property value. It returns false
// when the consumer stopped the iteration.
func (w *walk) scan(n *html.Node, property, text string) bool {
	if !mayContainAnnotation(text) {
		return true
	}
	for r, err := range stega.RetrieveAll(text) {
		if err != nil && w.opts.SkipMalformed {
			w.skipped++
			w.logger.Warn("skipping malformed annotation",
				zap.String("property", property),
				zap.Int("start", r.Start),
				zap.Int("end", r.End),
				zap.Error(err))
			continue
		}
		w.found++
		a := Annotation{
			Node:     n,
			Property: property,
			Rect:     measure(text, r),
			Range:    r,
		}
		if !w.yield(a, err) {
			w.stopped = true
			return false
		}
	}
	return true
}

// mayContainAnnotation is a cheap prefilter: every payload block starts
// with the null marker.
func mayContainAnnotation(text string) bool {
	return strings.Contains(text, stega.NullMarker)
}
