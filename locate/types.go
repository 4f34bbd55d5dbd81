// Package locate finds stega annotations in rendered HTML content.
//
// A Locator walks a parsed document depth-first, in document order, and
// reports every annotation found in text nodes and in text-bearing
// attributes (alt, title, ...), together with the node holding it and
// where it sits in the visible text of that node.
//
// Subtrees that never render as text, such as script and style
// elements, are skipped.
package locate

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/Neumenon/stega/stega"
)

// PropertyData names the content of a text node.
const PropertyData = "data"

// Rect is the visible extent of an annotation within the text of its
// property, measured in terminal cells after annotation symbols are
// stripped. Line and Column are 1-based.
type Rect struct {
	Line   int
	Column int
	Lines  int // number of lines spanned, at least 1
	Width  int // cells of the widest spanned line
}

// String returns the rect as "line:column+widthxlines".
func (r Rect) String() string {
	return fmt.Sprintf("%d:%d+%dx%d", r.Line, r.Column, r.Width, r.Lines)
}

// Annotation is an annotation found in a document.
type Annotation struct {
	Node     *html.Node // text node or element holding the annotation
	Property string     // PropertyData, or the attribute key
	Rect     Rect

	stega.Range // offsets are relative to the property value
}

// Options configures a Locator.
type Options struct {
	// Attributes lists the element attributes searched besides text nodes.
	// Nil means the DefaultOptions list.
	Attributes []string

	// SkipElements lists elements whose subtrees are not searched. Nil
	// means the DefaultOptions list.
	SkipElements []string

	// SkipMalformed drops annotations whose payload fails to decode,
	// logging them, instead of yielding the error.
	SkipMalformed bool

	// Logger receives skip warnings and walk summaries. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns the attribute and skip lists New uses for nil
// Options fields.
func DefaultOptions() Options {
	return Options{
		Attributes:   []string{"alt", "title", "aria-label", "placeholder"},
		SkipElements: []string{"script", "style", "template"},
	}
}
