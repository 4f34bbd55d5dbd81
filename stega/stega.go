package stega

import (
	"iter"
)

// Range is an annotation located in a text buffer.
type Range struct {
	Start        int  // offset of the anchor, or 0 when the payload had none
	PayloadStart int  // offset of the payload block
	End          int  // offset just past the payload block
	Anchored     bool // false when Start was implied

	String string // visible text between the anchor and the payload
	Raw    string // decoded JSON text
	Data   any    // decoded value
}

func newRange(text string, sp span) (Range, error) {
	r := Range{
		Start:        sp.start,
		PayloadStart: sp.payloadStart,
		End:          sp.end,
		Anchored:     sp.anchored,
		String:       text[sp.visibleStart():sp.payloadStart],
	}
	raw, err := DecodeJSON(sp.payload)
	if err != nil {
		return r, err
	}
	r.Raw = raw
	if err := parseJSON(raw, &r.Data); err != nil {
		return r, err
	}
	return r, nil
}

// Annotate attaches data to s as invisible symbols. The result renders
// exactly like s.
//
// s is not escaped: it may already contain annotations, which nest.
func Annotate(s string, data any) (string, error) {
	encoded, err := EncodeData(data)
	if err != nil {
		return "", err
	}
	return string(Anchor) + s + encoded, nil
}

// IsAnnotated reports whether text contains an annotation. In strict mode
// the first annotation must span all of text.
func IsAnnotated(text string, strict bool) bool {
	sp, ok := first(text)
	if !ok {
		return false
	}
	return !strict || (sp.start == 0 && sp.end == len(text))
}

// Retrieve returns the first annotation of text in start order.
// The bool is false if text has no annotations.
func Retrieve(text string) (Range, bool, error) {
	sp, ok := first(text)
	if !ok {
		return Range{}, false, nil
	}
	r, err := newRange(text, sp)
	return r, true, err
}

// RetrieveAll returns every annotation of text ordered by start, then end.
// An enclosing annotation therefore precedes the annotations nested in it.
//
// The sequence is lazy and each iteration scans text afresh. A payload
// that fails to decode is yielded with its error and iteration continues.
func RetrieveAll(text string) iter.Seq2[Range, error] {
	return func(yield func(Range, error) bool) {
		m := newMatcher(text)
		for {
			group, ok := m.nextGroup()
			if !ok {
				return
			}
			for _, sp := range group {
				if !yield(newRange(text, sp)) {
					return
				}
			}
		}
	}
}

// Remove strips the anchor and payload of the first annotation, keeping
// its visible text. Text without annotations is returned unchanged.
func Remove(text string) string {
	sp, ok := first(text)
	if !ok {
		return text
	}
	return text[:sp.start] + text[sp.visibleStart():sp.payloadStart] + text[sp.end:]
}

// RemoveAll strips every anchor and payload block from text. It works on
// the token grammar alone and never decodes payloads.
func RemoveAll(text string) string {
	// Removing a token can join stray symbols on either side into a new
	// one, so repeat until nothing matches.
	for tokenPattern.MatchString(text) {
		text = tokenPattern.ReplaceAllLiteralString(text, "")
	}
	return text
}

// ReplaceAll replaces every annotation, anchor through payload, with the
// result of replacer.
//
// Nested annotations are replaced before the annotation enclosing them,
// and the enclosing Range.String already contains their replacements.
// Offsets in each Range refer to the buffer as rewritten so far.
func ReplaceAll(text string, replacer func(Range) string) (string, error) {
	m := newMatcher(text)
	for {
		tok, ok := m.sc.Next()
		if !ok {
			return m.sc.Text(), nil
		}
		sp, closed := m.step(tok)
		if !closed {
			continue
		}
		r, err := newRange(m.sc.Text(), sp)
		if err != nil {
			return "", err
		}
		m.sc.Splice(sp.start, sp.end, replacer(r))
	}
}
