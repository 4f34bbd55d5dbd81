package stega

// ============================================================
// Symbol Alphabet
// ============================================================
//
// Four zero-width code points carry 2-bit digits. The quaternary
// assignment matches the anchor-less encoding used by @vercel/stega so
// payloads are interchangeable with it.

const (
	Digit0 = '\u200B' // zero width space
	Digit1 = '\u200C' // zero width non-joiner
	Digit2 = '\u200D' // zero width joiner
	Digit3 = '\uFEFF' // zero width no-break space

	// Anchor opens an annotation range. It never appears inside a payload.
	Anchor = '\u2064' // invisible plus
)

// digits maps a 2-bit value to its symbol.
var digits = [4]rune{Digit0, Digit1, Digit2, Digit3}

// NullMarker prefixes every payload block. It is the encoding of a zero
// byte and therefore never occurs inside the body of a block.
const NullMarker = "\u200B\u200B\u200B\u200B"

// anchorLen is the UTF-8 length of Anchor.
const anchorLen = len(string(Anchor))

// digitValue returns the 2-bit value of r, or -1 if r is not a digit symbol.
func digitValue(r rune) int {
	switch r {
	case Digit0:
		return 0
	case Digit1:
		return 1
	case Digit2:
		return 2
	case Digit3:
		return 3
	default:
		return -1
	}
}

// IsSymbol reports whether r is one of the structural code points
// (a digit symbol or the anchor).
func IsSymbol(r rune) bool {
	return r == Anchor || digitValue(r) >= 0
}
