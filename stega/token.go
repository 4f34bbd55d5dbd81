package stega

import (
	"fmt"
	"regexp"
)

// TokenType represents the kind of a structural token.
type TokenType uint8

const (
	TokenAnchor  TokenType = iota // Anchor
	TokenPayload                  // NullMarker followed by one or more non-zero bytes
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenAnchor:
		return "ANCHOR"
	case TokenPayload:
		return "PAYLOAD"
	default:
		return "UNKNOWN"
	}
}

// Token is a structural token located in a text buffer.
// Start and End are byte offsets, End exclusive.
type Token struct {
	Type  TokenType
	Value string
	Start int
	End   int
}

// String returns a debug representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Type, t.Start, t.End)
}

// tokenPattern matches either the anchor or exactly one payload block.
// A block body is a run of 4-symbol groups that each encode a non-zero
// byte, so the null marker of a following block always ends the match
// and adjacent blocks are returned as separate tokens.
//
// The pattern is compiled once and holds no match state; every scan
// keeps its own cursor in a Scanner.
var tokenPattern = regexp.MustCompile(fmt.Sprintf(
	`%[1]s|%[2]s{4}(?:%[2]s(?:%[2]s(?:%[2]s%[3]s|%[3]s%[4]s)|%[3]s%[4]s{2})|%[3]s%[4]s{3})+`,
	`\x{2064}`,                           // anchor
	`\x{200B}`,                           // digit 0
	`[\x{200C}\x{200D}\x{FEFF}]`,         // digits 1-3
	`[\x{200B}\x{200C}\x{200D}\x{FEFF}]`, // any digit
))

// Scanner walks the structural tokens of a text buffer from left to right.
//
// The buffer may be rewritten behind the cursor with Splice while a scan
// is in progress; the cursor is shifted by the change in length so the
// next token is found at its new offset.
type Scanner struct {
	text string
	pos  int
}

// NewScanner creates a scanner positioned at the start of text.
func NewScanner(text string) *Scanner {
	return &Scanner{text: text}
}

// Text returns the current buffer, including any splices.
func (s *Scanner) Text() string {
	return s.text
}

// Pos returns the byte offset where the next search begins.
func (s *Scanner) Pos() int {
	return s.pos
}

// Next returns the next token, or false when the buffer is exhausted.
func (s *Scanner) Next() (Token, bool) {
	if s.pos >= len(s.text) {
		return Token{}, false
	}
	loc := tokenPattern.FindStringIndex(s.text[s.pos:])
	if loc == nil {
		s.pos = len(s.text)
		return Token{}, false
	}

	start, end := s.pos+loc[0], s.pos+loc[1]
	s.pos = end

	typ := TokenPayload
	if end-start == anchorLen && s.text[start:end] == string(Anchor) {
		typ = TokenAnchor
	}
	return Token{Type: typ, Value: s.text[start:end], Start: start, End: end}, true
}

// Splice replaces text[start:end] with replacement. The span must lie
// before the cursor, which is moved by the difference in length.
func (s *Scanner) Splice(start, end int, replacement string) {
	if start < 0 || start > end || end > s.pos {
		panic(fmt.Sprintf("stega: splice [%d:%d] outside scanned region [0:%d]", start, end, s.pos))
	}
	s.text = s.text[:start] + replacement + s.text[end:]
	s.pos -= (end - start) - len(replacement)
}

// Tokenize returns all remaining tokens.
func (s *Scanner) Tokenize() []Token {
	var tokens []Token
	for {
		tok, ok := s.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}
