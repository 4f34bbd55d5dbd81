package stega

import "unicode/utf16"

// Range offsets are byte offsets into a UTF-8 string. JavaScript and the
// DOM index text in UTF-16 code units; these helpers translate.

// UTF16Offset converts byte offset off in s to a UTF-16 code unit offset.
// Invalid UTF-8 bytes count as one unit each.
func UTF16Offset(s string, off int) int {
	n := 0
	for _, r := range s[:off] {
		n += utf16.RuneLen(r)
	}
	return n
}

// ByteOffset converts UTF-16 code unit offset u in s to a byte offset.
// An offset that falls inside a surrogate pair resolves to the start of
// the rune; an offset past the end resolves to len(s).
func ByteOffset(s string, u int) int {
	n := 0
	for i, r := range s {
		w := utf16.RuneLen(r)
		if n+w > u {
			return i
		}
		n += w
	}
	return len(s)
}

// UTF16Span returns the UTF-16 offsets of r's start and end within s,
// the buffer r was retrieved from.
func UTF16Span(s string, r Range) (start, end int) {
	start = UTF16Offset(s, r.Start)
	end = start + UTF16Offset(s[r.Start:], r.End-r.Start)
	return start, end
}
