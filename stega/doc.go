// Package stega hides JSON values inside text as invisible code points.
//
// An annotation wraps visible text without changing how it renders:
//
//	Anchor + text + payload
//
// where Anchor is U+2064 (invisible plus) and the payload is a block of
// zero-width symbols encoding the value. Annotations can be located,
// decoded, stripped or rewritten later.
//
// # Payload Encoding
//
// The value is serialized as JSON with every non-ASCII character escaped,
// so each character is one byte. Each byte becomes four base-4 digits,
// most significant first, written with four symbols:
//
//	0  U+200B  zero width space
//	1  U+200C  zero width non-joiner
//	2  U+200D  zero width joiner
//	3  U+FEFF  zero width no-break space
//
// Decoding reads bytes above 0x7F as the code points U+0080 to U+00FF,
// which encoders without ASCII escaping produce.
//
// Every block starts with the encoding of a zero byte (NullMarker). The
// grammar is the quaternary scheme of @vercel/stega, so anchor-less
// payloads from that library decode here and Combine output decodes there.
//
// # Nesting
//
// The annotated text may itself contain annotations:
//
//	s1, _ := stega.Annotate("wow", map[string]any{"hello": "world"})
//	s2, _ := stega.Annotate("then"+s1+"cool", "wild")
//
// A payload closes the most recently opened anchor, so ranges nest and
// never partially overlap. RetrieveAll yields an enclosing range before
// the ranges inside it; ReplaceAll rewrites inner ranges first.
//
// # Offsets
//
// Range offsets are byte offsets into the UTF-8 string. See UTF16Offset
// for JavaScript-style indices.
//
// # Limitations
//
// Visible text is not escaped. Text that already contains the anchor or
// digit symbols as literal content can be misread as structure. This is
// not a confidentiality mechanism: anyone who knows the alphabet can read
// or strip the data.
//
// A payload without an anchor is taken to start at offset 0. When such a
// payload follows earlier complete annotations, its range is yielded after
// theirs even though it starts before them, and Retrieve returns the
// earlier annotation rather than the one starting at 0.
package stega
