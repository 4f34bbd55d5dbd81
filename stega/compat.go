package stega

import (
	"strings"
	"unicode/utf8"
)

// ============================================================
// Anchor-less Interop
// ============================================================
//
// Some encoders (notably @vercel/stega) append a payload block to the end
// of a string without an anchor. The helpers below produce and consume
// that form. Annotate/Retrieve already accept anchor-less payloads as
// ranges starting at 0.

// Combine appends the encoded data to s without an anchor.
func Combine(s string, data any) (string, error) {
	encoded, err := EncodeData(data)
	if err != nil {
		return "", err
	}
	return s + encoded, nil
}

// Split separates s into its visible text and its first payload block.
// encoded is empty when s carries no payload.
func Split(s string) (cleaned, encoded string) {
	sc := NewScanner(s)
	for {
		tok, ok := sc.Next()
		if !ok {
			break
		}
		if tok.Type == TokenPayload {
			encoded = tok.Value
			break
		}
	}
	return RemoveAll(s), encoded
}

// DecodeAll decodes a run of concatenated payload blocks, such as several
// anchor-less payloads appended to one string. Each block's null marker
// decodes to a zero byte, which separates the values.
func DecodeAll(encoded string) ([]any, error) {
	if utf8.RuneCountInString(encoded)%4 != 0 {
		return nil, formatError("length is not a multiple of 4", quotePayload(encoded), nil)
	}
	if !strings.HasPrefix(encoded, NullMarker) {
		return nil, formatError("missing null marker", quotePayload(encoded), nil)
	}

	var (
		values []any
		b      strings.Builder
		c, n   int
	)
	emit := func() error {
		if b.Len() == 0 {
			return nil
		}
		var v any
		if err := parseJSON(b.String(), &v); err != nil {
			return err
		}
		values = append(values, v)
		b.Reset()
		return nil
	}

	for _, r := range encoded[len(NullMarker):] {
		d := digitValue(r)
		if d < 0 {
			return nil, formatError("unexpected symbol", quotePayload(encoded), nil)
		}
		c = c<<2 | d
		if n++; n < 4 {
			continue
		}
		if c == 0 {
			if err := emit(); err != nil {
				return nil, err
			}
		} else {
			b.WriteRune(rune(c))
		}
		c, n = 0, 0
	}
	if err := emit(); err != nil {
		return nil, err
	}
	return values, nil
}
