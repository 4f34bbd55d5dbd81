package stega

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ============================================================
// Payload Codec
// ============================================================
//
// A payload block is NullMarker followed by four digit symbols per byte
// of ASCII JSON, most significant base-4 digit first:
//
//	'{' = 0x7B = 1 3 2 3  ->  Digit1 Digit3 Digit2 Digit3

// EncodeData encodes v as an invisible payload block.
//
// This is the low level half of Annotate; use Annotate to attach data to
// visible text.
func EncodeData(v any) (string, error) {
	text, err := toASCIIJSON(v)
	if err != nil {
		return "", err
	}
	return encodeText(text)
}

func encodeText(text string) (string, error) {
	var b strings.Builder
	b.Grow(len(NullMarker) + len(text)*4*utf8.RuneLen(Digit0))
	b.WriteString(NullMarker)
	for i, r := range text {
		if r > 0xFF {
			return "", &EncodingRangeError{Char: r, Pos: i}
		}
		b.WriteRune(digits[r>>6])
		b.WriteRune(digits[(r>>4)&3])
		b.WriteRune(digits[(r>>2)&3])
		b.WriteRune(digits[r&3])
	}
	return b.String(), nil
}

// DecodeJSON decodes a payload block into its JSON text without parsing it.
// Each byte is read as the code point of the same value. Decoding stops at
// the first zero byte.
func DecodeJSON(encoded string) (string, error) {
	if utf8.RuneCountInString(encoded)%4 != 0 {
		return "", formatError("length is not a multiple of 4", quotePayload(encoded), nil)
	}
	if !strings.HasPrefix(encoded, NullMarker) {
		return "", formatError("missing null marker", quotePayload(encoded), nil)
	}

	body := encoded[len(NullMarker):]
	var b strings.Builder
	b.Grow(len(body) / 12)

	c, n := 0, 0
	for _, r := range body {
		d := digitValue(r)
		if d < 0 {
			return "", formatError(fmt.Sprintf("unexpected symbol U+%04X", r), quotePayload(encoded), nil)
		}
		c = c<<2 | d
		n++
		if n < 4 {
			continue
		}
		if c == 0 {
			break
		}
		// Bytes above 0x7F are Latin-1 code points; encoders that skip
		// ASCII escaping emit them for characters up to U+00FF.
		b.WriteRune(rune(c))
		c, n = 0, 0
	}
	return b.String(), nil
}

// DecodeData decodes a payload block produced by EncodeData.
// Malformed input yields a *FormatError.
func DecodeData(encoded string) (any, error) {
	var v any
	if err := DecodeDataInto(encoded, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeDataInto decodes a payload block into v, which must be a pointer.
func DecodeDataInto(encoded string, v any) error {
	text, err := DecodeJSON(encoded)
	if err != nil {
		return err
	}
	return parseJSON(text, v)
}

// quotePayload renders a payload for error messages. The symbols are
// invisible, so they are shown as escapes.
func quotePayload(s string) string {
	return strconv.QuoteToASCII(s)
}
