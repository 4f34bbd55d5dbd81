package stega

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"
)

// ============================================================
// ASCII JSON Bridge
// ============================================================
//
// Payload bytes are the characters of a JSON document that is strictly
// ASCII. Only string literals can carry non-ASCII text in JSON, so every
// such code unit is rewritten as a \uXXXX escape, the way JavaScript
// consumers of the same payload grammar produce it.

// toASCIIJSON marshals v like JSON.stringify: no HTML escaping, no
// trailing newline, non-ASCII escaped per UTF-16 code unit.
func toASCIIJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("stega: marshal data: %w", err)
	}
	return escapeNonASCII(strings.TrimSuffix(buf.String(), "\n")), nil
}

func escapeNonASCII(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool { return r > 0x7F })
	if i < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 16)
	b.WriteString(s[:i])
	for _, r := range s[i:] {
		switch {
		case r <= 0x7F:
			b.WriteRune(r)
		case r >= 0x10000:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String()
}

// parseJSON unmarshals decoded payload text into generic JSON values.
func parseJSON(text string, v any) error {
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return formatError("invalid JSON", quotePayload(text), err)
	}
	return nil
}
