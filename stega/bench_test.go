package stega

import (
	"strings"
	"testing"
)

// ============================================================
// Benchmarks
// ============================================================
//
// Run with:
//   go test -bench=. -benchmem ./stega/

var benchData = map[string]any{
	"origin": "cms",
	"href":   "https://example.com/edit/page/42?field=title",
	"id":     42,
}

// benchPage builds a page of n annotated paragraphs, every fourth one
// wrapping a nested annotation.
func benchPage(b *testing.B, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		text := "Lorem ipsum dolor sit amet, consectetur adipiscing elit."
		if i%4 == 0 {
			inner, err := Annotate("nested", i)
			if err != nil {
				b.Fatal(err)
			}
			text += inner
		}
		annotated, err := Annotate(text, benchData)
		if err != nil {
			b.Fatal(err)
		}
		sb.WriteString(annotated)
		sb.WriteString("\n")
	}
	return sb.String()
}

func BenchmarkEncodeData(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := EncodeData(benchData); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeData(b *testing.B) {
	encoded, err := EncodeData(benchData)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeData(encoded); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRetrieveAll(b *testing.B) {
	page := benchPage(b, 100)
	b.SetBytes(int64(len(page)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, err := range RetrieveAll(page) {
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkRemoveAll(b *testing.B) {
	page := benchPage(b, 100)
	b.SetBytes(int64(len(page)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = RemoveAll(page)
	}
}

func BenchmarkReplaceAll(b *testing.B) {
	page := benchPage(b, 100)
	b.SetBytes(int64(len(page)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ReplaceAll(page, func(r Range) string { return r.String }); err != nil {
			b.Fatal(err)
		}
	}
}
