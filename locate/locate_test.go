package locate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/net/html"

	"github.com/Neumenon/stega/stega"
)

func annotate(t *testing.T, s string, data any) string {
	t.Helper()
	out, err := stega.Annotate(s, data)
	require.NoError(t, err)
	return out
}

func parse(t *testing.T, doc string) *html.Node {
	t.Helper()
	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return root
}

func collect(t *testing.T, l *Locator, root *html.Node) []Annotation {
	t.Helper()
	var out []Annotation
	for a, err := range l.Walk(root) {
		require.NoError(t, err)
		out = append(out, a)
	}
	return out
}

func samplePage(t *testing.T) string {
	title := annotate(t, "Hello", map[string]any{"field": "title"})
	para := "Intro " + annotate(t, "wow", 1) + " and\nmore " + annotate(t, "second", 2)
	caption := annotate(t, "A cat", map[string]any{"id": "img-1"})
	hidden := annotate(t, "hidden", "script")

	return "<!DOCTYPE html><html><head><title>" + title + "</title>" +
		`<script>var s = "` + hidden + `";</script>` +
		"<style>/* " + hidden + " */</style></head>" +
		"<body><p>" + para + "</p>" +
		`<img src="cat.png" alt="` + caption + `" data-x="` + hidden + `">` +
		"</body></html>"
}

func TestWalk_DocumentOrder(t *testing.T) {
	root := parse(t, samplePage(t))
	found := collect(t, New(DefaultOptions()), root)
	require.Len(t, found, 4)

	assert.Equal(t, map[string]any{"field": "title"}, found[0].Data)
	assert.Equal(t, PropertyData, found[0].Property)
	assert.Equal(t, html.TextNode, found[0].Node.Type)
	assert.Equal(t, "title", found[0].Node.Parent.Data)

	assert.Equal(t, float64(1), found[1].Data)
	assert.Equal(t, "wow", found[1].String)
	assert.Equal(t, float64(2), found[2].Data)
	assert.Same(t, found[1].Node, found[2].Node)

	assert.Equal(t, "alt", found[3].Property)
	assert.Equal(t, "img", found[3].Node.Data)
	assert.Equal(t, "A cat", found[3].String)
	assert.Equal(t, map[string]any{"id": "img-1"}, found[3].Data)
}

func TestWalk_Rects(t *testing.T) {
	root := parse(t, samplePage(t))
	found := collect(t, New(DefaultOptions()), root)
	require.Len(t, found, 4)

	assert.Equal(t, Rect{Line: 1, Column: 1, Lines: 1, Width: 5}, found[0].Rect)
	assert.Equal(t, Rect{Line: 1, Column: 7, Lines: 1, Width: 3}, found[1].Rect)
	assert.Equal(t, Rect{Line: 2, Column: 6, Lines: 1, Width: 6}, found[2].Rect)
	assert.Equal(t, "2:6+6x1", found[2].Rect.String())
}

func TestMeasure_WideAndMultiline(t *testing.T) {
	inner := annotate(t, "世界\nab", nil)
	text := "日本 " + inner
	r, ok, err := stega.Retrieve(text)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, Rect{Line: 1, Column: 6, Lines: 2, Width: 4}, measure(text, r))
}

func TestWalk_NestedAnnotations(t *testing.T) {
	inner := annotate(t, "inner", "i")
	outer := annotate(t, "x "+inner+" y", "o")
	root := parse(t, "<p>"+outer+"</p>")

	found := collect(t, New(DefaultOptions()), root)
	require.Len(t, found, 2)
	assert.Equal(t, "o", found[0].Data)
	assert.Equal(t, "i", found[1].Data)
	assert.Equal(t, Rect{Line: 1, Column: 1, Lines: 1, Width: 9}, found[0].Rect)
	assert.Equal(t, Rect{Line: 1, Column: 3, Lines: 1, Width: 5}, found[1].Rect)
}

func TestWalk_CustomOptions(t *testing.T) {
	hidden := annotate(t, "hidden", "script")
	root := parse(t, `<body><script>`+hidden+`</script><div data-x="`+hidden+`"></div></body>`)

	found := collect(t, New(Options{Attributes: []string{"DATA-X"}, SkipElements: []string{}}), root)
	require.Len(t, found, 2)
	assert.Equal(t, PropertyData, found[0].Property)
	assert.Equal(t, "script", found[0].Node.Parent.Data)
	assert.Equal(t, "data-x", found[1].Property)

	found = collect(t, New(Options{Attributes: []string{"data-x"}}), root)
	require.Len(t, found, 1)
	assert.Equal(t, "data-x", found[0].Property)
}

func TestNew_ZeroOptionsUseDefaults(t *testing.T) {
	code := annotate(t, "code", "script")
	caption := annotate(t, "cap", "alt")
	root := parse(t, `<body><script>`+code+`</script><style>`+code+`</style>`+
		`<template><p>`+code+`</p></template><img alt="`+caption+`"></body>`)

	found := collect(t, New(Options{}), root)
	require.Len(t, found, 1)
	assert.Equal(t, "alt", found[0].Property)
	assert.Equal(t, "alt", found[0].Data)
}

func TestWalk_Malformed(t *testing.T) {
	bad := string(stega.Anchor) + "bad" + stega.NullMarker +
		string([]rune{stega.Digit1, stega.Digit3, stega.Digit2, stega.Digit3}) // "{"
	good := annotate(t, "good", true)
	root := parse(t, "<p>"+bad+" "+good+"</p>")

	var errs []error
	for a, err := range New(DefaultOptions()).Walk(root) {
		if err != nil {
			errs = append(errs, err)
			assert.Equal(t, "bad", a.String)
		}
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], stega.ErrFormat)

	core, logs := observer.New(zapcore.DebugLevel)
	opts := DefaultOptions()
	opts.SkipMalformed = true
	opts.Logger = zap.New(core)

	found := collect(t, New(opts), root)
	require.Len(t, found, 1)
	assert.Equal(t, "good", found[0].String)

	warnings := logs.FilterMessage("skipping malformed annotation").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
	assert.Equal(t, PropertyData, warnings[0].ContextMap()["property"])

	summary := logs.FilterMessage("walk finished").All()
	require.Len(t, summary, 1)
	assert.Equal(t, int64(1), summary[0].ContextMap()["found"])
	assert.Equal(t, int64(1), summary[0].ContextMap()["skipped"])
}

func TestWalk_EarlyBreak(t *testing.T) {
	root := parse(t, samplePage(t))
	n := 0
	for range New(DefaultOptions()).Walk(root) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestWalk_NilAndPlain(t *testing.T) {
	l := New(DefaultOptions())
	assert.Empty(t, collect(t, l, nil))
	assert.Empty(t, collect(t, l, parse(t, "<p>nothing to see</p>")))
}
