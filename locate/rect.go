package locate

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/Neumenon/stega/stega"
)

// measure computes where r appears once text is rendered: the visible
// text before it gives the starting cell, its own visible text the extent.
func measure(text string, r stega.Range) Rect {
	before := stega.RemoveAll(text[:r.Start])
	line := strings.Count(before, "\n") + 1
	lastLine := before[strings.LastIndexByte(before, '\n')+1:]

	rect := Rect{
		Line:   line,
		Column: uniseg.StringWidth(lastLine) + 1,
	}
	lines := strings.Split(stega.RemoveAll(r.String), "\n")
	rect.Lines = len(lines)
	for _, l := range lines {
		rect.Width = max(rect.Width, uniseg.StringWidth(l))
	}
	return rect
}
