package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/Neumenon/stega/locate"
	"github.com/Neumenon/stega/stega"
)

// readInput reads a whole file, or stdin for "" and "-".
func readInput(env *Env, file string) (string, error) {
	var (
		b   []byte
		err error
	)
	if file == "" || file == "-" {
		b, err = io.ReadAll(env.Stdin)
	} else {
		b, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}

// newLineEncoder returns an encoder writing one JSON value per line.
func newLineEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

// ============================================================
// annotate
// ============================================================

// AnnotateCmd wraps text in an annotation.
type AnnotateCmd struct {
	Text string `arg:"" help:"Visible text to annotate."`
	Data string `short:"d" required:"" help:"JSON value to hide in the text."`
}

func (c *AnnotateCmd) Run(env *Env) error {
	if !json.Valid([]byte(c.Data)) {
		return fmt.Errorf("--data is not valid JSON: %q", c.Data)
	}
	// RawMessage keeps the caller's key order.
	out, err := stega.Annotate(c.Text, json.RawMessage(c.Data))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(env.Stdout, out)
	return err
}

// ============================================================
// retrieve
// ============================================================

// RetrieveCmd prints annotations as JSON lines.
type RetrieveCmd struct {
	File string `arg:"" optional:"" default:"-" help:"Input file (default stdin)."`
	All  bool   `short:"a" help:"Print every annotation, not just the first."`
	Path string `short:"p" help:"GJSON path selecting part of each data value."`
}

type rangeRecord struct {
	Start   int             `json:"start"`
	End     int             `json:"end"`
	Visible string          `json:"visible"`
	Data    json.RawMessage `json:"data"`
}

func (c *RetrieveCmd) Run(env *Env) error {
	text, err := readInput(env, c.File)
	if err != nil {
		return err
	}
	enc := newLineEncoder(env.Stdout)

	malformed := 0
	for r, err := range stega.RetrieveAll(text) {
		if err != nil {
			malformed++
			env.Logger.Warn("malformed annotation",
				zap.Int("start", r.Start),
				zap.Int("end", r.End),
				zap.Error(err))
			if !c.All {
				break
			}
			continue
		}
		data, ok := c.selectData(r.Raw)
		if !ok {
			env.Logger.Debug("path not found",
				zap.String("path", c.Path),
				zap.Int("start", r.Start))
		} else {
			rec := rangeRecord{
				Start:   r.Start,
				End:     r.End,
				Visible: stega.RemoveAll(r.String),
				Data:    data,
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		if !c.All {
			break
		}
	}
	if malformed > 0 {
		return fmt.Errorf("%d malformed annotation(s)", malformed)
	}
	return nil
}

func (c *RetrieveCmd) selectData(raw string) (json.RawMessage, bool) {
	if c.Path == "" {
		return json.RawMessage(raw), true
	}
	res := gjson.Get(raw, c.Path)
	if !res.Exists() {
		return nil, false
	}
	return json.RawMessage(res.Raw), true
}

// ============================================================
// remove
// ============================================================

// RemoveCmd strips annotation symbols.
type RemoveCmd struct {
	File string `arg:"" optional:"" default:"-" help:"Input file (default stdin)."`
	All  bool   `short:"a" help:"Strip every annotation, not just the first."`
}

func (c *RemoveCmd) Run(env *Env) error {
	text, err := readInput(env, c.File)
	if err != nil {
		return err
	}
	out := stega.Remove(text)
	if c.All {
		out = stega.RemoveAll(text)
	}
	env.Logger.Debug("removed annotations",
		zap.Int("in", len(text)),
		zap.Int("out", len(out)))
	_, err = io.WriteString(env.Stdout, out)
	return err
}

// ============================================================
// mark
// ============================================================

// MarkCmd replaces each annotation with OPEN visible SEP data CLOSE.
type MarkCmd struct {
	File  string `arg:"" optional:"" default:"-" help:"Input file (default stdin)."`
	Open  string `default:"(" help:"Text written before the annotated text."`
	Sep   string `default:"|" help:"Text written between the annotated text and its data."`
	Close string `default:")" help:"Text written after the data."`
}

func (c *MarkCmd) Run(env *Env) error {
	text, err := readInput(env, c.File)
	if err != nil {
		return err
	}
	out, err := stega.ReplaceAll(text, func(r stega.Range) string {
		return c.Open + r.String + c.Sep + r.Raw + c.Close
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(env.Stdout, out)
	return err
}

// ============================================================
// locate
// ============================================================

// LocateCmd lists the annotations of an HTML document.
type LocateCmd struct {
	File          string   `arg:"" optional:"" default:"-" help:"HTML file (default stdin)."`
	Attr          []string `help:"Attributes to search besides text (default alt,title,aria-label,placeholder)."`
	SkipMalformed bool     `help:"Log and skip annotations that fail to decode."`
}

type locateRecord struct {
	Node     string          `json:"node"`
	Property string          `json:"property"`
	Rect     string          `json:"rect"`
	Start    int             `json:"start"`
	End      int             `json:"end"`
	Visible  string          `json:"visible"`
	Data     json.RawMessage `json:"data"`
}

func (c *LocateCmd) Run(env *Env) error {
	text, err := readInput(env, c.File)
	if err != nil {
		return err
	}
	root, err := locate.Parse(strings.NewReader(text))
	if err != nil {
		return err
	}

	opts := locate.DefaultOptions()
	if len(c.Attr) > 0 {
		opts.Attributes = c.Attr
	}
	opts.SkipMalformed = c.SkipMalformed
	opts.Logger = env.Logger

	enc := newLineEncoder(env.Stdout)
	for a, err := range locate.New(opts).Walk(root) {
		if err != nil {
			return fmt.Errorf("%s %s: %w", nodePath(a.Node), a.Property, err)
		}
		rec := locateRecord{
			Node:     nodePath(a.Node),
			Property: a.Property,
			Rect:     a.Rect.String(),
			Start:    a.Start,
			End:      a.End,
			Visible:  stega.RemoveAll(a.String),
			Data:     json.RawMessage(a.Raw),
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// nodePath describes n by its element ancestry, e.g. "html>body>p".
// Text nodes are described by their parent element.
func nodePath(n *html.Node) string {
	var names []string
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode {
			names = append(names, n.Data)
		}
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteString(names[i])
		if i > 0 {
			b.WriteByte('>')
		}
	}
	return b.String()
}

// ============================================================
// diff
// ============================================================

// DiffCmd compares the visible text of two files.
type DiffCmd struct {
	Old     string `arg:"" help:"Original file."`
	New     string `arg:"" help:"Changed file."`
	Context int    `short:"U" default:"3" help:"Lines of context."`
}

func (c *DiffCmd) Run(env *Env) error {
	a, err := readInput(env, c.Old)
	if err != nil {
		return err
	}
	b, err := readInput(env, c.New)
	if err != nil {
		return err
	}
	a, b = stega.RemoveAll(a), stega.RemoveAll(b)
	if a == b {
		env.Logger.Info("visible text identical",
			zap.String("old", c.Old),
			zap.String("new", c.New))
		return nil
	}

	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: c.Old,
		ToFile:   c.New,
		Context:  c.Context,
	})
	if err != nil {
		return err
	}
	if _, err := io.WriteString(env.Stdout, out); err != nil {
		return err
	}
	return errDiffers
}
