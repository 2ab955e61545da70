package convert

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// kindAlertsHeader is the node kind name gm-alert-callouts gives the title
// line of a callout; its Kind values are not exported.
const kindAlertsHeader = "AlertsHeader"

// MarkdownToText strips Markdown markup and returns the readable text: used
// as the plain-text flavour written next to the rendered HTML.
func (c *Converter) MarkdownToText(src string) string {
	source := []byte(src)
	doc := c.md.Parser().Parse(text.NewReader(source))

	w := &textWriter{source: source}
	_ = ast.Walk(doc, w.walk)
	return strings.TrimRight(w.buf.String(), " \t\n")
}

type textWriter struct {
	source []byte
	buf    bytes.Buffer
}

func (w *textWriter) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		w.separate(n)
	case *ast.FencedCodeBlock:
		w.separate(n)
		w.writeLines(n.Lines())
		return ast.WalkSkipChildren, nil
	case *ast.CodeBlock:
		w.separate(n)
		w.writeLines(n.Lines())
		return ast.WalkSkipChildren, nil
	case *ast.HTMLBlock, *ast.RawHTML, *ast.ThematicBreak:
		return ast.WalkSkipChildren, nil
	case *east.TableHeader, *east.TableRow:
		w.separate(n)
	case *east.TableCell:
		if n.PreviousSibling() != nil {
			w.buf.WriteByte('\t')
		}
	case *ast.Text:
		v := n.Segment.Value(w.source)
		if !n.IsRaw() {
			v = util.UnescapePunctuations(util.ResolveNumericReferences(util.ResolveEntityNames(v)))
		}
		w.buf.Write(v)
		if n.HardLineBreak() || n.SoftLineBreak() {
			w.buf.WriteByte('\n')
		}
	case *ast.String:
		w.buf.Write(n.Value)
	case *ast.AutoLink:
		w.buf.Write(n.Label(w.source))
		return ast.WalkSkipChildren, nil
	default:
		if n.Kind().String() == kindAlertsHeader {
			w.separate(n)
			if n.ChildCount() == 0 {
				w.buf.WriteString(alertTitle(n))
			}
		}
	}
	return ast.WalkContinue, nil
}

// alertTitle returns the callout kind as a title ("NOTE" → "Note"), the
// same text the HTML renderer shows when no custom title is given.
func alertTitle(n ast.Node) string {
	var kind string
	if v, ok := n.AttributeString("kind"); ok {
		switch v := v.(type) {
		case string:
			kind = v
		case []byte:
			kind = string(v)
		}
	}
	kind = strings.ToLower(kind)
	if kind == "" {
		return ""
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}

// separate starts a new block: a blank line between blocks, a single line
// break between list items and between table rows.
func (w *textWriter) separate(n ast.Node) {
	if w.buf.Len() == 0 {
		return
	}
	trimmed := bytes.TrimRight(w.buf.Bytes(), " \t\n")
	w.buf.Truncate(len(trimmed))

	if n.Kind() == east.KindTableRow && n.PreviousSibling() != nil {
		w.buf.WriteByte('\n')
		return
	}
	if p := n.Parent(); p != nil && p.Kind() == ast.KindListItem && n.PreviousSibling() == nil {
		if p.PreviousSibling() != nil || inListItem(p.Parent()) {
			w.buf.WriteByte('\n')
			return
		}
	}
	w.buf.WriteString("\n\n")
}

func (w *textWriter) writeLines(lines *text.Segments) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		w.buf.Write(seg.Value(w.source))
	}
}

// inListItem reports whether a list is nested inside another list item.
func inListItem(list ast.Node) bool {
	return list != nil && list.Parent() != nil && list.Parent().Kind() == ast.KindListItem
}
