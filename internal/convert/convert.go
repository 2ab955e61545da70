// Package convert wraps the Markdown and HTML libraries marklip delegates
// conversion to.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/alecthomas/chroma/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	alertcallouts "github.com/zmtcreative/gm-alert-callouts"
)

// ErrEmptyResult is returned when a non-empty input converts to nothing.
var ErrEmptyResult = errors.New("conversion produced no output")

// Options tunes both conversion directions.
type Options struct {
	// HighlightStyle is a chroma style name for fenced code blocks. Empty
	// disables highlighting.
	HighlightStyle string
	// Alerts renders GitHub "> [!NOTE]" callouts.
	Alerts bool
	// HardWraps turns soft line breaks into <br>.
	HardWraps bool
	// UnsafeHTML passes raw HTML in Markdown through to the output.
	UnsafeHTML bool
	// BulletMarker is the list marker used when producing Markdown.
	BulletMarker string
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{BulletMarker: "-"}
}

// Converter converts between Markdown and HTML.
type Converter struct {
	md   goldmark.Markdown
	html *converter.Converter
}

// New builds a Converter, rejecting unknown highlight styles and list markers.
func New(opts Options) (*Converter, error) {
	if opts.HighlightStyle != "" {
		if _, ok := styles.Registry[opts.HighlightStyle]; !ok {
			return nil, fmt.Errorf("unknown highlight style %q (available: %s)",
				opts.HighlightStyle, strings.Join(styleNames(), ", "))
		}
	}
	if opts.BulletMarker == "" {
		opts.BulletMarker = "-"
	}
	switch opts.BulletMarker {
	case "-", "*", "+":
	default:
		return nil, fmt.Errorf("invalid bullet marker %q: want one of - * +", opts.BulletMarker)
	}

	return &Converter{
		md:   newMarkdown(opts),
		html: newHTMLConverter(opts),
	}, nil
}

func newMarkdown(opts Options) goldmark.Markdown {
	exts := []goldmark.Extender{
		extension.GFM,
		extension.Linkify,
	}
	if opts.Alerts {
		exts = append(exts, alertcallouts.NewAlertCallouts(
			alertcallouts.UseGFMStrictIcons(),
		))
	}
	if opts.HighlightStyle != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(opts.HighlightStyle),
		))
	}

	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if opts.UnsafeHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

func newHTMLConverter(opts Options) *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithBulletListMarker(opts.BulletMarker),
			),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)
}

// MarkdownToHTML renders Markdown source as an HTML fragment.
func (c *Converter) MarkdownToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// HTMLToMarkdown converts an HTML document or fragment to Markdown.
func (c *Converter) HTMLToMarkdown(src string) (string, error) {
	md, err := c.html.ConvertString(src)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	if strings.TrimSpace(md) == "" && strings.TrimSpace(src) != "" {
		return "", ErrEmptyResult
	}
	return md, nil
}

func styleNames() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
