// Package dispatch implements the marklip conversion commands: inspect the
// clipboard, convert in the requested direction and write the result back.
package dispatch

import (
	"fmt"
	"log/slog"
	"strings"

	"go.klb.dev/marklip/internal/clip"
)

// Mode selects the conversion direction.
type Mode int

const (
	ModeToHTML Mode = iota
	ModeToMarkdown
	ModeAuto
)

func (m Mode) String() string {
	switch m {
	case ModeToHTML:
		return "to-html"
	case ModeToMarkdown:
		return "to-md"
	case ModeAuto:
		return "auto"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a command name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "to-html":
		return ModeToHTML, nil
	case "to-md":
		return ModeToMarkdown, nil
	case "auto":
		return ModeAuto, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// Converter is the conversion library the dispatcher delegates to.
type Converter interface {
	MarkdownToHTML(src string) (string, error)
	MarkdownToText(src string) string
	HTMLToMarkdown(src string) (string, error)
}

// Options tweak what gets written back.
type Options struct {
	// KeepMarkdownText writes the Markdown source as the plain-text flavour
	// of a to-html conversion instead of the stripped text.
	KeepMarkdownText bool
}

// Result describes a successful run.
type Result struct {
	Mode    Mode
	Message string
	Output  string
}

// Dispatcher runs one conversion against a clipboard backend.
type Dispatcher struct {
	clip clip.Backend
	conv Converter
	opts Options
}

// New returns a Dispatcher.
func New(b clip.Backend, c Converter, opts Options) *Dispatcher {
	return &Dispatcher{clip: b, conv: c, opts: opts}
}

// Run performs the conversion selected by mode.
func (d *Dispatcher) Run(mode Mode) (Result, error) {
	slog.Debug("dispatch", "mode", mode, "backend", d.clip.Name())
	switch mode {
	case ModeToHTML:
		return d.toHTML()
	case ModeToMarkdown:
		return d.toMarkdown()
	case ModeAuto:
		return d.auto()
	default:
		return Result{}, Environment("unknown mode", fmt.Errorf("%v", mode))
	}
}

// auto picks the direction from what the clipboard offers: HTML wins, then
// non-empty text.
func (d *Dispatcher) auto() (Result, error) {
	if d.clip.Has(clip.FormatHTML) {
		slog.Debug("auto: html present", "resolved", ModeToMarkdown)
		return d.toMarkdown()
	}
	if d.clip.Has(clip.FormatText) {
		slog.Debug("auto: text present", "resolved", ModeToHTML)
		return d.toHTML()
	}
	return Result{}, MissingContent(clip.FormatText)
}

func (d *Dispatcher) toHTML() (Result, error) {
	if !d.clip.Has(clip.FormatText) {
		return Result{}, MissingContent(clip.FormatText)
	}
	input, err := d.read(clip.FormatText)
	if err != nil {
		return Result{}, err
	}
	if input == "" {
		return Result{}, MissingContent(clip.FormatText)
	}

	html, err := d.conv.MarkdownToHTML(input)
	if err != nil {
		return Result{}, ConversionFailed(err)
	}
	plain := input
	if !d.opts.KeepMarkdownText {
		plain = d.conv.MarkdownToText(input)
	}

	if err := d.write([]clip.Item{clip.NewHTMLItem(html), clip.NewTextItem(plain)}); err != nil {
		return Result{}, err
	}
	return Result{Mode: ModeToHTML, Message: MsgToHTML, Output: html}, nil
}

func (d *Dispatcher) toMarkdown() (Result, error) {
	if !d.clip.Has(clip.FormatHTML) {
		return Result{}, MissingContent(clip.FormatHTML)
	}
	input, err := d.read(clip.FormatHTML)
	if err != nil {
		return Result{}, err
	}

	md, err := d.conv.HTMLToMarkdown(input)
	if err != nil {
		return Result{}, ConversionFailed(err)
	}

	if err := d.write([]clip.Item{clip.NewTextItem(md)}); err != nil {
		return Result{}, err
	}
	return Result{Mode: ModeToMarkdown, Message: MsgToMarkdown, Output: md}, nil
}

func (d *Dispatcher) read(f clip.Format) (string, error) {
	data, err := d.clip.Read(f)
	if err != nil {
		return "", Environment("clipboard read failed", err)
	}
	it := clip.Item{Format: f, Data: data}
	clip.LogItems("clipboard read", d.clip.Name(), []clip.Item{it})
	return it.Text(), nil
}

func (d *Dispatcher) write(items []clip.Item) error {
	if err := d.clip.Write(items); err != nil {
		return Environment("clipboard write failed", err)
	}
	clip.LogItems("clipboard written", d.clip.Name(), items)
	return nil
}
