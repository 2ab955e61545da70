// Package clip provides a format-aware interface to the system clipboard.
// Build constraints select the appropriate implementation:
//
//	clip_darwin.go   — macOS via golang.design/x/clipboard + osascript for HTML
//	clip_windows.go  — Windows via golang.design/x/clipboard + PowerShell for HTML
//	clip_linux.go    — Linux via atotto/clipboard + wl-clipboard / xclip for HTML
//	clip_other.go    — unsupported platforms, always ErrUnavailable
package clip

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned by New when no clipboard can be reached
	// (no display server, no helper tools, unsupported OS).
	ErrUnavailable = errors.New("clipboard unavailable")

	// ErrUnsupportedFormat is returned when a backend cannot read or write
	// the requested format.
	ErrUnsupportedFormat = errors.New("unsupported clipboard format")
)

// Format identifies a clipboard flavour by MIME type.
type Format string

const (
	FormatText Format = "text/plain"
	FormatHTML Format = "text/html"
)

func (f Format) String() string { return string(f) }

// Item is a single clipboard representation.
type Item struct {
	Format Format
	Data   []byte
}

// NewTextItem creates a text/plain Item.
func NewTextItem(text string) Item {
	return Item{Format: FormatText, Data: []byte(text)}
}

// NewHTMLItem creates a text/html Item.
func NewHTMLItem(html string) Item {
	return Item{Format: FormatHTML, Data: []byte(html)}
}

// Text returns the payload as a string.
func (it Item) Text() string { return string(it.Data) }

// Backend is the interface that all platform clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Has reports whether the clipboard currently offers the format.
	Has(f Format) bool

	// Read returns the clipboard payload for the format.
	Read(f Format) ([]byte, error)

	// Write replaces the clipboard contents with the provided items.
	Write(items []Item) error

	// Close releases any resources held by the backend.
	Close()
}

// find returns the first item with the given format.
func find(items []Item, f Format) (Item, bool) {
	for _, it := range items {
		if it.Format == f {
			return it, true
		}
	}
	return Item{}, false
}

func checkFormats(items []Item) error {
	for _, it := range items {
		switch it.Format {
		case FormatText, FormatHTML:
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, it.Format)
		}
	}
	return nil
}
