//go:build darwin

package clip

import (
	"bytes"
	"fmt"
	"log/slog"

	"golang.design/x/clipboard"
)

type darwinBackend struct {
	run runner
}

// New returns the macOS clipboard backend. Text goes through NSPasteboard via
// golang.design/x/clipboard; the HTML flavour is reached through osascript.
func New() (Backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	slog.Debug("clipboard backend selected", "backend", "macOS NSPasteboard")
	return &darwinBackend{run: runTool}, nil
}

func (b *darwinBackend) Name() string { return "macOS NSPasteboard" }

func (b *darwinBackend) Has(f Format) bool {
	switch f {
	case FormatText:
		return clipboard.Read(clipboard.FmtText) != nil
	case FormatHTML:
		out, err := b.run(nil, "osascript", "-e", "clipboard info")
		if err != nil {
			slog.Debug("clipboard info failed", "err", err)
			return false
		}
		return bytes.Contains(out, []byte("«class HTML»"))
	}
	return false
}

func (b *darwinBackend) Read(f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return clipboard.Read(clipboard.FmtText), nil
	case FormatHTML:
		out, err := b.run(nil, "osascript", "-e", "the clipboard as «class HTML»")
		if err != nil {
			return nil, err
		}
		return decodeAppleScriptData(out)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

func (b *darwinBackend) Write(items []Item) error {
	if err := checkFormats(items); err != nil {
		return err
	}
	if _, ok := find(items, FormatHTML); !ok {
		text, _ := find(items, FormatText)
		clipboard.Write(clipboard.FmtText, text.Data)
		return nil
	}
	// osascript reads the program from stdin when no file is given.
	_, err := b.run([]byte(setClipboardScript(items)), "osascript")
	return err
}

func (b *darwinBackend) Close() {}
