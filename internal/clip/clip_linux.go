//go:build linux

package clip

import (
	"fmt"
	"log/slog"
	"os"

	atotto "github.com/atotto/clipboard"
)

type session int

const (
	sessionNone session = iota
	sessionWayland
	sessionX11
)

// linuxBackend lists targets and reads HTML through the selection tools of the
// running display server and leaves plain text to atotto/clipboard, which
// shells out to the same family of tools.
type linuxBackend struct {
	session   session
	run       runner
	start     runner
	readText  func() (string, error)
	writeText func(string) error
}

// New returns the Linux clipboard backend. It fails with ErrUnavailable when
// neither a selection tool for HTML nor a text helper can be found.
func New() (Backend, error) {
	b := &linuxBackend{
		session:   detectSession(),
		run:       runTool,
		start:     startTool,
		readText:  atotto.ReadAll,
		writeText: atotto.WriteAll,
	}
	if b.session == sessionNone && atotto.Unsupported {
		return nil, fmt.Errorf("%w: install wl-clipboard, xclip or xsel", ErrUnavailable)
	}
	slog.Debug("clipboard backend selected", "backend", b.Name())
	return b, nil
}

func detectSession() session {
	if os.Getenv("WAYLAND_DISPLAY") != "" && hasTool("wl-paste") && hasTool("wl-copy") {
		return sessionWayland
	}
	if os.Getenv("DISPLAY") != "" && hasTool("xclip") {
		return sessionX11
	}
	return sessionNone
}

func (b *linuxBackend) Name() string {
	switch b.session {
	case sessionWayland:
		return "Linux clipboard (wl-clipboard)"
	case sessionX11:
		return "Linux clipboard (xclip)"
	default:
		return "Linux clipboard (text only)"
	}
}

// types lists the targets the current selection owner offers. An empty
// selection makes both tools exit non-zero, which is reported as no types.
func (b *linuxBackend) types() []string {
	var (
		out []byte
		err error
	)
	switch b.session {
	case sessionWayland:
		out, err = b.run(nil, "wl-paste", "--list-types")
	case sessionX11:
		out, err = b.run(nil, "xclip", "-selection", "clipboard", "-o", "-t", "TARGETS")
	default:
		return nil
	}
	if err != nil {
		slog.Debug("clipboard target listing failed", "err", err)
		return nil
	}
	return parseTypeList(out)
}

func (b *linuxBackend) Has(f Format) bool {
	if b.session == sessionNone {
		if f != FormatText {
			return false
		}
		text, err := b.readText()
		return err == nil && text != ""
	}
	return offers(b.types(), f)
}

func (b *linuxBackend) Read(f Format) ([]byte, error) {
	switch f {
	case FormatText:
		text, err := b.readText()
		if err != nil {
			return nil, fmt.Errorf("read text: %w", err)
		}
		return []byte(text), nil
	case FormatHTML:
		switch b.session {
		case sessionWayland:
			return b.run(nil, "wl-paste", "--no-newline", "--type", string(FormatHTML))
		case sessionX11:
			return b.run(nil, "xclip", "-selection", "clipboard", "-o", "-t", string(FormatHTML))
		}
	}
	return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedFormat, f, b.Name())
}

// Write hands the selection to wl-copy or xclip. Those tools own exactly one
// target per process, so when HTML and text are both supplied the HTML
// flavour is kept.
func (b *linuxBackend) Write(items []Item) error {
	if err := checkFormats(items); err != nil {
		return err
	}
	html, hasHTML := find(items, FormatHTML)
	text, hasText := find(items, FormatText)

	if hasHTML && b.session != sessionNone {
		if hasText {
			slog.Debug("selection owner serves a single target, dropping text flavour", "backend", b.Name())
		}
		var err error
		switch b.session {
		case sessionWayland:
			_, err = b.start(html.Data, "wl-copy", "--type", string(FormatHTML))
		case sessionX11:
			_, err = b.start(html.Data, "xclip", "-selection", "clipboard", "-t", string(FormatHTML), "-i")
		}
		return err
	}
	if hasHTML && !hasText {
		return fmt.Errorf("%w: %s on %s", ErrUnsupportedFormat, FormatHTML, b.Name())
	}
	if err := b.writeText(text.Text()); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

func (b *linuxBackend) Close() {}
