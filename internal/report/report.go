// Package report delivers marklip status messages to stderr or as a desktop
// notification.
package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/gen2brain/beeep"
)

// DefaultTitle is the notification title.
const DefaultTitle = "marklip"

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(title, body string) error
}

// Desktop sends notifications through the OS notification service.
type Desktop struct{}

func (Desktop) Notify(title, body string) error {
	if err := beeep.Notify(title, body, ""); err != nil {
		return fmt.Errorf("notification failed: %w", err)
	}
	return nil
}

// Reporter routes status messages. With Notify set messages become
// notifications and only reach Out if delivery fails; otherwise they are
// written to Out unless Quiet.
type Reporter struct {
	Quiet    bool
	Notify   bool
	Color    bool
	Title    string
	Out      io.Writer
	Notifier Notifier
}

// Success reports a completed conversion.
func (r *Reporter) Success(msg string) { r.emit(msg, false) }

// Failure reports an error message.
func (r *Reporter) Failure(msg string) { r.emit(msg, true) }

func (r *Reporter) emit(msg string, isError bool) {
	if r.Notify && r.Notifier != nil {
		title := r.Title
		if title == "" {
			title = DefaultTitle
		}
		err := r.Notifier.Notify(title, msg)
		if err == nil {
			return
		}
		slog.Debug("notification failed", "err", err)
		r.print(msg, isError)
		r.print(err.Error(), true)
		return
	}
	if r.Quiet {
		return
	}
	r.print(msg, isError)
}

func (r *Reporter) print(msg string, isError bool) {
	if r.Out == nil {
		return
	}
	if isError && r.Color {
		c := color.New(color.FgRed)
		c.EnableColor()
		_, _ = c.Fprintln(r.Out, msg)
		return
	}
	_, _ = fmt.Fprintln(r.Out, msg)
}
