package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/marklip/internal/clip"
	"go.klb.dev/marklip/internal/convert"
	"go.klb.dev/marklip/internal/dispatch"
	"go.klb.dev/marklip/internal/logging"
	"go.klb.dev/marklip/internal/report"
)

// app carries the resolved configuration for one invocation.
type app struct {
	env env
	v   *viper.Viper
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := bindViper(cmd, a.v); err != nil {
		return err
	}
	a.setupLogging()
	return nil
}

func (a *app) reporter() *report.Reporter {
	return &report.Reporter{
		Quiet:    a.v.GetBool("quiet"),
		Notify:   a.v.GetBool("notify"),
		Color:    logging.IsTTY(a.env.stderr),
		Title:    report.DefaultTitle,
		Out:      a.env.stderr,
		Notifier: a.env.notifier,
	}
}

// openClipboard opens the clipboard, mapping failures to an environment error.
func (a *app) openClipboard() (clip.Backend, error) {
	b, err := a.env.openClipboard()
	if err != nil {
		return nil, dispatch.Environment("Failed to access clipboard context", err)
	}
	return b, nil
}

func newConvertCmd(a *app, name, short string, mode dispatch.Mode) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE:  func(_ *cobra.Command, _ []string) error { return a.runConvert(mode) },
	}
}

func (a *app) runConvert(mode dispatch.Mode) error {
	rep := a.reporter()
	fail := func(err error) error {
		slog.Debug("conversion failed", "mode", mode, "code", dispatch.CodeOf(err), "err", err)
		rep.Failure(dispatch.MessageOf(err))
		return err
	}

	conv, err := convert.New(a.convertOptions())
	if err != nil {
		return fail(dispatch.Environment("invalid configuration", err))
	}

	backend, err := a.openClipboard()
	if err != nil {
		return fail(err)
	}
	defer backend.Close()

	d := dispatch.New(backend, conv, dispatch.Options{
		KeepMarkdownText: a.v.GetBool("keep-markdown"),
	})
	res, err := d.Run(mode)
	if err != nil {
		return fail(err)
	}

	if a.v.GetBool("print") {
		out := res.Output
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		fmt.Fprint(a.env.stdout, out)
	}
	rep.Success(res.Message)
	return nil
}
